package llm

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/alexanderramin/planforge/internal/domain"
)

// OllamaClient talks to a local Ollama server. The model is pulled on first
// use if the server does not have it yet.
type OllamaClient struct {
	cfg      Config
	model    string
	http     *http.Client
	observer Observer
	progress ProgressFunc

	ready   atomic.Bool
	prepare singleflight.Group
}

func NewOllamaClient(cfg Config, model string, observer Observer, progress ProgressFunc) *OllamaClient {
	if progress == nil {
		progress = func(float64, string) {}
	}
	return &OllamaClient{
		cfg:   cfg,
		model: model,
		http: &http.Client{
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout: 5 * time.Second,
				}).DialContext,
			},
		},
		observer: observerOrNoop(observer),
		progress: progress,
	}
}

type ollamaMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ollamaChatRequest is the JSON body sent to POST /api/chat.
type ollamaChatRequest struct {
	Model    string          `json:"model"`
	Messages []ollamaMessage `json:"messages"`
	Stream   bool            `json:"stream"`
	Options  ollamaOptions   `json:"options"`
}

type ollamaOptions struct {
	Temperature float64 `json:"temperature"`
	NumPredict  int     `json:"num_predict,omitempty"`
}

// ollamaChatResponse is the JSON body returned by POST /api/chat (non-streaming).
type ollamaChatResponse struct {
	Model   string        `json:"model"`
	Message ollamaMessage `json:"message"`
}

type ollamaTags struct {
	Models []struct {
		Name  string `json:"name"`
		Model string `json:"model"`
	} `json:"models"`
}

// ollamaPullEvent is one line of the streamed /api/pull response.
type ollamaPullEvent struct {
	Status    string `json:"status"`
	Total     int64  `json:"total"`
	Completed int64  `json:"completed"`
	Error     string `json:"error"`
}

// Prepare makes sure the model is available locally. Concurrent callers
// share one preparation; once it succeeds later calls return immediately.
func (c *OllamaClient) Prepare(ctx context.Context) error {
	if c.ready.Load() {
		return nil
	}
	_, err, _ := c.prepare.Do(c.model, func() (any, error) {
		if c.ready.Load() {
			return nil, nil
		}
		has, err := c.hasModel(ctx)
		if err != nil {
			return nil, err
		}
		if !has {
			if err := c.pull(ctx); err != nil {
				return nil, err
			}
		}
		c.ready.Store(true)
		return nil, nil
	})
	return err
}

func (c *OllamaClient) hasModel(ctx context.Context) (bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.Endpoint+"/api/tags", nil)
	if err != nil {
		return false, fmt.Errorf("creating request: %w", err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return false, c.transportError(ctx, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return false, fmt.Errorf("%w: tags returned status %d", ErrLocalUnavailable, resp.StatusCode)
	}
	var tags ollamaTags
	if err := json.NewDecoder(resp.Body).Decode(&tags); err != nil {
		return false, fmt.Errorf("decoding tags: %w", err)
	}
	for _, m := range tags.Models {
		if sameModel(m.Name, c.model) || sameModel(m.Model, c.model) {
			return true, nil
		}
	}
	return false, nil
}

// sameModel treats "name" and "name:latest" as the same tag.
func sameModel(have, want string) bool {
	if have == want {
		return true
	}
	if !strings.Contains(want, ":") {
		return have == want+":latest"
	}
	return false
}

func (c *OllamaClient) pull(ctx context.Context) error {
	data, err := json.Marshal(map[string]any{"model": c.model, "stream": true})
	if err != nil {
		return fmt.Errorf("marshaling request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.Endpoint+"/api/pull", bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.http.Do(req)
	if err != nil {
		return c.transportError(ctx, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: status %d: %s", ErrModelPull, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	c.progress(0, "pulling "+c.model)
	sc := bufio.NewScanner(resp.Body)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	last := 0.0
	for sc.Scan() {
		line := bytes.TrimSpace(sc.Bytes())
		if len(line) == 0 {
			continue
		}
		var ev ollamaPullEvent
		if err := json.Unmarshal(line, &ev); err != nil {
			return fmt.Errorf("%w: decoding progress: %v", ErrModelPull, err)
		}
		if ev.Error != "" {
			return fmt.Errorf("%w: %s", ErrModelPull, ev.Error)
		}
		if ev.Total > 0 {
			last = float64(ev.Completed) / float64(ev.Total) * 100
		}
		if ev.Status == "success" {
			last = 100
		}
		c.progress(last, ev.Status)
	}
	if err := sc.Err(); err != nil {
		return c.transportError(ctx, err)
	}
	if last < 100 {
		return fmt.Errorf("%w: stream ended before completion", ErrModelPull)
	}
	return nil
}

func (c *OllamaClient) Chat(ctx context.Context, req ChatRequest) (*ChatResponse, error) {
	start := time.Now()
	req = req.withDefaults(c.cfg)

	resp, err := c.chat(ctx, req)
	latency := time.Since(start).Milliseconds()
	c.observer.OnCallComplete(CallEvent{
		Provider:  domain.ProviderLocal,
		Model:     c.model,
		LatencyMs: latency,
		Success:   err == nil,
		ErrorCode: errorCode(err),
	})
	if err != nil {
		return nil, err
	}
	return &ChatResponse{Text: resp.Message.Content, Model: resp.Model, LatencyMs: latency}, nil
}

func (c *OllamaClient) chat(ctx context.Context, req ChatRequest) (*ollamaChatResponse, error) {
	if err := c.Prepare(ctx); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, time.Duration(c.cfg.TimeoutMs)*time.Millisecond)
	defer cancel()

	body := ollamaChatRequest{
		Model:  c.model,
		Stream: false,
		Options: ollamaOptions{
			Temperature: req.Temperature,
			NumPredict:  req.MaxTokens,
		},
	}
	for _, m := range req.Messages {
		body.Messages = append(body.Messages, ollamaMessage(m))
	}

	var lastErr error
	attempts := 1 + c.cfg.MaxRetries
	for range attempts {
		resp, err := c.doChat(ctx, body)
		if err == nil {
			return resp, nil
		}
		lastErr = err
		// Don't retry on context cancellation/timeout
		if ctx.Err() != nil {
			break
		}
	}

	if ctx.Err() != nil {
		return nil, ErrTimeout
	}
	if isConnectionError(lastErr) {
		return nil, ErrLocalUnavailable
	}
	return nil, fmt.Errorf("%w: %v", ErrRetryExhausted, lastErr)
}

func (c *OllamaClient) doChat(ctx context.Context, body ollamaChatRequest) (*ollamaChatResponse, error) {
	data, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.Endpoint+"/api/chat", bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	httpResp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}
	if httpResp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("ollama returned status %d: %s", httpResp.StatusCode, string(respBody))
	}

	var resp ollamaChatResponse
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}
	return &resp, nil
}

// Available checks whether the Ollama server is reachable.
func (c *OllamaClient) Available(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.Endpoint+"/api/tags", nil)
	if err != nil {
		return false
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return false
	}
	resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

func (c *OllamaClient) transportError(ctx context.Context, err error) error {
	switch {
	case ctx.Err() != nil:
		return ErrTimeout
	case isConnectionError(err):
		return fmt.Errorf("%w: %v", ErrLocalUnavailable, err)
	default:
		return err
	}
}
