package llm

import (
	"context"
	"errors"
	"fmt"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/alexanderramin/planforge/internal/domain"
)

// RemoteClient talks to an OpenAI-compatible chat completions API.
type RemoteClient struct {
	provider domain.Provider
	model    string
	cfg      Config
	api      *openai.Client
	observer Observer
}

func NewRemoteClient(provider domain.Provider, baseURL, apiKey, model string, cfg Config, observer Observer) *RemoteClient {
	oc := openai.DefaultConfig(apiKey)
	oc.BaseURL = baseURL
	return &RemoteClient{
		provider: provider,
		model:    model,
		cfg:      cfg,
		api:      openai.NewClientWithConfig(oc),
		observer: observerOrNoop(observer),
	}
}

func (c *RemoteClient) Chat(ctx context.Context, req ChatRequest) (*ChatResponse, error) {
	start := time.Now()
	req = req.withDefaults(c.cfg)

	ctx, cancel := context.WithTimeout(ctx, time.Duration(c.cfg.TimeoutMs)*time.Millisecond)
	defer cancel()

	msgs := make([]openai.ChatCompletionMessage, 0, len(req.Messages))
	for _, m := range req.Messages {
		msgs = append(msgs, openai.ChatCompletionMessage{Role: m.Role, Content: m.Content})
	}
	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.model,
		Messages:    msgs,
		Temperature: float32(req.Temperature),
		MaxTokens:   req.MaxTokens,
	})
	if err != nil {
		err = c.mapError(ctx, err)
	}
	latency := time.Since(start).Milliseconds()
	c.observer.OnCallComplete(CallEvent{
		Provider:  c.provider,
		Model:     c.model,
		LatencyMs: latency,
		Success:   err == nil,
		ErrorCode: errorCode(err),
	})
	if err != nil {
		return nil, err
	}

	out := &ChatResponse{Model: resp.Model, LatencyMs: latency}
	if len(resp.Choices) > 0 {
		out.Text = resp.Choices[0].Message.Content
	}
	return out, nil
}

func (c *RemoteClient) mapError(ctx context.Context, err error) error {
	if ctx.Err() != nil {
		return ErrTimeout
	}
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return fmt.Errorf("%w (%d): %s", ErrProviderAPI, apiErr.HTTPStatusCode, apiErr.Message)
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return fmt.Errorf("%w (%d): %v", ErrProviderAPI, reqErr.HTTPStatusCode, reqErr.Err)
	}
	return fmt.Errorf("%s request: %w", c.provider, err)
}
