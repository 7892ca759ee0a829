package llm

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"

	"github.com/alexanderramin/planforge/internal/domain"
)

// Message roles.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is one chat turn.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatRequest is a full conversation including the system prompt.
type ChatRequest struct {
	Messages    []Message
	Temperature float64
	MaxTokens   int
}

// ChatResponse holds the reply. Text is empty when the model returned
// nothing usable.
type ChatResponse struct {
	Text      string
	Model     string
	LatencyMs int64
}

// Client sends a conversation to a language model.
type Client interface {
	Chat(ctx context.Context, req ChatRequest) (*ChatResponse, error)
}

// ProgressFunc reports local model preparation. pct is 0-100.
type ProgressFunc func(pct float64, status string)

// NewClient returns the backend selected by settings.
func NewClient(s domain.AISettings, cfg Config, observer Observer, progress ProgressFunc) (Client, error) {
	switch s.Provider {
	case domain.ProviderLocal, "":
		model := cfg.LocalModel
		if s.Model != "" {
			model = s.Model
		}
		return NewOllamaClient(cfg, model, observer, progress), nil
	case domain.ProviderGroq:
		return newRemote(s, cfg.GroqBaseURL, domain.CoalesceStr(s.Model, cfg.GroqModel), cfg, observer)
	case domain.ProviderOpenAI:
		return newRemote(s, cfg.OpenAIBaseURL, domain.CoalesceStr(s.Model, cfg.OpenAIModel), cfg, observer)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedProvider, s.Provider)
	}
}

func newRemote(s domain.AISettings, baseURL, model string, cfg Config, observer Observer) (Client, error) {
	if strings.TrimSpace(s.APIKey) == "" {
		return nil, fmt.Errorf("%w for %s", ErrMissingAPIKey, s.Provider)
	}
	return NewRemoteClient(s.Provider, baseURL, s.APIKey, model, cfg, observer), nil
}

// withDefaults fills sampling parameters left at zero.
func (r ChatRequest) withDefaults(cfg Config) ChatRequest {
	if r.Temperature == 0 {
		r.Temperature = cfg.Temperature
	}
	if r.MaxTokens == 0 {
		r.MaxTokens = cfg.MaxTokens
	}
	return r
}

func isConnectionError(err error) bool {
	if err == nil {
		return false
	}
	var netErr *net.OpError
	return errors.As(err, &netErr)
}

func errorCode(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrTimeout):
		return "TIMEOUT"
	case errors.Is(err, ErrLocalUnavailable):
		return "UNAVAILABLE"
	case errors.Is(err, ErrModelPull):
		return "PULL"
	case errors.Is(err, ErrProviderAPI):
		return "API"
	default:
		return "UNKNOWN"
	}
}
