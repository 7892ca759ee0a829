package intelligence

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/alexanderramin/planforge/internal/domain"
	"github.com/alexanderramin/planforge/internal/llm"
)

const (
	// FallbackReply is shown when the model returns an empty completion.
	FallbackReply = "I didn't understand that. Could you try again?"

	// WelcomeMessage opens every conversation.
	WelcomeMessage = "Hi! I'm Planforge, your business planning assistant. Tell me about your business idea, and I'll help you fill out your Business Model Canvas!"
)

// Send asks the model for the next reply to history, with the canvas as
// context. An empty completion yields FallbackReply.
func Send(ctx context.Context, client llm.Client, history []llm.Message, canvas *domain.Canvas) (string, error) {
	msgs := make([]llm.Message, 0, len(history)+1)
	msgs = append(msgs, llm.Message{Role: llm.RoleSystem, Content: BuildSystemPrompt(canvas)})
	msgs = append(msgs, history...)

	resp, err := client.Chat(ctx, llm.ChatRequest{
		Messages:    msgs,
		Temperature: llm.DefaultTemperature,
		MaxTokens:   llm.DefaultMaxTokens,
	})
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(resp.Text) == "" {
		return FallbackReply, nil
	}
	return resp.Text, nil
}

// ClientFactory builds the backend on first use so configuration problems
// surface as chat replies rather than startup failures.
type ClientFactory func() (llm.Client, error)

// Conversation keeps the chat history for one assistant session.
type Conversation struct {
	mu       sync.Mutex
	factory  ClientFactory
	client   llm.Client
	provider domain.Provider
	history  []llm.Message
}

func NewConversation(provider domain.Provider, factory ClientFactory) *Conversation {
	return &Conversation{provider: provider, factory: factory}
}

// NewSettingsConversation builds the backend from saved assistant settings.
func NewSettingsConversation(s domain.AISettings, cfg llm.Config, observer llm.Observer, progress llm.ProgressFunc) *Conversation {
	return NewConversation(s.Provider, func() (llm.Client, error) {
		return llm.NewClient(s, cfg, observer, progress)
	})
}

// History returns a copy of the turns so far.
func (c *Conversation) History() []llm.Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]llm.Message(nil), c.history...)
}

// Send appends the user's message, asks the model, and appends the reply.
// On failure the reply is a user-facing explanation, only the user message
// is kept, and err carries the cause.
func (c *Conversation) Send(ctx context.Context, text string, canvas *domain.Canvas) (reply string, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.history = append(c.history, llm.Message{Role: llm.RoleUser, Content: text})

	if c.client == nil {
		client, err := c.factory()
		if err != nil {
			return Explain(c.provider, err), err
		}
		c.client = client
	}

	reply, err = Send(ctx, c.client, c.history, canvas)
	if err != nil {
		return Explain(c.provider, err), err
	}
	c.history = append(c.history, llm.Message{Role: llm.RoleAssistant, Content: reply})
	return reply, nil
}

// Explain turns an assistant error into a chat message.
func Explain(provider domain.Provider, err error) string {
	switch {
	case errors.Is(err, llm.ErrMissingAPIKey):
		return fmt.Sprintf("Sorry, I need an API key for %s. Set one with: planforge settings ai --provider %s --api-key <key>", provider, provider)
	case errors.Is(err, llm.ErrLocalUnavailable):
		return "Sorry, I couldn't reach the local model server. Start it with `ollama serve`, or switch to Groq or OpenAI with: planforge settings ai --provider groq --api-key <key>"
	case errors.Is(err, llm.ErrUnsupportedProvider):
		return fmt.Sprintf("Sorry, %q is not a provider I know. Choose local, groq or openai in settings.", provider)
	case errors.Is(err, llm.ErrTimeout):
		return "Sorry, the assistant took too long to answer. Please try again."
	default:
		return "Sorry, I had trouble processing that. " + err.Error()
	}
}
