package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/planforge/internal/domain"
)

func testConfig(endpoint string) Config {
	cfg := DefaultConfig()
	cfg.Endpoint = endpoint
	return cfg
}

func userTurn(text string) ChatRequest {
	return ChatRequest{Messages: []Message{
		{Role: RoleSystem, Content: "system prompt"},
		{Role: RoleUser, Content: text},
	}}
}

// ollamaStub serves /api/tags with the given models and answers /api/chat.
func ollamaStub(t *testing.T, models []string, reply string) (*httptest.Server, *atomic.Int32) {
	t.Helper()
	var pulls atomic.Int32
	mux := http.NewServeMux()
	mux.HandleFunc("/api/tags", func(w http.ResponseWriter, r *http.Request) {
		var tags ollamaTags
		for _, m := range models {
			tags.Models = append(tags.Models, struct {
				Name  string `json:"name"`
				Model string `json:"model"`
			}{Name: m, Model: m})
		}
		json.NewEncoder(w).Encode(tags)
	})
	mux.HandleFunc("/api/pull", func(w http.ResponseWriter, r *http.Request) {
		pulls.Add(1)
		fmt.Fprintln(w, `{"status":"pulling manifest"}`)
		fmt.Fprintln(w, `{"status":"downloading","total":200,"completed":100}`)
		fmt.Fprintln(w, `{"status":"downloading","total":200,"completed":200}`)
		fmt.Fprintln(w, `{"status":"success"}`)
	})
	mux.HandleFunc("/api/chat", func(w http.ResponseWriter, r *http.Request) {
		var req ollamaChatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.False(t, req.Stream)
		assert.Equal(t, 0.7, req.Options.Temperature)
		assert.Equal(t, 256, req.Options.NumPredict)
		json.NewEncoder(w).Encode(ollamaChatResponse{
			Model:   req.Model,
			Message: ollamaMessage{Role: RoleAssistant, Content: reply},
		})
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv, &pulls
}

func TestOllamaClient_Chat_ModelPresent(t *testing.T) {
	srv, pulls := ollamaStub(t, []string{"llama3.2:1b"}, "Tell me more about your customers.")

	client := NewOllamaClient(testConfig(srv.URL), "llama3.2:1b", NoopObserver{}, nil)
	resp, err := client.Chat(context.Background(), userTurn("hi"))

	require.NoError(t, err)
	assert.Equal(t, "Tell me more about your customers.", resp.Text)
	assert.Equal(t, "llama3.2:1b", resp.Model)
	assert.Zero(t, pulls.Load())
}

func TestOllamaClient_Chat_PullsMissingModelWithProgress(t *testing.T) {
	srv, pulls := ollamaStub(t, []string{"other:latest"}, "ok")

	var mu sync.Mutex
	var seen []float64
	progress := func(pct float64, _ string) {
		mu.Lock()
		seen = append(seen, pct)
		mu.Unlock()
	}
	client := NewOllamaClient(testConfig(srv.URL), "llama3.2:1b", NoopObserver{}, progress)

	_, err := client.Chat(context.Background(), userTurn("hi"))
	require.NoError(t, err)
	_, err = client.Chat(context.Background(), userTurn("again"))
	require.NoError(t, err)

	assert.Equal(t, int32(1), pulls.Load(), "model is prepared once")
	assert.Contains(t, seen, 50.0)
	assert.Equal(t, 100.0, seen[len(seen)-1])
}

func TestOllamaClient_Prepare_ConcurrentCallersShareOnePull(t *testing.T) {
	release := make(chan struct{})
	var pulls atomic.Int32
	mux := http.NewServeMux()
	mux.HandleFunc("/api/tags", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"models":[]}`))
	})
	mux.HandleFunc("/api/pull", func(w http.ResponseWriter, r *http.Request) {
		pulls.Add(1)
		<-release
		fmt.Fprintln(w, `{"status":"success"}`)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	client := NewOllamaClient(testConfig(srv.URL), "tiny", NoopObserver{}, nil)
	var wg sync.WaitGroup
	errs := make([]error, 5)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = client.Prepare(context.Background())
		}(i)
	}
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	for _, err := range errs {
		assert.NoError(t, err)
	}
	assert.Equal(t, int32(1), pulls.Load())
}

func TestOllamaClient_PullError(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/tags", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"models":[]}`))
	})
	mux.HandleFunc("/api/pull", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintln(w, `{"error":"pull model manifest: file does not exist"}`)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	client := NewOllamaClient(testConfig(srv.URL), "nope", NoopObserver{}, nil)
	_, err := client.Chat(context.Background(), userTurn("hi"))
	assert.ErrorIs(t, err, ErrModelPull)
	assert.Contains(t, err.Error(), "file does not exist")
}

func TestOllamaClient_Unavailable(t *testing.T) {
	cfg := testConfig("http://127.0.0.1:1") // nothing listening
	cfg.MaxRetries = 0

	client := NewOllamaClient(cfg, "llama3.2:1b", NoopObserver{}, nil)
	_, err := client.Chat(context.Background(), userTurn("hi"))

	assert.ErrorIs(t, err, ErrLocalUnavailable)
	assert.False(t, client.Available(context.Background()))
}

func TestOllamaClient_Timeout(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/tags", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"models":[{"name":"m:latest","model":"m:latest"}]}`))
	})
	mux.HandleFunc("/api/chat", func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	cfg := testConfig(srv.URL)
	cfg.TimeoutMs = 50
	cfg.MaxRetries = 0

	var captured CallEvent
	obs := &captureObserver{fn: func(e CallEvent) { captured = e }}
	client := NewOllamaClient(cfg, "m", obs, nil)
	_, err := client.Chat(context.Background(), userTurn("hi"))

	assert.ErrorIs(t, err, ErrTimeout)
	assert.False(t, captured.Success)
	assert.Equal(t, "TIMEOUT", captured.ErrorCode)
	assert.Equal(t, domain.ProviderLocal, captured.Provider)
}

func TestOllamaClient_RetryOnTransientError(t *testing.T) {
	var attempts atomic.Int32
	mux := http.NewServeMux()
	mux.HandleFunc("/api/tags", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"models":[{"name":"m","model":"m"}]}`))
	})
	mux.HandleFunc("/api/chat", func(w http.ResponseWriter, r *http.Request) {
		if attempts.Add(1) == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte("internal error"))
			return
		}
		json.NewEncoder(w).Encode(ollamaChatResponse{Model: "m", Message: ollamaMessage{Content: "ok"}})
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	client := NewOllamaClient(testConfig(srv.URL), "m", NoopObserver{}, nil)
	resp, err := client.Chat(context.Background(), userTurn("hi"))

	require.NoError(t, err)
	assert.Equal(t, "ok", resp.Text)
	assert.Equal(t, int32(2), attempts.Load())
}

func TestSameModel(t *testing.T) {
	assert.True(t, sameModel("llama3.2:latest", "llama3.2"))
	assert.True(t, sameModel("llama3.2:1b", "llama3.2:1b"))
	assert.False(t, sameModel("llama3.2:3b", "llama3.2:1b"))
}

func TestNewClient_Selection(t *testing.T) {
	cfg := DefaultConfig()

	c, err := NewClient(domain.AISettings{Provider: domain.ProviderLocal}, cfg, nil, nil)
	require.NoError(t, err)
	assert.IsType(t, &OllamaClient{}, c)

	_, err = NewClient(domain.AISettings{Provider: domain.ProviderGroq}, cfg, nil, nil)
	assert.ErrorIs(t, err, ErrMissingAPIKey)

	c, err = NewClient(domain.AISettings{Provider: domain.ProviderOpenAI, APIKey: "sk-test"}, cfg, nil, nil)
	require.NoError(t, err)
	rc := c.(*RemoteClient)
	assert.Equal(t, "gpt-3.5-turbo", rc.model)

	c, err = NewClient(domain.AISettings{Provider: domain.ProviderGroq, APIKey: "gsk", Model: "mixtral"}, cfg, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "mixtral", c.(*RemoteClient).model)

	_, err = NewClient(domain.AISettings{Provider: "claude"}, cfg, nil, nil)
	assert.ErrorIs(t, err, ErrUnsupportedProvider)
}

type captureObserver struct {
	fn func(CallEvent)
}

func (o *captureObserver) OnCallComplete(e CallEvent) { o.fn(e) }
