package llm

import "errors"

var (
	// ErrLocalUnavailable indicates the local Ollama server is unreachable.
	ErrLocalUnavailable = errors.New("local model server unavailable")

	// ErrTimeout indicates the request exceeded the configured timeout.
	ErrTimeout = errors.New("llm request timed out")

	// ErrMissingAPIKey indicates a remote provider was selected without a key.
	ErrMissingAPIKey = errors.New("API key required")

	// ErrUnsupportedProvider indicates the saved provider is not known.
	ErrUnsupportedProvider = errors.New("unsupported provider")

	// ErrProviderAPI wraps an error response from a remote chat API.
	ErrProviderAPI = errors.New("API error")

	// ErrModelPull indicates the local model could not be downloaded.
	ErrModelPull = errors.New("pulling local model failed")

	// ErrRetryExhausted indicates all retry attempts have been exhausted.
	ErrRetryExhausted = errors.New("llm retry attempts exhausted")
)
