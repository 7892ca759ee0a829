package llm

import (
	"os"
	"strconv"
)

// Default sampling parameters sent to every backend.
const (
	DefaultTemperature = 0.7
	DefaultMaxTokens   = 256
)

// Config holds all configuration for the assistant backends.
type Config struct {
	LogCalls bool

	// Endpoint is the local Ollama server.
	Endpoint   string
	LocalModel string

	GroqBaseURL   string
	GroqModel     string
	OpenAIBaseURL string
	OpenAIModel   string

	TimeoutMs   int
	MaxRetries  int
	Temperature float64
	MaxTokens   int
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		LogCalls:      false,
		Endpoint:      "http://localhost:11434",
		LocalModel:    "llama3.2:1b",
		GroqBaseURL:   "https://api.groq.com/openai/v1",
		GroqModel:     "llama-3.1-8b-instant",
		OpenAIBaseURL: "https://api.openai.com/v1",
		OpenAIModel:   "gpt-3.5-turbo",
		TimeoutMs:     30000,
		MaxRetries:    1,
		Temperature:   DefaultTemperature,
		MaxTokens:     DefaultMaxTokens,
	}
}

// ApplyEnv overrides cfg with any PLANFORGE_LLM_* variables that are set.
// Malformed numbers are ignored.
func ApplyEnv(cfg *Config) {
	if v := os.Getenv("PLANFORGE_LLM_LOG_CALLS"); v != "" {
		cfg.LogCalls, _ = strconv.ParseBool(v)
	}
	if v := os.Getenv("PLANFORGE_LLM_ENDPOINT"); v != "" {
		cfg.Endpoint = v
	}
	if v := os.Getenv("PLANFORGE_LLM_MODEL"); v != "" {
		cfg.LocalModel = v
	}
	if v := os.Getenv("PLANFORGE_LLM_TIMEOUT_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.TimeoutMs = n
		}
	}
	if v := os.Getenv("PLANFORGE_LLM_MAX_RETRIES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.MaxRetries = n
		}
	}
}
