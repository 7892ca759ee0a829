package domain

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Provider selects the assistant backend.
type Provider string

const (
	ProviderLocal  Provider = "local"
	ProviderGroq   Provider = "groq"
	ProviderOpenAI Provider = "openai"
)

// ParseProvider accepts the known providers and the legacy "webllm" name,
// which maps to local. Empty means local.
func ParseProvider(s string) (Provider, error) {
	switch p := Provider(strings.ToLower(strings.TrimSpace(s))); p {
	case "", "webllm":
		return ProviderLocal, nil
	case ProviderLocal, ProviderGroq, ProviderOpenAI:
		return p, nil
	}
	return "", &ValidationError{Field: "provider", Message: fmt.Sprintf("unknown provider %q", s)}
}

// Remote reports whether the provider needs an API key.
func (p Provider) Remote() bool {
	return p == ProviderGroq || p == ProviderOpenAI
}

type AISettings struct {
	Provider Provider `json:"provider"`
	APIKey   string   `json:"apiKey,omitempty"`
	Model    string   `json:"model,omitempty"`
}

func DefaultAISettings() AISettings {
	return AISettings{Provider: ProviderLocal}
}

// UnmarshalJSON normalises the provider so records written by older
// versions load cleanly. Unknown providers are kept verbatim and rejected
// at send time.
func (s *AISettings) UnmarshalJSON(b []byte) error {
	type raw AISettings
	var r raw
	if err := json.Unmarshal(b, &r); err != nil {
		return err
	}
	*s = AISettings(r)
	if p, err := ParseProvider(string(s.Provider)); err == nil {
		s.Provider = p
	}
	return nil
}

// MaskedKey shows only the last four characters of the API key.
func (s AISettings) MaskedKey() string {
	if len(s.APIKey) <= 4 {
		return strings.Repeat("*", len(s.APIKey))
	}
	return strings.Repeat("*", len(s.APIKey)-4) + s.APIKey[len(s.APIKey)-4:]
}

type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

func ParseTheme(s string) (Theme, error) {
	switch t := Theme(strings.ToLower(strings.TrimSpace(s))); t {
	case ThemeLight, ThemeDark:
		return t, nil
	case "":
		return ThemeLight, nil
	}
	return "", &ValidationError{Field: "theme", Message: fmt.Sprintf("must be light or dark, got %q", s)}
}

// Background is the export background colour for the theme.
func (t Theme) Background() string {
	if t == ThemeDark {
		return "#0a0a0a"
	}
	return "#ffffff"
}
