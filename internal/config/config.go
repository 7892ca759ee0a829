// Package config loads planforge settings: built-in defaults, then the
// YAML file at ~/.planforge/config.yaml, then PLANFORGE_* environment
// variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/alexanderramin/planforge/internal/llm"
)

// Config is the complete planforge configuration.
type Config struct {
	// DBPath is the SQLite file holding every saved record.
	DBPath string `yaml:"db"`
	// QuotaBytes caps the total size of stored values. Zero or less is unlimited.
	QuotaBytes int64 `yaml:"quota_bytes"`

	Export   ExportConfig   `yaml:"export"`
	LLM      LLMConfig      `yaml:"llm"`
	Log      LogConfig      `yaml:"log"`
	Autosave AutosaveConfig `yaml:"autosave"`
	Preview  PreviewConfig  `yaml:"preview"`
}

type ExportConfig struct {
	// ChromeBin is the browser used for captures. Empty lets rod find one.
	ChromeBin string  `yaml:"chrome_bin"`
	Scale     float64 `yaml:"scale"`
	// ViewportWidth is the CSS width pages are laid out at before capture.
	ViewportWidth int `yaml:"viewport_width"`
	// Dir is where exports are written when --out is not given.
	Dir string `yaml:"dir"`
}

// LLMConfig mirrors the file-settable subset of llm.Config.
type LLMConfig struct {
	Endpoint  string `yaml:"endpoint"`
	Model     string `yaml:"model"`
	TimeoutMs int    `yaml:"timeout_ms"`
	LogCalls  bool   `yaml:"log_calls"`
}

type LogConfig struct {
	// Level enables use-case logging: debug, info, warn, error. Empty is off.
	Level string `yaml:"level"`
}

type AutosaveConfig struct {
	DelayMs int `yaml:"delay_ms"`
}

type PreviewConfig struct {
	Addr string `yaml:"addr"`
}

// Dir is the planforge home directory.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("finding home directory: %w", err)
	}
	return filepath.Join(home, ".planforge"), nil
}

// DefaultPath is the config file location.
func DefaultPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// Default returns the built-in configuration rooted at dir.
func Default(dir string) *Config {
	l := llm.DefaultConfig()
	return &Config{
		DBPath:     filepath.Join(dir, "planforge.db"),
		QuotaBytes: 5 << 20,
		Export: ExportConfig{
			Scale: 2,
			Dir:   ".",
		},
		LLM: LLMConfig{
			Endpoint:  l.Endpoint,
			Model:     l.LocalModel,
			TimeoutMs: l.TimeoutMs,
		},
		Autosave: AutosaveConfig{DelayMs: 500},
		Preview:  PreviewConfig{Addr: "127.0.0.1:8765"},
	}
}

// Load builds the configuration. A missing file is not an error; a file
// that exists but does not parse is.
func Load(path string) (*Config, error) {
	dir := filepath.Dir(path)
	cfg := Default(dir)

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("reading config file: %w", err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file %s: %w", path, err)
		}
	}

	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnv overrides cfg with PLANFORGE_* variables. Malformed numbers are
// ignored.
func (c *Config) applyEnv() {
	if v := os.Getenv("PLANFORGE_DB"); v != "" {
		c.DBPath = v
	}
	if v := os.Getenv("PLANFORGE_QUOTA_BYTES"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.QuotaBytes = n
		}
	}
	if v := os.Getenv("PLANFORGE_CHROME_BIN"); v != "" {
		c.Export.ChromeBin = v
	}
	if v := os.Getenv("PLANFORGE_EXPORT_SCALE"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f > 0 {
			c.Export.Scale = f
		}
	}
	if v := os.Getenv("PLANFORGE_AUTOSAVE_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.Autosave.DelayMs = n
		}
	}
	if v := os.Getenv("PLANFORGE_LOG"); v != "" {
		c.Log.Level = v
	}

	l := c.LLMSettings()
	llm.ApplyEnv(&l)
	c.LLM.Endpoint, c.LLM.Model, c.LLM.TimeoutMs, c.LLM.LogCalls = l.Endpoint, l.LocalModel, l.TimeoutMs, l.LogCalls
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.DBPath == "" {
		return fmt.Errorf("db path is required")
	}
	if c.Export.Scale <= 0 {
		return fmt.Errorf("export.scale must be positive, got %v", c.Export.Scale)
	}
	switch c.Log.Level {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level must be debug, info, warn or error, got %q", c.Log.Level)
	}
	return nil
}

// LLMSettings returns the assistant backend configuration.
func (c *Config) LLMSettings() llm.Config {
	l := llm.DefaultConfig()
	if c.LLM.Endpoint != "" {
		l.Endpoint = c.LLM.Endpoint
	}
	if c.LLM.Model != "" {
		l.LocalModel = c.LLM.Model
	}
	if c.LLM.TimeoutMs > 0 {
		l.TimeoutMs = c.LLM.TimeoutMs
	}
	l.LogCalls = c.LLM.LogCalls
	// retries are environment-only
	llm.ApplyEnv(&l)
	return l
}

// AutosaveDelay is the debounce interval for auto-saving editors.
func (c *Config) AutosaveDelay() time.Duration {
	return time.Duration(c.Autosave.DelayMs) * time.Millisecond
}

// Save writes the configuration as YAML, creating the directory if needed.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
