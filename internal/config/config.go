// Package config loads and stores CLI configuration in the XDG config dir.
// Only non-secret settings are kept here; the API key and database DSN go to
// the OS keychain (see internal/keychain) or come from environment variables.
package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"time"

	pgherrors "github.com/JelteF/pg-human/internal/errors"
	"github.com/JelteF/pg-human/internal/xdg"
)

// Provider names accepted in the "provider" setting.
const (
	// ProviderOpenAI is the default provider (api.openai.com).
	ProviderOpenAI = "openai"
	// ProviderCustom is any OpenAI-compatible endpoint; requires base_url.
	ProviderCustom = "custom"
)

const (
	defaultModel          = "gpt-4o-mini"
	defaultTimeoutSeconds = 20
)

// Config holds non-sensitive CLI settings.
type Config struct {
	// Provider selects the completion service: "openai" or "custom".
	Provider string `json:"provider"`
	// BaseURL routes requests to an alternate OpenAI-compatible endpoint.
	// Required when Provider is "custom", ignored otherwise.
	BaseURL string `json:"base_url,omitempty"`
	// Model is the completion model name sent with every request.
	Model string `json:"model"`
	// RequestTimeoutSeconds bounds a single completion call. The API
	// sometimes gets stuck; give up rather than block the invocation forever.
	RequestTimeoutSeconds int    `json:"request_timeout_seconds"`
	LogLevel              string `json:"log_level"`
}

// RequestTimeout returns the completion deadline as a duration.
func (c Config) RequestTimeout() time.Duration {
	s := c.RequestTimeoutSeconds
	if s <= 0 {
		s = defaultTimeoutSeconds
	}
	return time.Duration(s) * time.Second
}

// Validate checks that the configuration is internally consistent.
func (c Config) Validate() error {
	switch c.Provider {
	case ProviderOpenAI, "":
	case ProviderCustom:
		if c.BaseURL == "" {
			return pgherrors.New(pgherrors.ConfigMissing, "base_url is required when provider is \"custom\"")
		}
	default:
		return pgherrors.New(pgherrors.ConfigMissing, "unknown provider "+c.Provider+" (supported: openai, custom)")
	}
	return nil
}

// Default returns the configuration used when no config file exists.
func Default() Config {
	return Config{
		Provider:              ProviderOpenAI,
		Model:                 defaultModel,
		RequestTimeoutSeconds: defaultTimeoutSeconds,
		LogLevel:              "info",
	}
}

// path returns the path to the config file.
func path() (string, error) {
	dir, err := xdg.ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// Load reads configuration; missing file returns defaults.
func Load() (Config, error) {
	p, err := path()
	if err != nil {
		return Config{}, err
	}
	data, err := os.ReadFile(p)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return Config{}, err
	}
	c := Default()
	if err := json.Unmarshal(data, &c); err != nil {
		return Config{}, err
	}
	if c.Model == "" {
		c.Model = defaultModel
	}
	return c, nil
}

// Save writes configuration with 0600 permissions.
func Save(c Config) error {
	p, err := path()
	if err != nil {
		return err
	}
	b, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(p, b, 0o600)
}
