// Package file loads taxsearch configuration from a TOML file,
// applying defaults and validating every option at startup.
package file

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/revenue-labs/taxsearch/internal/core/domain"
)

// apiKeyEnv lets deployments keep the provider key out of the config file.
const apiKeyEnv = "TAXSEARCH_OPENAI_API_KEY"

// fileConfig mirrors the TOML layout of ~/.taxsearch/config.toml.
type fileConfig struct {
	DataDir         string  `toml:"data_dir"`
	DefaultTopK     int     `toml:"default_top_k"`
	Alpha           float64 `toml:"alpha"`
	MinScore        float64 `toml:"min_score"`
	MaxContextChars int     `toml:"max_context_chars"`

	Embedding struct {
		Provider       string `toml:"provider"`
		Model          string `toml:"model"`
		BaseURL        string `toml:"base_url"`
		APIKey         string `toml:"api_key"`
		Dimensions     int    `toml:"dimensions"`
		TimeoutSeconds int    `toml:"timeout_seconds"`
	} `toml:"embedding"`
}

// DefaultPath returns the default config file location.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, ".taxsearch", "config.toml"), nil
}

// Load reads settings from path. A missing file yields the defaults;
// a malformed file or an out-of-range value is a configuration error.
// If path is empty, DefaultPath is used.
func Load(path string) (domain.Settings, error) {
	settings := domain.DefaultSettings()

	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return settings, fmt.Errorf("%w: %w", domain.ErrConfiguration, err)
		}
		path = p
	}

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		// No config file: run on defaults.
	case err != nil:
		return settings, fmt.Errorf("%w: reading %s: %w", domain.ErrConfiguration, path, err)
	default:
		var cfg fileConfig
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return settings, fmt.Errorf("%w: parsing %s: %w", domain.ErrConfiguration, path, err)
		}
		apply(&settings, cfg)
	}

	if key := os.Getenv(apiKeyEnv); key != "" {
		settings.Embedding.APIKey = key
	}

	if err := settings.Validate(); err != nil {
		return settings, err
	}
	return settings, nil
}

// apply copies set (non-zero) file values over the defaults.
func apply(settings *domain.Settings, cfg fileConfig) {
	if cfg.DataDir != "" {
		settings.DataDir = cfg.DataDir
	}
	if cfg.DefaultTopK != 0 {
		settings.DefaultTopK = cfg.DefaultTopK
	}
	if cfg.Alpha != 0 {
		settings.Alpha = cfg.Alpha
	}
	if cfg.MinScore != 0 {
		settings.MinScore = cfg.MinScore
	}
	if cfg.MaxContextChars != 0 {
		settings.MaxContextChars = cfg.MaxContextChars
	}

	if cfg.Embedding.Provider != "" {
		settings.Embedding.Provider = domain.EmbeddingProvider(cfg.Embedding.Provider)
	}
	if cfg.Embedding.Model != "" {
		settings.Embedding.Model = cfg.Embedding.Model
	}
	if cfg.Embedding.BaseURL != "" {
		settings.Embedding.BaseURL = cfg.Embedding.BaseURL
	}
	if cfg.Embedding.APIKey != "" {
		settings.Embedding.APIKey = cfg.Embedding.APIKey
	}
	if cfg.Embedding.Dimensions != 0 {
		settings.Embedding.Dimensions = cfg.Embedding.Dimensions
	}
	if cfg.Embedding.TimeoutSeconds != 0 {
		settings.Embedding.Timeout = time.Duration(cfg.Embedding.TimeoutSeconds) * time.Second
	}
}

// Write persists settings to path in TOML form, creating the parent
// directory. Used to scaffold an initial config file.
func Write(path string, settings domain.Settings) error {
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return err
		}
		path = p
	}

	var cfg fileConfig
	cfg.DataDir = settings.DataDir
	cfg.DefaultTopK = settings.DefaultTopK
	cfg.Alpha = settings.Alpha
	cfg.MinScore = settings.MinScore
	cfg.MaxContextChars = settings.MaxContextChars
	cfg.Embedding.Provider = string(settings.Embedding.Provider)
	cfg.Embedding.Model = settings.Embedding.Model
	cfg.Embedding.BaseURL = settings.Embedding.BaseURL
	cfg.Embedding.Dimensions = settings.Embedding.Dimensions
	cfg.Embedding.TimeoutSeconds = int(settings.Embedding.Timeout / time.Second)
	// The API key is deliberately not written; use the env variable.

	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
