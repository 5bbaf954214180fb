package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Load reads and parses the config file at path.
// If path is empty, ConfigPath() is used. A missing file yields defaults; a
// corrupt file warns and yields defaults. Environment variables override the
// stored API keys so secrets never have to live in the file.
func Load(path string) (*Config, error) {
	if path == "" {
		path = ConfigPath()
	}

	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		// First run; defaults apply.
	case err != nil:
		return nil, fmt.Errorf("read config %s: %w", path, err)
	default:
		if err := json.Unmarshal(data, &cfg); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to parse config %s: %v\nUsing default configuration.\n", path, err)
			cfg = DefaultConfig()
		}
	}

	applyEnv(&cfg)
	return &cfg, nil
}

// Save writes cfg to path as indented JSON, mode 0600 (the file can hold
// API keys).
func Save(cfg *Config, path string) error {
	if path == "" {
		path = ConfigPath()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write config %s: %w", path, err)
	}
	return nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("GEMINI_API_KEY"); v != "" {
		cfg.Keys.GeminiAPIKey = v
	}
	if v := os.Getenv("WEATHER_API_KEY"); v != "" {
		cfg.Keys.WeatherAPIKey = v
	}
	if v := os.Getenv("NEWS_API_KEY"); v != "" {
		cfg.Keys.NewsAPIKey = v
	}
}

// Validate checks startup-fatal conditions. Only genuinely unrecoverable
// problems belong here; everything else is handled per-request.
func (c *Config) Validate() error {
	if c.Keys.GeminiAPIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY is not configured; set the environment variable or edit %s", ConfigPath())
	}
	return nil
}
