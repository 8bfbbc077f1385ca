package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/caarlos0/env/v10"
	"gopkg.in/yaml.v3"
)

// Config is the complete application configuration.
type Config struct {
	API     APIConfig      `json:"api" yaml:"api"`
	Journal JournalConfig  `json:"journal" yaml:"journal"`
	Sync    SyncConfig     `json:"sync" yaml:"sync"`
	Wallets []WalletConfig `json:"wallets" yaml:"wallets"`
	Log     LogConfig      `json:"log" yaml:"log"`
}

// APIConfig points at the exchange HTTP API.
type APIConfig struct {
	BaseURL string `json:"base_url" yaml:"base_url" env:"TRADELOG_API_URL"`
	Token   string `json:"token" yaml:"token" env:"TRADELOG_API_TOKEN"`
}

// JournalConfig locates the local ledger.
type JournalConfig struct {
	DBPath string `json:"db_path" yaml:"db_path" env:"TRADELOG_DB_PATH"`
}

// SyncConfig tunes reconciliation.
type SyncConfig struct {
	// CutoffDays controls how far back reconstructed closed trades are
	// re-imported; older fills still feed net-size tracking.
	CutoffDays int     `json:"cutoff_days" yaml:"cutoff_days" env:"TRADELOG_CUTOFF_DAYS"`
	Epsilon    float64 `json:"epsilon" yaml:"epsilon" env:"TRADELOG_EPSILON"`
}

// WalletConfig names one exchange wallet to reconcile.
type WalletConfig struct {
	ID   string `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
}

type LogConfig struct {
	Level string `json:"level" yaml:"level" env:"TRADELOG_LOG_LEVEL"`
}

// LoadFromFile loads configuration from a YAML or JSON file, then
// applies environment overrides.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := Default()

	// Try YAML first, fall back to JSON
	if err := yaml.Unmarshal(data, cfg); err != nil {
		if jsonErr := json.Unmarshal(data, cfg); jsonErr != nil {
			return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", err)
		}
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("apply env overrides: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// Validate checks if the configuration is usable.
func (c *Config) Validate() error {
	if c.API.BaseURL == "" {
		return fmt.Errorf("api.base_url is required")
	}
	if !strings.HasPrefix(c.API.BaseURL, "http://") && !strings.HasPrefix(c.API.BaseURL, "https://") {
		return fmt.Errorf("api.base_url must be an http(s) URL")
	}
	if c.Journal.DBPath == "" {
		return fmt.Errorf("journal.db_path is required")
	}
	if c.Sync.CutoffDays <= 0 {
		return fmt.Errorf("sync.cutoff_days must be positive")
	}
	if c.Sync.Epsilon <= 0 {
		return fmt.Errorf("sync.epsilon must be positive")
	}
	seen := map[string]bool{}
	for _, w := range c.Wallets {
		if w.ID == "" {
			return fmt.Errorf("wallet id is required")
		}
		if seen[w.ID] {
			return fmt.Errorf("duplicate wallet id %q", w.ID)
		}
		seen[w.ID] = true
	}
	return nil
}

// Default returns a configuration with sensible defaults.
func Default() *Config {
	return &Config{
		Journal: JournalConfig{
			DBPath: "./tradelog.sqlite",
		},
		Sync: SyncConfig{
			CutoffDays: 30,
			Epsilon:    1e-6,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}
