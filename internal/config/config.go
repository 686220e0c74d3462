package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// FileName is the config file written at the ledger directory root.
const FileName = "tallybook.yaml"

// Config represents the top-level tallybook.yaml configuration.
type Config struct {
	Ledger LedgerConfig `yaml:"ledger"`
	Git    GitConfig    `yaml:"git"`
}

// LedgerConfig controls display of monetary values.
type LedgerConfig struct {
	Currency  string `yaml:"currency"`
	Precision int    `yaml:"precision"`
}

// GitConfig controls git integration for the ledger directory.
type GitConfig struct {
	AutoCommit  bool   `yaml:"auto_commit"`
	AuthorName  string `yaml:"author_name"`
	AuthorEmail string `yaml:"author_email"`
}

// Load reads a tallybook.yaml file from disk.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with sensible defaults for a new ledger.
func Default() *Config {
	return &Config{
		Ledger: LedgerConfig{
			Currency:  "USD",
			Precision: 2,
		},
		Git: GitConfig{
			AutoCommit:  false,
			AuthorName:  "Tallybook",
			AuthorEmail: "ledger@tallybook.dev",
		},
	}
}
