package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config is the complete journal configuration.
type Config struct {
	Store  StoreConfig  `json:"store" yaml:"store"`
	Server ServerConfig `json:"server" yaml:"server"`
	Import ImportConfig `json:"import" yaml:"import"`
	Log    LogConfig    `json:"log" yaml:"log"`
}

// StoreConfig selects the persistence backing.
type StoreConfig struct {
	Type    string `json:"type" yaml:"type"` // "sqlite", "csv" or "memory"
	DBPath  string `json:"db_path,omitempty" yaml:"db_path,omitempty"`
	CSVPath string `json:"csv_path,omitempty" yaml:"csv_path,omitempty"`
}

// ServerConfig contains HTTP API parameters.
type ServerConfig struct {
	Port int `json:"port" yaml:"port"`
}

// ImportConfig contains ingestion policy.
type ImportConfig struct {
	// Dedupe skips rows whose ticker/date/entry/exit/quantity/side match an
	// existing record. Off by default: each import is a new fact.
	Dedupe bool `json:"dedupe" yaml:"dedupe"`
}

// LogConfig contains logging parameters.
type LogConfig struct {
	Level string `json:"level" yaml:"level"`
}

// LoadFromFile loads configuration from a file (JSON or YAML based on content).
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := Default()

	// Try YAML first, fall back to JSON
	err = yaml.Unmarshal(data, cfg)
	if err != nil {
		err = json.Unmarshal(data, cfg)
		if err != nil {
			return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// SaveToFile saves configuration to a file (JSON or YAML based on extension).
func (c *Config) SaveToFile(path string) error {
	var data []byte
	var err error

	if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	switch c.Store.Type {
	case "sqlite":
		if c.Store.DBPath == "" {
			return fmt.Errorf("store.db_path required for sqlite type")
		}
	case "csv":
		if c.Store.CSVPath == "" {
			return fmt.Errorf("store.csv_path required for csv type")
		}
	case "memory":
	default:
		return fmt.Errorf("store.type must be 'sqlite', 'csv' or 'memory'")
	}

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535")
	}

	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level must be debug, info, warn or error")
	}

	return nil
}

// Default returns a configuration with sensible defaults.
func Default() *Config {
	return &Config{
		Store: StoreConfig{
			Type:   "sqlite",
			DBPath: "./journal.sqlite",
		},
		Server: ServerConfig{
			Port: 8087,
		},
		Import: ImportConfig{
			Dedupe: false,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}
