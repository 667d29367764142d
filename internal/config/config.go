package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all client configuration
type Config struct {
	Server ServerConfig `yaml:"server"`
	Game   GameConfig   `yaml:"game"`
	Log    LogConfig    `yaml:"log"`
}

// ServerConfig holds game server connection settings
type ServerConfig struct {
	URL              string        `yaml:"url"`
	Token            string        `yaml:"token"` // access token; TOKEN env var overrides
	HandshakeTimeout time.Duration `yaml:"handshake_timeout"`
	PingInterval     time.Duration `yaml:"ping_interval"` // app-level ping; negative disables
}

// GameConfig holds play settings
type GameConfig struct {
	AutoPlay bool `yaml:"auto_play"` // answer every turn with the first legal move
}

// LogConfig holds logging settings
type LogConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text, json
}

// Load reads configuration from a YAML file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Set defaults if not provided
	if cfg.Server.URL == "" {
		cfg.Server.URL = "ws://localhost:8080/ws"
	}
	if cfg.Server.HandshakeTimeout == 0 {
		cfg.Server.HandshakeTimeout = 10 * time.Second
	}
	if cfg.Server.PingInterval == 0 {
		cfg.Server.PingInterval = 30 * time.Second
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "text"
	}

	if cfg.Log.Format != "text" && cfg.Log.Format != "json" {
		return nil, fmt.Errorf("unknown log format %q", cfg.Log.Format)
	}

	return &cfg, nil
}
