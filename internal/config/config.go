package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

const (
	defaultPort                   = 8080
	defaultMaxSessions            = 1000
	defaultIdleTimeoutMinutes     = 60
	defaultCleanupIntervalSeconds = 300
	defaultGameCreationPerMinute  = 10
	defaultMovesPerMinute         = 120
	defaultWebSocketPerMinute     = 20
)

type Config struct {
	Environment string `json:"environment"`
	Server      struct {
		Host string `json:"host"`
		Port int    `json:"port"`
	} `json:"server"`
	Frontend struct {
		URL string `json:"url"`
	} `json:"frontend"`
	Sessions struct {
		MaxSessions            int `json:"maxSessions"`
		IdleTimeoutMinutes     int `json:"idleTimeoutMinutes"`
		CleanupIntervalSeconds int `json:"cleanupIntervalSeconds"`
	} `json:"sessions"`
	RateLimit struct {
		GameCreationPerMinute int `json:"gameCreationPerMinute"`
		MovesPerMinute        int `json:"movesPerMinute"`
		WebSocketPerMinute    int `json:"webSocketPerMinute"`
	} `json:"rateLimit"`
}

func Load(env string) (*Config, error) {
	configDir := os.Getenv("CONFIG_DIR")
	if configDir == "" {
		// Default to configs directory relative to working directory
		configDir = "configs"
	}

	filename := fmt.Sprintf("config.%s.json", env)
	configPath := filepath.Join(configDir, filename)

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", configPath, err)
	}

	return parse(env, data)
}

func parse(env string, data []byte) (*Config, error) {
	// Replace environment variables in the config
	configStr := expandEnvVars(string(data))

	var cfg Config
	if err := json.Unmarshal([]byte(configStr), &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.Environment = env
	cfg.applyDefaults()
	return &cfg, nil
}

// applyDefaults fills numeric settings left at zero or below.
func (c *Config) applyDefaults() {
	setDefault(&c.Server.Port, defaultPort)
	setDefault(&c.Sessions.MaxSessions, defaultMaxSessions)
	setDefault(&c.Sessions.IdleTimeoutMinutes, defaultIdleTimeoutMinutes)
	setDefault(&c.Sessions.CleanupIntervalSeconds, defaultCleanupIntervalSeconds)
	setDefault(&c.RateLimit.GameCreationPerMinute, defaultGameCreationPerMinute)
	setDefault(&c.RateLimit.MovesPerMinute, defaultMovesPerMinute)
	setDefault(&c.RateLimit.WebSocketPerMinute, defaultWebSocketPerMinute)
}

func setDefault(v *int, def int) {
	if *v <= 0 {
		*v = def
	}
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

func (c *Config) IdleTimeout() time.Duration {
	return time.Duration(c.Sessions.IdleTimeoutMinutes) * time.Minute
}

func (c *Config) CleanupInterval() time.Duration {
	return time.Duration(c.Sessions.CleanupIntervalSeconds) * time.Second
}

// expandEnvVars replaces ${VAR_NAME} with environment variable values
func expandEnvVars(s string) string {
	return os.Expand(s, func(key string) string {
		return os.Getenv(key)
	})
}

func GetEnv() string {
	env := os.Getenv("CHESS_ENV")
	if env == "" {
		return "dev"
	}
	return env
}
