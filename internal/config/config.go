package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config defines server configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Transport TransportConfig `yaml:"transport"`
	DB        DBConfig        `yaml:"db"`
	Log       LogConfig       `yaml:"log"`
	Seed      SeedConfig      `yaml:"seed"`
	Sessions  SessionsConfig  `yaml:"sessions"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// Transport modes.
const (
	TransportStdio = "stdio"
	TransportHTTP  = "http"
)

// TransportConfig selects how MCP clients connect: "stdio" or "http".
type TransportConfig struct {
	Mode string `yaml:"mode"`
}

type DBConfig struct {
	Path string `yaml:"path"`
}

type LogConfig struct {
	Level string `yaml:"level"`
	Path  string `yaml:"path"`
}

// SeedConfig points at the catalog seed file. An empty path uses the
// embedded catalog.
type SeedConfig struct {
	Path string `yaml:"path"`
}

// SessionsConfig controls how long idle catalog views are kept.
type SessionsConfig struct {
	IdleTimeout   time.Duration `yaml:"idle_timeout"`
	SweepInterval time.Duration `yaml:"sweep_interval"`
}

// Load reads configuration from an optional YAML file and environment variables.
func Load() (Config, error) {
	cfg := Config{
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8080,
		},
		Transport: TransportConfig{
			Mode: TransportHTTP,
		},
		DB: DBConfig{
			Path: "memeverse.db",
		},
		Log: LogConfig{
			Level: "info",
		},
		Sessions: SessionsConfig{
			IdleTimeout:   30 * time.Minute,
			SweepInterval: 5 * time.Minute,
		},
	}

	if path := os.Getenv("MEMEVERSE_CONFIG_PATH"); path != "" {
		if err := loadFromFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	if host := os.Getenv("MEMEVERSE_SERVER_HOST"); host != "" {
		cfg.Server.Host = host
	}
	if portStr := os.Getenv("MEMEVERSE_SERVER_PORT"); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return Config{}, fmt.Errorf("invalid MEMEVERSE_SERVER_PORT: %w", err)
		}
		cfg.Server.Port = port
	}
	if mode := os.Getenv("MEMEVERSE_TRANSPORT"); mode != "" {
		cfg.Transport.Mode = mode
	}
	if dbPath := os.Getenv("MEMEVERSE_DB_PATH"); dbPath != "" {
		cfg.DB.Path = dbPath
	}
	if level := os.Getenv("MEMEVERSE_LOG_LEVEL"); level != "" {
		cfg.Log.Level = level
	}
	if logPath := os.Getenv("MEMEVERSE_LOG_PATH"); logPath != "" {
		cfg.Log.Path = logPath
	}
	if seedPath := os.Getenv("MEMEVERSE_SEED_PATH"); seedPath != "" {
		cfg.Seed.Path = seedPath
	}

	if v := os.Getenv("MEMEVERSE_SESSION_IDLE_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid MEMEVERSE_SESSION_IDLE_TIMEOUT: %w", err)
		}
		cfg.Sessions.IdleTimeout = d
	}
	if v := os.Getenv("MEMEVERSE_SESSION_SWEEP_INTERVAL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid MEMEVERSE_SESSION_SWEEP_INTERVAL: %w", err)
		}
		cfg.Sessions.SweepInterval = d
	}

	if cfg.Sessions.IdleTimeout <= 0 || cfg.Sessions.SweepInterval <= 0 {
		return Config{}, fmt.Errorf("session idle timeout and sweep interval must be positive")
	}
	if cfg.Transport.Mode != TransportStdio && cfg.Transport.Mode != TransportHTTP {
		return Config{}, fmt.Errorf("invalid transport mode %q (valid: stdio, http)", cfg.Transport.Mode)
	}

	return cfg, nil
}

func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}
