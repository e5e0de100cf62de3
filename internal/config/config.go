package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config defines server configuration.
type Config struct {
	Server ServerConfig `yaml:"server"`
	Store  StoreConfig  `yaml:"store"`
	Log    LogConfig    `yaml:"log"`
	MCP    MCPConfig    `yaml:"mcp"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// StoreConfig selects the project store backing. Backend is one of
// "sqlite", "memory" or "redis".
type StoreConfig struct {
	Backend   string `yaml:"backend"`
	Path      string `yaml:"path"`
	RedisAddr string `yaml:"redis_addr"`
	RedisDB   int    `yaml:"redis_db"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

// MCPConfig controls the assistant tool surface mounted at /mcp.
type MCPConfig struct {
	Enabled bool `yaml:"enabled"`
}

// Load reads configuration from an optional .env file, an optional YAML
// file and environment variables, in that order of precedence (env wins).
func Load() (Config, error) {
	// A missing .env file is fine; a present but unreadable or malformed
	// one is not.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return Config{}, fmt.Errorf("loading .env: %w", err)
	}

	cfg := Config{
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8080,
		},
		Store: StoreConfig{
			Backend:   "sqlite",
			Path:      "amptrack.db",
			RedisAddr: "localhost:6379",
		},
		Log: LogConfig{
			Level: "info",
		},
		MCP: MCPConfig{
			Enabled: true,
		},
	}

	if path := os.Getenv("AMPTRACK_CONFIG_PATH"); path != "" {
		if err := loadFromFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	if host := os.Getenv("AMPTRACK_SERVER_HOST"); host != "" {
		cfg.Server.Host = host
	}
	if portStr := os.Getenv("AMPTRACK_SERVER_PORT"); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return Config{}, fmt.Errorf("invalid AMPTRACK_SERVER_PORT: %w", err)
		}
		cfg.Server.Port = port
	}
	if backend := os.Getenv("AMPTRACK_STORE_BACKEND"); backend != "" {
		cfg.Store.Backend = backend
	}
	if dbPath := os.Getenv("AMPTRACK_DB_PATH"); dbPath != "" {
		cfg.Store.Path = dbPath
	}
	if addr := os.Getenv("AMPTRACK_REDIS_ADDR"); addr != "" {
		cfg.Store.RedisAddr = addr
	}
	if dbStr := os.Getenv("AMPTRACK_REDIS_DB"); dbStr != "" {
		db, err := strconv.Atoi(dbStr)
		if err != nil {
			return Config{}, fmt.Errorf("invalid AMPTRACK_REDIS_DB: %w", err)
		}
		cfg.Store.RedisDB = db
	}
	if level := os.Getenv("AMPTRACK_LOG_LEVEL"); level != "" {
		cfg.Log.Level = level
	}
	if mcpStr := os.Getenv("AMPTRACK_MCP_ENABLED"); mcpStr != "" {
		enabled, err := strconv.ParseBool(mcpStr)
		if err != nil {
			return Config{}, fmt.Errorf("invalid AMPTRACK_MCP_ENABLED: %w", err)
		}
		cfg.MCP.Enabled = enabled
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (c Config) validate() error {
	switch c.Store.Backend {
	case "sqlite", "memory", "redis":
	default:
		return fmt.Errorf("unknown store backend %q", c.Store.Backend)
	}
	return nil
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
