// Package config loads service settings from an optional YAML file and the
// environment.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultMaxFileSize is the default maximum upload size (10MB)
	DefaultMaxFileSize = 10 * 1024 * 1024

	// DefaultMaxFiles caps the number of documents in one merge
	DefaultMaxFiles = 20

	// DefaultPort is the default server port
	DefaultPort = "8080"

	// DefaultResultTTL is how long multi-file results stay retrievable
	DefaultResultTTL = 10 * time.Minute

	// DefaultResultStoreBytes bounds the memory held by stored results (256MB)
	DefaultResultStoreBytes = 256 * 1024 * 1024

	// DefaultMaxOutputPages caps the pages written by one operation
	DefaultMaxOutputPages = 2000
)

// Config holds application configuration.
type Config struct {
	Port             string        `yaml:"port"`
	MaxFileSize      int64         `yaml:"max_file_size"`
	MaxFiles         int           `yaml:"max_files"`
	MaxOutputPages   int           `yaml:"max_output_pages"`
	ResultTTL        time.Duration `yaml:"result_ttl"`
	ResultStoreBytes int64         `yaml:"result_store_bytes"`
	LogLevel         string        `yaml:"log_level"`
	MCPTransport     string        `yaml:"mcp_transport"`
}

// Load reads path (if non-empty), applies environment overrides, then defaults.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	cfg.applyEnv()
	cfg.defaults()
	return cfg, nil
}

func (c *Config) applyEnv() {
	c.Port = getEnv("PORT", c.Port)
	c.MaxFileSize = getEnvInt64("MAX_FILE_SIZE", c.MaxFileSize)
	c.MaxFiles = int(getEnvInt64("MAX_FILES", int64(c.MaxFiles)))
	c.MaxOutputPages = int(getEnvInt64("MAX_OUTPUT_PAGES", int64(c.MaxOutputPages)))
	c.ResultTTL = getEnvDuration("RESULT_TTL", c.ResultTTL)
	c.ResultStoreBytes = getEnvInt64("RESULT_STORE_BYTES", c.ResultStoreBytes)
	c.LogLevel = getEnv("LOG_LEVEL", c.LogLevel)
	c.MCPTransport = getEnv("MCP_TRANSPORT", c.MCPTransport)
}

func (c *Config) defaults() {
	if c.Port == "" {
		c.Port = DefaultPort
	}
	if c.MaxFileSize <= 0 {
		c.MaxFileSize = DefaultMaxFileSize
	}
	if c.MaxFiles <= 0 {
		c.MaxFiles = DefaultMaxFiles
	}
	if c.MaxOutputPages <= 0 {
		c.MaxOutputPages = DefaultMaxOutputPages
	}
	if c.ResultTTL <= 0 {
		c.ResultTTL = DefaultResultTTL
	}
	if c.ResultStoreBytes <= 0 {
		c.ResultStoreBytes = DefaultResultStoreBytes
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
}

// SlogLevel maps LogLevel to a slog level, defaulting to info.
func (c *Config) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
