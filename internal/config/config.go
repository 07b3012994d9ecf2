// Package config defines the server configuration and how it is loaded.
package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"
)

// Config contains process configuration.
type Config struct {
	// Port is the HTTP listen port.
	Port int `koanf:"port"`

	// MongoURI is the store connection string. Despite the name it also
	// accepts sqlite: and memory: URIs; see package storage.
	MongoURI string `koanf:"mongo_uri"`

	// MongoDatabase is used when a mongodb URI names no database.
	MongoDatabase string `koanf:"mongo_database"`

	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// PublicDir and ViewsDir serve assets from disk instead of the binary.
	PublicDir string `koanf:"public_dir"`
	ViewsDir  string `koanf:"views_dir"`

	// ShutdownTimeout bounds graceful shutdown, e.g. "30s".
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

// New returns a Config holding the defaults.
func New() *Config {
	return &Config{
		Port:            3000,
		MongoDatabase:   "exercise_tracker",
		LogLevel:        "info",
		ShutdownTimeout: 30 * time.Second,
	}
}

// Validate reports the first invalid field.
func (c *Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("%w: port %d out of range 1-65535", ErrInvalidConfig, c.Port)
	}
	if strings.TrimSpace(c.MongoURI) == "" {
		return fmt.Errorf("%w: MONGO_URI must be set", ErrInvalidConfig)
	}
	if c.ShutdownTimeout <= 0 {
		return fmt.Errorf("%w: shutdown_timeout must be positive", ErrInvalidConfig)
	}
	if _, err := parseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}

// SlogLevel maps LogLevel onto slog. Unknown values fall back to info.
func (c *Config) SlogLevel() slog.Level {
	level, err := parseLevel(c.LogLevel)
	if err != nil {
		return slog.LevelInfo
	}
	return level
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if strings.TrimSpace(s) == "" {
		return slog.LevelInfo, nil
	}
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", s)
	}
	return level, nil
}
