// Package logger configures the process wide slog logger
package logger

import (
	"log/slog"
	"strings"

	"github.com/KirkDiggler/rpg-progression/internal/errors"
)

// Log formats
const (
	FormatJSON = "json"
	FormatText = "text"
)

// Attribute keys
const (
	AttrKeyService = "service"
	AttrKeyVersion = "version"
	AttrKeyRunID   = "run_id"
)

// Config represents logger configuration
type Config struct {
	Level     string `env:"LEVEL" envDefault:"info"`
	Format    string `env:"FORMAT" envDefault:"text"`
	Service   string `env:"SERVICE" envDefault:"forge"`
	Version   string `env:"VERSION" envDefault:"dev"`
	AddSource bool   `env:"ADD_SOURCE"`
}

// DefaultConfig returns the defaults used when nothing is configured
func DefaultConfig() Config {
	return Config{
		Level:   "info",
		Format:  FormatText,
		Service: "forge",
		Version: "dev",
	}
}

// Validate validates the config
func (c Config) Validate() error {
	vb := errors.NewValidationBuilder()
	errors.ValidateEnum("level", strings.ToLower(c.Level), []string{"debug", "info", "warn", "warning", "error"}, vb)
	errors.ValidateEnum("format", strings.ToLower(c.Format), []string{FormatJSON, FormatText}, vb)
	return vb.Build()
}

// LogLevel converts string level to slog.Level
func (c Config) LogLevel() slog.Level {
	switch strings.ToLower(c.Level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// IsJSON returns true if format is JSON
func (c Config) IsJSON() bool {
	return strings.ToLower(c.Format) == FormatJSON
}

// BaseAttributes returns common attributes to add to all logs
func (c Config) BaseAttributes() []slog.Attr {
	return []slog.Attr{
		slog.String(AttrKeyService, c.Service),
		slog.String(AttrKeyVersion, c.Version),
	}
}
