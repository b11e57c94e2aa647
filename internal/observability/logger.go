// Package observability provides the logger and Prometheus metrics shared
// by the pipeline packages.
package observability

import (
	"log/slog"
	"os"

	"github.com/couchcryptid/wxplot/internal/config"
)

// NewLogger builds the process logger from config: text or json handler at
// the configured level. Unknown values fall back to text/info.
func NewLogger(cfg *config.Config) *slog.Logger {
	var level slog.Level
	switch cfg.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}
	return slog.New(handler)
}
