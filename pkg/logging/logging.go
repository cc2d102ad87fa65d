// Package logging configures structured logging with log/slog.
//
// Two handlers are supported: a colored tint handler for local development
// and a JSON handler for production.
//
// Usage:
//
//	logging.Setup("info", "text")  // colored, INFO level
//	logging.Setup("debug", "json") // JSON, DEBUG level
package logging

import (
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/lmittmann/tint"
)

// Setup configures the default slog logger with the given level
// ("debug", "info", "warn", "error") and format ("text" or "json").
func Setup(level, format string) {
	lvl := parseLevel(level)

	var handler slog.Handler
	if strings.EqualFold(format, "json") {
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: lvl,
		})
	} else {
		handler = tint.NewHandler(os.Stderr, &tint.Options{
			Level:      lvl,
			TimeFormat: time.Kitchen,
			AddSource:  true,
		})
	}

	slog.SetDefault(slog.New(handler))
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
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
