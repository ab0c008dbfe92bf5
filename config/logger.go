package config

import (
	"io"
	"log/slog"
	"os"
)

// NewLogger returns a slog.Logger for the given environment writing to stdout.
// Production uses a JSON handler; otherwise a text handler.
// LOG_LEVEL may be: debug, info, warn, error (default: info).
func NewLogger(env string) *slog.Logger {
	return newLogger(os.Stdout, env, os.Getenv("LOG_LEVEL"))
}

func newLogger(w io.Writer, env, levelName string) *slog.Logger {
	level := slog.LevelInfo
	if levelName != "" {
		var parsed slog.Level
		if err := parsed.UnmarshalText([]byte(levelName)); err == nil {
			level = parsed
		}
	}
	opts := &slog.HandlerOptions{Level: level}
	if env == "production" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
