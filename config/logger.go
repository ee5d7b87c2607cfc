package config

import (
	"io"
	"log/slog"
	"os"
)

// NewLogger returns the process logger configured from GO_ENV and LOG_LEVEL.
// Production writes JSON; anything else writes text. LOG_LEVEL takes a slog
// level name (debug, info, warn, error, case-insensitive) and defaults to info.
func NewLogger() *slog.Logger {
	return newLogger(os.Stdout, os.Getenv("GO_ENV"), os.Getenv("LOG_LEVEL"))
}

func newLogger(w io.Writer, env, levelName string) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(levelName)); err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if env == EnvProduction {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(handler).With("service", "clubhub")
}
