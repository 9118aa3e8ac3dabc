package app

import (
	"io"
	"log/slog"
)

var logLevels = map[string]slog.Level{
	"debug": slog.LevelDebug,
	"info":  slog.LevelInfo,
	"warn":  slog.LevelWarn,
	"error": slog.LevelError,
}

// newLogger builds an isolated logger writing to outW; the process-wide
// default logger is never touched. Unrecognised levels fall back to the
// LevelVar zero value, info.
func newLogger(levelStr, formatStr string, outW io.Writer) *slog.Logger {
	level := new(slog.LevelVar)
	if l, ok := logLevels[levelStr]; ok {
		level.Set(l)
	}

	opts := &slog.HandlerOptions{Level: level}
	if formatStr == "json" {
		return slog.New(slog.NewJSONHandler(outW, opts))
	}
	return slog.New(slog.NewTextHandler(outW, opts))
}
