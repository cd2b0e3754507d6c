package main

import (
	"io"
	"log/slog"
	"strings"

	"github.com/alnah/go-doc2tex/internal/config"
)

// newLogger builds the slog handler described by cfg. --verbose lowers the
// level to debug and --quiet raises it to error.
func newLogger(cfg config.LogConfig, common commonFlags, w io.Writer) *slog.Logger {
	level := parseLevel(cfg.Level)
	switch {
	case common.verbose:
		level = slog.LevelDebug
	case common.quiet:
		level = slog.LevelError
	}

	opts := &slog.HandlerOptions{Level: level}
	if strings.EqualFold(cfg.Format, "json") {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
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
