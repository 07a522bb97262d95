// internal/logging/logger.go
package logging

import (
	"io"
	"log/slog"
	"os"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Options selects level, format and optional rotated file output.
type Options struct {
	Level      string // "debug", "info", "warn", "error" (defaults to "info")
	Format     string // "json" or "text" (defaults to "text")
	File       string // empty means stdout only
	MaxSizeMB  int
	MaxBackups int
}

// InitLogger builds the process logger and installs it as slog's default.
// The returned closer flushes and closes the log file, if any.
func InitLogger(opts Options) (*slog.Logger, func() error) {
	var out io.Writer = os.Stdout
	closer := func() error { return nil }

	if opts.File != "" {
		lj := &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    opts.MaxSizeMB,
			MaxBackups: opts.MaxBackups,
			Compress:   true,
		}
		out = io.MultiWriter(os.Stdout, lj)
		closer = lj.Close
	}

	logger := slog.New(newHandler(out, opts.Level, opts.Format))
	slog.SetDefault(logger)
	return logger, closer
}

func newHandler(w io.Writer, level, format string) slog.Handler {
	handlerOpts := &slog.HandlerOptions{Level: ParseLevel(level)}
	if format == "json" {
		return slog.NewJSONHandler(w, handlerOpts)
	}
	return slog.NewTextHandler(w, handlerOpts)
}

// ParseLevel maps a config level name onto slog, defaulting to info.
func ParseLevel(level string) slog.Level {
	switch level {
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

// Discard returns a logger that drops everything; used by tests.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
