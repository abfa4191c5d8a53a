package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// Initialize installs a JSON logger writing to stdout as the slog default.
func Initialize(level slog.Level) {
	InitializeWriter(os.Stdout, level)
}

// InitializeWriter installs a JSON logger writing to w as the slog default.
func InitializeWriter(w io.Writer, level slog.Level) {
	logger := slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: level,
	}))

	slog.SetDefault(logger)
}

// ParseLevel maps debug, info, warn and error to a slog level.
func ParseLevel(level string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.TrimSpace(level))); err != nil {
		return slog.LevelInfo, fmt.Errorf("unknown log level '%s'", level)
	}
	return l, nil
}

func Named(name string) *slog.Logger {
	logger := slog.Default()
	if logger == nil {
		return nil
	}

	return logger.With("name", name)
}
