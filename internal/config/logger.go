package config

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// ParseLogLevel переводит LOG_LEVEL в уровень slog; неизвестное значение означает INFO
func ParseLogLevel(level string) slog.Level {
	switch strings.ToUpper(strings.TrimSpace(level)) {
	case "DEBUG":
		return slog.LevelDebug
	case "WARN":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// SetupLogger устанавливает текстовый slog логгер по умолчанию
func SetupLogger(level string) *slog.Logger {
	return setupLoggerTo(os.Stderr, level)
}

func setupLoggerTo(w io.Writer, level string) *slog.Logger {
	logger := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: ParseLogLevel(level)}))
	slog.SetDefault(logger)
	return logger
}
