package log

import (
	"log/slog"
	"os"
	"strings"
)

// Setup installs a text handler as the process-wide default logger and
// returns it. Every package logs through the slog default, so the cmd
// binaries call this exactly once at startup.
func Setup(level slog.Level) *slog.Logger {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)
	return logger
}

// LevelFromEnv reads LOG_LEVEL and maps it to a slog level. Unknown or
// missing values default to info.
func LevelFromEnv() slog.Level {
	switch strings.ToLower(os.Getenv("LOG_LEVEL")) {
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
