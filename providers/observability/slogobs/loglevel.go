package slogobs

import (
	"log/slog"
	"os"
	"strings"
)

// LevelTrace sits below slog.LevelDebug and is filtered out unless requested.
const LevelTrace = slog.LevelDebug - 4

// GetLogLevelFromEnv reads CALC_LOG_LEVEL, then LOG_LEVEL, defaulting to INFO.
func GetLogLevelFromEnv() slog.Level {
	level := os.Getenv("CALC_LOG_LEVEL")
	if level == "" {
		level = os.Getenv("LOG_LEVEL")
	}
	return ParseLogLevel(level)
}

// ParseLogLevel parses TRACE, DEBUG, INFO, WARN, WARNING or ERROR
// (case-insensitive). Anything else yields INFO.
func ParseLogLevel(level string) slog.Level {
	switch strings.ToUpper(strings.TrimSpace(level)) {
	case "TRACE":
		return LevelTrace
	case "DEBUG":
		return slog.LevelDebug
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// levelString maps a level to its label, rounding custom levels down.
func levelString(level slog.Level) string {
	switch {
	case level < slog.LevelDebug:
		return "TRACE"
	case level < slog.LevelInfo:
		return "DEBUG"
	case level < slog.LevelWarn:
		return "INFO"
	case level < slog.LevelError:
		return "WARN"
	default:
		return "ERROR"
	}
}
