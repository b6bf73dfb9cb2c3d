package slogobs

import (
	"os"
	"strings"
)

// Format represents the output format for logs.
type Format string

const (
	// FormatCompact is a single line with JSON-encoded attributes (default).
	// Example: 2026-10-16 10:40:35 DEBUG Operation completed -> {"calc.operation":"add"}
	FormatCompact Format = "compact"

	// FormatPretty puts each attribute on its own indented line.
	FormatPretty Format = "pretty"

	// FormatJSON emits one JSON object per record, for log aggregation.
	FormatJSON Format = "json"
)

// ParseFormat parses a format name. Unknown names yield FormatCompact.
func ParseFormat(s string) Format {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "pretty":
		return FormatPretty
	case "json":
		return FormatJSON
	default:
		return FormatCompact
	}
}

// GetFormatFromEnv reads CALC_LOG_FORMAT, then LOG_FORMAT, defaulting to
// FormatCompact when neither is set.
func GetFormatFromEnv() Format {
	if format := os.Getenv("CALC_LOG_FORMAT"); format != "" {
		return ParseFormat(format)
	}
	if format := os.Getenv("LOG_FORMAT"); format != "" {
		return ParseFormat(format)
	}
	return FormatCompact
}

func (f Format) String() string {
	return string(f)
}
