package slogobs

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"os"
	"slices"
	"strings"
	"sync"
)

// Handler is a slog.Handler that writes compact, pretty or JSON records.
type Handler struct {
	format Format
	level  slog.Level
	colors bool
	attrs  []slog.Attr
	groups []string

	mu     *sync.Mutex // shared by derived handlers writing to the same output
	output io.Writer
}

// HandlerOptions configures a Handler.
type HandlerOptions struct {
	Format Format
	Level  slog.Level
	// Output defaults to os.Stderr.
	Output io.Writer
	// Colors enables ANSI colors for compact and pretty output. It is also
	// switched on automatically when Output is a terminal.
	Colors bool
}

// NewHandler creates a Handler. A nil opts uses compact output at INFO.
func NewHandler(opts *HandlerOptions) *Handler {
	if opts == nil {
		opts = &HandlerOptions{}
	}
	output := opts.Output
	if output == nil {
		output = os.Stderr
	}
	format := opts.Format
	if format == "" {
		format = FormatCompact
	}

	colors := opts.Colors
	if !colors && format != FormatJSON {
		if f, ok := output.(*os.File); ok {
			colors = isTerminal(f)
		}
	}

	return &Handler{
		format: format,
		level:  opts.Level,
		colors: colors,
		mu:     &sync.Mutex{},
		output: output,
	}
}

// Enabled reports whether records at level are written.
func (h *Handler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level
}

// Handle formats and writes r.
func (h *Handler) Handle(_ context.Context, r slog.Record) error {
	var line []byte
	var err error
	switch h.format {
	case FormatJSON:
		line, err = h.formatJSON(r)
	case FormatPretty:
		line = h.formatPretty(r)
	default:
		line = h.formatCompact(r)
	}
	if err != nil {
		return err
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err = h.output.Write(line)
	return err
}

// WithAttrs returns a Handler that adds attrs to every record.
func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clone := *h
	clone.attrs = append(slices.Clip(h.attrs), h.qualify(attrs)...)
	return &clone
}

// WithGroup returns a Handler that prefixes later attribute keys with name.
func (h *Handler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	clone := *h
	clone.groups = append(slices.Clip(h.groups), name)
	return &clone
}

// qualify prefixes attribute keys with the open groups.
func (h *Handler) qualify(attrs []slog.Attr) []slog.Attr {
	if len(h.groups) == 0 {
		return attrs
	}
	prefix := strings.Join(h.groups, ".") + "."
	out := make([]slog.Attr, len(attrs))
	for i, a := range attrs {
		out[i] = slog.Attr{Key: prefix + a.Key, Value: a.Value}
	}
	return out
}

// fields merges handler attributes with the record's own.
func (h *Handler) fields(r slog.Record) map[string]any {
	fields := make(map[string]any, len(h.attrs)+r.NumAttrs())
	for _, a := range h.attrs {
		fields[a.Key] = a.Value.Resolve().Any()
	}
	var recordAttrs []slog.Attr
	r.Attrs(func(a slog.Attr) bool {
		recordAttrs = append(recordAttrs, a)
		return true
	})
	for _, a := range h.qualify(recordAttrs) {
		fields[a.Key] = a.Value.Resolve().Any()
	}
	return fields
}

// formatCompact renders "2006-01-02 15:04:05  INFO Message -> {"key":"value"}".
func (h *Handler) formatCompact(r slog.Record) []byte {
	var b strings.Builder
	b.WriteString(r.Time.Format("2006-01-02 15:04:05"))
	b.WriteByte(' ')
	b.WriteString(h.paint(r.Level, fmt.Sprintf("%5s", levelString(r.Level))))
	b.WriteByte(' ')
	b.WriteString(r.Message)

	if fields := h.fields(r); len(fields) > 0 {
		b.WriteString(" -> ")
		encoded, err := json.Marshal(fields)
		if err != nil {
			b.WriteString("[json-error]")
		} else {
			b.Write(encoded)
		}
	}
	b.WriteByte('\n')
	return []byte(b.String())
}

// formatPretty renders the header line followed by one sorted "key: value"
// line per attribute.
func (h *Handler) formatPretty(r slog.Record) []byte {
	var b strings.Builder
	b.WriteString(r.Time.Format("2006-01-02 15:04:05"))
	b.WriteByte(' ')
	b.WriteString(h.paint(r.Level, fmt.Sprintf("%-5s", levelString(r.Level))))
	b.WriteString("  ")
	b.WriteString(r.Message)
	b.WriteByte('\n')

	fields := h.fields(r)
	keys := slices.Sorted(maps.Keys(fields))
	for i, key := range keys {
		branch := "├─"
		if i == len(keys)-1 {
			branch = "└─"
		}
		fmt.Fprintf(&b, "    %s %s: %v\n", branch, key, fields[key])
	}
	return []byte(b.String())
}

// formatJSON renders {"time":...,"level":...,"msg":...} with attributes merged
// at the top level.
func (h *Handler) formatJSON(r slog.Record) ([]byte, error) {
	data := h.fields(r)
	data["time"] = r.Time.Format("2006-01-02T15:04:05")
	data["level"] = levelString(r.Level)
	data["msg"] = r.Message

	encoded, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	return append(encoded, '\n'), nil
}

const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorYellow = "\033[33m"
	colorGreen  = "\033[32m"
	colorBlue   = "\033[34m"
	colorGray   = "\033[90m"
)

func (h *Handler) paint(level slog.Level, s string) string {
	if !h.colors {
		return s
	}
	var color string
	switch {
	case level < slog.LevelDebug:
		color = colorGray
	case level < slog.LevelInfo:
		color = colorBlue
	case level < slog.LevelWarn:
		color = colorGreen
	case level < slog.LevelError:
		color = colorYellow
	default:
		color = colorRed
	}
	return color + s + colorReset
}

func isTerminal(f *os.File) bool {
	if f == nil {
		return false
	}
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}
