package logger

import (
	"io"
	"log/slog"
	"os"
	"sort"
	"strings"
)

// Logger описывает минимальный интерфейс структурированного логгера,
// достаточный для использования в handler'ах, middleware и usecase-слое.
type Logger interface {
	Debug(msg string, fields map[string]any)
	Info(msg string, fields map[string]any)
	Warn(msg string, fields map[string]any)
	Error(msg string, fields map[string]any)
}

// Options задаёт уровень и формат вывода.
type Options struct {
	Level  string // debug, info, warn, error
	Format string // text, json
}

type slogLogger struct {
	l *slog.Logger
}

// New создаёт логгер на базе log/slog, пишущий в stdout.
func New(opts Options) Logger {
	return NewWithWriter(os.Stdout, opts)
}

// NewWithWriter создаёт логгер, пишущий в произвольный io.Writer (удобно в тестах).
func NewWithWriter(w io.Writer, opts Options) Logger {
	handlerOpts := &slog.HandlerOptions{Level: parseLevel(opts.Level)}

	var h slog.Handler
	if strings.EqualFold(opts.Format, "json") {
		h = slog.NewJSONHandler(w, handlerOpts)
	} else {
		h = slog.NewTextHandler(w, handlerOpts)
	}
	return &slogLogger{l: slog.New(h)}
}

// Default возвращает текстовый логгер уровня info.
func Default() Logger {
	return New(Options{Level: "info", Format: "text"})
}

// Nop возвращает логгер, который ничего не пишет.
func Nop() Logger {
	return NewWithWriter(io.Discard, Options{Level: "error"})
}

func (l *slogLogger) Debug(msg string, fields map[string]any) {
	l.l.Debug(msg, toAttrs(fields)...)
}

func (l *slogLogger) Info(msg string, fields map[string]any) {
	l.l.Info(msg, toAttrs(fields)...)
}

func (l *slogLogger) Warn(msg string, fields map[string]any) {
	l.l.Warn(msg, toAttrs(fields)...)
}

func (l *slogLogger) Error(msg string, fields map[string]any) {
	l.l.Error(msg, toAttrs(fields)...)
}

// toAttrs переводит поля в атрибуты slog в стабильном (отсортированном) порядке.
func toAttrs(fields map[string]any) []any {
	if len(fields) == 0 {
		return nil
	}
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	attrs := make([]any, 0, len(keys))
	for _, k := range keys {
		attrs = append(attrs, slog.Any(k, fields[k]))
	}
	return attrs
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
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
