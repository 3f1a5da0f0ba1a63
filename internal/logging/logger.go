package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Logger wraps zerolog behind the printf-style methods used across the repo.
type Logger struct {
	l zerolog.Logger
}

// NewLogger creates a stdout logger at info level with console output.
func NewLogger() *Logger {
	return New(os.Stdout, "info", false)
}

// New creates a logger writing to w. level is one of debug, info, warn or
// error; anything else falls back to info. When jsonOut is false, output
// goes through a zerolog ConsoleWriter.
func New(w io.Writer, level string, jsonOut bool) *Logger {
	out := w
	if !jsonOut {
		out = zerolog.ConsoleWriter{Out: w, TimeFormat: time.DateTime, NoColor: true}
	}
	zl := zerolog.New(out).
		Level(ParseLevel(level)).
		With().
		Timestamp().
		Str("app", "proxylog-report").
		Logger()
	return &Logger{l: zl}
}

// ParseLevel maps a config level name to a zerolog level.
func ParseLevel(level string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// With returns a child logger carrying an extra field.
func (l *Logger) With(key string, value any) *Logger {
	return &Logger{l: l.l.With().Interface(key, value).Logger()}
}

func (l *Logger) Info(msg string) {
	l.l.Info().Msg(msg)
}

func (l *Logger) Debugf(format string, args ...any) {
	l.l.Debug().Msg(fmt.Sprintf(format, args...))
}

func (l *Logger) Infof(format string, args ...any) {
	l.l.Info().Msg(fmt.Sprintf(format, args...))
}

func (l *Logger) Warnf(format string, args ...any) {
	l.l.Warn().Msg(fmt.Sprintf(format, args...))
}

func (l *Logger) Errorf(format string, args ...any) {
	l.l.Error().Msg(fmt.Sprintf(format, args...))
}
