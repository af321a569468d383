// Package log sets up the process-wide slog handler and provides module
// loggers with printf-style leveled calls.
package log

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

var level = new(slog.LevelVar)

// Setup installs a colourising handler writing to out as the slog default.
func Setup(out io.Writer, l slog.Level) {
	level.Set(l)
	slog.SetDefault(slog.New(NewHandler(out, &slog.HandlerOptions{Level: level})))
}

func SetLevel(l slog.Level) {
	level.Set(l)
}

func Level() slog.Level {
	return level.Level()
}

func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "trace":
		return LevelTrace, nil
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return 0, fmt.Errorf("unknown log level: %s", s)
}

// Logger tags every record with a module attribute.
type Logger struct {
	sl *slog.Logger
}

// New returns a logger for module using the current default handler.
func New(module string) *Logger {
	return &Logger{sl: slog.Default().With("module", module)}
}

// NewWith is like New but logs through an explicit slog logger.
func NewWith(sl *slog.Logger, module string) *Logger {
	return &Logger{sl: sl.With("module", module)}
}

func (l *Logger) logf(lvl slog.Level, msg string, args ...any) {
	ctx := context.Background()
	if !l.sl.Enabled(ctx, lvl) {
		return
	}
	if len(args) > 0 {
		msg = fmt.Sprintf(msg, args...)
	}
	l.sl.Log(ctx, lvl, msg)
}

func (l *Logger) Tracef(msg string, args ...any) {
	l.logf(LevelTrace, msg, args...)
}

func (l *Logger) Debugf(msg string, args ...any) {
	l.logf(slog.LevelDebug, msg, args...)
}

func (l *Logger) Infof(msg string, args ...any) {
	l.logf(slog.LevelInfo, msg, args...)
}

func (l *Logger) Warnf(msg string, args ...any) {
	l.logf(slog.LevelWarn, msg, args...)
}

func (l *Logger) Errorf(msg string, args ...any) {
	l.logf(slog.LevelError, msg, args...)
}

func init() {
	Setup(os.Stdout, slog.LevelInfo)
}
