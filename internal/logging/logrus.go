package logging

import (
	"context"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
)

// LogrusLogger adapts a logrus entry to Logger.
type LogrusLogger struct {
	e *logrus.Entry
}

func NewLogrusLogger(l *logrus.Logger) *LogrusLogger {
	return &LogrusLogger{e: logrus.NewEntry(l)}
}

// NewTextLogger builds a logrus logger with the text formatter writing to w.
// An unknown level falls back to info.
func NewTextLogger(w io.Writer, level string) *LogrusLogger {
	l := logrus.New()
	l.SetOutput(w)
	l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true, DisableColors: true})

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	l.SetLevel(lvl)

	return NewLogrusLogger(l)
}

func (r *LogrusLogger) Debug(ctx context.Context, msg string, args ...any) {
	r.entry(ctx, args).Debug(msg)
}

func (r *LogrusLogger) Info(ctx context.Context, msg string, args ...any) {
	r.entry(ctx, args).Info(msg)
}

func (r *LogrusLogger) Warn(ctx context.Context, msg string, args ...any) {
	r.entry(ctx, args).Warn(msg)
}

func (r *LogrusLogger) Error(ctx context.Context, msg string, args ...any) {
	r.entry(ctx, args).Error(msg)
}

func (r *LogrusLogger) With(args ...any) Logger {
	return &LogrusLogger{e: r.e.WithFields(fields(args))}
}

func (r *LogrusLogger) entry(ctx context.Context, args []any) *logrus.Entry {
	e := r.e
	if ctx != nil {
		e = e.WithContext(ctx)
	}
	if len(args) == 0 {
		return e
	}
	return e.WithFields(fields(args))
}

// fields turns slog-style key-value pairs into logrus fields. A trailing key
// without a value is kept under "!BADKEY", as slog does.
func fields(args []any) logrus.Fields {
	f := make(logrus.Fields, len(args)/2)
	for i := 0; i < len(args); i += 2 {
		if i+1 >= len(args) {
			f["!BADKEY"] = args[i]
			break
		}
		key, ok := args[i].(string)
		if !ok {
			key = fmt.Sprint(args[i])
		}
		f[key] = args[i+1]
	}
	return f
}
