package logger

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Mode selects the encoder.
type Mode string

const (
	Development Mode = "development"
	Production  Mode = "production"
)

// ParseMode maps a config string to a Mode, defaulting to Development.
func ParseMode(s string) Mode {
	if strings.EqualFold(s, string(Production)) {
		return Production
	}
	return Development
}

// Logger is a zap logger whose methods pick the request id out of ctx.
type Logger struct {
	l *zap.Logger
}

// New builds a logger for mode at the given level ("" means info).
func New(mode Mode, level string) (*Logger, error) {
	cfg := zap.NewDevelopmentConfig()
	if mode == Production {
		cfg = zap.NewProductionConfig()
	}

	lvl := zapcore.InfoLevel
	if level != "" {
		parsed, err := zapcore.ParseLevel(level)
		if err != nil {
			return nil, fmt.Errorf("parse log level %q: %w", level, err)
		}
		lvl = parsed
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)

	l, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	return &Logger{l: l}, nil
}

// Wrap adapts an existing zap logger; tests pass zap.NewNop() or an observer core.
func Wrap(l *zap.Logger) *Logger {
	return &Logger{l: l}
}

// Nop returns a logger that discards everything.
func Nop() *Logger {
	return &Logger{l: zap.NewNop()}
}

// With returns a child logger carrying fields.
func (l *Logger) With(fields ...zap.Field) *Logger {
	return &Logger{l: l.l.With(fields...)}
}

func (l *Logger) Debug(ctx context.Context, msg string, fields ...zap.Field) {
	l.l.Debug(msg, addRequestID(ctx, fields)...)
}

func (l *Logger) Info(ctx context.Context, msg string, fields ...zap.Field) {
	l.l.Info(msg, addRequestID(ctx, fields)...)
}

func (l *Logger) Warn(ctx context.Context, msg string, fields ...zap.Field) {
	l.l.Warn(msg, addRequestID(ctx, fields)...)
}

func (l *Logger) Error(ctx context.Context, msg string, fields ...zap.Field) {
	l.l.Error(msg, addRequestID(ctx, fields)...)
}

func (l *Logger) Fatal(ctx context.Context, msg string, fields ...zap.Field) {
	l.l.Fatal(msg, addRequestID(ctx, fields)...)
}

// Sync flushes buffered entries.
func (l *Logger) Sync() error {
	return l.l.Sync()
}
