package logger

import (
	"context"

	"go.uber.org/zap"
)

type requestIDKey struct{}

// WithRequestID stores id in ctx for later log lines.
func WithRequestID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestID returns the request id stored in ctx, if any.
func RequestID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

func addRequestID(ctx context.Context, fields []zap.Field) []zap.Field {
	if id := RequestID(ctx); id != "" {
		return append(fields, zap.String("request_id", id))
	}
	return fields
}
