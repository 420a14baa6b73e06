package utils

import (
	"context"
	"log"
)

type requestIDKey struct{}

// WithRequestID returns a copy of ctx carrying the request id.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestID extracts the request id set by the request-id middleware.
func RequestID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if id, ok := ctx.Value(requestIDKey{}).(string); ok {
		return id
	}
	return ""
}

// Logf logs with the request id of ctx, or "-" outside a request.
func Logf(ctx context.Context, scope, format string, args ...any) {
	id := RequestID(ctx)
	if id == "" {
		id = "-"
	}
	log.Printf("["+scope+"] request_id=%s "+format, append([]any{id}, args...)...)
}
