package logger

import (
	"context"

	"github.com/google/uuid"
)

type contextKey struct{}

// WithCorrelationID returns a context carrying the given correlation id.
func WithCorrelationID(ctx context.Context, id string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, contextKey{}, id)
}

// NewCorrelationID generates a fresh correlation id.
func NewCorrelationID() string {
	return uuid.NewString()
}

// CorrelationIDFromContext extracts the correlation id, if any.
func CorrelationIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}

	if id, ok := ctx.Value(contextKey{}).(string); ok {
		return id
	}

	return ""
}
