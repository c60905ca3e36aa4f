// Package ctxutil provides type-safe context value management.
// Uses private key types to prevent collisions.
package ctxutil

import (
	"context"
)

type contextKey string

const (
	requestIDKey contextKey = "ctxutil.requestID"
	clientKeyKey contextKey = "ctxutil.clientKey"
)

// WithRequestID adds a request ID to the context for tracing.
// Request ID is generated per inbound request for log correlation.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

// GetRequestID retrieves the request ID from the context.
// Returns the request ID and true if found, empty string and false otherwise.
func GetRequestID(ctx context.Context) (string, bool) {
	requestID, ok := ctx.Value(requestIDKey).(string)
	return requestID, ok
}

// WithClientKey adds the authenticated client key identifier to the context.
// Used for per-client rate limiting and log correlation. The value is an
// opaque identifier (e.g., a key fingerprint), never the raw credential.
func WithClientKey(ctx context.Context, clientKey string) context.Context {
	return context.WithValue(ctx, clientKeyKey, clientKey)
}

// GetClientKey retrieves the client key identifier from the context.
// Returns the identifier if found, empty string otherwise.
func GetClientKey(ctx context.Context) string {
	if v := ctx.Value(clientKeyKey); v != nil {
		if key, ok := v.(string); ok && key != "" {
			return key
		}
	}
	return ""
}
