// Package ctxutil provides type-safe context value management.
// Uses private key types to prevent collisions.
package ctxutil

import (
	"context"
)

type contextKey string

const (
	requestIDKey     contextKey = "ctxutil.requestID"
	interactionIDKey contextKey = "ctxutil.interactionID"
	userIDKey        contextKey = "ctxutil.userID"
)

// WithRequestID adds a request ID to the context for tracing.
// Request ID is taken from the inbound HTTP headers when present and
// generated per request otherwise, for log correlation.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

// GetRequestID retrieves the request ID from the context.
// Returns the request ID and true if found, empty string and false otherwise.
func GetRequestID(ctx context.Context) (string, bool) {
	requestID, ok := ctx.Value(requestIDKey).(string)
	return requestID, ok
}

// MustGetRequestID retrieves the request ID from the context.
// Panics if the request ID is not found.
func MustGetRequestID(ctx context.Context) string {
	requestID, ok := ctx.Value(requestIDKey).(string)
	if !ok || requestID == "" {
		panic("ctxutil: requestID not found")
	}
	return requestID
}

// WithInteractionID adds a Discord interaction ID to the context.
// The interaction ID identifies a single webhook delivery and its
// out-of-band callback response.
func WithInteractionID(ctx context.Context, interactionID string) context.Context {
	return context.WithValue(ctx, interactionIDKey, interactionID)
}

// GetInteractionID retrieves the interaction ID from the context.
// Returns the interaction ID if found, empty string otherwise.
func GetInteractionID(ctx context.Context) string {
	if v := ctx.Value(interactionIDKey); v != nil {
		if interactionID, ok := v.(string); ok && interactionID != "" {
			return interactionID
		}
	}
	return ""
}

// WithUserID adds a Discord user ID to the context.
// User ID comes from the interaction member/user structure.
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// GetUserID retrieves the user ID from the context.
// Returns the user ID if found, empty string otherwise.
func GetUserID(ctx context.Context) string {
	if v := ctx.Value(userIDKey); v != nil {
		if userID, ok := v.(string); ok && userID != "" {
			return userID
		}
	}
	return ""
}

// PreserveTracing creates a detached context that preserves tracing values.
// The new context is independent of the parent's cancellation and deadlines.
//
// This function creates a fresh context.Background() and copies only tracing
// values, avoiding memory leaks from retaining parent context references
// (Go issue #64478).
//
// Use for async operations that need tracing but must outlive the parent
// context, such as the interaction callback POST that continues after the
// synchronous HTTP acknowledgment is sent.
func PreserveTracing(ctx context.Context) context.Context {
	newCtx := context.Background()

	if requestID, ok := GetRequestID(ctx); ok && requestID != "" {
		newCtx = WithRequestID(newCtx, requestID)
	}
	if interactionID := GetInteractionID(ctx); interactionID != "" {
		newCtx = WithInteractionID(newCtx, interactionID)
	}
	if userID := GetUserID(ctx); userID != "" {
		newCtx = WithUserID(newCtx, userID)
	}

	return newCtx
}
