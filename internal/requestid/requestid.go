// Package requestid provides request ID propagation via context. IDs arrive
// on the X-Request-ID header when the caller sets one and are generated
// otherwise, so a browser UI can correlate its own retries across requests.
package requestid

import (
	"context"

	"github.com/google/uuid"
)

// Header is the HTTP header carrying the request ID in both directions.
const Header = "X-Request-ID"

type ctxKey struct{}

// WithRequestID returns a context with the given request ID.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// FromContext extracts the request ID from context, or generates a new one.
func FromContext(ctx context.Context) string {
	if id, ok := ctx.Value(ctxKey{}).(string); ok && id != "" {
		return id
	}
	return uuid.New().String()
}

// Ensure adopts the incoming ID if the caller supplied one, generating a
// fresh UUID otherwise, and returns the enriched context together with the
// ID that won.
func Ensure(ctx context.Context, incoming string) (context.Context, string) {
	id := incoming
	if id == "" {
		id = uuid.New().String()
	}
	return WithRequestID(ctx, id), id
}
