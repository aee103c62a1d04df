// Package requestcontext provides HTTP-independent context accessors for
// request-scoped values.
//
// Callers attach a request ID before fetching so that outbound holiday requests
// can be correlated with their own logs:
//
//	ctx = requestcontext.WithRequestID(ctx, requestID)
//	resp, err := c.Fetch(ctx, req)
package requestcontext

import "context"

type requestIDKey struct{}

// ContextKeyRequestID is exported for tests that need context.WithValue directly.
var ContextKeyRequestID = requestIDKey{}

// RequestID retrieves the request ID from the context.
func RequestID(ctx context.Context) string {
	if reqID, ok := ctx.Value(ContextKeyRequestID).(string); ok {
		return reqID
	}
	return ""
}

// WithRequestID injects a request ID into the context.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, ContextKeyRequestID, requestID)
}
