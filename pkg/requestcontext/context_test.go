package requestcontext

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRequestID(t *testing.T) {
	ctx := context.Background()
	assert.Equal(t, "", RequestID(ctx))

	ctx = WithRequestID(ctx, "req-123")
	assert.Equal(t, "req-123", RequestID(ctx))

	// a value of the wrong type under the key is ignored
	ctx = context.WithValue(context.Background(), ContextKeyRequestID, 42)
	assert.Equal(t, "", RequestID(ctx))
}
