package ctxutil

import (
	"context"
	"testing"
)

func TestRequestID(t *testing.T) {
	ctx := context.Background()

	if id, ok := GetRequestID(ctx); ok || id != "" {
		t.Errorf("Expected no request ID on fresh context, got %q", id)
	}

	ctx = WithRequestID(ctx, "req-42")
	id, ok := GetRequestID(ctx)
	if !ok || id != "req-42" {
		t.Errorf("Expected request ID 'req-42', got %q (ok=%v)", id, ok)
	}
}

func TestClientKey(t *testing.T) {
	ctx := context.Background()

	if key := GetClientKey(ctx); key != "" {
		t.Errorf("Expected empty client key on fresh context, got %q", key)
	}

	ctx = WithClientKey(ctx, "key-fp-abc")
	if key := GetClientKey(ctx); key != "key-fp-abc" {
		t.Errorf("Expected client key 'key-fp-abc', got %q", key)
	}
}
