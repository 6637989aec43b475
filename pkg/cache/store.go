package cache

import (
	"context"
	"time"
)

// Store is a byte-oriented key/value store with expiry and prefix invalidation.
type Store interface {
	// Get returns the stored value and true, or false when the key is missing or expired.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores value under key. A non-positive ttl keeps the entry until it is evicted.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// DeletePrefix removes every key starting with prefix.
	DeletePrefix(ctx context.Context, prefix string) error
}

type bypassCtxKey struct{}

// WithBypass marks ctx so that cache reads are skipped for calls made with it.
func WithBypass(ctx context.Context) context.Context {
	return context.WithValue(ctx, bypassCtxKey{}, true)
}

// Bypassed reports whether ctx was marked with WithBypass.
func Bypassed(ctx context.Context) bool {
	v, _ := ctx.Value(bypassCtxKey{}).(bool)
	return v
}
