package cache

import (
	"context"
	"time"
)

// BytesCache stores raw response bytes with a TTL. It backs the analyze
// endpoint, where a hit also suppresses re-dispatching the cached signal.
type BytesCache interface {
	GetBytes(ctx context.Context, key string) (b []byte, ok bool, err error)
	SetBytes(ctx context.Context, key string, value []byte, ttl time.Duration) error
}
