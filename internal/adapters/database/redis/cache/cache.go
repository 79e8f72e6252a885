package cache

import (
	"context"
	"errors"
	"time"
)

// InvalidateChannel carries key prefixes dropped by one replica so the others can evict them locally.
const InvalidateChannel = "cache:invalidate"

var ErrMiss = errors.New("cache: key not found")

// Store keeps serialized query results by key.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	DeleteByPrefix(ctx context.Context, prefixes ...string) error
}

// Broadcaster spreads invalidated prefixes between replicas.
type Broadcaster interface {
	Publish(ctx context.Context, prefixes ...string) error
	Subscribe(ctx context.Context, handler func(prefixes []string)) error
}
