package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/Badsnus/cu-events/internal/adapters/database/redis/cache"
	"github.com/Badsnus/cu-events/pkg/logger/types"
	"github.com/Badsnus/cu-events/pkg/metrics"
	"golang.org/x/sync/singleflight"
)

// Cache key prefixes. A full key is the prefix followed by ":" and the scoping ids.
const (
	keyEvents               = "events"
	keyEvent                = "event"
	keyEventPosts           = "event-posts"
	keyUserRsvp             = "user-rsvp"
	keyEventRsvpCount       = "event-rsvp-count"
	keyEventRsvps           = "event-rsvps"
	keyUserRsvpEventIDs     = "user-rsvp-event-ids"
	keyFollowStatus         = "follow-status"
	keyFollowerCount        = "follower-count"
	keyFollowedOrganizerIDs = "followed-organizer-ids"
	keyOrganizers           = "organizers"
	keyOrganizer            = "organizer"
	keyOrganizerEvents      = "organizer-events"
)

func cacheKey(prefix string, parts ...string) string {
	if len(parts) == 0 {
		return prefix
	}
	return prefix + ":" + strings.Join(parts, ":")
}

// QueryCache memoizes read queries by key. Results live in a shared store and,
// optionally, in a local layer that other replicas evict through the broadcaster.
type QueryCache struct {
	logger *types.Logger

	shared      cache.Store
	local       cache.Store
	broadcaster cache.Broadcaster

	ttl      time.Duration
	localTTL time.Duration
	group    singleflight.Group
}

func NewQueryCache(
	logger *types.Logger,
	shared cache.Store,
	local cache.Store,
	broadcaster cache.Broadcaster,
	ttl time.Duration,
	localTTL time.Duration,
) *QueryCache {
	return &QueryCache{
		logger:      logger,
		shared:      shared,
		local:       local,
		broadcaster: broadcaster,
		ttl:         ttl,
		localTTL:    localTTL,
	}
}

// Fetch returns the cached value of key or runs fn, stores and returns its result.
// Concurrent fetches of the same missing key share one call of fn.
func Fetch[T any](ctx context.Context, c *QueryCache, key string, fn func(ctx context.Context) (T, error)) (T, error) {
	var result T
	if c == nil {
		return fn(ctx)
	}

	if data, ok := c.lookup(ctx, key); ok {
		if err := json.Unmarshal(data, &result); err == nil {
			return result, nil
		}
		c.logger.Warnf("dropping undecodable cache entry %s", key)
	}

	// the shared call outlives any single caller
	shared := context.WithoutCancel(ctx)
	data, err, _ := c.group.Do(key, func() (interface{}, error) {
		value, err := fn(shared)
		if err != nil {
			return nil, err
		}
		data, err := json.Marshal(value)
		if err != nil {
			return nil, err
		}
		c.store(shared, key, data)
		return data, nil
	})
	if err != nil {
		return result, err
	}

	err = json.Unmarshal(data.([]byte), &result)
	return result, err
}

func (c *QueryCache) lookup(ctx context.Context, key string) ([]byte, bool) {
	if c.local != nil {
		data, err := c.local.Get(ctx, key)
		if err == nil {
			metrics.CacheLookups.WithLabelValues("local", "hit").Inc()
			return data, true
		}
		metrics.CacheLookups.WithLabelValues("local", "miss").Inc()
	}

	if c.shared == nil {
		return nil, false
	}
	data, err := c.shared.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, cache.ErrMiss) {
			c.logger.Warnf("cache get %s: %v", key, err)
		}
		metrics.CacheLookups.WithLabelValues("shared", "miss").Inc()
		return nil, false
	}
	metrics.CacheLookups.WithLabelValues("shared", "hit").Inc()

	if c.local != nil {
		_ = c.local.Set(ctx, key, data, c.localTTL)
	}
	return data, true
}

func (c *QueryCache) store(ctx context.Context, key string, data []byte) {
	if c.shared != nil {
		if err := c.shared.Set(ctx, key, data, c.ttl); err != nil {
			c.logger.Warnf("cache set %s: %v", key, err)
		}
	}
	if c.local != nil {
		_ = c.local.Set(ctx, key, data, c.localTTL)
	}
}

// Invalidate drops every entry whose key starts with one of the prefixes and
// tells the other replicas to do the same. Cache failures are logged, not returned.
func (c *QueryCache) Invalidate(ctx context.Context, prefixes ...string) {
	if c == nil || len(prefixes) == 0 {
		return
	}

	if c.local != nil {
		_ = c.local.DeleteByPrefix(ctx, prefixes...)
	}
	if c.shared != nil {
		if err := c.shared.DeleteByPrefix(ctx, prefixes...); err != nil {
			c.logger.Errorf("cache invalidate %v: %v", prefixes, err)
		}
	}
	if c.broadcaster != nil {
		if err := c.broadcaster.Publish(ctx, prefixes...); err != nil {
			c.logger.Warnf("cache broadcast %v: %v", prefixes, err)
		}
	}
}

// Listen evicts local entries invalidated by other replicas until ctx is done.
func (c *QueryCache) Listen(ctx context.Context) error {
	if c.broadcaster == nil || c.local == nil {
		return nil
	}
	c.logger.Info("Listening for cache invalidations")
	return c.broadcaster.Subscribe(ctx, func(prefixes []string) {
		_ = c.local.DeleteByPrefix(ctx, prefixes...)
	})
}
