package cache

import (
	"context"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// CU_EVENTS_TEST_REDIS_ADDR points the tests at a scratch redis, e.g. localhost:6379.
func newTestRedis(t *testing.T) *Redis {
	t.Helper()

	addr := os.Getenv("CU_EVENTS_TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("CU_EVENTS_TEST_REDIS_ADDR is not set")
	}

	client := redis.NewClient(&redis.Options{Addr: addr})
	require.NoError(t, client.Ping(context.Background()).Err())

	prefix := "cu-events-test:" + uuid.NewString() + ":"
	t.Cleanup(func() {
		ctx := context.Background()
		iter := client.Scan(ctx, 0, escapePattern(prefix)+"*", scanCount).Iterator()
		for iter.Next(ctx) {
			client.Del(ctx, iter.Val())
		}
		_ = client.Close()
	})
	return NewRedis(client, prefix)
}

func TestRedis_GetSetExpiry(t *testing.T) {
	store := newTestRedis(t)
	ctx := context.Background()

	_, err := store.Get(ctx, "event:e1")
	assert.ErrorIs(t, err, ErrMiss)

	require.NoError(t, store.Set(ctx, "event:e1", []byte(`{"id":"e1"}`), time.Minute))
	value, err := store.Get(ctx, "event:e1")
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"id":"e1"}`), value)

	require.NoError(t, store.Set(ctx, "event:e2", []byte("{}"), 50*time.Millisecond))
	require.Eventually(t, func() bool {
		_, err := store.Get(ctx, "event:e2")
		return err == ErrMiss
	}, 2*time.Second, 20*time.Millisecond)
}

func TestRedis_DeleteByPrefix(t *testing.T) {
	store := newTestRedis(t)
	ctx := context.Background()

	keys := []string{
		"user-rsvp:e1:u1",
		"user-rsvp:e1:u2",
		"user-rsvp:e2:u1",
		"events:*:x",
		"events:social:x",
	}
	for _, key := range keys {
		require.NoError(t, store.Set(ctx, key, []byte("1"), time.Minute))
	}

	require.NoError(t, store.DeleteByPrefix(ctx, "user-rsvp:e1", "events:*"))

	for key, present := range map[string]bool{
		"user-rsvp:e1:u1": false,
		"user-rsvp:e1:u2": false,
		"user-rsvp:e2:u1": true,
		"events:*:x":      false,
		"events:social:x": true,
	} {
		_, err := store.Get(ctx, key)
		if present {
			assert.NoError(t, err, key)
		} else {
			assert.ErrorIs(t, err, ErrMiss, key)
		}
	}
}

func TestRedis_PublishSubscribe(t *testing.T) {
	store := newTestRedis(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var mu sync.Mutex
	var received [][]string
	done := make(chan error, 1)
	go func() {
		done <- store.Subscribe(ctx, func(prefixes []string) {
			mu.Lock()
			received = append(received, prefixes)
			mu.Unlock()
		})
	}()

	// the subscription is set up asynchronously, keep publishing until it lands
	require.Eventually(t, func() bool {
		if err := store.Publish(ctx, "event:", "events"); err != nil {
			return false
		}
		mu.Lock()
		defer mu.Unlock()
		return len(received) > 0
	}, 2*time.Second, 50*time.Millisecond)

	mu.Lock()
	assert.Equal(t, []string{"event:", "events"}, received[0])
	mu.Unlock()

	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)
}
