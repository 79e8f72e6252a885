package cache

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const scanCount = 100

type Redis struct {
	client *redis.Client
	prefix string
}

func NewRedis(client *redis.Client, keyPrefix string) *Redis {
	return &Redis{
		client: client,
		prefix: keyPrefix,
	}
}

func (r *Redis) Get(ctx context.Context, key string) ([]byte, error) {
	value, err := r.client.Get(ctx, r.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrMiss
	}
	return value, err
}

func (r *Redis) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return r.client.Set(ctx, r.prefix+key, value, ttl).Err()
}

// DeleteByPrefix removes every key starting with one of the prefixes.
func (r *Redis) DeleteByPrefix(ctx context.Context, prefixes ...string) error {
	for _, prefix := range prefixes {
		iter := r.client.Scan(ctx, 0, escapePattern(r.prefix+prefix)+"*", scanCount).Iterator()

		var keys []string
		for iter.Next(ctx) {
			keys = append(keys, iter.Val())
		}
		if err := iter.Err(); err != nil {
			return err
		}

		if len(keys) > 0 {
			if err := r.client.Del(ctx, keys...).Err(); err != nil {
				return err
			}
		}
	}
	return nil
}

func (r *Redis) Publish(ctx context.Context, prefixes ...string) error {
	data, err := json.Marshal(prefixes)
	if err != nil {
		return err
	}
	return r.client.Publish(ctx, r.prefix+InvalidateChannel, data).Err()
}

// Subscribe calls handler for every invalidation published by any replica until ctx is done.
func (r *Redis) Subscribe(ctx context.Context, handler func(prefixes []string)) error {
	pubsub := r.client.Subscribe(ctx, r.prefix+InvalidateChannel)
	defer pubsub.Close()

	ch := pubsub.Channel()
	for {
		select {
		case msg, ok := <-ch:
			if !ok {
				return nil
			}
			var prefixes []string
			if err := json.Unmarshal([]byte(msg.Payload), &prefixes); err != nil {
				continue
			}
			handler(prefixes)
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

var patternEscaper = strings.NewReplacer(`\`, `\\`, `*`, `\*`, `?`, `\?`, `[`, `\[`, `]`, `\]`)

func escapePattern(s string) string {
	return patternEscaper.Replace(s)
}
