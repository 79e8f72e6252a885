package redis

import (
	"context"
	"fmt"

	"github.com/Badsnus/cu-events/internal/adapters/database/redis/cache"
	"github.com/Badsnus/cu-events/internal/adapters/database/redis/sessions"
	"github.com/redis/go-redis/v9"
)

type Client struct {
	Cache    *cache.Redis
	Sessions *sessions.Storage

	clients []*redis.Client
}

type Options struct {
	Host       string
	Port       string
	Password   string
	CacheDB    int
	SessionsDB int
	KeyPrefix  string
}

func New(opts Options) (*Client, error) {
	cacheStorage := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", opts.Host, opts.Port),
		Password: opts.Password,
		DB:       opts.CacheDB,
	})
	if err := cacheStorage.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to ping cache storage: %w", err)
	}

	sessionStorage := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", opts.Host, opts.Port),
		Password: opts.Password,
		DB:       opts.SessionsDB,
	})
	if err := sessionStorage.Ping(context.Background()).Err(); err != nil {
		_ = cacheStorage.Close()
		return nil, fmt.Errorf("failed to ping sessions storage: %w", err)
	}

	return &Client{
		Cache:    cache.NewRedis(cacheStorage, opts.KeyPrefix),
		Sessions: sessions.NewStorage(sessionStorage),
		clients:  []*redis.Client{cacheStorage, sessionStorage},
	}, nil
}

func (c *Client) Close() error {
	var firstErr error
	for _, client := range c.clients {
		if err := client.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
