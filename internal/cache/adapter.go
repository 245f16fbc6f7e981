package cache

import (
	"context"
	"errors"
	"time"

	"github.com/ross1116/pokeref/internal/cache/local"
	cacheredis "github.com/ross1116/pokeref/internal/cache/redis"
)

// ErrNotFound is returned by every backend on a miss or an expired entry.
var ErrNotFound = errors.New("cache: key not found")

// Cache stores raw API responses keyed by request URL.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
	Exists(ctx context.Context, key string) (bool, error)
	// Flush drops every entry owned by this cache.
	Flush(ctx context.Context) error
	Close() error
}

// Config holds configuration for both Redis and the local cache.
type Config struct {
	RedisAddr       string
	RedisPassword   string
	RedisDB         int
	LocalGCInterval time.Duration
}

// New returns a Cache backed by Redis if RedisAddr is set,
// otherwise an in-process LocalCache.
func New(cfg Config) (Cache, error) {
	if cfg.RedisAddr != "" {
		rc, err := cacheredis.NewCache(cacheredis.Config{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err != nil {
			return nil, err
		}
		return &redisAdapter{rc}, nil
	}
	lc, err := local.NewCache(local.Config{GCInterval: cfg.LocalGCInterval})
	if err != nil {
		return nil, err
	}
	return &localAdapter{lc}, nil
}

// IsNotFound reports whether err is a miss from any backend.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, local.ErrNotFound) ||
		errors.Is(err, cacheredis.ErrNotFound)
}

// ---- adapters mapping backend misses onto cache.ErrNotFound ----

type localAdapter struct {
	*local.LocalCache
}

func (a *localAdapter) Get(ctx context.Context, key string) (string, error) {
	v, err := a.LocalCache.Get(ctx, key)
	if errors.Is(err, local.ErrNotFound) {
		return "", ErrNotFound
	}
	return v, err
}

func (a *localAdapter) Close() error {
	a.LocalCache.Close()
	return nil
}

type redisAdapter struct {
	*cacheredis.RedisCache
}

func (a *redisAdapter) Get(ctx context.Context, key string) (string, error) {
	v, err := a.RedisCache.Get(ctx, key)
	if errors.Is(err, cacheredis.ErrNotFound) {
		return "", ErrNotFound
	}
	return v, err
}
