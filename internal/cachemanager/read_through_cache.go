package cachemanager

import (
	"context"
	"time"
)

// ReadThroughCache serves values from a CacheManager and falls back to fn on a
// miss, storing what fn returns. Errors from fn are never cached.
type ReadThroughCache[K ~string, V any, I any] struct {
	cache  CacheManager[K, V]
	fn     func(ctx context.Context, input I) (V, error)
	bypass bool
}

// NewReadThroughCache wraps fn with cache. With bypass set every call goes
// straight to fn, which is how a zero TTL disables caching.
func NewReadThroughCache[K ~string, V any, I any](
	cache CacheManager[K, V],
	fn func(ctx context.Context, input I) (V, error),
	bypass bool,
) *ReadThroughCache[K, V, I] {
	return &ReadThroughCache[K, V, I]{cache: cache, fn: fn, bypass: bypass}
}

// Get returns the cached value for key or loads it with input.
func (r *ReadThroughCache[K, V, I]) Get(ctx context.Context, key K, input I, ttl time.Duration) (V, error) {
	return r.get(ctx, key, input, ttl, false)
}

// GetWithRefresh is Get, except a hit also pushes the expiry back by ttl.
func (r *ReadThroughCache[K, V, I]) GetWithRefresh(ctx context.Context, key K, input I, ttl time.Duration) (V, error) {
	return r.get(ctx, key, input, ttl, true)
}

func (r *ReadThroughCache[K, V, I]) get(ctx context.Context, key K, input I, ttl time.Duration, refresh bool) (V, error) {
	if r.bypass {
		return r.fn(ctx, input)
	}

	var (
		value V
		hit   bool
	)
	if refresh {
		value, hit = r.cache.GetWithRefresh(ctx, key, ttl)
	} else {
		value, hit = r.cache.Get(ctx, key)
	}
	if hit {
		return value, nil
	}

	value, err := r.fn(ctx, input)
	if err != nil {
		return value, err
	}
	r.cache.Set(ctx, key, value, ttl)
	return value, nil
}

// Invalidate drops the cached values for keys so the next Get reloads them.
func (r *ReadThroughCache[K, V, I]) Invalidate(ctx context.Context, keys ...K) error {
	return r.cache.Delete(ctx, keys...)
}
