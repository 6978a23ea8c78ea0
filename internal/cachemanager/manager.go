// Package cachemanager caches read snapshots of the registry so repeated list
// and count queries between changes are served from memory.
package cachemanager

import (
	"context"
	"time"
)

// CacheManager stores values of type V under string-like keys.
type CacheManager[K ~string, V any] interface {
	Get(ctx context.Context, key K) (V, bool)
	GetWithRefresh(ctx context.Context, key K, ttl time.Duration) (V, bool)
	Set(ctx context.Context, key K, value V, ttl time.Duration)
	Delete(ctx context.Context, keys ...K) error
	Flush(ctx context.Context) error
}
