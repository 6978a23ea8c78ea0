package application

import (
	"context"
	"time"

	"github.com/zjrosen/platekeeper/internal/cachemanager"
	"github.com/zjrosen/platekeeper/internal/log"
	"github.com/zjrosen/platekeeper/internal/plates/domain"
	"github.com/zjrosen/platekeeper/internal/pubsub"
)

type listKey string

const (
	platesListKey    listKey = "plates"
	blacklistListKey listKey = "blacklist"
)

// ListCache serves the plate and blacklist listings from memory. Entries are
// dropped when the local store publishes a change or when InvalidateAll is
// called for a change made by another session.
type ListCache struct {
	plates    *cachemanager.ReadThroughCache[listKey, []*domain.AuthorizedRecord, struct{}]
	blacklist *cachemanager.ReadThroughCache[listKey, []*domain.BlacklistRecord, struct{}]
	ttl       time.Duration
}

// NewListCache wraps the service's list calls. A zero ttl disables caching.
func NewListCache(svc *RegistryService, ttl time.Duration) *ListCache {
	skip := ttl <= 0
	return &ListCache{
		plates: cachemanager.NewReadThroughCache[listKey, []*domain.AuthorizedRecord, struct{}](
			cachemanager.NewInMemoryCacheManager[listKey, []*domain.AuthorizedRecord]("plate-list", ttl, cachemanager.DefaultCleanupInterval),
			func(ctx context.Context, _ struct{}) ([]*domain.AuthorizedRecord, error) {
				return svc.ListPlates(ctx)
			},
			skip,
		),
		blacklist: cachemanager.NewReadThroughCache[listKey, []*domain.BlacklistRecord, struct{}](
			cachemanager.NewInMemoryCacheManager[listKey, []*domain.BlacklistRecord]("blacklist-list", ttl, cachemanager.DefaultCleanupInterval),
			func(ctx context.Context, _ struct{}) ([]*domain.BlacklistRecord, error) {
				return svc.ListBlacklist(ctx)
			},
			skip,
		),
		ttl: ttl,
	}
}

// Plates returns the authorized records.
func (c *ListCache) Plates(ctx context.Context) ([]*domain.AuthorizedRecord, error) {
	return c.plates.Get(ctx, platesListKey, struct{}{}, c.ttl)
}

// Blacklist returns the blacklist records.
func (c *ListCache) Blacklist(ctx context.Context) ([]*domain.BlacklistRecord, error) {
	return c.blacklist.Get(ctx, blacklistListKey, struct{}{}, c.ttl)
}

// Invalidate drops the listing for collection. Entry changes are ignored.
func (c *ListCache) Invalidate(ctx context.Context, collection domain.Collection) {
	switch collection {
	case domain.CollectionPlates:
		_ = c.plates.Invalidate(ctx, platesListKey)
	case domain.CollectionBlacklist:
		_ = c.blacklist.Invalidate(ctx, blacklistListKey)
	}
}

// InvalidateAll drops both listings.
func (c *ListCache) InvalidateAll(ctx context.Context) {
	c.Invalidate(ctx, domain.CollectionPlates)
	c.Invalidate(ctx, domain.CollectionBlacklist)
}

// Watch invalidates on every change published by changes until ctx is done.
// When forward is non-nil each change is republished on it after the
// invalidation, so its subscribers never reload a stale listing.
// The returned channel closes when watching stops.
func (c *ListCache) Watch(ctx context.Context, changes pubsub.Subscriber[domain.Change], forward pubsub.Publisher[domain.Change]) <-chan struct{} {
	return pubsub.Relay(ctx, changes, forward, func(event pubsub.Event[domain.Change]) {
		log.Debug(log.CatCache, "change observed", "collection", event.Payload.Collection, "type", event.Type)
		c.Invalidate(ctx, event.Payload.Collection)
	})
}
