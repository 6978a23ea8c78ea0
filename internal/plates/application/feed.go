package application

import (
	"context"
	"fmt"

	"github.com/zjrosen/platekeeper/internal/log"
	"github.com/zjrosen/platekeeper/internal/plates/domain"
)

// Snapshot is the dashboard's view of the registry at one point in time.
type Snapshot struct {
	PlateCount     int
	BlacklistCount int
	// LastEntry is nil when the feed is empty.
	LastEntry *domain.EntryEvent
}

// RecordEntry appends a sensor reading for rawPlate to the entry feed.
func (s *RegistryService) RecordEntry(ctx context.Context, rawPlate string) (*domain.EntryEvent, error) {
	key, verr := validateKey(rawPlate)
	if verr != nil {
		return nil, verr
	}
	event := domain.NewEntryEvent(key, s.clock.Now())
	if err := s.entries.Append(ctx, event); err != nil {
		return nil, fmt.Errorf("recording entry for %s: %w", key, err)
	}
	log.Debug(log.CatFeed, "entry recorded", "plate", key, "seq", event.ID())
	return event, nil
}

// LatestEntry returns the newest entry event, or a NotFoundError when the
// feed is empty.
func (s *RegistryService) LatestEntry(ctx context.Context) (*domain.EntryEvent, error) {
	return s.entries.Latest(ctx)
}

// RecentEntries returns up to limit entry events, newest first.
func (s *RegistryService) RecentEntries(ctx context.Context, limit int) ([]*domain.EntryEvent, error) {
	events, err := s.entries.ListRecent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("listing entries: %w", err)
	}
	return events, nil
}

// Snapshot reads the counts and the newest entry.
func (s *RegistryService) Snapshot(ctx context.Context) (Snapshot, error) {
	var snap Snapshot
	var err error

	if snap.PlateCount, err = s.plates.Count(ctx); err != nil {
		return Snapshot{}, fmt.Errorf("counting plates: %w", err)
	}
	if snap.BlacklistCount, err = s.blacklist.Count(ctx); err != nil {
		return Snapshot{}, fmt.Errorf("counting blacklist: %w", err)
	}

	last, err := s.entries.Latest(ctx)
	switch {
	case err == nil:
		snap.LastEntry = last
	case !isNotFound(err):
		return Snapshot{}, fmt.Errorf("reading latest entry: %w", err)
	}
	return snap, nil
}
