package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/zjrosen/platekeeper/internal/plates/domain"
	"github.com/zjrosen/platekeeper/internal/pubsub"
)

// entryRepository implements domain.EntryRepository on the append-only entries table.
type entryRepository struct {
	db        *sql.DB
	publisher pubsub.Publisher[domain.Change]
}

func newEntryRepository(db *sql.DB, publisher pubsub.Publisher[domain.Change]) *entryRepository {
	return &entryRepository{db: db, publisher: publisher}
}

var _ domain.EntryRepository = (*entryRepository)(nil)

func scanEntry(s scanner) (*domain.EntryEvent, error) {
	var m entryModel
	if err := s.Scan(&m.ID, &m.Plate, &m.Timestamp); err != nil {
		return nil, err
	}
	return m.toDomain(), nil
}

func (r *entryRepository) Append(ctx context.Context, event *domain.EntryEvent) error {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO entries (plate, timestamp) VALUES (?, ?)`,
		event.Plate().String(), event.Timestamp().UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("failed to append entry: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}
	event.SetID(id)

	r.publisher.Publish(pubsub.CreatedEvent, domain.Change{Collection: domain.CollectionEntries, Key: event.Plate()})
	return nil
}

// Latest returns the most recently appended event. Sequence order is used
// rather than the timestamp so events with equal timestamps stay ordered.
func (r *entryRepository) Latest(ctx context.Context) (*domain.EntryEvent, error) {
	row := r.db.QueryRowContext(ctx, `SELECT id, plate, timestamp FROM entries ORDER BY id DESC LIMIT 1`)
	event, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &domain.NotFoundError{Collection: domain.CollectionEntries}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read latest entry: %w", err)
	}
	return event, nil
}

func (r *entryRepository) ListRecent(ctx context.Context, limit int) ([]*domain.EntryEvent, error) {
	if limit <= 0 {
		return nil, nil
	}
	rows, err := r.db.QueryContext(ctx, `SELECT id, plate, timestamp FROM entries ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list entries: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var events []*domain.EntryEvent
	for rows.Next() {
		event, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan entry: %w", err)
		}
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate entries: %w", err)
	}
	return events, nil
}
