package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/zjrosen/platekeeper/internal/log"
	"github.com/zjrosen/platekeeper/internal/plates/domain"
	"github.com/zjrosen/platekeeper/internal/pubsub"
)

// blacklistRepository implements domain.BlacklistRepository on the blacklist table.
type blacklistRepository struct {
	db        *sql.DB
	publisher pubsub.Publisher[domain.Change]
}

func newBlacklistRepository(db *sql.DB, publisher pubsub.Publisher[domain.Change]) *blacklistRepository {
	return &blacklistRepository{db: db, publisher: publisher}
}

var _ domain.BlacklistRepository = (*blacklistRepository)(nil)

func scanBlacklist(s scanner) (*domain.BlacklistRecord, error) {
	var m blacklistModel
	if err := s.Scan(&m.Plate, &m.Timestamp); err != nil {
		return nil, err
	}
	return m.toDomain(), nil
}

func (r *blacklistRepository) FindByKey(ctx context.Context, key domain.PlateKey) (*domain.BlacklistRecord, error) {
	row := r.db.QueryRowContext(ctx, `SELECT plate, timestamp FROM blacklist WHERE plate = ?`, key.String())
	record, err := scanBlacklist(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &domain.NotFoundError{Collection: domain.CollectionBlacklist, Key: key}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find blacklist record: %w", err)
	}
	return record, nil
}

// List returns every blacklisted plate, most recently blacklisted first.
func (r *blacklistRepository) List(ctx context.Context) ([]*domain.BlacklistRecord, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT plate, timestamp FROM blacklist ORDER BY timestamp DESC, plate`)
	if err != nil {
		return nil, fmt.Errorf("failed to list blacklist: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var records []*domain.BlacklistRecord
	for rows.Next() {
		record, err := scanBlacklist(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan blacklist record: %w", err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate blacklist: %w", err)
	}
	return records, nil
}

func (r *blacklistRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM blacklist`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count blacklist: %w", err)
	}
	return n, nil
}

func (r *blacklistRepository) Insert(ctx context.Context, record *domain.BlacklistRecord) error {
	m := toBlacklistModel(record)
	_, err := r.db.ExecContext(ctx, `INSERT INTO blacklist (plate, timestamp) VALUES (?, ?)`, m.Plate, m.Timestamp)
	if isUniqueViolation(err) {
		return &domain.DuplicateKeyError{Collection: domain.CollectionBlacklist, Key: record.Key()}
	}
	if err != nil {
		return fmt.Errorf("failed to insert blacklist record: %w", err)
	}

	log.Debug(log.CatDB, "plate blacklisted", "plate", m.Plate)
	r.publisher.Publish(pubsub.CreatedEvent, domain.Change{Collection: domain.CollectionBlacklist, Key: record.Key()})
	return nil
}

// Put upserts by plate; a second blacklisting refreshes the timestamp.
func (r *blacklistRepository) Put(ctx context.Context, record *domain.BlacklistRecord) error {
	m := toBlacklistModel(record)
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO blacklist (plate, timestamp) VALUES (?, ?)
		 ON CONFLICT(plate) DO UPDATE SET timestamp = excluded.timestamp`,
		m.Plate, m.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("failed to put blacklist record: %w", err)
	}

	log.Debug(log.CatDB, "plate blacklisted", "plate", m.Plate, "upsert", true)
	r.publisher.Publish(pubsub.UpdatedEvent, domain.Change{Collection: domain.CollectionBlacklist, Key: record.Key()})
	return nil
}

func (r *blacklistRepository) Remove(ctx context.Context, key domain.PlateKey) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM blacklist WHERE plate = ?`, key.String())
	if err != nil {
		return fmt.Errorf("failed to delete blacklist record: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return nil
	}

	log.Debug(log.CatDB, "plate removed from blacklist", "plate", key)
	r.publisher.Publish(pubsub.DeletedEvent, domain.Change{Collection: domain.CollectionBlacklist, Key: key})
	return nil
}
