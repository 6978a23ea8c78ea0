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

const plateColumns = `id, plate, owner, created_at`

// plateRepository implements domain.AuthorizedRepository on the plates table.
type plateRepository struct {
	db        *sql.DB
	publisher pubsub.Publisher[domain.Change]
}

func newPlateRepository(db *sql.DB, publisher pubsub.Publisher[domain.Change]) *plateRepository {
	return &plateRepository{db: db, publisher: publisher}
}

var _ domain.AuthorizedRepository = (*plateRepository)(nil)

func scanPlate(s scanner) (*domain.AuthorizedRecord, error) {
	var m plateModel
	if err := s.Scan(&m.ID, &m.Plate, &m.Owner, &m.CreatedAt); err != nil {
		return nil, err
	}
	return m.toDomain(), nil
}

func (r *plateRepository) FindByKey(ctx context.Context, key domain.PlateKey) (*domain.AuthorizedRecord, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+plateColumns+` FROM plates WHERE plate = ?`, key.String())
	record, err := scanPlate(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &domain.NotFoundError{Collection: domain.CollectionPlates, Key: key}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find plate by key: %w", err)
	}
	return record, nil
}

func (r *plateRepository) FindByID(ctx context.Context, id string) (*domain.AuthorizedRecord, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+plateColumns+` FROM plates WHERE id = ?`, id)
	record, err := scanPlate(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &domain.NotFoundError{Collection: domain.CollectionPlates, ID: id}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find plate by id: %w", err)
	}
	return record, nil
}

// List returns every plate, newest registration first.
func (r *plateRepository) List(ctx context.Context) ([]*domain.AuthorizedRecord, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+plateColumns+` FROM plates ORDER BY created_at DESC, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list plates: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var records []*domain.AuthorizedRecord
	for rows.Next() {
		record, err := scanPlate(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan plate: %w", err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate plates: %w", err)
	}
	return records, nil
}

func (r *plateRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM plates`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count plates: %w", err)
	}
	return n, nil
}

func (r *plateRepository) Insert(ctx context.Context, record *domain.AuthorizedRecord) error {
	m := toPlateModel(record)
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO plates (id, plate, owner, created_at) VALUES (?, ?, ?, ?)`,
		m.ID, m.Plate, m.Owner, m.CreatedAt,
	)
	if isUniqueViolation(err) {
		return &domain.DuplicateKeyError{Collection: domain.CollectionPlates, Key: record.Key()}
	}
	if err != nil {
		return fmt.Errorf("failed to insert plate: %w", err)
	}

	log.Debug(log.CatDB, "plate inserted", "id", m.ID, "plate", m.Plate)
	r.publisher.Publish(pubsub.CreatedEvent, domain.Change{Collection: domain.CollectionPlates, Key: record.Key(), ID: m.ID})
	return nil
}

func (r *plateRepository) Update(ctx context.Context, id string, update domain.AuthorizedUpdate) (*domain.AuthorizedRecord, error) {
	row := r.db.QueryRowContext(ctx,
		`UPDATE plates SET plate = ?, owner = ? WHERE id = ? RETURNING `+plateColumns,
		update.Key.String(), update.Owner, id,
	)
	record, err := scanPlate(row)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return nil, &domain.NotFoundError{Collection: domain.CollectionPlates, ID: id}
	case isUniqueViolation(err):
		return nil, &domain.DuplicateKeyError{Collection: domain.CollectionPlates, Key: update.Key}
	case err != nil:
		return nil, fmt.Errorf("failed to update plate: %w", err)
	}

	log.Debug(log.CatDB, "plate updated", "id", id, "plate", record.Key())
	r.publisher.Publish(pubsub.UpdatedEvent, domain.Change{Collection: domain.CollectionPlates, Key: record.Key(), ID: id})
	return record, nil
}

func (r *plateRepository) Remove(ctx context.Context, id string) error {
	var plate string
	err := r.db.QueryRowContext(ctx, `DELETE FROM plates WHERE id = ? RETURNING plate`, id).Scan(&plate)
	if errors.Is(err, sql.ErrNoRows) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to delete plate: %w", err)
	}

	log.Debug(log.CatDB, "plate deleted", "id", id, "plate", plate)
	r.publisher.Publish(pubsub.DeletedEvent, domain.Change{Collection: domain.CollectionPlates, Key: domain.PlateKey(plate), ID: id})
	return nil
}
