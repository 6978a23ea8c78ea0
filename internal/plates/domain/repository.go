package domain

import "context"

// AuthorizedRepository defines the persistence interface for the authorized
// collection. Implementations may use SQLite, in-memory storage, or other backends.
type AuthorizedRepository interface {
	// FindByKey retrieves the record holding key.
	// Returns NotFoundError if no record has that key.
	FindByKey(ctx context.Context, key PlateKey) (*AuthorizedRecord, error)

	// FindByID retrieves a record by its document id.
	// Returns NotFoundError if no record has that id.
	FindByID(ctx context.Context, id string) (*AuthorizedRecord, error)

	// List returns a snapshot of every record. Ordering is not guaranteed.
	List(ctx context.Context) ([]*AuthorizedRecord, error)

	// Count returns the number of records.
	Count(ctx context.Context) (int, error)

	// Insert stores a new record.
	// Returns DuplicateKeyError if a record with the same key already exists;
	// an existing record is never overwritten.
	Insert(ctx context.Context, record *AuthorizedRecord) error

	// Update replaces the mutable fields of the record with the given id and
	// returns the updated record.
	// Returns NotFoundError if no record has that id, and DuplicateKeyError if
	// the new key is held by another record.
	Update(ctx context.Context, id string, update AuthorizedUpdate) (*AuthorizedRecord, error)

	// Remove deletes the record with the given id. Removing an absent id is a no-op.
	Remove(ctx context.Context, id string) error
}

// BlacklistRepository defines the persistence interface for the blacklist
// collection. Records are keyed by the plate key itself.
type BlacklistRepository interface {
	// FindByKey retrieves the blacklist record for key.
	// Returns NotFoundError if the key is not blacklisted.
	FindByKey(ctx context.Context, key PlateKey) (*BlacklistRecord, error)

	// List returns a snapshot of every record. Ordering is not guaranteed.
	List(ctx context.Context) ([]*BlacklistRecord, error)

	// Count returns the number of records.
	Count(ctx context.Context) (int, error)

	// Insert stores a new record.
	// Returns DuplicateKeyError if the key is already blacklisted.
	Insert(ctx context.Context, record *BlacklistRecord) error

	// Put stores the record, overwriting any existing record for the same key.
	Put(ctx context.Context, record *BlacklistRecord) error

	// Remove deletes the record for key. Removing an absent key is a no-op.
	Remove(ctx context.Context, key PlateKey) error
}

// EntryRepository defines the persistence interface for the entry feed.
type EntryRepository interface {
	// Append stores a new event and assigns its ID.
	Append(ctx context.Context, event *EntryEvent) error

	// Latest returns the newest event.
	// Returns NotFoundError if the feed is empty.
	Latest(ctx context.Context) (*EntryEvent, error)

	// ListRecent returns up to limit events, newest first.
	ListRecent(ctx context.Context, limit int) ([]*EntryEvent, error)
}
