package testutil

import (
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type timedPlate struct {
	plate string
	at    time.Time
}

// Builder accumulates registry rows and inserts them in one pass.
// Plates are expected already normalized.
type Builder struct {
	t         *testing.T
	db        *sql.DB
	plates    []plateData
	blacklist []timedPlate
	entries   []timedPlate
}

// NewBuilder creates a builder for the given test database.
func NewBuilder(t *testing.T, db *sql.DB) *Builder {
	t.Helper()
	return &Builder{t: t, db: db}
}

// WithPlate adds an authorized plate with optional configuration.
func (b *Builder) WithPlate(plate string, opts ...PlateOption) *Builder {
	p := defaultPlate(plate)
	for _, opt := range opts {
		opt(&p)
	}
	b.plates = append(b.plates, p)
	return b
}

// WithBlacklisted adds a blacklist record.
func (b *Builder) WithBlacklisted(plate string, at time.Time) *Builder {
	b.blacklist = append(b.blacklist, timedPlate{plate: plate, at: at})
	return b
}

// WithEntry appends an entry event. Entries keep the order they were added in.
func (b *Builder) WithEntry(plate string, at time.Time) *Builder {
	b.entries = append(b.entries, timedPlate{plate: plate, at: at})
	return b
}

// Build inserts all accumulated rows.
func (b *Builder) Build() {
	b.t.Helper()
	for _, p := range b.plates {
		_, err := b.db.Exec(
			`INSERT INTO plates (id, plate, owner, created_at) VALUES (?, ?, ?, ?)`,
			p.id, p.plate, p.owner, p.createdAt.UnixMilli(),
		)
		require.NoError(b.t, err, "insert plate %s", p.plate)
	}
	for _, bl := range b.blacklist {
		_, err := b.db.Exec(`INSERT INTO blacklist (plate, timestamp) VALUES (?, ?)`, bl.plate, bl.at.UnixMilli())
		require.NoError(b.t, err, "insert blacklist %s", bl.plate)
	}
	for _, e := range b.entries {
		_, err := b.db.Exec(`INSERT INTO entries (plate, timestamp) VALUES (?, ?)`, e.plate, e.at.UnixMilli())
		require.NoError(b.t, err, "insert entry %s", e.plate)
	}
}
