// Package testutil seeds registry databases for tests.
package testutil

import (
	"database/sql"
	"path/filepath"
	"testing"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
	"github.com/stretchr/testify/require"
)

// Schema mirrors the registry migrations for tests that need raw tables
// without going through the store.
const Schema = `
CREATE TABLE plates (
	id TEXT PRIMARY KEY,
	plate TEXT NOT NULL,
	owner TEXT NOT NULL,
	created_at INTEGER NOT NULL
);
CREATE UNIQUE INDEX idx_plates_plate ON plates(plate);

CREATE TABLE blacklist (
	plate TEXT PRIMARY KEY,
	timestamp INTEGER NOT NULL
);

CREATE TABLE entries (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	plate TEXT NOT NULL,
	timestamp INTEGER NOT NULL
);
`

// NewTestDB opens a fresh database file under t.TempDir with Schema applied.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite3", "file:"+filepath.ToSlash(filepath.Join(t.TempDir(), "test.db")))
	require.NoError(t, err)

	_, err = db.Exec(Schema)
	require.NoError(t, err)
	return db
}
