// Package sqlite implements the registry repositories on a SQLite database
// file that every operator session opens directly.
package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"

	_ "github.com/ncruces/go-sqlite3/driver" // registers "sqlite3"
	_ "github.com/ncruces/go-sqlite3/embed"

	"github.com/zjrosen/platekeeper/internal/log"
	"github.com/zjrosen/platekeeper/internal/plates/domain"
	"github.com/zjrosen/platekeeper/internal/pubsub"
)

const driverName = "sqlite3"

// DB owns the connection pool and the change broker shared by the repositories.
type DB struct {
	conn   *sql.DB
	path   string
	broker *pubsub.Broker[domain.Change]
}

// NewDB opens the database at path, creating its directory and file on first
// run. An existing file is copied to path+".bak" before migrations run.
// Connections use WAL journaling, foreign keys and a 5s busy timeout so
// concurrent sessions wait for each other instead of failing.
func NewDB(path string) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("creating database directory: %w", err)
	}

	if err := backupExisting(path); err != nil {
		return nil, err
	}

	dsn := buildDSN(path)
	if err := runMigrations(dsn); err != nil {
		log.ErrorErr(log.CatDB, "migration failed", err, "path", path)
		return nil, err
	}

	conn, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if err := conn.Ping(); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	log.Info(log.CatDB, "database opened", "path", path)
	return &DB{
		conn:   conn,
		path:   path,
		broker: pubsub.NewBroker[domain.Change](),
	}, nil
}

func buildDSN(path string) string {
	params := url.Values{}
	params.Add("_pragma", "busy_timeout(5000)")
	params.Add("_pragma", "journal_mode(wal)")
	params.Add("_pragma", "foreign_keys(1)")
	return "file:" + filepath.ToSlash(path) + "?" + params.Encode()
}

// backupExisting copies an existing database file to path+".bak".
func backupExisting(path string) error {
	src, err := os.Open(path) //nolint:gosec // G304: path is the configured database
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("opening database for backup: %w", err)
	}
	defer func() { _ = src.Close() }()

	dst, err := os.OpenFile(path+".bak", os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o600) //nolint:gosec // G304: sibling of the database
	if err != nil {
		return fmt.Errorf("creating database backup: %w", err)
	}
	if _, err := io.Copy(dst, src); err != nil {
		_ = dst.Close()
		return fmt.Errorf("writing database backup: %w", err)
	}
	return dst.Close()
}

// Path returns the database file path.
func (db *DB) Path() string {
	return db.path
}

// Connection returns the underlying *sql.DB.
func (db *DB) Connection() *sql.DB {
	return db.conn
}

// Broker returns the broker on which every successful mutation made through
// this DB's repositories is published.
func (db *DB) Broker() *pubsub.Broker[domain.Change] {
	return db.broker
}

// AuthorizedRepository returns the plates repository.
func (db *DB) AuthorizedRepository() domain.AuthorizedRepository {
	return newPlateRepository(db.conn, db.broker)
}

// BlacklistRepository returns the blacklist repository.
func (db *DB) BlacklistRepository() domain.BlacklistRepository {
	return newBlacklistRepository(db.conn, db.broker)
}

// EntryRepository returns the entry feed repository.
func (db *DB) EntryRepository() domain.EntryRepository {
	return newEntryRepository(db.conn, db.broker)
}

// Close closes the broker and the connection pool.
func (db *DB) Close() error {
	db.broker.Close()
	return db.conn.Close()
}
