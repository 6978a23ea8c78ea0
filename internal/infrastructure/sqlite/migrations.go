package sqlite

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	"github.com/zjrosen/platekeeper/internal/log"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

// runMigrations brings the schema at dsn up to the latest version.
// migrate closes the connection it is given, so it gets its own.
func runMigrations(dsn string) error {
	conn, err := sql.Open(driverName, dsn)
	if err != nil {
		return fmt.Errorf("opening migration connection: %w", err)
	}

	source, err := iofs.New(migrationFiles, "migrations")
	if err != nil {
		_ = conn.Close()
		return fmt.Errorf("loading migrations: %w", err)
	}

	target, err := migratesqlite.WithInstance(conn, &migratesqlite.Config{})
	if err != nil {
		_ = conn.Close()
		return fmt.Errorf("preparing migration target: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, "sqlite", target)
	if err != nil {
		_ = conn.Close()
		return fmt.Errorf("creating migrator: %w", err)
	}
	defer func() {
		srcErr, dbErr := m.Close()
		if srcErr != nil || dbErr != nil {
			log.Warn(log.CatDB, "closing migrator", "source_error", srcErr, "db_error", dbErr)
		}
	}()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("applying migrations: %w", err)
	}

	version, dirty, err := m.Version()
	if err == nil {
		log.Debug(log.CatDB, "schema ready", "version", version, "dirty", dirty)
	}
	return nil
}
