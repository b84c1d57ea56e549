package database

import (
	"embed"
	"errors"
	"fmt"
	"log/slog"

	"github.com/golang-migrate/migrate/v4"
	// sqlite3 driver registration for migrations
	_ "github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// SchemaVersion is the only schema version this build can read.
const SchemaVersion uint = 2

// Migrator is the subset of *migrate.Migrate the store needs.
type Migrator interface {
	Up() error
	Drop() error
	Version() (version uint, dirty bool, err error)
	Close() (source error, database error)
}

// MigrationEngine opens a Migrator for the database file at dbPath.
type MigrationEngine func(dbPath string) (Migrator, error)

// DefaultEngine reads the embedded migrations and talks to SQLite directly.
func DefaultEngine(dbPath string) (Migrator, error) {
	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return nil, fmt.Errorf("load embedded migrations: %w", err)
	}
	m, err := migrate.NewWithSourceInstance("iofs", src, "sqlite3://"+dbPath)
	if err != nil {
		return nil, err
	}
	return m, nil
}

// Migration applies the destructive schema policy: a database is either
// exactly at SchemaVersion, or it is wiped and rebuilt. Nothing is
// migrated field by field.
type Migration struct {
	path   string
	engine MigrationEngine
	log    *slog.Logger
}

func NewMigration(dbPath string, engine MigrationEngine, logger *slog.Logger) *Migration {
	if engine == nil {
		engine = DefaultEngine
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Migration{
		path:   dbPath,
		engine: engine,
		log:    logger,
	}
}

// Run brings the schema to SchemaVersion. created reports whether the
// schema was built from scratch, in which case the caller seeds it.
func (mg *Migration) Run() (created bool, err error) {
	m, err := mg.engine(mg.path)
	if err != nil {
		return false, fmt.Errorf("open migrator: %w", err)
	}

	version, dirty, verr := m.Version()
	switch {
	case verr == nil && !dirty && version == SchemaVersion:
		return false, closeMigrator(m)
	case verr != nil && !errors.Is(verr, migrate.ErrNilVersion):
		return false, errors.Join(fmt.Errorf("read schema version: %w", verr), closeMigrator(m))
	case verr == nil:
		mg.log.Warn("incompatible schema, recreating database",
			"found_version", version,
			"dirty", dirty,
			"want_version", SchemaVersion,
		)
	}

	// Drop also clears stray tables from files that never had a version.
	if err := m.Drop(); err != nil {
		return false, errors.Join(fmt.Errorf("drop schema: %w", err), closeMigrator(m))
	}
	if err := closeMigrator(m); err != nil {
		return false, err
	}

	// The version table went with the drop; a fresh migrator recreates it.
	m, err = mg.engine(mg.path)
	if err != nil {
		return false, fmt.Errorf("reopen migrator: %w", err)
	}
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return false, errors.Join(fmt.Errorf("migration up: %w", err), closeMigrator(m))
	}
	return true, closeMigrator(m)
}

func closeMigrator(m Migrator) error {
	srcErr, dbErr := m.Close()
	if srcErr != nil {
		srcErr = fmt.Errorf("migration source: %w", srcErr)
	}
	if dbErr != nil {
		dbErr = fmt.Errorf("migration database: %w", dbErr)
	}
	return errors.Join(srcErr, dbErr)
}
