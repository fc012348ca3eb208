package database

import (
	"database/sql"
	"errors"
	"fmt"
	"io/fs"

	"github.com/golang-migrate/migrate/v4"
	migratedb "github.com/golang-migrate/migrate/v4/database"
	migratepg "github.com/golang-migrate/migrate/v4/database/postgres"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

// Migrate applies all pending versioned migrations found under dir in fsys.
// Files follow golang-migrate naming: VERSION_name.up.sql / .down.sql.
// An up-to-date schema is not an error.
func (d *DB) Migrate(fsys fs.FS, dir string) error {
	m, err := d.migrator(fsys, dir)
	if err != nil {
		return err
	}
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migrate up: %w", err)
	}
	version, dirty, err := m.Version()
	if err == nil {
		d.log.Info("Database migrated", map[string]interface{}{
			"version": version,
			"dirty":   dirty,
		})
	}
	return nil
}

// MigrateDown rolls back every applied migration.
func (d *DB) MigrateDown(fsys fs.FS, dir string) error {
	m, err := d.migrator(fsys, dir)
	if err != nil {
		return err
	}
	if err := m.Down(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migrate down: %w", err)
	}
	return nil
}

// migrator builds a golang-migrate instance over the shared pool.
// Callers must not Close it, which would close the pool too.
func (d *DB) migrator(fsys fs.FS, dir string) (*migrate.Migrate, error) {
	sqlDB, err := d.GormDB.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql.DB: %w", err)
	}

	driver, err := migrationDriver(d.cfg.Driver, sqlDB)
	if err != nil {
		return nil, fmt.Errorf("create migration driver: %w", err)
	}

	src, err := iofs.New(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("create iofs source: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", src, d.cfg.Driver, driver)
	if err != nil {
		return nil, fmt.Errorf("create migrator: %w", err)
	}
	return m, nil
}

func migrationDriver(name string, db *sql.DB) (migratedb.Driver, error) {
	switch name {
	case DriverSQLite:
		return migratesqlite.WithInstance(db, &migratesqlite.Config{})
	case DriverPostgres:
		return migratepg.WithInstance(db, &migratepg.Config{})
	default:
		return nil, fmt.Errorf("no migration driver for %q", name)
	}
}
