package database

import (
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/golang-migrate/migrate/v4"
	migratedb "github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/database/mysql"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

var migrationDirs = map[string]string{
	DriverPostgres: "postgresql",
	DriverMySQL:    "mysql",
	DriverSQLite:   "sqlite",
}

// MigrationsDir returns the migrations subdirectory used for driver.
func MigrationsDir(driver string) (string, error) {
	dir, ok := migrationDirs[driver]
	if !ok {
		return "", fmt.Errorf("unsupported database driver: %s", driver)
	}
	return dir, nil
}

// NewMigrate creates a migrate instance on top of an existing connection.
// migrationsRoot holds one directory per driver (see MigrationsDir).
//
// Closing the returned instance closes db as well.
func NewMigrate(db *sql.DB, driver, migrationsRoot string) (*migrate.Migrate, error) {
	dir, err := MigrationsDir(driver)
	if err != nil {
		return nil, err
	}

	var instance migratedb.Driver
	switch driver {
	case DriverPostgres:
		instance, err = postgres.WithInstance(db, &postgres.Config{})
	case DriverMySQL:
		instance, err = mysql.WithInstance(db, &mysql.Config{})
	case DriverSQLite:
		instance, err = sqlite.WithInstance(db, &sqlite.Config{})
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create %s migration driver: %w", driver, err)
	}

	path, err := filepath.Abs(filepath.Join(migrationsRoot, dir))
	if err != nil {
		return nil, fmt.Errorf("failed to resolve migrations path: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance("file://"+path, driver, instance)
	if err != nil {
		return nil, fmt.Errorf("failed to create migrate instance: %w", err)
	}
	return m, nil
}

// MigrateUp applies all pending migrations. It leaves db open.
func MigrateUp(db *sql.DB, driver, migrationsRoot string) error {
	m, err := NewMigrate(db, driver, migrationsRoot)
	if err != nil {
		return err
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}
