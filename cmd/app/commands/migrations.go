package commands

import (
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/allisson/go-api-starter/internal/database"
)

// RunMigrations applies every pending migration for driver from
// migrationsRoot/<dir>, where dir is postgresql, mysql or sqlite. Nothing to
// apply is not an error.
func RunMigrations(logger *slog.Logger, db *sql.DB, driver, migrationsRoot string) error {
	logger.Info("running database migrations",
		slog.String("driver", driver),
		slog.String("path", migrationsRoot),
	)

	if err := database.MigrateUp(db, driver, migrationsRoot); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	logger.Info("migrations completed successfully")
	return nil
}
