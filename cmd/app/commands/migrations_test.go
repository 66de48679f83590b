package commands

import (
	"database/sql"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/allisson/go-api-starter/internal/testutil"
)

func openMemoryDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", "file::memory:?_pragma=foreign_keys(1)")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestRunMigrations(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	t.Run("sqlite", func(t *testing.T) {
		db := openMemoryDB(t)
		root := testutil.MigrationsRoot(t)

		require.NoError(t, RunMigrations(logger, db, "sqlite", root))
		// a second run has nothing to apply
		require.NoError(t, RunMigrations(logger, db, "sqlite", root))

		var count int
		require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM users").Scan(&count))
		assert.Equal(t, 0, count)
	})

	t.Run("invalid-driver", func(t *testing.T) {
		err := RunMigrations(logger, openMemoryDB(t), "invalid", testutil.MigrationsRoot(t))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to run migrations")
	})

	t.Run("missing-migrations-directory", func(t *testing.T) {
		err := RunMigrations(logger, openMemoryDB(t), "sqlite", t.TempDir())
		require.Error(t, err)
	})
}
