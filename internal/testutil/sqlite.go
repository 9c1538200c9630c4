package testutil

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/trtslyr/islajournal/internal/database"
)

// NewTestDB opens a fresh migrated SQLite database under t.TempDir and
// closes it when the test finishes.
func NewTestDB(ctx context.Context, t *testing.T) *sql.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "isla-test.db")
	db, err := database.Open(ctx, path)
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := database.Migrate(db); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return db
}
