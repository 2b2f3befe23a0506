package turso_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/emiliopalmerini/worktime/internal/adapters/turso"
	"github.com/emiliopalmerini/worktime/internal/migrate"
)

func testDB(t *testing.T) *turso.DB {
	t.Helper()

	db, err := turso.Open(turso.Options{Path: filepath.Join(t.TempDir(), "worktime.db")})
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}

	if err := migrate.RunAll(context.Background(), db.DB); err != nil {
		_ = db.Close()
		t.Fatalf("Failed to run migrations: %v", err)
	}

	t.Cleanup(func() { _ = db.Close() })
	return db
}
