package migrate

import (
	"bytes"
	"context"
	"database/sql"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"testing/fstest"

	_ "github.com/tursodatabase/go-libsql"
)

func testDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("libsql", "file:"+filepath.Join(t.TempDir(), "migrate.db"))
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func tableExists(t *testing.T, db *sql.DB, name string) bool {
	t.Helper()
	var count int
	err := db.QueryRow(`SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = ?`, name).Scan(&count)
	if err != nil {
		t.Fatalf("Failed to query sqlite_master: %v", err)
	}
	return count == 1
}

func TestLoad(t *testing.T) {
	fsys := fstest.MapFS{
		"002_second.up.sql":   {Data: []byte("CREATE TABLE b (id INTEGER)")},
		"001_first.up.sql":    {Data: []byte("CREATE TABLE a (id INTEGER)")},
		"001_first.down.sql":  {Data: []byte("DROP TABLE a")},
		"README.md":           {Data: []byte("ignored")},
		"003_broken.down.sql": {Data: []byte("ignored without an up file")},
	}

	got, err := Load(fsys)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0].Version != 1 || got[0].Name != "first" || got[0].DownSQL != "DROP TABLE a" {
		t.Errorf("first = %+v", got[0])
	}
	if got[1].Version != 2 || got[1].DownSQL != "" {
		t.Errorf("second = %+v", got[1])
	}
}

func TestSplitSQL(t *testing.T) {
	got := SplitSQL("CREATE TABLE a (x);\n\n  ;CREATE INDEX i ON a(x);\n")
	want := []string{"CREATE TABLE a (x)", "CREATE INDEX i ON a(x)"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("SplitSQL() = %q, want %q", got, want)
	}
}

func TestRunAll_CreatesSlotsTable(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	if err := RunAll(ctx, db); err != nil {
		t.Fatalf("RunAll: %v", err)
	}
	if !tableExists(t, db, "slots") {
		t.Fatal("slots table should exist after migrating")
	}

	// idempotent
	if err := RunAll(ctx, db); err != nil {
		t.Fatalf("second RunAll: %v", err)
	}
}

func TestRunner_UpAndDown(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	all := []Migration{
		{Version: 1, Name: "first", UpSQL: "CREATE TABLE a (id INTEGER);", DownSQL: "DROP TABLE a;"},
		{Version: 2, Name: "second", UpSQL: "CREATE TABLE b (id INTEGER);", DownSQL: "DROP TABLE b;"},
	}

	var out bytes.Buffer
	r := NewRunnerWith(db, &out, all)

	if err := r.Up(ctx); err != nil {
		t.Fatalf("Up: %v", err)
	}
	version, dirty, err := r.Version(ctx)
	if err != nil || version != 2 || dirty {
		t.Fatalf("Version() = %d, %v, %v; want 2, false, nil", version, dirty, err)
	}
	if !strings.Contains(out.String(), "up 002_second") {
		t.Errorf("progress output missing migration name:\n%s", out.String())
	}

	if err := r.To(ctx, 1); err != nil {
		t.Fatalf("To(1): %v", err)
	}
	if tableExists(t, db, "b") || !tableExists(t, db, "a") {
		t.Error("down migration to 1 should drop only table b")
	}

	if err := r.To(ctx, 0); err != nil {
		t.Fatalf("To(0): %v", err)
	}
	if version, _, _ := r.Version(ctx); version != 0 {
		t.Errorf("version after rollback = %d, want 0", version)
	}

	if err := r.To(ctx, 7); err == nil {
		t.Error("To(unknown version) should fail")
	}
}

func TestRunner_RefusesDirtyDatabase(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	all := []Migration{{Version: 1, Name: "bad", UpSQL: "CREATE TABLE"}}
	r := NewRunnerWith(db, nil, all)

	if err := r.Up(ctx); err == nil {
		t.Fatal("broken migration should fail")
	}
	if _, dirty, _ := r.Version(ctx); !dirty {
		t.Fatal("failed migration should leave the dirty flag set")
	}
	if err := r.Up(ctx); err == nil || !strings.Contains(err.Error(), "dirty") {
		t.Errorf("Up on dirty database = %v, want dirty error", err)
	}
}
