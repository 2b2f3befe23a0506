package migrate

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"io/fs"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/emiliopalmerini/worktime/migrations"
)

// Migration represents a single database migration with up and down SQL.
type Migration struct {
	Version int
	Name    string
	UpSQL   string
	DownSQL string
}

var upPattern = regexp.MustCompile(`^(\d+)_(.+)\.up\.sql$`)

// Load reads all migration files from fsys and returns them sorted by version.
func Load(fsys fs.FS) ([]Migration, error) {
	var result []Migration

	err := fs.WalkDir(fsys, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		matches := upPattern.FindStringSubmatch(filepath.Base(path))
		if matches == nil {
			return nil
		}

		version, _ := strconv.Atoi(matches[1])
		name := matches[2]

		upSQL, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}

		// down migrations are optional
		downPath := fmt.Sprintf("%03d_%s.down.sql", version, name)
		downSQL, _ := fs.ReadFile(fsys, downPath)

		result = append(result, Migration{
			Version: version,
			Name:    name,
			UpSQL:   string(upSQL),
			DownSQL: string(downSQL),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Version < result[j].Version
	})
	return result, nil
}

// Runner applies migrations to one database and reports progress to out.
type Runner struct {
	db         *sql.DB
	out        io.Writer
	migrations []Migration
}

// NewRunner creates a runner for the embedded migrations.
// A nil out discards progress output.
func NewRunner(db *sql.DB, out io.Writer) (*Runner, error) {
	all, err := Load(migrations.FS)
	if err != nil {
		return nil, fmt.Errorf("failed to load migrations: %w", err)
	}
	return NewRunnerWith(db, out, all), nil
}

// NewRunnerWith creates a runner for an explicit migration list.
func NewRunnerWith(db *sql.DB, out io.Writer, all []Migration) *Runner {
	if out == nil {
		out = io.Discard
	}
	return &Runner{db: db, out: out, migrations: all}
}

// Latest returns the highest known migration version.
func (r *Runner) Latest() int {
	if len(r.migrations) == 0 {
		return 0
	}
	return r.migrations[len(r.migrations)-1].Version
}

// ensureTable creates the schema_migrations table, recreating tables from
// older layouts that lack the dirty column.
func (r *Runner) ensureTable(ctx context.Context) error {
	const create = `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			dirty INTEGER NOT NULL DEFAULT 0
		)`

	var count int
	err := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM pragma_table_info('schema_migrations') WHERE name = 'dirty'
	`).Scan(&count)
	if err != nil {
		_, err = r.db.ExecContext(ctx, create)
		return err
	}

	if count == 0 {
		if _, err := r.db.ExecContext(ctx, `DROP TABLE IF EXISTS schema_migrations`); err != nil {
			return err
		}
		_, err = r.db.ExecContext(ctx, create)
		return err
	}
	return nil
}

// Version returns the current migration version and dirty state.
func (r *Runner) Version(ctx context.Context) (int, bool, error) {
	if err := r.ensureTable(ctx); err != nil {
		return 0, false, fmt.Errorf("failed to create migrations table: %w", err)
	}

	var version, dirty int
	err := r.db.QueryRowContext(ctx, `SELECT version, dirty FROM schema_migrations ORDER BY version DESC LIMIT 1`).Scan(&version, &dirty)
	if err == sql.ErrNoRows {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return version, dirty == 1, nil
}

func (r *Runner) setVersion(ctx context.Context, version int, dirty bool) error {
	dirtyInt := 0
	if dirty {
		dirtyInt = 1
	}

	if _, err := r.db.ExecContext(ctx, `DELETE FROM schema_migrations`); err != nil {
		return err
	}
	if version > 0 {
		_, err := r.db.ExecContext(ctx, `INSERT INTO schema_migrations (version, dirty) VALUES (?, ?)`, version, dirtyInt)
		return err
	}
	return nil
}

func (r *Runner) apply(ctx context.Context, m Migration, up bool) error {
	direction := "up"
	sqlContent := m.UpSQL
	targetVersion := m.Version
	if !up {
		direction = "down"
		sqlContent = m.DownSQL
		targetVersion = m.Version - 1
	}

	fmt.Fprintf(r.out, "  %s %03d_%s...\n", direction, m.Version, m.Name)

	if err := r.setVersion(ctx, m.Version, true); err != nil {
		return fmt.Errorf("failed to set dirty flag: %w", err)
	}

	for _, stmt := range SplitSQL(sqlContent) {
		if _, err := r.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to execute migration %d %s: %w\nSQL: %s", m.Version, direction, err, stmt)
		}
	}

	if err := r.setVersion(ctx, targetVersion, false); err != nil {
		return fmt.Errorf("failed to clear dirty flag: %w", err)
	}
	return nil
}

// SplitSQL splits a SQL script on semicolons and drops empty statements.
// Semicolons inside string literals are not supported.
func SplitSQL(script string) []string {
	var out []string
	for _, stmt := range strings.Split(script, ";") {
		if stmt = strings.TrimSpace(stmt); stmt != "" {
			out = append(out, stmt)
		}
	}
	return out
}

// Up runs all pending up migrations.
func (r *Runner) Up(ctx context.Context) error {
	return r.To(ctx, r.Latest())
}

// To migrates up or down until the database is at target.
func (r *Runner) To(ctx context.Context, target int) error {
	current, dirty, err := r.Version(ctx)
	if err != nil {
		return fmt.Errorf("failed to get current version: %w", err)
	}
	if dirty {
		return fmt.Errorf("database is in dirty state at version %d, manual intervention required", current)
	}
	if target < 0 || target > r.Latest() {
		return fmt.Errorf("unknown migration version %d (latest is %d)", target, r.Latest())
	}

	switch {
	case target > current:
		applied := 0
		for _, m := range r.migrations {
			if m.Version <= current || m.Version > target {
				continue
			}
			if err := r.apply(ctx, m, true); err != nil {
				return err
			}
			applied++
		}
		fmt.Fprintf(r.out, "Migrated to version %d (%d migrations applied)\n", target, applied)
	case target < current:
		for i := len(r.migrations) - 1; i >= 0; i-- {
			m := r.migrations[i]
			if m.Version > current || m.Version <= target {
				continue
			}
			if m.DownSQL == "" {
				return fmt.Errorf("no down migration for version %d", m.Version)
			}
			if err := r.apply(ctx, m, false); err != nil {
				return err
			}
		}
		fmt.Fprintf(r.out, "Migrated to version %d\n", target)
	default:
		fmt.Fprintln(r.out, "No migrations to run")
	}
	return nil
}

// RunAll runs all pending migrations on the provided database without output.
func RunAll(ctx context.Context, db *sql.DB) error {
	r, err := NewRunner(db, nil)
	if err != nil {
		return err
	}
	return r.Up(ctx)
}
