package turso

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/tursodatabase/go-libsql"
)

// Options selects where the database lives.
type Options struct {
	// Path is the local database file. With a remote URL it holds the
	// embedded replica.
	Path string
	// URL of a remote Turso database. Empty keeps everything local.
	URL       string
	AuthToken string
}

// DB is the tracker database: a local libsql file, optionally an embedded
// replica synced with a remote Turso database.
type DB struct {
	*sql.DB
	connector *libsql.Connector
}

// Open opens (and creates, if needed) the database described by opts.
func Open(opts Options) (*DB, error) {
	if opts.Path == "" {
		return nil, fmt.Errorf("database path is required")
	}
	if err := os.MkdirAll(filepath.Dir(opts.Path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	if opts.URL == "" {
		db, err := sql.Open("libsql", "file:"+opts.Path)
		if err != nil {
			return nil, fmt.Errorf("failed to open database: %w", err)
		}
		if err := db.Ping(); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to ping database: %w", err)
		}
		return &DB{DB: db}, nil
	}

	connector, err := libsql.NewEmbeddedReplicaConnector(opts.Path, opts.URL, libsql.WithAuthToken(opts.AuthToken))
	if err != nil {
		return nil, fmt.Errorf("failed to create embedded replica: %w", err)
	}

	db := sql.OpenDB(connector)
	// Turso closes idle streams aggressively; stale pooled connections
	// surface as "stream not found".
	db.SetMaxOpenConns(5)
	db.SetMaxIdleConns(0)
	db.SetConnMaxLifetime(5 * time.Minute)

	return &DB{DB: db, connector: connector}, nil
}

// Remote reports whether the database replicates a remote Turso database.
func (d *DB) Remote() bool {
	return d.connector != nil
}

// Sync pulls remote changes into the embedded replica and pushes local
// writes. It is a no-op for local-only databases.
func (d *DB) Sync() error {
	if d.connector == nil {
		return nil
	}
	if _, err := d.connector.Sync(); err != nil {
		return fmt.Errorf("failed to sync with remote database: %w", err)
	}
	return nil
}

// Close closes the database and the replica connector.
func (d *DB) Close() error {
	err := d.DB.Close()
	if d.connector != nil {
		if cerr := d.connector.Close(); err == nil {
			err = cerr
		}
	}
	return err
}
