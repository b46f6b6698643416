// Package sqlite implements the persistence layer on an embedded SQLite
// database. A single shared connection guarded by one mutex serializes all
// store access; this trades throughput for trivially correct read-modify-write
// sequences on product stock and cost.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"strings"
	"sync"

	_ "modernc.org/sqlite"
)

// DB wraps the shared database handle and its serialization lock.
// The lock is shared between the transaction manager and maintenance
// operations (backup snapshots) that must not interleave with writers.
type DB struct {
	SQL *sql.DB

	mu   sync.Mutex
	path string
}

// Open opens (and creates if missing) the database file and bootstraps the
// schema. Pass ":memory:" for an in-process database (used by tests).
func Open(ctx context.Context, path string) (*DB, error) {
	dsn := path
	if path == ":memory:" {
		dsn = ":memory:"
	} else {
		dsn = "file:" + path + "?" + url.Values{
			"_pragma": []string{"foreign_keys(1)", "busy_timeout(5000)", "journal_mode(WAL)"},
		}.Encode()
	}

	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// One connection: the serialization point for the whole store.
	sqlDB.SetMaxOpenConns(1)

	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	db := &DB{SQL: sqlDB, path: path}
	if err := db.migrate(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("bootstrap schema: %w", err)
	}

	return db, nil
}

// Close closes the underlying handle.
func (d *DB) Close() error {
	return d.SQL.Close()
}

// Path returns the database file path ("" for in-memory databases).
func (d *DB) Path() string {
	if d.path == ":memory:" {
		return ""
	}
	return d.path
}

// Exclusive runs fn while holding the store lock. Used by operations that
// bypass the transaction manager but must not interleave with it.
func (d *DB) Exclusive(fn func() error) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return fn()
}

// Snapshot writes a consistent copy of the database to destPath using
// VACUUM INTO. It holds the store lock only for the duration of the copy.
func (d *DB) Snapshot(ctx context.Context, destPath string) error {
	// VACUUM INTO cannot be parameterized; escape single quotes in the path.
	escaped := strings.ReplaceAll(destPath, "'", "''")
	return d.Exclusive(func() error {
		if _, err := d.SQL.ExecContext(ctx, fmt.Sprintf("VACUUM INTO '%s'", escaped)); err != nil {
			return fmt.Errorf("vacuum into: %w", err)
		}
		return nil
	})
}

func (d *DB) migrate(ctx context.Context) error {
	if _, err := d.SQL.ExecContext(ctx, schema); err != nil {
		return err
	}
	return nil
}
