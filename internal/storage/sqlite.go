// Package storage persists movies in a local SQLite database.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// DB wraps a SQLite database connection.
type DB struct {
	db *sql.DB
}

// OpenDB opens or creates a SQLite database at the given path and ensures
// the schema exists.
func OpenDB(path string) (*DB, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, &StorageError{Op: "creating database directory", Err: err}
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, &StorageError{Op: "opening database", Err: err}
	}

	db.SetMaxOpenConns(1) // SQLite doesn't support concurrent writes

	d := &DB{db: db}
	if err := d.EnsureSchema(); err != nil {
		db.Close()
		return nil, err
	}

	return d, nil
}

// Close closes the database connection.
func (d *DB) Close() error {
	return d.db.Close()
}

// EnsureSchema creates the movies table if it doesn't exist.
// Safe to call on every start.
func (d *DB) EnsureSchema() error {
	schema := `
		CREATE TABLE IF NOT EXISTS movies (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			title TEXT NOT NULL,
			director TEXT NOT NULL,
			genre TEXT NOT NULL,
			year INTEGER NOT NULL,
			rating REAL NOT NULL CHECK (rating >= 1.0 AND rating <= 10.0)
		);

		CREATE INDEX IF NOT EXISTS idx_movies_title ON movies(title);
	`

	if _, err := d.db.Exec(schema); err != nil {
		return &StorageError{Op: "creating schema", Err: err}
	}
	return nil
}

// withTx runs fn inside a transaction, committing on success and rolling
// back on any error.
func (d *DB) withTx(op string, fn func(tx *sql.Tx) error) error {
	tx, err := d.db.Begin()
	if err != nil {
		return &StorageError{Op: op, Err: fmt.Errorf("beginning transaction: %w", err)}
	}

	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		return &StorageError{Op: op, Err: fmt.Errorf("committing: %w", err)}
	}
	return nil
}
