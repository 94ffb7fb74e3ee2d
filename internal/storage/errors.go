package storage

import (
	"errors"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// StorageError wraps a failure reported by the database engine.
type StorageError struct {
	Op  string // What the store was doing, e.g. "inserting movie"
	Err error
}

func (e *StorageError) Error() string {
	return e.Op + ": " + e.Err.Error()
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// Constraint reports whether the underlying cause is a SQLite constraint
// violation (CHECK, NOT NULL, UNIQUE, ...).
func (e *StorageError) Constraint() bool {
	var sqliteErr *sqlite.Error
	if errors.As(e.Err, &sqliteErr) {
		return sqliteErr.Code()&0xff == sqlite3.SQLITE_CONSTRAINT
	}
	return false
}
