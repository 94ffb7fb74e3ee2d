package main

import (
	"errors"

	"github.com/uwuok/movie-management-system/internal/importer"
	"github.com/uwuok/movie-management-system/internal/movie"
	"github.com/uwuok/movie-management-system/internal/storage"
)

// Exit codes
const (
	ExitSuccess      = 0 // Success
	ExitError        = 1 // General error (invalid arguments, runtime failure)
	ExitConfigError  = 2 // Configuration error (unreadable or invalid config)
	ExitDataError    = 3 // Data error (malformed import document, validation failure)
	ExitStorageError = 4 // Database error
)

// exitCodeFor maps an error from the core packages to an exit code.
func exitCodeFor(err error) int {
	var (
		validationErr *movie.ValidationError
		parseErr      *importer.ParseError
		storageErr    *storage.StorageError
	)
	switch {
	case err == nil:
		return ExitSuccess
	case errors.As(err, &validationErr), errors.As(err, &parseErr):
		return ExitDataError
	case errors.As(err, &storageErr):
		if storageErr.Constraint() {
			return ExitDataError
		}
		return ExitStorageError
	default:
		return ExitError
	}
}
