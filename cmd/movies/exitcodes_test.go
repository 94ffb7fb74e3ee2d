package main

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/uwuok/movie-management-system/internal/importer"
	"github.com/uwuok/movie-management-system/internal/movie"
	"github.com/uwuok/movie-management-system/internal/storage"
)

func TestExitCodeFor(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitSuccess},
		{"plain", errors.New("boom"), ExitError},
		{"validation", &movie.ValidationError{Fields: map[string]string{"title": "must be provided"}}, ExitDataError},
		{"wrapped validation", fmt.Errorf("adding movie: %w", &movie.ValidationError{}), ExitDataError},
		{"parse", &importer.ParseError{Path: "movies.json", Err: errors.New("not an array")}, ExitDataError},
		{"storage", &storage.StorageError{Op: "inserting movie", Err: errors.New("disk I/O error")}, ExitStorageError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, exitCodeFor(tt.err))
		})
	}
}
