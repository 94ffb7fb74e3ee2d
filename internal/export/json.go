// Package export writes movies to JSON documents.
package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/uwuok/movie-management-system/internal/movie"
)

// MovieFinder is the part of the store the exporter reads from.
type MovieFinder interface {
	FindAll() ([]movie.Movie, error)
	FindByTitleContains(substring string) ([]movie.Movie, error)
}

// Record is the exported shape of a movie. The store id is left out.
type Record struct {
	Title    string  `json:"title"`
	Director string  `json:"director"`
	Genre    string  `json:"genre"`
	Year     int     `json:"year"`
	Rating   float64 `json:"rating"`
}

// Result describes a finished export.
type Result struct {
	Count int    `json:"count"`
	Path  string `json:"path,omitempty"`
	Bytes int64  `json:"bytes"`
}

// Empty reports whether nothing matched, in which case no file was written.
func (r Result) Empty() bool {
	return r.Count == 0
}

// Exporter writes store contents to JSON files.
type Exporter struct {
	store MovieFinder
}

// New returns an Exporter reading from store.
func New(store MovieFinder) *Exporter {
	return &Exporter{store: store}
}

// ExportTo writes the movies whose title contains filter to path,
// replacing any existing file. An empty filter exports everything.
// When nothing matches, ExportTo returns an empty Result and leaves path
// untouched.
func (e *Exporter) ExportTo(path, filter string) (Result, error) {
	var (
		movies []movie.Movie
		err    error
	)
	if filter == "" {
		movies, err = e.store.FindAll()
	} else {
		movies, err = e.store.FindByTitleContains(filter)
	}
	if err != nil {
		return Result{}, fmt.Errorf("querying movies: %w", err)
	}

	if len(movies) == 0 {
		return Result{}, nil
	}

	data, err := Marshal(movies)
	if err != nil {
		return Result{}, err
	}

	if err := writeFileAtomic(path, data); err != nil {
		return Result{}, err
	}

	return Result{Count: len(movies), Path: path, Bytes: int64(len(data))}, nil
}

// Marshal encodes movies as an indented JSON array of Records with
// non-ASCII text left unescaped.
func Marshal(movies []movie.Movie) ([]byte, error) {
	records := make([]Record, len(movies))
	for i, m := range movies {
		records[i] = Record{
			Title:    m.Title,
			Director: m.Director,
			Genre:    m.Genre,
			Year:     m.Year,
			Rating:   m.Rating,
		}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(records); err != nil {
		return nil, fmt.Errorf("encoding movies: %w", err)
	}
	return buf.Bytes(), nil
}

// writeFileAtomic writes data to a temp file next to path and renames it
// into place, so readers never see a partial export.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("writing export: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("syncing export: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("closing export: %w", err)
	}
	if err := os.Chmod(tmpPath, 0644); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("setting export permissions: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("replacing %s: %w", path, err)
	}
	return nil
}
