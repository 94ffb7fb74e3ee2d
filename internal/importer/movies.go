// Package importer loads movies from a JSON document into the store.
package importer

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/uwuok/movie-management-system/internal/movie"
	"github.com/uwuok/movie-management-system/internal/validator"
)

// Import actions recorded in a Detail.
const (
	ActionInsert = "insert"
	ActionSkip   = "skip"
	ActionFail   = "fail"
)

// Skip reasons.
const (
	ReasonDuplicateTitle   = "duplicate_title"
	ReasonDuplicateInBatch = "duplicate_in_batch"
)

// MovieStore is the part of the store the importer writes through.
type MovieStore interface {
	Titles() (map[string]bool, error)
	CreateBatch(movies []movie.Movie) ([]int64, error)
}

// Importer inserts movies from JSON documents into a MovieStore.
type Importer struct {
	store MovieStore
}

// New returns an Importer writing to store.
func New(store MovieStore) *Importer {
	return &Importer{store: store}
}

// ParseError means the import document as a whole could not be used.
// No movies are written when it is returned.
type ParseError struct {
	Path string // Empty when importing from bytes
	Err  error
}

func (e *ParseError) Error() string {
	if e.Path == "" {
		return "parsing import document: " + e.Err.Error()
	}
	return fmt.Sprintf("parsing %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Report summarizes an import.
type Report struct {
	Inserted int      `json:"inserted"`
	Skipped  int      `json:"skipped"`
	Failed   int      `json:"failed"`
	Details  []Detail `json:"details"`
}

// Detail describes what happened to a single document entry.
type Detail struct {
	Index  int    `json:"index"` // 1-based position in the document
	Title  string `json:"title"`
	Action string `json:"action"` // insert, skip, fail
	Reason string `json:"reason,omitempty"`
	ID     int64  `json:"id,omitempty"` // Assigned id, set after insert
}

// FlexibleNumber unmarshals from a JSON number or a numeric string.
type FlexibleNumber struct {
	Value float64
	Valid bool // False when the field was absent or null
}

func (f *FlexibleNumber) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*f = FlexibleNumber{}
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err == nil {
		v, err := n.Float64()
		if err != nil {
			return fmt.Errorf("invalid number %s", n)
		}
		*f = FlexibleNumber{Value: v, Valid: true}
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return fmt.Errorf("not a number: %q", s)
		}
		*f = FlexibleNumber{Value: v, Valid: true}
		return nil
	}

	return fmt.Errorf("cannot unmarshal %s into a number", string(data))
}

// Entry is a single element of an import document.
type Entry struct {
	Title    *string        `json:"title"`
	Director *string        `json:"director"`
	Genre    *string        `json:"genre"`
	Year     FlexibleNumber `json:"year"`
	Rating   FlexibleNumber `json:"rating"`
}

// toMovie converts an entry, returning a *movie.ValidationError if any field
// is missing or invalid.
func (e Entry) toMovie() (movie.Movie, error) {
	v := validator.New()

	m := movie.Movie{
		Title:    deref(e.Title),
		Director: deref(e.Director),
		Genre:    deref(e.Genre),
		Rating:   e.Rating.Value,
	}

	v.Check(e.Year.Valid, "year", "must be provided")
	if e.Year.Valid {
		y := e.Year.Value
		ok := !math.IsNaN(y) && !math.IsInf(y, 0) && y == math.Trunc(y) && math.Abs(y) <= math.MaxInt32
		v.Check(ok, "year", "must be an integer")
		if ok {
			m.Year = int(y)
		}
	}
	v.Check(e.Rating.Valid, "rating", "must be provided")
	movie.Check(v, m)

	if !v.Valid() {
		return movie.Movie{}, &movie.ValidationError{Fields: v.Errors}
	}
	return m.Normalize(), nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// ImportFrom reads the JSON document at path and inserts every new movie.
// A missing or malformed document returns a *ParseError.
func (im *Importer) ImportFrom(path string) (Report, error) {
	data, err := readSource(path)
	if err != nil {
		return Report{}, err
	}
	report, err := im.ImportData(data)
	return report, withPath(err, path)
}

// ImportData inserts every new movie from a JSON document held in memory.
// All planned inserts happen in one transaction.
func (im *Importer) ImportData(data []byte) (Report, error) {
	report, movies, err := im.Plan(data)
	if err != nil {
		return Report{}, err
	}

	ids, err := im.store.CreateBatch(movies)
	if err != nil {
		return Report{}, fmt.Errorf("inserting movies: %w", err)
	}

	// Attach assigned ids to the insert details, in order.
	next := 0
	for i := range report.Details {
		if report.Details[i].Action == ActionInsert && next < len(ids) {
			report.Details[i].ID = ids[next]
			next++
		}
	}

	return report, nil
}

// PlanFrom reports what ImportFrom would do without writing anything.
func (im *Importer) PlanFrom(path string) (Report, error) {
	data, err := readSource(path)
	if err != nil {
		return Report{}, err
	}
	report, _, err := im.Plan(data)
	return report, withPath(err, path)
}

// Plan classifies every entry of a document and returns the movies that
// would be inserted. Nothing is written.
func (im *Importer) Plan(data []byte) (Report, []movie.Movie, error) {
	entries, err := parseDocument(data)
	if err != nil {
		return Report{}, nil, err
	}

	existing, err := im.store.Titles()
	if err != nil {
		return Report{}, nil, fmt.Errorf("loading existing titles: %w", err)
	}

	report := Report{Details: make([]Detail, 0, len(entries))}
	var toInsert []movie.Movie
	seen := make(map[string]bool)

	for i, raw := range entries {
		detail := Detail{Index: i + 1}

		var entry Entry
		if err := json.Unmarshal(raw, &entry); err != nil {
			detail.Action = ActionFail
			detail.Reason = err.Error()
			report.Failed++
			report.Details = append(report.Details, detail)
			continue
		}
		detail.Title = strings.TrimSpace(deref(entry.Title))

		m, err := entry.toMovie()
		if err != nil {
			detail.Action = ActionFail
			detail.Reason = err.Error()
			report.Failed++
			report.Details = append(report.Details, detail)
			continue
		}

		switch {
		case existing[m.Title]:
			detail.Action = ActionSkip
			detail.Reason = ReasonDuplicateTitle
			report.Skipped++
		case seen[m.Title]:
			detail.Action = ActionSkip
			detail.Reason = ReasonDuplicateInBatch
			report.Skipped++
		default:
			detail.Action = ActionInsert
			report.Inserted++
			seen[m.Title] = true
			toInsert = append(toInsert, m)
		}
		report.Details = append(report.Details, detail)
	}

	return report, toInsert, nil
}

// parseDocument checks that data is a JSON array of objects and returns
// the raw elements.
func parseDocument(data []byte) ([]json.RawMessage, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, &ParseError{Err: errors.New("document is empty")}
	}
	if trimmed[0] != '[' {
		return nil, &ParseError{Err: errors.New("document must be a JSON array of movies")}
	}

	var entries []json.RawMessage
	if err := json.Unmarshal(trimmed, &entries); err != nil {
		return nil, &ParseError{Err: err}
	}

	for i, raw := range entries {
		if len(raw) == 0 || raw[0] != '{' {
			return nil, &ParseError{Err: fmt.Errorf("entry %d is not an object", i+1)}
		}
	}
	return entries, nil
}

func readSource(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	return data, nil
}

// withPath fills in the document path on a *ParseError.
func withPath(err error, path string) error {
	var pe *ParseError
	if errors.As(err, &pe) && pe.Path == "" {
		pe.Path = path
	}
	return err
}
