// Package movie defines the movie record stored by the inventory.
package movie

import (
	"fmt"
	"sort"
	"strings"

	"github.com/uwuok/movie-management-system/internal/validator"
)

// Rating bounds, inclusive.
const (
	MinRating = 1.0
	MaxRating = 10.0
)

// Movie is a single inventory entry.
type Movie struct {
	ID       int64   `json:"id"` // Assigned by the store, 0 until persisted
	Title    string  `json:"title"`
	Director string  `json:"director"`
	Genre    string  `json:"genre"`
	Year     int     `json:"year"`   // Release year
	Rating   float64 `json:"rating"` // 1.0 - 10.0
}

// Normalize returns a copy with surrounding whitespace removed from the text fields.
func (m Movie) Normalize() Movie {
	m.Title = strings.TrimSpace(m.Title)
	m.Director = strings.TrimSpace(m.Director)
	m.Genre = strings.TrimSpace(m.Genre)
	return m
}

// ValidationError reports which fields of a movie failed validation.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + " " + e.Fields[k]
	}
	return "invalid movie: " + strings.Join(parts, "; ")
}

// Check records every invariant violation of m on v.
func Check(v *validator.Validator, m Movie) {
	v.Check(strings.TrimSpace(m.Title) != "", "title", "must be provided")
	v.Check(strings.TrimSpace(m.Director) != "", "director", "must be provided")
	v.Check(strings.TrimSpace(m.Genre) != "", "genre", "must be provided")
	v.Check(validator.Between(m.Rating, MinRating, MaxRating), "rating",
		fmt.Sprintf("must be between %.1f and %.1f", MinRating, MaxRating))
}

// Validate returns a *ValidationError if m breaks any invariant.
func Validate(m Movie) error {
	v := validator.New()
	Check(v, m)
	if !v.Valid() {
		return &ValidationError{Fields: v.Errors}
	}
	return nil
}
