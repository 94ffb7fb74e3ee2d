package main

import (
	"strconv"
	"strings"

	"github.com/uwuok/movie-management-system/internal/movie"
	"github.com/uwuok/movie-management-system/internal/validator"
)

// movieInput holds raw text for each movie field as typed by the user.
type movieInput struct {
	Title, Director, Genre, Year, Rating string
}

// parseMovieInput converts raw input into a movie. Non-numeric year or
// rating and any invariant violation produce a *movie.ValidationError.
func parseMovieInput(in movieInput) (movie.Movie, error) {
	v := validator.New()
	m := movie.Movie{Title: in.Title, Director: in.Director, Genre: in.Genre}

	year, err := strconv.Atoi(strings.TrimSpace(in.Year))
	v.Check(err == nil, "year", "must be a whole number")
	m.Year = year

	rating, err := strconv.ParseFloat(strings.TrimSpace(in.Rating), 64)
	v.Check(err == nil, "rating", "must be a number")
	m.Rating = rating

	movie.Check(v, m)
	if !v.Valid() {
		return movie.Movie{}, &movie.ValidationError{Fields: v.Errors}
	}
	return m.Normalize(), nil
}

// applyEdits resolves the final values for an update: every blank field in
// edits keeps the value from current.
func applyEdits(current movie.Movie, edits movieInput) (movie.Movie, error) {
	resolved := movieInput{
		Title:    keep(edits.Title, current.Title),
		Director: keep(edits.Director, current.Director),
		Genre:    keep(edits.Genre, current.Genre),
		Year:     keep(edits.Year, strconv.Itoa(current.Year)),
		Rating:   keep(edits.Rating, strconv.FormatFloat(current.Rating, 'f', -1, 64)),
	}

	m, err := parseMovieInput(resolved)
	if err != nil {
		return movie.Movie{}, err
	}
	m.ID = current.ID
	return m, nil
}

func keep(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}
