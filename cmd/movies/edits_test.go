package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/uwuok/movie-management-system/internal/movie"
)

func TestParseMovieInput(t *testing.T) {
	tests := []struct {
		name      string
		in        movieInput
		want      movie.Movie
		wantField string // field expected in the ValidationError, empty if valid
	}{
		{
			name: "valid",
			in:   movieInput{"Inception", "Nolan", "Sci-Fi", "2010", "8.8"},
			want: movie.Movie{Title: "Inception", Director: "Nolan", Genre: "Sci-Fi", Year: 2010, Rating: 8.8},
		},
		{
			name: "trims whitespace",
			in:   movieInput{" Inception ", "Nolan", "Sci-Fi", " 2010 ", " 8.8 "},
			want: movie.Movie{Title: "Inception", Director: "Nolan", Genre: "Sci-Fi", Year: 2010, Rating: 8.8},
		},
		{
			name:      "non-numeric year",
			in:        movieInput{"Inception", "Nolan", "Sci-Fi", "twenty ten", "8.8"},
			wantField: "year",
		},
		{
			name:      "non-numeric rating",
			in:        movieInput{"Inception", "Nolan", "Sci-Fi", "2010", "great"},
			wantField: "rating",
		},
		{
			name:      "rating out of range",
			in:        movieInput{"Inception", "Nolan", "Sci-Fi", "2010", "10.5"},
			wantField: "rating",
		},
		{
			name:      "missing title",
			in:        movieInput{"", "Nolan", "Sci-Fi", "2010", "8.8"},
			wantField: "title",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseMovieInput(tt.in)
			if tt.wantField == "" {
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
				return
			}

			var ve *movie.ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Contains(t, ve.Fields, tt.wantField)
		})
	}
}

func TestApplyEdits(t *testing.T) {
	current := movie.Movie{ID: 7, Title: "Inception", Director: "Nolan", Genre: "Sci-Fi", Year: 2010, Rating: 8.8}

	tests := []struct {
		name  string
		edits movieInput
		want  movie.Movie
	}{
		{
			name:  "all blank keeps everything",
			edits: movieInput{},
			want:  current,
		},
		{
			name:  "rating only",
			edits: movieInput{Rating: "9.0"},
			want:  movie.Movie{ID: 7, Title: "Inception", Director: "Nolan", Genre: "Sci-Fi", Year: 2010, Rating: 9.0},
		},
		{
			name:  "whitespace counts as blank",
			edits: movieInput{Title: "   ", Year: "2011"},
			want:  movie.Movie{ID: 7, Title: "Inception", Director: "Nolan", Genre: "Sci-Fi", Year: 2011, Rating: 8.8},
		},
		{
			name:  "every field",
			edits: movieInput{"Tenet", "C. Nolan", "Action", "2020", "7.3"},
			want:  movie.Movie{ID: 7, Title: "Tenet", Director: "C. Nolan", Genre: "Action", Year: 2020, Rating: 7.3},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := applyEdits(current, tt.edits)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestApplyEdits_InvalidRating(t *testing.T) {
	current := movie.Movie{ID: 1, Title: "Inception", Director: "Nolan", Genre: "Sci-Fi", Year: 2010, Rating: 8.8}

	_, err := applyEdits(current, movieInput{Rating: "0.5"})
	var ve *movie.ValidationError
	assert.ErrorAs(t, err, &ve)
}
