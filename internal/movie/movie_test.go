package movie

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validMovie() Movie {
	return Movie{Title: "Inception", Director: "Nolan", Genre: "Sci-Fi", Year: 2010, Rating: 8.8}
}

func TestValidate_Rating(t *testing.T) {
	tests := []struct {
		name    string
		rating  float64
		wantErr bool
	}{
		{"lower bound", 1.0, false},
		{"upper bound", 10.0, false},
		{"middle", 5.5, false},
		{"below range", 0.9, true},
		{"above range", 10.1, true},
		{"zero", 0, true},
		{"negative", -3, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := validMovie()
			m.Rating = tt.rating

			err := Validate(m)
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			var ve *ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Contains(t, ve.Fields, "rating")
		})
	}
}

func TestValidate_RequiredText(t *testing.T) {
	m := Movie{Title: "  ", Director: "", Genre: "Drama", Year: 1999, Rating: 7}

	var ve *ValidationError
	require.ErrorAs(t, Validate(m), &ve)
	assert.Len(t, ve.Fields, 2)
	assert.Contains(t, ve.Fields, "title")
	assert.Contains(t, ve.Fields, "director")
}

func TestValidationError_Message(t *testing.T) {
	err := &ValidationError{Fields: map[string]string{
		"title":  "must be provided",
		"rating": "must be between 1.0 and 10.0",
	}}

	assert.EqualError(t, err, "invalid movie: rating must be between 1.0 and 10.0; title must be provided")
}

func TestNormalize(t *testing.T) {
	m := Movie{Title: " 霸王別姬 ", Director: "\t陳凱歌", Genre: "Drama\n", Year: 1993, Rating: 9.1}

	got := m.Normalize()
	assert.Equal(t, "霸王別姬", got.Title)
	assert.Equal(t, "陳凱歌", got.Director)
	assert.Equal(t, "Drama", got.Genre)
	assert.Equal(t, " 霸王別姬 ", m.Title, "Normalize modified the receiver")
}
