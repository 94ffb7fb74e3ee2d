package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidator_FirstErrorWins(t *testing.T) {
	v := New()
	v.Check(false, "rating", "must be a number")
	v.Check(false, "rating", "must be between 1.0 and 10.0")
	v.Check(true, "title", "must be provided")

	assert.False(t, v.Valid())
	assert.Equal(t, map[string]string{"rating": "must be a number"}, v.Errors)
}

func TestBetween(t *testing.T) {
	tests := []struct {
		value float64
		want  bool
	}{
		{0.9, false},
		{1.0, true},
		{5.5, true},
		{10.0, true},
		{10.1, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Between(tt.value, 1.0, 10.0), "Between(%v, 1, 10)", tt.value)
	}
}
