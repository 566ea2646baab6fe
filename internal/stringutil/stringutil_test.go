package stringutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEqualRuneFold(t *testing.T) {
	cases := []struct {
		name string
		r1   rune
		r2   rune
		want bool
	}{
		{"same lowercase letter", 'a', 'a', true},
		{"same uppercase letter", 'A', 'A', true},
		{"same digit", '5', '5', true},
		{"A and a", 'A', 'a', true},
		{"a and A", 'a', 'A', true},
		{"Z and z", 'Z', 'z', true},
		{"A and B", 'A', 'B', false},
		{"a and b", 'a', 'b', false},
		{"digit and letter", '1', 'l', false},
		{"accented pair", 'É', 'é', true},
		{"accented mismatch", 'é', 'e', false},
		{"kelvin sign folds to k", 'K', 'k', true},
		{"greek sigma variants", 'σ', 'ς', true},
		{"unrelated symbols", '-', '_', false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, EqualRuneFold(tc.r1, tc.r2))
			assert.Equal(t, tc.want, EqualRuneFold(tc.r2, tc.r1))
		})
	}
}
