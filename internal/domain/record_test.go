package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseVotes(t *testing.T) {
	tests := []struct {
		name      string
		raw       string
		wantValue int64
		wantValid bool
	}{
		{"plain integer", "1234", 1234, true},
		{"zero", "0", 0, true},
		{"surrounding whitespace", "  42 ", 42, true},
		{"thousands separator", "1,234,567", 1234567, true},
		{"float rendering", "512.0", 512, true},
		{"float truncates", "99.7", 99, true},
		{"empty", "", 0, false},
		{"blank", "   ", 0, false},
		{"non-numeric", "n/a", 0, false},
		{"negative integer", "-5", 0, false},
		{"negative float", "-5.0", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseVotes(tt.raw)
			assert.Equal(t, tt.wantValid, got.Valid, "validity for %q", tt.raw)
			assert.Equal(t, tt.wantValue, got.Value, "value for %q", tt.raw)
		})
	}
}

func TestVotes(t *testing.T) {
	v := Votes(77)
	assert.True(t, v.Valid)
	assert.Equal(t, int64(77), v.Value)
}
