package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAbbreviate(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"And God said, Let there be light", "..God..Let..be light"},
		{"In the beginning", "In..beginning"},
		{"Jesus wept.", "Jesus wept."},
		{"THE LORD", "..LORD"},
		{"and the", "...."},
		{"grace, mercy, and peace", "grace,mercy,..peace"},
		{"", ""},
		{"  spaced   out  ", "spaced out"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Abbreviate(tt.in), tt.in)
	}
}
