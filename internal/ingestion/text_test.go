package ingestion

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestJoinPages(t *testing.T) {
	tests := []struct {
		name     string
		pages    []PageText
		expected string
	}{
		{"none", nil, ""},
		{"single page", StubPages("Jane Doe"), "Jane Doe"},
		{"pages in order", StubPages("Jane Doe", "Skills: Go"), "Jane Doe\nSkills: Go"},
		{"keeps inner spacing and glyphs", StubPages("Jane   Doe", "• Built APIs"), "Jane   Doe\n• Built APIs"},
		{"keeps empty middle pages", StubPages("Jane Doe", "", "Skills: Go"), "Jane Doe\n\nSkills: Go"},
		{"trims the ends once", StubPages("  ", "Jane Doe  ", ""), "Jane Doe"},
		{"whitespace only", StubPages(" ", "\t"), ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, JoinPages(tt.pages))
		})
	}
}
