package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"simple name", "DJ Nova", "dj-nova"},
		{"punctuation collapsed", "Echo & The Bunnies!", "echo-the-bunnies"},
		{"leading trailing trimmed", "  --hello world-- ", "hello-world"},
		{"digits kept", "band 42", "band-42"},
		{"all symbols", "!!!***", ""},
		{"empty", "", ""},
		{"already clean", "solo-violinist", "solo-violinist"},
		{"consecutive separators", "a__b..c", "a-b-c"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Slugify(tt.input))
		})
	}
}

func TestSplitTags(t *testing.T) {
	assert.Equal(t, []string{"techno", "house", "funk"}, SplitTags("techno, house ,, funk"))
	assert.Empty(t, SplitTags("  ,  "))
}
