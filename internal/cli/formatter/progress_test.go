package formatter

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

// stripANSI removes ANSI escape codes so assertions are
// terminal-independent.
func stripANSI(s string) string {
	return ansiPattern.ReplaceAllString(s, "")
}

func TestRenderProgress(t *testing.T) {
	tests := []struct {
		name  string
		pct   float64
		width int
		want  string
	}{
		{"0%", 0, 4, "[░░░░]   0%"},
		{"50%", 50, 4, "[██░░]  50%"},
		{"100%", 100, 4, "[████] 100%"},
		{"over 100 clamps", 150, 4, "[████] 100%"},
		{"negative clamps", -10, 4, "[░░░░]   0%"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, stripANSI(RenderProgress(tt.pct, tt.width)))
		})
	}
}

func TestRenderCounts(t *testing.T) {
	assert.Equal(t, "3/6 received", stripANSI(RenderCounts(3, 6)))
	assert.Equal(t, "no items", stripANSI(RenderCounts(0, 0)))
}
