package sanitize_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Guyuepp/threaded-blog/internal/sanitize"
)

func TestSanitize(t *testing.T) {
	s := sanitize.NewHTML()

	tests := []struct {
		name     string
		in       string
		contains []string
		excludes []string
	}{
		{
			name:     "plain text",
			in:       "Nice post!",
			contains: []string{"Nice post!"},
		},
		{
			name:     "script removed",
			in:       `hi<script>alert(1)</script>`,
			contains: []string{"hi"},
			excludes: []string{"<script", "alert"},
		},
		{
			name:     "formatting kept",
			in:       `<b>bold</b> and <em>em</em>`,
			contains: []string{"<b>bold</b>", "<em>em</em>"},
		},
		{
			name:     "event handler stripped",
			in:       `<a href="https://example.com" onclick="steal()">link</a>`,
			contains: []string{`href="https://example.com"`, "nofollow"},
			excludes: []string{"onclick"},
		},
		{
			name:     "javascript url dropped",
			in:       `<a href="javascript:alert(1)">x</a>`,
			excludes: []string{"javascript:"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := s.Sanitize(tt.in)
			for _, c := range tt.contains {
				assert.Contains(t, out, c)
			}
			for _, e := range tt.excludes {
				assert.NotContains(t, out, e)
			}
		})
	}
}

func TestSanitizeOnlyMarkup(t *testing.T) {
	out := sanitize.NewHTML().Sanitize(`<script>alert(1)</script>`)
	assert.Empty(t, strings.TrimSpace(out))
}
