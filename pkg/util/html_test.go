package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeLogMessage(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "plain text passes through",
			input: "Copy of the revision from 2025-01-02 15:04:05.",
			want:  "Copy of the revision from 2025-01-02 15:04:05.",
		},
		{
			name:  "allowed tags survive",
			input: "<em>fixed</em> the <strong>amount</strong>",
			want:  "<em>fixed</em> the <strong>amount</strong>",
		},
		{
			name:  "script tags are removed",
			input: `before<script>alert("x")</script>after`,
			want:  "beforeafter",
		},
		{
			name:  "event handler attributes are removed",
			input: `<a href="https://example.com" onclick="evil()">link</a>`,
			want:  `<a href="https://example.com">link</a>`,
		},
		{
			name:  "disallowed elements are stripped but content kept",
			input: "<div>memo</div>",
			want:  "memo",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SanitizeLogMessage(tt.input))
		})
	}
}
