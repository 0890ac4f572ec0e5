package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStripFences(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "latex code block",
			input:    "```latex\n\\documentclass{resume}\n\\begin{document}\n\\end{document}\n```",
			expected: "\\documentclass{resume}\n\\begin{document}\n\\end{document}",
		},
		{
			name:     "generic code block",
			input:    "```\n\\section{Summary}\nFoo\n```",
			expected: "\\section{Summary}\nFoo",
		},
		{
			name:     "language tag on fence line",
			input:    "```tex\n\\section{Summary}\n```",
			expected: "\\section{Summary}",
		},
		{
			name:     "content directly after opening fence",
			input:    "```\\section{Summary}\nBar```",
			expected: "\\section{Summary}\nBar",
		},
		{
			name:     "no fences",
			input:    "\\section{Summary}\nFoo",
			expected: "\\section{Summary}\nFoo",
		},
		{
			name:     "surrounding whitespace only",
			input:    "  \\section{Summary}\n\n",
			expected: "\\section{Summary}",
		},
		{
			name:     "trailing fence with trailing whitespace",
			input:    "\\section{Summary}\nBar\n```  \n",
			expected: "\\section{Summary}\nBar",
		},
		{
			name:     "interior fence is not stripped",
			input:    "\\section{Code}\n```\nverbatim\nmore text",
			expected: "\\section{Code}\n```\nverbatim\nmore text",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, StripFences(tt.input))
		})
	}
}

func TestStripFences_IdempotentOnCleanText(t *testing.T) {
	clean := "\\documentclass{resume}\n\\begin{document}\nHello\n\\end{document}"
	once := StripFences(clean)
	assert.Equal(t, clean, once)
	assert.Equal(t, once, StripFences(once))
}
