package output

import (
	"os"
	"path/filepath"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		name     string
		title    string
		maxLen   int
		expected string
	}{
		{
			name:     "truncation retreats to word boundary",
			title:    "Senior C++ Dev!!",
			maxLen:   10,
			expected: "Senior_C",
		},
		{
			name:     "spaces become underscores",
			title:    "Staff Software Engineer",
			maxLen:   50,
			expected: "Staff_Software_Engineer",
		},
		{
			name:     "hyphens and underscores kept",
			title:    "Go-Dev_2024",
			maxLen:   50,
			expected: "Go-Dev_2024",
		},
		{
			name:     "punctuation dropped",
			title:    "DevOps (SRE) @ Acme!",
			maxLen:   50,
			expected: "DevOps_SRE__Acme",
		},
		{
			name:     "truncation on exact token boundary keeps token",
			title:    "Senior Dev Engineer",
			maxLen:   10,
			expected: "Senior_Dev",
		},
		{
			name:     "single long token is hard cut",
			title:    "Abcdefghijklmnop",
			maxLen:   10,
			expected: "Abcdefghij",
		},
		{
			name:     "only punctuation empties out",
			title:    "!!!",
			maxLen:   10,
			expected: "",
		},
		{
			name:     "short title unchanged",
			title:    "Dev",
			maxLen:   10,
			expected: "Dev",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Slugify(tt.title, tt.maxLen))
		})
	}
}

func TestSlugify_OnlySafeCharacters(t *testing.T) {
	titles := []string{
		"C++ / C# Engineer (Remote)",
		"Sr. Staff @ Foo & Bar, Inc.",
		"日本語 タイトル!",
		"tabs\tand\nnewlines",
	}
	safe := regexp.MustCompile(`^[\p{L}\p{N} _-]*$`)
	for _, title := range titles {
		slug := Slugify(title, 50)
		assert.True(t, safe.MatchString(slug), "slug %q has unsafe characters", slug)
		assert.NotContains(t, slug, " ")
		assert.LessOrEqual(t, len([]rune(slug)), 50)
	}
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestFilename_WithTitleAndTimestamp(t *testing.T) {
	w := NewWriter(t.TempDir(), 50, true)
	w.now = fixedClock(time.Date(2026, 8, 29, 13, 45, 9, 0, time.UTC))

	assert.Equal(t, "resume_Staff_Engineer_20260829_134509.tex", w.Filename("Staff Engineer"))
}

func TestFilename_NoTitle(t *testing.T) {
	w := NewWriter(t.TempDir(), 50, true)
	w.now = fixedClock(time.Date(2026, 8, 29, 13, 45, 9, 0, time.UTC))

	assert.Equal(t, "resume_customized_20260829_134509.tex", w.Filename(""))
}

func TestFilename_TimestampDisabled(t *testing.T) {
	w := NewWriter(t.TempDir(), 50, false)
	assert.Equal(t, "resume_customized.tex", w.Filename(""))
	assert.Equal(t, "resume_Dev.tex", w.Filename("Dev"))
}

func TestFilename_UnslugifiableTitleFallsBack(t *testing.T) {
	w := NewWriter(t.TempDir(), 50, false)
	assert.Equal(t, "resume_customized.tex", w.Filename("!!!"))
}

func TestSave_WritesContent(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(filepath.Join(dir, "output"), 50, false)

	path, err := w.Save("\\section{Summary}\nBar", "Dev")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "output", "resume_Dev.tex"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "\\section{Summary}\nBar", string(data))
}

func TestSave_SameSecondCollisionOverwrites(t *testing.T) {
	// Documented behavior: identical title with timestamps disabled means last
	// write wins.
	w := NewWriter(t.TempDir(), 50, false)

	first, err := w.Save("first", "Dev")
	require.NoError(t, err)
	second, err := w.Save("second", "Dev")
	require.NoError(t, err)
	assert.Equal(t, first, second)

	data, err := os.ReadFile(second)
	require.NoError(t, err)
	assert.Equal(t, "second", string(data))
}
