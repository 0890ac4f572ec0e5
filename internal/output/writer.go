// Package output derives deterministic filenames for customized resumes and
// writes them under the output directory.
package output

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"
)

const (
	filePrefix    = "resume"
	fallbackToken = "customized"
	texExtension  = ".tex"
	timestampFmt  = "20060102_150405"
)

// Writer persists customized resume sources with deterministic names.
type Writer struct {
	Dir              string
	MaxTitleLength   int
	IncludeTimestamp bool

	now func() time.Time
}

// NewWriter returns a Writer targeting dir.
func NewWriter(dir string, maxTitleLength int, includeTimestamp bool) *Writer {
	return &Writer{
		Dir:              dir,
		MaxTitleLength:   maxTitleLength,
		IncludeTimestamp: includeTimestamp,
		now:              time.Now,
	}
}

// Save writes content to a new .tex file named from jobTitle and returns the
// path. With timestamps enabled the second-granularity timestamp is the only
// uniqueness source; two saves within the same second with an identical title
// and timestamps disabled overwrite each other (last write wins).
func (w *Writer) Save(content, jobTitle string) (string, error) {
	if err := os.MkdirAll(w.Dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create output directory %s: %w", w.Dir, err)
	}

	path := filepath.Join(w.Dir, w.Filename(jobTitle))
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	return path, nil
}

// Filename builds the output filename: prefix, slug (or "customized"), then an
// optional timestamp, joined by underscores.
func (w *Writer) Filename(jobTitle string) string {
	parts := []string{filePrefix}

	if slug := Slugify(jobTitle, w.MaxTitleLength); slug != "" {
		parts = append(parts, slug)
	} else {
		parts = append(parts, fallbackToken)
	}

	if w.IncludeTimestamp {
		parts = append(parts, w.now().Format(timestampFmt))
	}

	return strings.Join(parts, "_") + texExtension
}

// Slugify sanitizes a job title into a filesystem-safe slug: only letters,
// digits, spaces, hyphens and underscores are kept, spaces become underscores,
// and the result is truncated to maxLen characters. A truncation landing
// mid-token retreats to the previous underscore so no partial word survives.
func Slugify(title string, maxLen int) string {
	var b strings.Builder
	for _, r := range title {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == ' ' || r == '-' || r == '_' {
			b.WriteRune(r)
		}
	}

	slug := strings.TrimSpace(b.String())
	slug = strings.ReplaceAll(slug, " ", "_")

	if maxLen > 0 {
		runes := []rune(slug)
		if len(runes) > maxLen {
			midToken := runes[maxLen] != '_'
			runes = runes[:maxLen]
			if midToken {
				if idx := strings.LastIndex(string(runes), "_"); idx > 0 {
					runes = runes[:idx]
				}
			}
			slug = strings.TrimRight(string(runes), "_")
		}
	}

	return slug
}
