package pipeline

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jonathan/resume-customizer-cli/internal/model"
)

// readTemplate reads the resume source, trying the templates directory first
// and the base directory second.
func (c *Customizer) readTemplate() (string, error) {
	name := c.cfg.Settings.ResumeTemplate
	candidates := []string{
		filepath.Join(c.cfg.TemplatesDir(), name),
		filepath.Join(c.cfg.Dir(), name),
	}

	for _, path := range candidates {
		data, err := os.ReadFile(path)
		if err == nil {
			return string(data), nil
		}
		if !os.IsNotExist(err) {
			return "", fmt.Errorf("failed to read resume template %s: %w", path, err)
		}
	}

	return "", &model.NotFoundError{
		What: "resume template",
		Path: strings.Join(candidates, ", "),
	}
}

// resolveJobFile returns the job description file path, falling back to the
// configured job-descriptions directory for bare filenames.
func (c *Customizer) resolveJobFile(path string) string {
	if _, err := os.Stat(path); err == nil {
		return path
	}
	if !filepath.IsAbs(path) {
		fallback := filepath.Join(c.cfg.JobDescriptionsDir(), path)
		if _, err := os.Stat(fallback); err == nil {
			return fallback
		}
	}
	return path
}
