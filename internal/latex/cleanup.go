package latex

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// Cleanup removes auxiliary compilation byproducts that share texPath's base
// name. Gated by enabled; returns how many files were removed. The source
// document and the rendered PDF are never touched, whatever the configured
// extension list says. Safe to call when the files are already absent.
func Cleanup(texPath string, extensions []string, enabled bool, logger *slog.Logger) int {
	if logger == nil {
		logger = slog.Default()
	}
	if !enabled {
		logger.Info("auxiliary file cleanup disabled, skipping")
		return 0
	}

	base := strings.TrimSuffix(texPath, filepath.Ext(texPath))
	sourceExt := filepath.Ext(texPath)

	removed := 0
	for _, ext := range extensions {
		if ext == "" || ext == sourceExt || ext == ".pdf" {
			continue
		}
		path := base + ext
		if err := os.Remove(path); err == nil {
			removed++
		} else if !os.IsNotExist(err) {
			logger.Warn("failed to remove auxiliary file", "path", path, "error", err)
		}
	}

	if removed > 0 {
		logger.Info("removed auxiliary files", "count", removed)
	}
	return removed
}
