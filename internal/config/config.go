// Package config provides the two file-backed configuration stores for the CLI:
// main settings (config.ini) and prompt fragments (prompts.ini). Both files are
// human-editable INI, auto-created with a complete default set on first run, and
// loaded once into typed structs by layering defaults -> file -> overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/ini.v1"
)

const (
	settingsFile = "config.ini"
	promptsFile  = "prompts.ini"
)

// Settings holds the main configuration. Every field has a documented default so
// the pipeline can run with zero explicit configuration.
type Settings struct {
	// [ai]
	Model string `validate:"required"`

	// [paths] (relative to the config directory)
	TemplatesDir       string `validate:"required"`
	OutputDir          string `validate:"required"`
	JobDescriptionsDir string `validate:"required"`

	// [files]
	ResumeTemplate string `validate:"required"`
	ResumeClass    string `validate:"required"`

	// [output]
	MaxJobTitleLength int `validate:"min=1"`
	IncludeTimestamp  bool
	CleanupAuxFiles   bool

	// [latex]
	Compiler          string `validate:"required"`
	CompilationPasses int    `validate:"min=1"`
	CompilerOptions   []string
	AuxExtensions     []string

	// [customization]
	FocusAreas         []string
	AddExplanations    bool
	PreserveFormatting bool
	MaxRetries         int `validate:"min=1"`
}

// DefaultSettings returns the hard-coded fallback configuration.
func DefaultSettings() Settings {
	return Settings{
		Model:              "gemini-1.5-flash",
		TemplatesDir:       "templates",
		OutputDir:          "output",
		JobDescriptionsDir: "job_descriptions",
		ResumeTemplate:     "resume.tex",
		ResumeClass:        "resume.cls",
		MaxJobTitleLength:  50,
		IncludeTimestamp:   true,
		CleanupAuxFiles:    true,
		Compiler:           "pdflatex",
		CompilationPasses:  2,
		CompilerOptions:    []string{"-interaction=nonstopmode"},
		AuxExtensions:      []string{".aux", ".log", ".out", ".fdb_latexmk", ".fls", ".synctex.gz"},
		FocusAreas:         []string{"skills", "experience", "summary", "keywords"},
		AddExplanations:    false,
		PreserveFormatting: true,
		MaxRetries:         3,
	}
}

// Manager owns both configuration stores for one configuration directory.
type Manager struct {
	dir          string
	settingsPath string
	promptsPath  string

	Settings Settings
	Prompts  Prompts
}

// Load reads (or creates) both stores under dir and validates the result once.
// An empty dir means the current working directory.
func Load(dir string) (*Manager, error) {
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create config directory %s: %w", dir, err)
	}

	m := &Manager{
		dir:          dir,
		settingsPath: filepath.Join(dir, settingsFile),
		promptsPath:  filepath.Join(dir, promptsFile),
	}

	if err := m.loadSettings(); err != nil {
		return nil, err
	}
	if err := m.loadPrompts(); err != nil {
		return nil, err
	}

	if err := validator.New().Struct(m.Settings); err != nil {
		return nil, fmt.Errorf("invalid configuration in %s: %w", m.settingsPath, err)
	}
	return m, nil
}

// Dir returns the configuration directory.
func (m *Manager) Dir() string { return m.dir }

// SettingsPath returns the path of the main settings file.
func (m *Manager) SettingsPath() string { return m.settingsPath }

// PromptsPath returns the path of the prompt-fragment file.
func (m *Manager) PromptsPath() string { return m.promptsPath }

// TemplatesDir returns the absolute-ish templates directory under the config dir.
func (m *Manager) TemplatesDir() string { return filepath.Join(m.dir, m.Settings.TemplatesDir) }

// OutputDir returns the output directory under the config dir.
func (m *Manager) OutputDir() string { return filepath.Join(m.dir, m.Settings.OutputDir) }

// JobDescriptionsDir returns the job-descriptions directory under the config dir.
func (m *Manager) JobDescriptionsDir() string {
	return filepath.Join(m.dir, m.Settings.JobDescriptionsDir)
}

func (m *Manager) loadSettings() error {
	if _, err := os.Stat(m.settingsPath); os.IsNotExist(err) {
		if err := writeDefaultSettings(m.settingsPath); err != nil {
			return err
		}
	}

	f, err := ini.Load(m.settingsPath)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", m.settingsPath, err)
	}

	s := DefaultSettings()

	ai := f.Section("ai")
	s.Model = ai.Key("model").MustString(s.Model)

	paths := f.Section("paths")
	s.TemplatesDir = paths.Key("templates_dir").MustString(s.TemplatesDir)
	s.OutputDir = paths.Key("output_dir").MustString(s.OutputDir)
	s.JobDescriptionsDir = paths.Key("job_descriptions_dir").MustString(s.JobDescriptionsDir)

	files := f.Section("files")
	s.ResumeTemplate = files.Key("resume_template").MustString(s.ResumeTemplate)
	s.ResumeClass = files.Key("resume_class").MustString(s.ResumeClass)

	output := f.Section("output")
	s.MaxJobTitleLength = output.Key("max_job_title_length").MustInt(s.MaxJobTitleLength)
	s.IncludeTimestamp = output.Key("include_timestamp").MustBool(s.IncludeTimestamp)
	s.CleanupAuxFiles = output.Key("cleanup_aux_files").MustBool(s.CleanupAuxFiles)

	latex := f.Section("latex")
	s.Compiler = latex.Key("compiler").MustString(s.Compiler)
	s.CompilationPasses = latex.Key("compilation_passes").MustInt(s.CompilationPasses)
	if latex.HasKey("compiler_options") {
		s.CompilerOptions = splitFields(latex.Key("compiler_options").String())
	}
	if latex.HasKey("aux_extensions") {
		s.AuxExtensions = splitComma(latex.Key("aux_extensions").String())
	}

	custom := f.Section("customization")
	if custom.HasKey("focus_areas") {
		s.FocusAreas = splitComma(custom.Key("focus_areas").String())
	}
	s.AddExplanations = custom.Key("add_explanations").MustBool(s.AddExplanations)
	s.PreserveFormatting = custom.Key("preserve_formatting").MustBool(s.PreserveFormatting)
	s.MaxRetries = custom.Key("max_retries").MustInt(s.MaxRetries)

	m.Settings = s
	return nil
}

// Set upserts a single key within a section of the main store, creating the
// section if absent, and synchronously rewrites the whole file.
func (m *Manager) Set(section, key, value string) error {
	f, err := ini.LooseLoad(m.settingsPath)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", m.settingsPath, err)
	}
	f.Section(section).Key(key).SetValue(value)
	if err := f.SaveTo(m.settingsPath); err != nil {
		return fmt.Errorf("failed to write %s: %w", m.settingsPath, err)
	}
	// Reflect the mutation in the loaded snapshot.
	return m.loadSettings()
}

func writeDefaultSettings(path string) error {
	d := DefaultSettings()
	f := ini.Empty()

	f.Section("ai").Key("model").SetValue(d.Model)

	paths := f.Section("paths")
	paths.Key("templates_dir").SetValue(d.TemplatesDir)
	paths.Key("output_dir").SetValue(d.OutputDir)
	paths.Key("job_descriptions_dir").SetValue(d.JobDescriptionsDir)

	files := f.Section("files")
	files.Key("resume_template").SetValue(d.ResumeTemplate)
	files.Key("resume_class").SetValue(d.ResumeClass)

	output := f.Section("output")
	output.Key("max_job_title_length").SetValue(fmt.Sprintf("%d", d.MaxJobTitleLength))
	output.Key("include_timestamp").SetValue(formatBool(d.IncludeTimestamp))
	output.Key("cleanup_aux_files").SetValue(formatBool(d.CleanupAuxFiles))

	latex := f.Section("latex")
	latex.Key("compiler").SetValue(d.Compiler)
	latex.Key("compilation_passes").SetValue(fmt.Sprintf("%d", d.CompilationPasses))
	latex.Key("compiler_options").SetValue(strings.Join(d.CompilerOptions, " "))
	latex.Key("aux_extensions").SetValue(strings.Join(d.AuxExtensions, ","))

	custom := f.Section("customization")
	custom.Key("focus_areas").SetValue(strings.Join(d.FocusAreas, ","))
	custom.Key("add_explanations").SetValue(formatBool(d.AddExplanations))
	custom.Key("preserve_formatting").SetValue(formatBool(d.PreserveFormatting))
	custom.Key("max_retries").SetValue(fmt.Sprintf("%d", d.MaxRetries))

	if err := f.SaveTo(path); err != nil {
		return fmt.Errorf("failed to write default config %s: %w", path, err)
	}
	return nil
}

func formatBool(b bool) string {
	if b {
		return "true"
	}
	return "false"
}

// splitFields splits a whitespace-delimited option string.
func splitFields(s string) []string {
	return strings.Fields(s)
}

// splitComma splits a comma-delimited list, trimming each entry and dropping
// empties. An explicitly empty value yields an empty list.
func splitComma(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
