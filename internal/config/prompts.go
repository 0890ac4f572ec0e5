package config

import (
	"fmt"
	"os"

	"gopkg.in/ini.v1"
)

// Prompts holds the prompt-template fragments used to assemble the completion
// request. Stored independently from the main settings so prompt tuning never
// touches pipeline configuration.
type Prompts struct {
	Role               string // [system] role
	Context            string // [instructions] context
	FocusAreas         string // [customization] focus_areas
	FormatRequirements string // [output] format_requirements
	QualityGuidelines  string // [output] quality_guidelines
	Approach           string // [style] approach
}

// DefaultPrompts returns the hard-coded fallback fragments.
func DefaultPrompts() Prompts {
	return Prompts{
		Role:               "You are an expert resume writer.",
		Context:            "Customize the resume for the job.",
		FocusAreas:         "skills, experience",
		FormatRequirements: "Return only LaTeX code.",
		QualityGuidelines:  "Ensure proper LaTeX syntax.",
		Approach:           "Maintain professional tone.",
	}
}

func (m *Manager) loadPrompts() error {
	if _, err := os.Stat(m.promptsPath); os.IsNotExist(err) {
		if err := writeDefaultPrompts(m.promptsPath); err != nil {
			return err
		}
	}

	f, err := ini.Load(m.promptsPath)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", m.promptsPath, err)
	}

	p := DefaultPrompts()
	p.Role = f.Section("system").Key("role").MustString(p.Role)
	p.Context = f.Section("instructions").Key("context").MustString(p.Context)
	p.FocusAreas = f.Section("customization").Key("focus_areas").MustString(p.FocusAreas)
	p.FormatRequirements = f.Section("output").Key("format_requirements").MustString(p.FormatRequirements)
	p.QualityGuidelines = f.Section("output").Key("quality_guidelines").MustString(p.QualityGuidelines)
	p.Approach = f.Section("style").Key("approach").MustString(p.Approach)

	m.Prompts = p
	return nil
}

// SetPrompt upserts a single key within a section of the prompt store and
// synchronously rewrites the whole file.
func (m *Manager) SetPrompt(section, key, value string) error {
	f, err := ini.LooseLoad(m.promptsPath)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", m.promptsPath, err)
	}
	f.Section(section).Key(key).SetValue(value)
	if err := f.SaveTo(m.promptsPath); err != nil {
		return fmt.Errorf("failed to write %s: %w", m.promptsPath, err)
	}
	return m.loadPrompts()
}

func writeDefaultPrompts(path string) error {
	d := DefaultPrompts()
	f := ini.Empty()
	f.Section("system").Key("role").SetValue(d.Role)
	f.Section("instructions").Key("context").SetValue(d.Context)
	f.Section("customization").Key("focus_areas").SetValue(d.FocusAreas)
	out := f.Section("output")
	out.Key("format_requirements").SetValue(d.FormatRequirements)
	out.Key("quality_guidelines").SetValue(d.QualityGuidelines)
	f.Section("style").Key("approach").SetValue(d.Approach)

	if err := f.SaveTo(path); err != nil {
		return fmt.Errorf("failed to write default prompts %s: %w", path, err)
	}
	return nil
}
