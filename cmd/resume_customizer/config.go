package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-customizer-cli/internal/config"
	"github.com/jonathan/resume-customizer-cli/internal/prompt"
)

var configCommand = &cobra.Command{
	Use:   "config",
	Short: "Inspect and edit the configuration stores",
}

var configDir string

var configShowCommand = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration",
	RunE: func(_ *cobra.Command, _ []string) error {
		cfg, err := config.Load(configDir)
		if err != nil {
			return err
		}
		printConfig(cfg)
		return nil
	},
}

var configSetCommand = &cobra.Command{
	Use:   "set <section.key> <value>",
	Short: "Set a configuration value",
	Args:  cobra.ExactArgs(2),
	RunE: func(_ *cobra.Command, args []string) error {
		section, key, ok := strings.Cut(args[0], ".")
		if !ok || section == "" || key == "" {
			return fmt.Errorf("setting must be in the form section.key, got %q", args[0])
		}
		cfg, err := config.Load(configDir)
		if err != nil {
			return err
		}
		if err := cfg.Set(section, key, args[1]); err != nil {
			return err
		}
		fmt.Printf("Updated %s = %s\n", args[0], args[1])
		return nil
	},
}

var configPromptCommand = &cobra.Command{
	Use:   "prompt",
	Short: "Show the assembled prompt template",
	RunE: func(_ *cobra.Command, _ []string) error {
		cfg, err := config.Load(configDir)
		if err != nil {
			return err
		}
		fmt.Println(prompt.Build(cfg.Prompts,
			"[Your resume content would go here]",
			"[Job description would go here]"))
		return nil
	},
}

var configEditPromptCommand = &cobra.Command{
	Use:   "edit-prompt <section> <key> <value>",
	Short: "Set a prompt fragment",
	Args:  cobra.ExactArgs(3),
	RunE: func(_ *cobra.Command, args []string) error {
		cfg, err := config.Load(configDir)
		if err != nil {
			return err
		}
		if err := cfg.SetPrompt(args[0], args[1], args[2]); err != nil {
			return err
		}
		fmt.Printf("Updated prompt %s.%s\n", args[0], args[1])
		return nil
	},
}

var configModelsCommand = &cobra.Command{
	Use:   "models",
	Short: "List known AI models",
	Run: func(_ *cobra.Command, _ []string) {
		fmt.Println("Known AI models:")
		fmt.Println("  gemini-1.5-flash    (fast, general purpose)")
		fmt.Println("  gemini-1.5-pro      (more capable, slower)")
		fmt.Println("\nModel availability depends on your API access.")
	},
}

var configValidateCommand = &cobra.Command{
	Use:   "validate",
	Short: "Check the configuration against the filesystem",
	RunE: func(_ *cobra.Command, _ []string) error {
		cfg, err := config.Load(configDir)
		if err != nil {
			return err
		}

		var issues []string
		if _, err := os.Stat(cfg.TemplatesDir()); os.IsNotExist(err) {
			issues = append(issues, fmt.Sprintf("templates directory not found: %s", cfg.TemplatesDir()))
		}
		templatePath := filepath.Join(cfg.TemplatesDir(), cfg.Settings.ResumeTemplate)
		if _, err := os.Stat(templatePath); os.IsNotExist(err) {
			issues = append(issues, fmt.Sprintf("resume template not found: %s", templatePath))
		}

		if len(issues) > 0 {
			for _, issue := range issues {
				fmt.Printf("  - %s\n", issue)
			}
			return fmt.Errorf("configuration has %d issue(s)", len(issues))
		}
		fmt.Println("Configuration is valid")
		return nil
	},
}

var configResetYes bool

var configResetCommand = &cobra.Command{
	Use:   "reset",
	Short: "Reset both stores to their defaults",
	RunE: func(_ *cobra.Command, _ []string) error {
		if !configResetYes {
			return fmt.Errorf("this deletes config.ini and prompts.ini; re-run with --yes to confirm")
		}
		cfg, err := config.Load(configDir)
		if err != nil {
			return err
		}
		for _, path := range []string{cfg.SettingsPath(), cfg.PromptsPath()} {
			if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
				return fmt.Errorf("failed to remove %s: %w", path, err)
			}
		}
		// Reload to resynthesize the defaults.
		if _, err := config.Load(configDir); err != nil {
			return err
		}
		fmt.Println("Configuration reset to defaults")
		return nil
	},
}

func init() {
	configCommand.PersistentFlags().StringVar(&configDir, "config-dir", "", "Configuration directory (default: current directory)")
	configResetCommand.Flags().BoolVar(&configResetYes, "yes", false, "Confirm the reset")

	configCommand.AddCommand(
		configShowCommand,
		configSetCommand,
		configPromptCommand,
		configEditPromptCommand,
		configModelsCommand,
		configValidateCommand,
		configResetCommand,
	)
	rootCmd.AddCommand(configCommand)
}

// printConfig renders the effective configuration summary.
func printConfig(cfg *config.Manager) {
	s := cfg.Settings

	fmt.Println("Resume Customizer Configuration")
	fmt.Println(strings.Repeat("=", 40))

	fmt.Println("\nAI settings:")
	fmt.Printf("  Model:       %s\n", s.Model)
	fmt.Printf("  Max retries: %d\n", s.MaxRetries)

	fmt.Println("\nPaths:")
	fmt.Printf("  Templates:        %s\n", cfg.TemplatesDir())
	fmt.Printf("  Output:           %s\n", cfg.OutputDir())
	fmt.Printf("  Job descriptions: %s\n", cfg.JobDescriptionsDir())

	fmt.Println("\nLaTeX settings:")
	fmt.Printf("  Compiler:        %s\n", s.Compiler)
	fmt.Printf("  Passes:          %d\n", s.CompilationPasses)
	fmt.Printf("  Options:         %s\n", strings.Join(s.CompilerOptions, " "))
	fmt.Printf("  Aux extensions:  %s\n", strings.Join(s.AuxExtensions, ","))

	fmt.Println("\nCustomization:")
	fmt.Printf("  Focus areas:         %s\n", strings.Join(s.FocusAreas, ", "))
	fmt.Printf("  Add explanations:    %t\n", s.AddExplanations)
	fmt.Printf("  Preserve formatting: %t\n", s.PreserveFormatting)

	fmt.Println("\nOutput settings:")
	fmt.Printf("  Max job title length: %d\n", s.MaxJobTitleLength)
	fmt.Printf("  Include timestamp:    %t\n", s.IncludeTimestamp)
	fmt.Printf("  Cleanup aux files:    %t\n", s.CleanupAuxFiles)
}
