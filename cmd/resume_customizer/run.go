package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-customizer-cli/internal/config"
	"github.com/jonathan/resume-customizer-cli/internal/history"
	"github.com/jonathan/resume-customizer-cli/internal/latex"
	"github.com/jonathan/resume-customizer-cli/internal/llm"
	"github.com/jonathan/resume-customizer-cli/internal/pipeline"
)

var runCommand = &cobra.Command{
	Use:   "run",
	Short: "Run the customization pipeline end-to-end",
	Long: `Reads the resume template, customizes it for the given job description via
the configured AI model, saves the result, and compiles it to PDF.

The job description comes from exactly one of --job-description, --job-file,
or --job-url.`,
	RunE: runPipelineCmd,
}

var (
	runJobDescription string
	runJobFile        string
	runJobURL         string
	runJobTitle       string
	runConfigDir      string
	runModel          string
	runAPIKey         string
	runDatabaseURL    string
	runUseBrowser     bool
	runShowConfig     bool
	runVerbose        bool
)

func init() {
	f := runCommand.Flags()
	f.StringVarP(&runJobDescription, "job-description", "d", "", "Job description as literal text")
	f.StringVarP(&runJobFile, "job-file", "f", "", "Path to a text file containing the job description")
	f.StringVar(&runJobURL, "job-url", "", "URL of the job posting to fetch")
	f.StringVarP(&runJobTitle, "job-title", "t", "", "Job title, used for output file naming")
	f.StringVar(&runConfigDir, "config-dir", "", "Configuration directory (default: current directory)")
	f.StringVarP(&runModel, "model", "m", "", "Override the configured AI model for this run")
	f.StringVarP(&runAPIKey, "api-key", "k", "", "Gemini API key (default: GEMINI_API_KEY env var)")
	f.StringVar(&runDatabaseURL, "db-url", "", "PostgreSQL URL for run history (default: DATABASE_URL env var)")
	f.BoolVar(&runUseBrowser, "use-browser", false, "Render --job-url in a headless browser (for JavaScript-heavy job boards)")
	f.BoolVar(&runShowConfig, "show-config", false, "Print the effective configuration and exit")
	f.BoolVarP(&runVerbose, "verbose", "v", false, "Print debug logging")

	rootCmd.AddCommand(runCommand)
}

func runPipelineCmd(cmd *cobra.Command, _ []string) error {
	logger := newLogger(runVerbose)

	cfg, err := config.Load(runConfigDir)
	if err != nil {
		return err
	}
	if runModel != "" {
		cfg.Settings.Model = runModel
	}

	if runShowConfig {
		printConfig(cfg)
		return nil
	}

	if err := validateJobSource(); err != nil {
		return err
	}

	apiKey := runAPIKey
	if apiKey == "" {
		apiKey = os.Getenv("GEMINI_API_KEY")
	}
	if apiKey == "" {
		return fmt.Errorf("Gemini API key required: pass --api-key or set GEMINI_API_KEY")
	}

	ctx := context.Background()

	client, err := llm.NewGeminiClient(ctx, apiKey)
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()

	var store *history.Store
	if dbURL := databaseURL(); dbURL != "" {
		store, err = history.Connect(ctx, dbURL)
		if err != nil {
			logger.Warn("run history unavailable, continuing without it", "error", err)
		} else {
			defer store.Close()
		}
	}

	completer := llm.NewCompleter(client, cfg.Settings.Model, cfg.Settings.MaxRetries, logger)
	customizer := pipeline.New(cfg, completer, store, logger)

	res, err := customizer.Run(ctx, pipeline.Options{
		JobDescription: runJobDescription,
		JobFile:        runJobFile,
		JobURL:         runJobURL,
		JobTitle:       runJobTitle,
		UseBrowser:     runUseBrowser,
	})
	if err != nil {
		// Surface compiler diagnostics; the error string alone is not enough
		// to debug a LaTeX failure.
		var cerr *latex.CompilationError
		if errors.As(err, &cerr) && cerr.Output != "" {
			fmt.Fprintf(os.Stderr, "--- compiler output ---\n%s\n-----------------------\n", cerr.Output)
		}
		return err
	}

	fmt.Printf("\nResume customization completed successfully!\n")
	fmt.Printf("LaTeX file: %s\n", res.TexPath)
	fmt.Printf("PDF file:   %s\n", res.PDFPath)
	return nil
}

// validateJobSource enforces that exactly one job description source is set.
func validateJobSource() error {
	set := 0
	for _, v := range []string{runJobDescription, runJobFile, runJobURL} {
		if v != "" {
			set++
		}
	}
	switch {
	case set == 0:
		return fmt.Errorf("a job description is required: pass --job-description, --job-file, or --job-url")
	case set > 1:
		return fmt.Errorf("--job-description, --job-file, and --job-url are mutually exclusive")
	}
	return nil
}

func databaseURL() string {
	if runDatabaseURL != "" {
		return runDatabaseURL
	}
	return os.Getenv("DATABASE_URL")
}

func newLogger(verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
