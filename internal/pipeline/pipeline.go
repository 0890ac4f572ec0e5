// Package pipeline orchestrates resume customization: template and job
// description reading, prompt construction, the completion call, output
// persistence, compilation, and cleanup. Strictly sequential; any stage
// failure halts the run and propagates a typed error.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/jonathan/resume-customizer-cli/internal/config"
	"github.com/jonathan/resume-customizer-cli/internal/history"
	"github.com/jonathan/resume-customizer-cli/internal/jd"
	"github.com/jonathan/resume-customizer-cli/internal/latex"
	"github.com/jonathan/resume-customizer-cli/internal/output"
	"github.com/jonathan/resume-customizer-cli/internal/prompt"
)

// Completer is the completion capability the pipeline depends on.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Options selects the job description source and naming inputs for one run.
// Exactly one of JobDescription, JobFile, JobURL must be set.
type Options struct {
	JobDescription string // literal text
	JobFile        string // path to a text file
	JobURL         string // job posting URL
	JobTitle       string // affects output naming only
	UseBrowser     bool   // render JobURL in a headless browser
}

// Result is the output artifact pair of a successful run.
type Result struct {
	TexPath string
	PDFPath string
}

// Customizer runs the customization pipeline against one configuration.
type Customizer struct {
	cfg       *config.Manager
	completer Completer
	writer    *output.Writer
	compiler  *latex.Compiler
	store     *history.Store // optional, may be nil
	logger    *slog.Logger
}

// New assembles a Customizer from the loaded configuration. store may be nil.
func New(cfg *config.Manager, completer Completer, store *history.Store, logger *slog.Logger) *Customizer {
	if logger == nil {
		logger = slog.Default()
	}
	s := cfg.Settings
	return &Customizer{
		cfg:       cfg,
		completer: completer,
		writer:    output.NewWriter(cfg.OutputDir(), s.MaxJobTitleLength, s.IncludeTimestamp),
		compiler: latex.NewCompiler(s.Compiler, s.CompilerOptions, s.CompilationPasses,
			cfg.OutputDir(), cfg.TemplatesDir(), cfg.Dir(), s.ResumeClass, logger),
		store:  store,
		logger: logger,
	}
}

// Run executes the pipeline and returns the written .tex and compiled .pdf
// paths. A .tex already written when compilation fails is left in place for
// diagnosis.
func (c *Customizer) Run(ctx context.Context, opts Options) (Result, error) {
	runID := c.startRun(ctx, opts.JobTitle)
	res, err := c.run(ctx, opts)
	if err != nil {
		c.finishRun(ctx, runID, "failed", res)
		return res, err
	}
	c.finishRun(ctx, runID, "completed", res)
	return res, nil
}

func (c *Customizer) run(ctx context.Context, opts Options) (Result, error) {
	var res Result

	fmt.Printf("Step 1/6: Reading resume template...\n")
	resumeText, err := c.readTemplate()
	if err != nil {
		return res, err
	}

	fmt.Printf("Step 2/6: Reading job description...\n")
	jobDescription, err := c.readJobDescription(ctx, opts)
	if err != nil {
		return res, err
	}

	fmt.Printf("Step 3/6: Customizing resume with %s...\n", c.cfg.Settings.Model)
	p := prompt.Build(c.cfg.Prompts, resumeText, jobDescription)
	customized, err := c.completer.Complete(ctx, p)
	if err != nil {
		return res, err
	}

	fmt.Printf("Step 4/6: Saving customized resume...\n")
	texPath, err := c.writer.Save(customized, opts.JobTitle)
	if err != nil {
		return res, err
	}
	res.TexPath = texPath

	fmt.Printf("Step 5/6: Compiling PDF (%d passes)...\n", c.cfg.Settings.CompilationPasses)
	pdfPath, err := c.compiler.Compile(ctx, texPath)
	if err != nil {
		return res, err
	}
	res.PDFPath = pdfPath

	fmt.Printf("Step 6/6: Cleaning up auxiliary files...\n")
	latex.Cleanup(texPath, c.cfg.Settings.AuxExtensions, c.cfg.Settings.CleanupAuxFiles, c.logger)

	return res, nil
}

func (c *Customizer) readJobDescription(ctx context.Context, opts Options) (string, error) {
	switch {
	case opts.JobURL != "":
		return jd.FromURL(ctx, opts.JobURL, opts.UseBrowser)
	case opts.JobFile != "":
		return jd.FromFile(c.resolveJobFile(opts.JobFile))
	case opts.JobDescription != "":
		return jd.FromText(opts.JobDescription), nil
	default:
		return "", fmt.Errorf("no job description provided")
	}
}

// startRun records the run in the optional history store. History is never
// load-bearing: failures log a warning and the run proceeds.
func (c *Customizer) startRun(ctx context.Context, jobTitle string) uuid.UUID {
	if c.store == nil {
		return uuid.Nil
	}
	id, err := c.store.StartRun(ctx, jobTitle, c.cfg.Settings.Model)
	if err != nil {
		c.logger.Warn("failed to record run in history", "error", err)
		return uuid.Nil
	}
	return id
}

func (c *Customizer) finishRun(ctx context.Context, id uuid.UUID, status string, res Result) {
	if c.store == nil || id == uuid.Nil {
		return
	}
	if err := c.store.FinishRun(ctx, id, status, res.TexPath, res.PDFPath); err != nil {
		c.logger.Warn("failed to record run outcome in history", "error", err)
	}
}
