// Package latex drives the external typesetting toolchain: class-file staging,
// multi-pass compilation, and auxiliary-artifact cleanup.
package latex

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

// passTimeout bounds a single compiler pass.
const passTimeout = 60 * time.Second

// fallbackClassName is tried when the configured class file is absent.
const fallbackClassName = "resume.cls"

// Compiler invokes the configured external compiler on a .tex source.
type Compiler struct {
	Command      string   // e.g. "pdflatex"
	Options      []string // e.g. ["-interaction=nonstopmode"]
	Passes       int      // multi-pass resolves cross-references
	OutputDir    string   // working directory for the subprocess
	TemplatesDir string   // searched first for the class file
	BaseDir      string   // searched second for the class file
	ClassFile    string   // configured class filename

	logger *slog.Logger
}

// NewCompiler returns a Compiler with the given settings.
func NewCompiler(command string, options []string, passes int, outputDir, templatesDir, baseDir, classFile string, logger *slog.Logger) *Compiler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Compiler{
		Command:      command,
		Options:      options,
		Passes:       passes,
		OutputDir:    outputDir,
		TemplatesDir: templatesDir,
		BaseDir:      baseDir,
		ClassFile:    classFile,
		logger:       logger,
	}
}

// Compile runs the configured number of compiler passes over texPath and
// returns the path of the produced PDF. The output directory is passed to the
// subprocess as its working directory; the process-wide working directory is
// never touched.
func (c *Compiler) Compile(ctx context.Context, texPath string) (string, error) {
	if _, err := exec.LookPath(c.Command); err != nil {
		return "", &CompilationError{
			Message: fmt.Sprintf("compiler %q not found in PATH (install a LaTeX distribution such as TeX Live or MiKTeX)", c.Command),
			Cause:   err,
		}
	}

	c.stageClassFile()

	texName := filepath.Base(texPath)
	args := append(append([]string{}, c.Options...), texName)
	cmdLine := strings.Join(append([]string{c.Command}, args...), " ")

	var lastOutput string
	for pass := 1; pass <= c.Passes; pass++ {
		output, err := c.runPass(ctx, args)
		lastOutput = output
		if err != nil {
			return "", &CompilationError{
				Pass:    pass,
				Command: cmdLine,
				Output:  output,
				Message: "compiler exited with an error",
				Cause:   err,
			}
		}
	}

	pdfPath := strings.TrimSuffix(texPath, filepath.Ext(texPath)) + ".pdf"
	if _, err := os.Stat(pdfPath); os.IsNotExist(err) {
		return "", &CompilationError{
			Pass:    c.Passes,
			Command: cmdLine,
			Output:  lastOutput,
			Message: "all passes succeeded but no PDF exists",
			Cause:   ErrArtifactNotProduced,
		}
	}

	return pdfPath, nil
}

func (c *Compiler) runPass(ctx context.Context, args []string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, passTimeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, c.Command, args...)
	cmd.Dir = c.OutputDir

	var stdout, stderr strings.Builder
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	return stdout.String() + stderr.String(), err
}

// stageClassFile copies the document-class file into the output directory so
// the compiler can resolve it. Missing class files are a warning, not an
// error: self-contained documents compile without one.
func (c *Compiler) stageClassFile() {
	names := []string{c.ClassFile}
	if c.ClassFile != fallbackClassName {
		names = append(names, fallbackClassName)
	}

	var tried []string
	for _, name := range names {
		if name == "" {
			continue
		}
		for _, dir := range []string{c.TemplatesDir, c.BaseDir} {
			src := filepath.Join(dir, name)
			if _, err := os.Stat(src); err != nil {
				tried = append(tried, src)
				continue
			}
			dst := filepath.Join(c.OutputDir, name)
			if err := copyFile(src, dst); err != nil {
				c.logger.Warn("failed to copy class file, proceeding without it",
					"source", src, "error", err)
				return
			}
			return
		}
	}

	c.logger.Warn("class file not found, proceeding without it", "tried", strings.Join(tried, ", "))
}

func copyFile(src, dst string) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return err
	}
	return os.WriteFile(dst, data, 0o644)
}
