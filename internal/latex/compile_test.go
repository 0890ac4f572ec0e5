package latex

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// writeScript installs a fake compiler executable and returns its path.
func writeScript(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fake-compiler")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+body), 0o755))
	return path
}

// newTestCompiler wires a Compiler around an output dir and a fake compiler.
func newTestCompiler(t *testing.T, command string, passes int) (*Compiler, string) {
	t.Helper()
	dir := t.TempDir()
	outputDir := filepath.Join(dir, "output")
	templatesDir := filepath.Join(dir, "templates")
	require.NoError(t, os.MkdirAll(outputDir, 0o755))
	require.NoError(t, os.MkdirAll(templatesDir, 0o755))

	c := NewCompiler(command, []string{"-interaction=nonstopmode"}, passes,
		outputDir, templatesDir, dir, "resume.cls", testLogger())
	return c, outputDir
}

// successScript simulates a compiler producing a PDF and aux byproducts, and
// counts invocations in passes.count.
const successScript = `echo pass >> passes.count
name="$2"
base="${name%.tex}"
echo "This is a fake LaTeX run for $name"
touch "$base.pdf" "$base.aux" "$base.log"
`

func TestCompile_MultiPassProducesPDF(t *testing.T) {
	script := writeScript(t, successScript)
	c, outputDir := newTestCompiler(t, script, 2)

	texPath := filepath.Join(outputDir, "resume_Dev.tex")
	require.NoError(t, os.WriteFile(texPath, []byte("\\documentclass{resume}"), 0o644))

	pdfPath, err := c.Compile(context.Background(), texPath)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(outputDir, "resume_Dev.pdf"), pdfPath)
	assert.FileExists(t, pdfPath)

	// Exactly the configured number of passes ran.
	counts, err := os.ReadFile(filepath.Join(outputDir, "passes.count"))
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(string(counts), "pass"))
}

func TestCompile_FailingPassStopsImmediately(t *testing.T) {
	script := writeScript(t, `echo pass >> passes.count
echo "! LaTeX Error: File ended while scanning."
exit 1
`)
	c, outputDir := newTestCompiler(t, script, 2)

	texPath := filepath.Join(outputDir, "resume_Dev.tex")
	require.NoError(t, os.WriteFile(texPath, []byte("broken"), 0o644))

	_, err := c.Compile(context.Background(), texPath)
	require.Error(t, err)

	var cerr *CompilationError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, 1, cerr.Pass)
	assert.Contains(t, cerr.Command, "resume_Dev.tex")
	assert.Contains(t, cerr.Output, "! LaTeX Error")

	// Pass 2 was never invoked.
	counts, readErr := os.ReadFile(filepath.Join(outputDir, "passes.count"))
	require.NoError(t, readErr)
	assert.Equal(t, 1, strings.Count(string(counts), "pass"))
}

func TestCompile_ArtifactNotProduced(t *testing.T) {
	// Exit zero but never write the PDF.
	script := writeScript(t, `echo "looks fine"`)
	c, outputDir := newTestCompiler(t, script, 2)

	texPath := filepath.Join(outputDir, "resume_Dev.tex")
	require.NoError(t, os.WriteFile(texPath, []byte("\\documentclass{resume}"), 0o644))

	_, err := c.Compile(context.Background(), texPath)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrArtifactNotProduced)

	var cerr *CompilationError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, 2, cerr.Pass)
}

func TestCompile_CompilerMissing(t *testing.T) {
	c, outputDir := newTestCompiler(t, "definitely-not-a-real-compiler-binary", 2)

	texPath := filepath.Join(outputDir, "resume_Dev.tex")
	require.NoError(t, os.WriteFile(texPath, []byte("x"), 0o644))

	_, err := c.Compile(context.Background(), texPath)
	require.Error(t, err)

	var cerr *CompilationError
	require.ErrorAs(t, err, &cerr)
	assert.Zero(t, cerr.Pass)
	assert.Contains(t, cerr.Message, "not found in PATH")
}

func TestCompile_StagesClassFile(t *testing.T) {
	script := writeScript(t, successScript)
	c, outputDir := newTestCompiler(t, script, 1)
	require.NoError(t, os.WriteFile(filepath.Join(c.TemplatesDir, "resume.cls"),
		[]byte("% fake class"), 0o644))

	texPath := filepath.Join(outputDir, "resume_Dev.tex")
	require.NoError(t, os.WriteFile(texPath, []byte("\\documentclass{resume}"), 0o644))

	_, err := c.Compile(context.Background(), texPath)
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(outputDir, "resume.cls"))
}

func TestCompile_MissingClassFileIsNotFatal(t *testing.T) {
	script := writeScript(t, successScript)
	c, outputDir := newTestCompiler(t, script, 1)

	texPath := filepath.Join(outputDir, "resume_Dev.tex")
	require.NoError(t, os.WriteFile(texPath, []byte("\\documentclass{article}"), 0o644))

	_, err := c.Compile(context.Background(), texPath)
	assert.NoError(t, err)
}
