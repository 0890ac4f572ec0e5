package latex

import (
	"errors"
	"fmt"
)

// ErrArtifactNotProduced marks the case where every compiler pass exited zero
// but the expected PDF never appeared.
var ErrArtifactNotProduced = errors.New("rendered PDF was not produced")

// CompilationError reports a failed compiler invocation: which pass failed,
// the command that was run, and the captured stdout/stderr diagnostics.
type CompilationError struct {
	Pass    int    // 1-based pass index, 0 when no pass was run
	Command string // the invoked command line
	Output  string // combined stdout and stderr
	Message string
	Cause   error
}

func (e *CompilationError) Error() string {
	switch {
	case e.Pass > 0 && e.Cause != nil:
		return fmt.Sprintf("LaTeX compilation failed on pass %d (%s): %s: %v", e.Pass, e.Command, e.Message, e.Cause)
	case e.Pass > 0:
		return fmt.Sprintf("LaTeX compilation failed on pass %d (%s): %s", e.Pass, e.Command, e.Message)
	case e.Cause != nil:
		return fmt.Sprintf("LaTeX compilation failed: %s: %v", e.Message, e.Cause)
	default:
		return fmt.Sprintf("LaTeX compilation failed: %s", e.Message)
	}
}

func (e *CompilationError) Unwrap() error {
	return e.Cause
}
