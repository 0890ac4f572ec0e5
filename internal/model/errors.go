// Package model holds error types shared across pipeline stages.
package model

import (
	"fmt"
	"io/fs"
)

// NotFoundError reports a required input file that is absent. Fatal: no stage
// retries a missing file.
type NotFoundError struct {
	What string // human description, e.g. "resume template"
	Path string // path (or path list) that was tried
	Err  error
}

func (e *NotFoundError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s not found: %s: %v", e.What, e.Path, e.Err)
	}
	return fmt.Sprintf("%s not found: %s", e.What, e.Path)
}

func (e *NotFoundError) Unwrap() error {
	return e.Err
}

// Is lets callers match with errors.Is(err, fs.ErrNotExist).
func (e *NotFoundError) Is(target error) bool {
	return target == fs.ErrNotExist
}
