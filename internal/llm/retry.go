package llm

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// attemptTimeout bounds a single completion call so a hung request cannot
// block the pipeline indefinitely.
const attemptTimeout = 2 * time.Minute

// CompletionError reports that the completion call exhausted its retries.
type CompletionError struct {
	Attempts int
	Cause    error
}

func (e *CompletionError) Error() string {
	return fmt.Sprintf("completion failed after %d attempts: %v", e.Attempts, e.Cause)
}

func (e *CompletionError) Unwrap() error {
	return e.Cause
}

// Completer decorates a Client with a bounded retry loop and fence stripping.
// Retries are immediate, matching the tool's historic behavior; cancellation
// is honored between attempts.
type Completer struct {
	client     Client
	model      string
	maxRetries int
	logger     *slog.Logger
}

// NewCompleter wraps client with retry handling. maxRetries is the total
// number of attempts (minimum 1).
func NewCompleter(client Client, model string, maxRetries int, logger *slog.Logger) *Completer {
	if maxRetries < 1 {
		maxRetries = 1
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Completer{
		client:     client,
		model:      model,
		maxRetries: maxRetries,
		logger:     logger,
	}
}

// Complete sends the prompt, retrying transient failures, and returns the
// post-processed completion text with markdown fences stripped.
func (c *Completer) Complete(ctx context.Context, prompt string) (string, error) {
	var lastErr error

	for attempt := 1; attempt <= c.maxRetries; attempt++ {
		if err := ctx.Err(); err != nil {
			return "", fmt.Errorf("completion cancelled: %w", err)
		}

		attemptCtx, cancel := context.WithTimeout(ctx, attemptTimeout)
		text, err := c.client.Complete(attemptCtx, c.model, prompt)
		cancel()
		if err == nil {
			return StripFences(text), nil
		}

		lastErr = err
		if attempt < c.maxRetries {
			c.logger.Warn("completion attempt failed, retrying",
				"attempt", attempt,
				"max_retries", c.maxRetries,
				"model", c.model,
				"error", err,
			)
		}
	}

	return "", &CompletionError{Attempts: c.maxRetries, Cause: lastErr}
}
