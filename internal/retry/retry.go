// Package retry wraps fallible operations with bounded linear-backoff retries
// and runs work in jittered, order-preserving batches.
package retry

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"
)

// Error is returned once every attempt of an operation has failed
type Error struct {
	Label    string
	Attempts int
	Err      error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s failed after %d attempt(s): %v", e.Label, e.Attempts, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// permanentError marks an error that Do must not retry
type permanentError struct {
	err error
}

func (p *permanentError) Error() string { return p.err.Error() }

func (p *permanentError) Unwrap() error { return p.err }

// Permanent wraps err so that Do returns it after the current attempt
// instead of retrying.
func Permanent(err error) error {
	if err == nil {
		return nil
	}
	return &permanentError{err: err}
}

// Policy configures Do
type Policy struct {
	MaxAttempts int
	BaseDelay   time.Duration
	Verbose     bool
}

// DefaultPolicy is three attempts with a one second base delay
func DefaultPolicy() Policy {
	return Policy{MaxAttempts: 3, BaseDelay: time.Second}
}

// sleep waits for d or until ctx is done. Tests replace it.
var sleep = func(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Do invokes op until it succeeds or p.MaxAttempts is reached. After failed
// attempt n it waits BaseDelay×n (linear, not exponential) before retrying.
// The final error is wrapped in *Error tagged with label.
func Do[T any](ctx context.Context, label string, p Policy, op func(ctx context.Context) (T, error)) (T, error) {
	var zero T
	attempts := p.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		v, err := op(ctx)
		if err == nil {
			return v, nil
		}
		lastErr = err

		var perm *permanentError
		if errors.As(err, &perm) {
			return zero, &Error{Label: label, Attempts: attempt, Err: perm.err}
		}
		if attempt == attempts {
			break
		}
		wait := p.BaseDelay * time.Duration(attempt)
		if p.Verbose {
			log.Printf("[RETRY] %s attempt %d/%d failed: %v (retrying in %s)", label, attempt, attempts, err, wait)
		}
		if err := sleep(ctx, wait); err != nil {
			return zero, &Error{Label: label, Attempts: attempt, Err: err}
		}
	}

	return zero, &Error{Label: label, Attempts: attempts, Err: lastErr}
}
