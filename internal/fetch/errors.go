package fetch

import (
	"errors"
	"fmt"
)

// ErrSessionClosed is returned by Session methods called after Shutdown
var ErrSessionClosed = errors.New("browser session is shut down")

// Error represents a failure to render a URL
type Error struct {
	URL     string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("fetch error for %s: %s: %v", e.URL, e.Message, e.Cause)
	}
	return fmt.Sprintf("fetch error for %s: %s", e.URL, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// LaunchError means the browser process could not be started. It is fatal
// for the run and is never retried.
type LaunchError struct {
	Message string
	Cause   error
}

func (e *LaunchError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("browser launch failed: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("browser launch failed: %s", e.Message)
}

func (e *LaunchError) Unwrap() error {
	return e.Cause
}

// IsLaunchError reports whether err wraps a *LaunchError
func IsLaunchError(err error) bool {
	var le *LaunchError
	return errors.As(err, &le)
}
