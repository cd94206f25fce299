package profile

import (
	"fmt"
	"strings"
)

// NotFoundError is returned when no résumé file exists at any checked location
type NotFoundError struct {
	Checked []string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no résumé found; checked: %s", strings.Join(e.Checked, ", "))
}

// LoadError represents an error reading a résumé file that does exist
type LoadError struct {
	Message string
	Cause   error
}

func (e *LoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("load error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("load error: %s", e.Message)
}

func (e *LoadError) Unwrap() error {
	return e.Cause
}
