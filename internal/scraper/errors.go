package scraper

import "fmt"

// ExtractionError describes a failed listing or detail page
type ExtractionError struct {
	Stage string // "listing" or "posting"
	URL   string
	Cause error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("%s extraction failed for %s: %v", e.Stage, e.URL, e.Cause)
}

func (e *ExtractionError) Unwrap() error {
	return e.Cause
}
