// Package scraper turns a search query into validated job postings: the
// listing collector gathers detail-page URLs, the posting extractor renders
// and parses each one, and Scraper runs the two with bounded concurrency.
package scraper

import (
	"context"
	"time"

	"github.com/jonathan/job-discovery/internal/retry"
)

// Defaults tuned for client-rendered boards
const (
	DefaultListingSettle = 5 * time.Second
	DefaultPostingSettle = 2 * time.Second
	DefaultConcurrency   = 3
	DefaultBatchDelay    = 3 * time.Second
	DefaultMaxPostings   = 50
)

// Renderer returns the rendered HTML of a URL within a source's browsing context
type Renderer interface {
	Render(ctx context.Context, source, url string, settle time.Duration) (string, error)
}

// Options configures collection and extraction
type Options struct {
	ListingSettle time.Duration
	PostingSettle time.Duration
	Concurrency   int
	BatchDelay    time.Duration
	MaxPostings   int // cap on links followed; <= 0 means DefaultMaxPostings
	Retry         retry.Policy
	Verbose       bool
}

// DefaultOptions returns the standard pacing
func DefaultOptions() Options {
	return Options{
		ListingSettle: DefaultListingSettle,
		PostingSettle: DefaultPostingSettle,
		Concurrency:   DefaultConcurrency,
		BatchDelay:    DefaultBatchDelay,
		MaxPostings:   DefaultMaxPostings,
		Retry:         retry.DefaultPolicy(),
	}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.ListingSettle < 0 {
		o.ListingSettle = 0
	}
	if o.PostingSettle < 0 {
		o.PostingSettle = 0
	}
	if o.Concurrency < 1 {
		o.Concurrency = d.Concurrency
	}
	if o.BatchDelay < 0 {
		o.BatchDelay = 0
	}
	if o.MaxPostings <= 0 {
		o.MaxPostings = d.MaxPostings
	}
	if o.Retry.MaxAttempts < 1 {
		o.Retry = d.Retry
	}
	o.Retry.Verbose = o.Retry.Verbose || o.Verbose
	return o
}
