// Package sources holds the site-specific knowledge for each job board: how
// to build a search URL, which links are postings, and where each field
// lives on a detail page.
package sources

import (
	"fmt"
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/jonathan/job-discovery/internal/types"
)

// Query is a search request with its optional filters
type Query struct {
	Text     string
	Days     int
	Remote   bool
	Location string
}

// Strategy encapsulates one job board
type Strategy interface {
	// Name is the source identifier stored on postings and used as the browser context key
	Name() string
	// SearchURL encodes q into the board's listing URL
	SearchURL(q Query) string
	// IsPostingURL reports whether an absolute URL is a detail page
	IsPostingURL(u string) bool
	// ParsePosting reads raw field text from a rendered detail page
	ParsePosting(doc *goquery.Document, pageURL string) types.RawPosting
}

// UnknownSourceError is returned for a source name with no registered strategy
type UnknownSourceError struct {
	Name      string
	Available []string
}

func (e *UnknownSourceError) Error() string {
	return fmt.Sprintf("unknown source %q (available: %s)", e.Name, strings.Join(e.Available, ", "))
}

// Registry resolves strategies by name
type Registry struct {
	strategies map[string]Strategy
}

// NewRegistry registers the given strategies; later duplicates win
func NewRegistry(strategies ...Strategy) *Registry {
	r := &Registry{strategies: make(map[string]Strategy, len(strategies))}
	for _, s := range strategies {
		r.Register(s)
	}
	return r
}

// DefaultRegistry contains every built-in board
func DefaultRegistry() *Registry {
	return NewRegistry(NewHiringCafe())
}

// Register adds or replaces s
func (r *Registry) Register(s Strategy) {
	r.strategies[strings.ToLower(s.Name())] = s
}

// Get looks up a strategy by case-insensitive name
func (r *Registry) Get(name string) (Strategy, error) {
	if s, ok := r.strategies[strings.ToLower(strings.TrimSpace(name))]; ok {
		return s, nil
	}
	return nil, &UnknownSourceError{Name: name, Available: r.Names()}
}

// Names lists registered strategies alphabetically
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.strategies))
	for n := range r.strategies {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
