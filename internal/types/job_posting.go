// Package types provides type definitions for structured data used throughout the job-discovery system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"time"

	"github.com/go-playground/validator/v10"
)

// LocationType classifies where a job is performed
type LocationType string

const (
	// LocationRemote is a fully remote role
	LocationRemote LocationType = "remote"
	// LocationHybrid is a role split between office and home
	LocationHybrid LocationType = "hybrid"
	// LocationOnsite is an office-only role (the fallback classification)
	LocationOnsite LocationType = "onsite"
)

// Salary periods
const (
	PeriodYear  = "year"
	PeriodMonth = "month"
	PeriodHour  = "hour"
)

// SalaryRange is a parsed compensation range
type SalaryRange struct {
	Min      float64 `json:"min"`
	Max      float64 `json:"max"`
	Currency string  `json:"currency"`
	Period   string  `json:"period"`
}

// Annualized returns the minimum expressed as a yearly amount.
func (s *SalaryRange) Annualized() float64 {
	if s == nil {
		return 0
	}
	switch s.Period {
	case PeriodHour:
		return s.Min * 2080
	case PeriodMonth:
		return s.Min * 12
	default:
		return s.Min
	}
}

// JobPosting is one discovered listing. Records are immutable once built; a
// re-scrape produces a new value that may share the same ID.
type JobPosting struct {
	ID               string       `json:"id"`
	Title            string       `json:"title" validate:"required"`
	Company          string       `json:"company"`
	Location         string       `json:"location"`
	Description      string       `json:"description" validate:"required"`
	ShortDescription string       `json:"short_description"`
	URL              string       `json:"url"`
	ApplyURL         string       `json:"apply_url,omitempty"`
	PostedAt         time.Time    `json:"posted_at"`
	EmploymentTypes  []string     `json:"employment_types,omitempty"`
	LocationType     LocationType `json:"location_type"`
	Salary           *SalaryRange `json:"salary,omitempty"`
	Source           string       `json:"source"`
	ScrapedAt        time.Time    `json:"scraped_at"`
}

var postingValidator = validator.New()

// Validate reports whether the posting carries the fields required to be scored.
func (p *JobPosting) Validate() error {
	return postingValidator.Struct(p)
}

// IsRemote reports whether the posting is tagged remote.
func (p *JobPosting) IsRemote() bool {
	return p.LocationType == LocationRemote
}

// RawPosting holds the unprocessed field text read from a detail page by a
// source strategy, before any normalization
type RawPosting struct {
	URL            string
	Title          string
	Company        string
	Location       string
	Description    string
	SalaryText     string
	DateText       string
	ApplyURL       string
	EmploymentText string
}
