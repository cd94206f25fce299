package db

import (
	"time"

	"github.com/google/uuid"
)

// Run is a stored discovery run
type Run struct {
	ID            uuid.UUID `json:"id"`
	Query         string    `json:"query"`
	SearchedAt    time.Time `json:"searched_at"`
	MinScore      int       `json:"min_score"`
	TotalFound    int       `json:"total_found"`
	TotalMatching int       `json:"total_matching"`
}

// MatchRecord is one scored posting as returned by history queries
type MatchRecord struct {
	RunID          uuid.UUID `json:"run_id"`
	Query          string    `json:"query"`
	SearchedAt     time.Time `json:"searched_at"`
	JobID          string    `json:"job_id"`
	Title          string    `json:"title"`
	Company        string    `json:"company"`
	Location       string    `json:"location"`
	URL            string    `json:"url"`
	PostedAt       time.Time `json:"posted_at"`
	Score          int       `json:"score"`
	Recommendation string    `json:"recommendation"`
	MatchedSkills  []string  `json:"matched_skills"`
	MissingSkills  []string  `json:"missing_skills"`
}

// HistoryFilter narrows ListMatches. Zero values are ignored.
type HistoryFilter struct {
	Query    string    // case-insensitive substring of the run query
	Company  string    // case-insensitive substring of the company
	MinScore int       // inclusive
	Since    time.Time // runs searched at or after
	Limit    int       // defaults to DefaultHistoryLimit
}

// DefaultHistoryLimit caps history queries without an explicit limit
const DefaultHistoryLimit = 50
