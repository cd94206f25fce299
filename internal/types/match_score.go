package types

import "time"

// Recommendation is the categorical tier derived from a match score
type Recommendation string

const (
	// RecommendationStrong is assigned to scores of 75 and above
	RecommendationStrong Recommendation = "strong-fit"
	// RecommendationGood is assigned to scores of 60 through 74
	RecommendationGood Recommendation = "good-fit"
	// RecommendationConditional is assigned to scores of 45 through 59
	RecommendationConditional Recommendation = "conditional-fit"
	// RecommendationPoor is assigned to scores below 45
	RecommendationPoor Recommendation = "poor-fit"
)

// ScoreBreakdown holds the four capped sub-scores that sum to the total
type ScoreBreakdown struct {
	Skills     float64 `json:"skills"`
	Experience float64 `json:"experience"`
	Location   float64 `json:"location"`
	Bonus      float64 `json:"bonus"`
}

// MatchScore is the result of scoring one posting against one profile
type MatchScore struct {
	JobID           string         `json:"job_id"`
	Score           int            `json:"score"`
	MatchedSkills   []string       `json:"matched_skills"`
	MissingSkills   []string       `json:"missing_skills"`
	ExperienceMatch bool           `json:"experience_match"`
	LocationMatch   bool           `json:"location_match"`
	Recommendation  Recommendation `json:"recommendation"`
	Breakdown       ScoreBreakdown `json:"breakdown"`
}

// RankedMatch pairs a posting with its score
type RankedMatch struct {
	Job   JobPosting `json:"job"`
	Score MatchScore `json:"score"`
}

// DiscoveryResult is the output of one discovery run and the document written by --save
type DiscoveryResult struct {
	Query         string        `json:"query"`
	SearchedAt    time.Time     `json:"searched_at"`
	TotalFound    int           `json:"total_found"`
	TotalMatching int           `json:"total_matching"`
	MinScore      int           `json:"min_score"`
	Matches       []RankedMatch `json:"matches"`
}
