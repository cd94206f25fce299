package ranking

import "github.com/jonathan/job-discovery/internal/types"

// Tier thresholds on the 0-100 scale
const (
	StrongFitThreshold      = 75
	GoodFitThreshold        = 60
	ConditionalFitThreshold = 45
)

// TierFor maps a total score to its recommendation
func TierFor(score int) types.Recommendation {
	switch {
	case score >= StrongFitThreshold:
		return types.RecommendationStrong
	case score >= GoodFitThreshold:
		return types.RecommendationGood
	case score >= ConditionalFitThreshold:
		return types.RecommendationConditional
	default:
		return types.RecommendationPoor
	}
}
