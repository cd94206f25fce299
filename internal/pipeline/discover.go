// Package pipeline provides the high-level orchestration for job discovery:
// scrape, score, filter, rank.
package pipeline

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/job-discovery/internal/scraper"
	"github.com/jonathan/job-discovery/internal/sources"
	"github.com/jonathan/job-discovery/internal/types"
)

// Progress steps reported through ProgressCallback
const (
	StepScrape = "scrape"
	StepScore  = "score"
	StepRank   = "rank"
	StepStore  = "store"
)

// ProgressEvent represents a progress update during a discovery run
type ProgressEvent struct {
	Step    string `json:"step"`
	Message string `json:"message"`
	RunID   string `json:"run_id,omitempty"`
}

// ProgressCallback is called when pipeline progress occurs
type ProgressCallback func(event ProgressEvent)

// PostingSource produces postings for a query. *scraper.Scraper satisfies it.
type PostingSource interface {
	Scrape(ctx context.Context, q sources.Query) ([]*types.JobPosting, scraper.Stats, error)
}

// Scorer scores one posting against a profile. *ranking.Scorer satisfies it.
type Scorer interface {
	Score(ctx context.Context, job *types.JobPosting, profile *types.CandidateProfile) types.MatchScore
}

// Store persists a finished run. *db.DB satisfies it.
type Store interface {
	SaveResult(ctx context.Context, result *types.DiscoveryResult) (uuid.UUID, error)
}

// Filters narrow the scored postings before ranking
type Filters struct {
	Days     int
	Remote   bool
	Location string
}

// Request is one discovery invocation
type Request struct {
	Query    string
	Filters  Filters
	MinScore int
	Limit    int // 0 keeps every match
}

// Pipeline wires a posting source to a scorer for one candidate profile
type Pipeline struct {
	Source     PostingSource
	Scorer     Scorer
	Profile    *types.CandidateProfile
	Store      Store // optional
	OnProgress ProgressCallback
	Verbose    bool

	now func() time.Time
}

// New creates a pipeline. store may be nil.
func New(source PostingSource, scorer Scorer, profile *types.CandidateProfile, store Store) *Pipeline {
	return &Pipeline{
		Source:  source,
		Scorer:  scorer,
		Profile: profile,
		Store:   store,
		now:     time.Now,
	}
}

func (p *Pipeline) emit(step, message, runID string) {
	if p.OnProgress != nil {
		p.OnProgress(ProgressEvent{Step: step, Message: message, RunID: runID})
	}
}

func (p *Pipeline) clock() time.Time {
	if p.now == nil {
		return time.Now()
	}
	return p.now()
}

// Discover scrapes postings for req.Query, scores each against the profile,
// applies the filters and threshold, and returns the ranked matches. A scrape
// error aborts the run; zero postings is a valid, empty result.
func (p *Pipeline) Discover(ctx context.Context, req Request) (*types.DiscoveryResult, error) {
	if strings.TrimSpace(req.Query) == "" {
		return nil, fmt.Errorf("search query is required")
	}
	searchedAt := p.clock()

	postings, stats, err := p.Source.Scrape(ctx, sources.Query{
		Text:     req.Query,
		Days:     req.Filters.Days,
		Remote:   req.Filters.Remote,
		Location: req.Filters.Location,
	})
	if err != nil {
		return nil, fmt.Errorf("scraping %q failed: %w", req.Query, err)
	}
	p.emit(StepScrape, fmt.Sprintf("Extracted %d postings from %d links (%d dropped)", len(postings), stats.Links, stats.Dropped), "")

	result := &types.DiscoveryResult{
		Query:      req.Query,
		SearchedAt: searchedAt,
		TotalFound: len(postings),
		MinScore:   req.MinScore,
		Matches:    []types.RankedMatch{},
	}

	for _, job := range postings {
		if !req.Filters.Accept(job, searchedAt) {
			if p.Verbose {
				log.Printf("[PIPELINE] Filtered out %q (%s)", job.Title, job.URL)
			}
			continue
		}
		score := p.Scorer.Score(ctx, job, p.Profile)
		if score.Score < req.MinScore {
			continue
		}
		result.Matches = append(result.Matches, types.RankedMatch{Job: *job, Score: score})
	}
	p.emit(StepScore, fmt.Sprintf("%d of %d postings scored at or above %d", len(result.Matches), len(postings), req.MinScore), "")

	Rank(result.Matches)
	result.TotalMatching = len(result.Matches)
	if req.Limit > 0 && len(result.Matches) > req.Limit {
		result.Matches = result.Matches[:req.Limit]
	}
	p.emit(StepRank, fmt.Sprintf("Returning %d matches", len(result.Matches)), "")

	if p.Store != nil {
		runID, err := p.Store.SaveResult(ctx, result)
		if err != nil {
			log.Printf("Warning: Failed to save discovery run: %v", err)
		} else {
			if p.Verbose {
				log.Printf("[PIPELINE] Saved discovery run %s", runID)
			}
			p.emit(StepStore, "Saved discovery run", runID.String())
		}
	}

	return result, nil
}

// Accept reports whether job passes every active filter. now anchors the
// recency window. Postings without a date pass the Days filter.
func (f Filters) Accept(job *types.JobPosting, now time.Time) bool {
	if job == nil {
		return false
	}
	if f.Days > 0 && !job.PostedAt.IsZero() && job.PostedAt.Before(now.AddDate(0, 0, -f.Days)) {
		return false
	}
	if f.Remote && !job.IsRemote() {
		return false
	}
	if loc := strings.ToLower(strings.TrimSpace(f.Location)); loc != "" {
		if !strings.Contains(strings.ToLower(job.Location), loc) &&
			!(job.IsRemote() && strings.Contains(loc, "remote")) {
			return false
		}
	}
	return true
}

// Rank orders matches by score descending, then by most recent posting, then
// by ID so the order is stable across runs.
func Rank(matches []types.RankedMatch) {
	sort.SliceStable(matches, func(i, j int) bool {
		a, b := matches[i], matches[j]
		if a.Score.Score != b.Score.Score {
			return a.Score.Score > b.Score.Score
		}
		if !a.Job.PostedAt.Equal(b.Job.PostedAt) {
			return a.Job.PostedAt.After(b.Job.PostedAt)
		}
		return a.Job.ID < b.Job.ID
	})
}
