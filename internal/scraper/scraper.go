package scraper

import (
	"context"
	"log"

	"github.com/jonathan/job-discovery/internal/cache"
	"github.com/jonathan/job-discovery/internal/retry"
	"github.com/jonathan/job-discovery/internal/sources"
	"github.com/jonathan/job-discovery/internal/types"
)

// Stats summarizes one scrape
type Stats struct {
	Links      int `json:"links"`
	Extracted  int `json:"extracted"`
	Dropped    int `json:"dropped"`
	Duplicates int `json:"duplicates"`
}

// Scraper composes listing collection and concurrent detail extraction
type Scraper struct {
	collector *ListingCollector
	extractor *PostingExtractor
	opts      Options
}

// New creates a scraper for one source. postingCache may be nil.
func New(renderer Renderer, strategy sources.Strategy, postingCache cache.PostingCache, opts Options) *Scraper {
	opts = opts.withDefaults()
	return &Scraper{
		collector: NewListingCollector(renderer, strategy, opts),
		extractor: NewPostingExtractor(renderer, strategy, postingCache, opts),
		opts:      opts,
	}
}

// Scrape collects posting links for q and extracts them in batches of
// Options.Concurrency. Dropped pages reduce the result rather than failing
// it; postings sharing an ID are kept once.
func (s *Scraper) Scrape(ctx context.Context, q sources.Query) ([]*types.JobPosting, Stats, error) {
	var stats Stats

	links, err := s.collector.Collect(ctx, q)
	if err != nil {
		return nil, stats, err
	}
	stats.Links = len(links)
	if len(links) == 0 {
		return []*types.JobPosting{}, stats, nil
	}

	extracted, err := retry.ConcurrentMap(ctx, links, s.opts.Concurrency, s.opts.BatchDelay, s.extractor.Extract)
	if err != nil {
		return nil, stats, err
	}

	seen := make(map[string]bool, len(extracted))
	postings := make([]*types.JobPosting, 0, len(extracted))
	for _, p := range extracted {
		switch {
		case p == nil:
			stats.Dropped++
		case seen[p.ID]:
			stats.Duplicates++
		default:
			seen[p.ID] = true
			postings = append(postings, p)
		}
	}
	stats.Extracted = len(postings)

	if s.opts.Verbose {
		log.Printf("[SCRAPER] Extracted %d of %d posting(s) (%d dropped, %d duplicate)",
			stats.Extracted, stats.Links, stats.Dropped, stats.Duplicates)
	}
	return postings, stats, nil
}
