package scraper

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/jonathan/job-discovery/internal/cache"
	"github.com/jonathan/job-discovery/internal/fetch"
	"github.com/jonathan/job-discovery/internal/parsing"
	"github.com/jonathan/job-discovery/internal/retry"
	"github.com/jonathan/job-discovery/internal/sources"
	"github.com/jonathan/job-discovery/internal/types"
)

// PostingExtractor renders one detail page and builds a validated posting
type PostingExtractor struct {
	renderer Renderer
	strategy sources.Strategy
	cache    cache.PostingCache
	opts     Options
	now      func() time.Time
}

// NewPostingExtractor creates an extractor. postingCache may be nil.
func NewPostingExtractor(renderer Renderer, strategy sources.Strategy, postingCache cache.PostingCache, opts Options) *PostingExtractor {
	return &PostingExtractor{
		renderer: renderer,
		strategy: strategy,
		cache:    postingCache,
		opts:     opts.withDefaults(),
		now:      time.Now,
	}
}

// Extract returns the posting at pageURL. A page that keeps failing or lacks
// a title or description is logged and yields (nil, nil) so the batch can
// continue. Only failures that end the run (browser launch, shutdown,
// cancellation) are returned as errors.
func (e *PostingExtractor) Extract(ctx context.Context, pageURL string) (*types.JobPosting, error) {
	if e.cache != nil {
		cached, ok, err := e.cache.Get(ctx, pageURL)
		if err != nil && e.opts.Verbose {
			log.Printf("[EXTRACT] Cache lookup failed for %s: %v", pageURL, err)
		}
		if ok {
			if e.opts.Verbose {
				log.Printf("[EXTRACT] Cache hit: %s", pageURL)
			}
			return cached, nil
		}
	}

	html, err := retry.Do(ctx, "extract "+pageURL, e.opts.Retry, func(ctx context.Context) (string, error) {
		return render(ctx, e.renderer, e.strategy.Name(), pageURL, e.opts.PostingSettle)
	})
	if err != nil {
		if fatal(ctx, err) {
			return nil, &ExtractionError{Stage: "posting", URL: pageURL, Cause: err}
		}
		log.Printf("[EXTRACT] Dropping %s: %v", pageURL, err)
		return nil, nil
	}

	doc, err := fetch.ParseDocument(html)
	if err != nil {
		log.Printf("[EXTRACT] Dropping %s: %v", pageURL, err)
		return nil, nil
	}

	posting, err := parsing.BuildPosting(e.strategy.ParsePosting(doc, pageURL), e.strategy.Name(), e.now())
	if err != nil {
		log.Printf("[EXTRACT] Dropping %s: %v", pageURL, err)
		return nil, nil
	}

	if e.cache != nil {
		if err := e.cache.Set(ctx, posting); err != nil && e.opts.Verbose {
			log.Printf("[EXTRACT] Cache store failed for %s: %v", pageURL, err)
		}
	}
	if e.opts.Verbose {
		log.Printf("[EXTRACT] %s at %s", posting.Title, posting.Company)
	}
	return posting, nil
}

func fatal(ctx context.Context, err error) bool {
	return ctx.Err() != nil || fetch.IsLaunchError(err) || errors.Is(err, fetch.ErrSessionClosed)
}
