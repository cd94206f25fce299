package scraper

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/jonathan/job-discovery/internal/fetch"
	"github.com/jonathan/job-discovery/internal/retry"
	"github.com/jonathan/job-discovery/internal/sources"
)

// ListingCollector turns a query into the deduplicated detail-page URLs of
// the search results page.
type ListingCollector struct {
	renderer Renderer
	strategy sources.Strategy
	opts     Options
}

// NewListingCollector creates a collector for one source
func NewListingCollector(renderer Renderer, strategy sources.Strategy, opts Options) *ListingCollector {
	return &ListingCollector{renderer: renderer, strategy: strategy, opts: opts.withDefaults()}
}

// Collect renders the search page and returns posting links in first-seen
// order. No links is a valid empty result; a page that never renders is an
// error.
func (c *ListingCollector) Collect(ctx context.Context, q sources.Query) ([]string, error) {
	searchURL := c.strategy.SearchURL(q)
	if c.opts.Verbose {
		log.Printf("[SCRAPER] Searching %s: %s", c.strategy.Name(), searchURL)
	}

	html, err := retry.Do(ctx, "listing "+c.strategy.Name(), c.opts.Retry, func(ctx context.Context) (string, error) {
		return render(ctx, c.renderer, c.strategy.Name(), searchURL, c.opts.ListingSettle)
	})
	if err != nil {
		return nil, &ExtractionError{Stage: "listing", URL: searchURL, Cause: err}
	}

	links, err := c.links(html, searchURL)
	if err != nil {
		return nil, &ExtractionError{Stage: "listing", URL: searchURL, Cause: err}
	}
	if c.opts.Verbose {
		log.Printf("[SCRAPER] Found %d posting link(s)", len(links))
	}
	return links, nil
}

func (c *ListingCollector) links(html, pageURL string) ([]string, error) {
	doc, err := fetch.ParseDocument(html)
	if err != nil {
		return nil, err
	}
	base, err := url.Parse(pageURL)
	if err != nil {
		return nil, fmt.Errorf("invalid search URL: %w", err)
	}

	seen := make(map[string]bool)
	links := []string{}
	doc.Find("a[href]").EachWithBreak(func(_ int, a *goquery.Selection) bool {
		abs, ok := fetch.AbsoluteURL(base, a.AttrOr("href", ""))
		if !ok || seen[abs] || !c.strategy.IsPostingURL(abs) {
			return true
		}
		seen[abs] = true
		links = append(links, abs)
		return len(links) < c.opts.MaxPostings
	})
	return links, nil
}

// render calls the renderer and marks errors that retrying cannot fix
func render(ctx context.Context, r Renderer, source, pageURL string, settle time.Duration) (string, error) {
	html, err := r.Render(ctx, source, pageURL, settle)
	if err != nil && fatal(ctx, err) {
		return "", retry.Permanent(err)
	}
	return html, err
}
