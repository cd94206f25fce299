package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/jonathan/job-discovery/internal/cache"
	"github.com/jonathan/job-discovery/internal/config"
	"github.com/jonathan/job-discovery/internal/db"
	"github.com/jonathan/job-discovery/internal/fetch"
	"github.com/jonathan/job-discovery/internal/llm"
	"github.com/jonathan/job-discovery/internal/pipeline"
	"github.com/jonathan/job-discovery/internal/ranking"
	"github.com/jonathan/job-discovery/internal/retry"
	"github.com/jonathan/job-discovery/internal/scraper"
	"github.com/jonathan/job-discovery/internal/sources"
	"github.com/jonathan/job-discovery/internal/types"
)

// cleanups runs release functions in reverse order of registration
type cleanups []func()

func (c *cleanups) add(fn func()) {
	*c = append(*c, fn)
}

func (c cleanups) run() {
	for i := len(c) - 1; i >= 0; i-- {
		c[i]()
	}
}

// newScorer builds the scorer, using Gemini for skill extraction when enabled.
// The returned release function closes the LLM client.
func newScorer(ctx context.Context, cfg config.Config) (*ranking.Scorer, func(), error) {
	vocabulary := ranking.NewVocabularyExtractor(cfg.Vocabulary)
	opts := ranking.Options{
		Extractor:       vocabulary,
		Synonyms:        cfg.Synonyms,
		SalaryThreshold: cfg.SalaryThreshold,
	}
	if !cfg.LLMSkills {
		return ranking.NewScorer(opts), func() {}, nil
	}

	apiKey := llm.ResolveAPIKey(cfg.APIKey)
	if apiKey == "" {
		return nil, nil, fmt.Errorf("--llm-skills requires the %s environment variable or api_key in the config file", llm.APIKeyEnvVar)
	}
	client, err := llm.NewGeminiClient(ctx, llm.DefaultConfig(), apiKey)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create LLM client: %w", err)
	}
	extractor := ranking.NewGeminiExtractor(client, vocabulary, len(cfg.Vocabulary) > 0)
	extractor.Verbose = cfg.Verbose
	opts.Extractor = extractor

	return ranking.NewScorer(opts), func() { _ = client.Close() }, nil
}

func sessionOptions(cfg config.Config) fetch.Options {
	opts := fetch.DefaultOptions()
	opts.Headless = !cfg.ShowBrowser
	opts.ExecPath = cfg.ChromePath
	opts.RequestsPerSecond = cfg.RequestsPerSecond
	opts.Verbose = cfg.Verbose
	return opts
}

func scraperOptions(cfg config.Config) scraper.Options {
	return scraper.Options{
		ListingSettle: config.Millis(cfg.ListingSettleMs),
		PostingSettle: config.Millis(cfg.PostingSettleMs),
		Concurrency:   cfg.Concurrency,
		BatchDelay:    config.Millis(cfg.BatchDelayMs),
		MaxPostings:   cfg.MaxPostings,
		Retry: retry.Policy{
			MaxAttempts: cfg.RetryAttempts,
			BaseDelay:   config.Millis(cfg.RetryBaseDelayMs),
			Verbose:     cfg.Verbose,
		},
		Verbose: cfg.Verbose,
	}
}

// openCache connects the Redis posting cache when configured. Connection
// failures downgrade to running without a cache.
func openCache(ctx context.Context, cfg config.Config, release *cleanups) cache.PostingCache {
	if cfg.RedisURL == "" {
		return nil
	}
	c, err := cache.Connect(ctx, cfg.RedisURL, time.Duration(cfg.CacheTTLHours)*time.Hour)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Failed to connect to Redis: %v\n", err)
		fmt.Fprintf(os.Stderr, "Continuing without posting cache...\n")
		return nil
	}
	release.add(func() { _ = c.Close() })
	return c
}

// openStore connects and migrates the results database when configured.
// Connection failures downgrade to running without persistence.
func openStore(ctx context.Context, cfg config.Config, release *cleanups) pipeline.Store {
	if cfg.DatabaseURL == "" {
		return nil
	}
	database, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Failed to connect to database: %v\n", err)
		fmt.Fprintf(os.Stderr, "Continuing without database persistence...\n")
		return nil
	}
	release.add(database.Close)

	if err := database.Migrate(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Failed to migrate database: %v\n", err)
		fmt.Fprintf(os.Stderr, "Continuing without database persistence...\n")
		return nil
	}
	return database
}

// discover runs one complete discovery for query. The browser session and
// every other resource opened here are released before it returns, on
// success and on error.
func discover(ctx context.Context, cfg config.Config, query string, candidate *types.CandidateProfile) (*types.DiscoveryResult, error) {
	var release cleanups
	defer release.run()

	strategy, err := sources.DefaultRegistry().Get(cfg.Source)
	if err != nil {
		return nil, err
	}

	scorer, closeScorer, err := newScorer(ctx, cfg)
	if err != nil {
		return nil, err
	}
	release.add(closeScorer)

	session := fetch.NewSession(sessionOptions(cfg))
	release.add(session.Shutdown)

	postingCache := openCache(ctx, cfg, &release)
	store := openStore(ctx, cfg, &release)

	p := pipeline.New(scraper.New(session, strategy, postingCache, scraperOptions(cfg)), scorer, candidate, store)
	p.Verbose = cfg.Verbose

	return p.Discover(ctx, pipeline.Request{
		Query: query,
		Filters: pipeline.Filters{
			Days:     cfg.Days,
			Remote:   cfg.Remote,
			Location: cfg.Location,
		},
		MinScore: cfg.MinScore,
		Limit:    cfg.Limit,
	})
}
