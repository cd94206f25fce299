package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jonathan/job-discovery/internal/types"
)

const upsertPostingSQL = `INSERT INTO job_postings (id, title, company, location, location_type, description,
        short_description, url, apply_url, posted_at, employment_types, salary, source, scraped_at)
    VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
    ON CONFLICT (id) DO UPDATE SET
        title = EXCLUDED.title, company = EXCLUDED.company, location = EXCLUDED.location,
        location_type = EXCLUDED.location_type, description = EXCLUDED.description,
        short_description = EXCLUDED.short_description, apply_url = EXCLUDED.apply_url,
        posted_at = EXCLUDED.posted_at, employment_types = EXCLUDED.employment_types,
        salary = EXCLUDED.salary, scraped_at = EXCLUDED.scraped_at, updated_at = NOW()`

const insertMatchSQL = `INSERT INTO match_results (run_id, job_id, score, recommendation, matched_skills, missing_skills, breakdown)
    VALUES ($1, $2, $3, $4, $5, $6, $7)`

// SaveResult stores a run with its ranked matches in one transaction. A
// posting seen before is refreshed in place. It returns the new run ID.
func (db *DB) SaveResult(ctx context.Context, result *types.DiscoveryResult) (uuid.UUID, error) {
	runID := uuid.New()

	err := pgx.BeginFunc(ctx, db.pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx,
			`INSERT INTO discovery_runs (id, query, searched_at, min_score, total_found, total_matching)
			 VALUES ($1, $2, $3, $4, $5, $6)`,
			runID, result.Query, result.SearchedAt, result.MinScore, result.TotalFound, result.TotalMatching,
		); err != nil {
			return fmt.Errorf("failed to insert run: %w", err)
		}

		for _, m := range result.Matches {
			if err := upsertPosting(ctx, tx, &m.Job); err != nil {
				return err
			}
			breakdown, err := json.Marshal(m.Score.Breakdown)
			if err != nil {
				return fmt.Errorf("failed to marshal breakdown: %w", err)
			}
			if _, err := tx.Exec(ctx, insertMatchSQL,
				runID, m.Job.ID, m.Score.Score, string(m.Score.Recommendation),
				nonNil(m.Score.MatchedSkills), nonNil(m.Score.MissingSkills), breakdown,
			); err != nil {
				return fmt.Errorf("failed to insert match for %s: %w", m.Job.ID, err)
			}
		}
		return nil
	})
	if err != nil {
		return uuid.Nil, err
	}
	return runID, nil
}

func upsertPosting(ctx context.Context, tx pgx.Tx, p *types.JobPosting) error {
	var salary []byte
	if p.Salary != nil {
		var err error
		if salary, err = json.Marshal(p.Salary); err != nil {
			return fmt.Errorf("failed to marshal salary: %w", err)
		}
	}
	_, err := tx.Exec(ctx, upsertPostingSQL,
		p.ID, p.Title, p.Company, p.Location, string(p.LocationType), p.Description,
		p.ShortDescription, p.URL, p.ApplyURL, p.PostedAt, nonNil(p.EmploymentTypes), salary,
		p.Source, p.ScrapedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert posting %s: %w", p.ID, err)
	}
	return nil
}

// GetRun returns a stored run, or nil when it does not exist
func (db *DB) GetRun(ctx context.Context, id uuid.UUID) (*Run, error) {
	var r Run
	err := db.pool.QueryRow(ctx,
		`SELECT id, query, searched_at, min_score, total_found, total_matching
		 FROM discovery_runs WHERE id = $1`, id,
	).Scan(&r.ID, &r.Query, &r.SearchedAt, &r.MinScore, &r.TotalFound, &r.TotalMatching)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get run: %w", err)
	}
	return &r, nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
