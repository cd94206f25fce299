package db

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// buildHistoryQuery renders the ListMatches SQL for f
func buildHistoryQuery(f HistoryFilter) (string, []any, error) {
	limit := f.Limit
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}

	q := psql.Select(
		"r.id", "r.query", "r.searched_at",
		"p.id", "p.title", "p.company", "p.location", "p.url", "p.posted_at",
		"m.score", "m.recommendation", "m.matched_skills", "m.missing_skills",
	).
		From("match_results m").
		Join("discovery_runs r ON r.id = m.run_id").
		Join("job_postings p ON p.id = m.job_id")

	if f.Query != "" {
		q = q.Where(sq.ILike{"r.query": "%" + f.Query + "%"})
	}
	if f.Company != "" {
		q = q.Where(sq.ILike{"p.company": "%" + f.Company + "%"})
	}
	if f.MinScore > 0 {
		q = q.Where(sq.GtOrEq{"m.score": f.MinScore})
	}
	if !f.Since.IsZero() {
		q = q.Where(sq.GtOrEq{"r.searched_at": f.Since})
	}

	return q.OrderBy("r.searched_at DESC", "m.score DESC", "p.id").
		Limit(uint64(limit)).
		ToSql()
}

// ListMatches returns stored matches, newest run first and best score first within a run
func (db *DB) ListMatches(ctx context.Context, f HistoryFilter) ([]MatchRecord, error) {
	sqlStr, args, err := buildHistoryQuery(f)
	if err != nil {
		return nil, fmt.Errorf("failed to build history query: %w", err)
	}

	rows, err := db.pool.Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	defer rows.Close()

	records := []MatchRecord{}
	for rows.Next() {
		var r MatchRecord
		if err := rows.Scan(&r.RunID, &r.Query, &r.SearchedAt,
			&r.JobID, &r.Title, &r.Company, &r.Location, &r.URL, &r.PostedAt,
			&r.Score, &r.Recommendation, &r.MatchedSkills, &r.MissingSkills); err != nil {
			return nil, fmt.Errorf("failed to scan history row: %w", err)
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate history: %w", err)
	}
	return records, nil
}
