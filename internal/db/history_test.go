package db

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildHistoryQuery_NoFilters(t *testing.T) {
	sqlStr, args, err := buildHistoryQuery(HistoryFilter{})

	require.NoError(t, err)
	assert.Empty(t, args)
	assert.NotContains(t, sqlStr, "WHERE")
	assert.Contains(t, sqlStr, "FROM match_results m JOIN discovery_runs r ON r.id = m.run_id JOIN job_postings p ON p.id = m.job_id")
	assert.Contains(t, sqlStr, "ORDER BY r.searched_at DESC, m.score DESC, p.id")
	assert.Contains(t, sqlStr, "LIMIT 50")
}

func TestBuildHistoryQuery_AllFilters(t *testing.T) {
	since := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)

	sqlStr, args, err := buildHistoryQuery(HistoryFilter{
		Query:    "security",
		Company:  "acme",
		MinScore: 70,
		Since:    since,
		Limit:    5,
	})

	require.NoError(t, err)
	assert.Contains(t, sqlStr, "r.query ILIKE $1")
	assert.Contains(t, sqlStr, "p.company ILIKE $2")
	assert.Contains(t, sqlStr, "m.score >= $3")
	assert.Contains(t, sqlStr, "r.searched_at >= $4")
	assert.Contains(t, sqlStr, "LIMIT 5")
	assert.Equal(t, []any{"%security%", "%acme%", 70, since}, args)
}

func TestNonNil(t *testing.T) {
	assert.Equal(t, []string{}, nonNil(nil))
	assert.Equal(t, []string{"a"}, nonNil([]string{"a"}))
}

func TestSchemaEmbedded(t *testing.T) {
	for _, table := range []string{"discovery_runs", "job_postings", "match_results"} {
		assert.Contains(t, schemaSQL, "CREATE TABLE IF NOT EXISTS "+table)
	}
}
