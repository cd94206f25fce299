package results

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/job-discovery/internal/types"
)

func TestSlug(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Security Engineer", "security_engineer"},
		{"  C++ / Rust -- Remote!! ", "c_rust_remote"},
		{"DevSecOps", "devsecops"},
		{"¿¿??", "query"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Slug(tt.in), tt.in)
	}
}

func sampleResult() *types.DiscoveryResult {
	posted := time.Date(2026, 2, 11, 12, 0, 0, 0, time.UTC)
	job := types.JobPosting{
		ID:           "0123456789abcdef",
		Title:        "Security Engineer",
		Company:      "Acme",
		Description:  "python aws docker",
		URL:          "https://hiring.cafe/viewjob/a",
		PostedAt:     posted,
		LocationType: types.LocationRemote,
		Source:       "hiringcafe",
		ScrapedAt:    posted,
	}
	return &types.DiscoveryResult{
		Query:         "Security Engineer",
		SearchedAt:    time.Date(2026, 2, 14, 12, 0, 0, 0, time.UTC),
		TotalFound:    4,
		TotalMatching: 1,
		MinScore:      60,
		Matches: []types.RankedMatch{{
			Job: job,
			Score: types.MatchScore{
				JobID:          job.ID,
				Score:          60,
				MatchedSkills:  []string{"python"},
				MissingSkills:  []string{"docker"},
				Recommendation: types.RecommendationGood,
			},
		}},
	}
}

func TestSaveAndLoad(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "results")

	path, err := Save(dir, sampleResult())
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "security_engineer_2026-02-14.json"), path)

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "Security Engineer", loaded.Query)
	assert.Equal(t, 4, loaded.TotalFound)
	require.Len(t, loaded.Matches, 1)
	assert.Equal(t, 60, loaded.Matches[0].Score.Score)
}

func TestSave_EmptyMatches(t *testing.T) {
	result := sampleResult()
	result.Matches = nil

	path, err := Save(t.TempDir(), result)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"matches": []`)
}

func TestSave_RejectsInvalid(t *testing.T) {
	result := sampleResult()
	result.Matches[0].Score.Score = 140

	dir := t.TempDir()
	_, err := Save(dir, result)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "schema validation")

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
