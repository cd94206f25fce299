package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/job-discovery/internal/config"
	"github.com/jonathan/job-discovery/internal/types"
)

func sampleResult() *types.DiscoveryResult {
	posted := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	return &types.DiscoveryResult{
		Query:         "cloud security",
		SearchedAt:    time.Date(2026, 3, 4, 10, 0, 0, 0, time.UTC),
		TotalFound:    3,
		TotalMatching: 1,
		MinScore:      60,
		Matches: []types.RankedMatch{{
			Job: types.JobPosting{
				ID:           "0123456789abcdef",
				Title:        "Cloud Security Engineer",
				Company:      "Acme",
				Description:  "python aws",
				URL:          "https://hiring.cafe/viewjob/abc",
				PostedAt:     posted,
				LocationType: types.LocationRemote,
				Source:       "hiringcafe",
				ScrapedAt:    posted,
			},
			Score: types.MatchScore{
				JobID:          "0123456789abcdef",
				Score:          80,
				MatchedSkills:  []string{"aws", "python"},
				MissingSkills:  []string{},
				Recommendation: types.RecommendationStrong,
				Breakdown:      types.ScoreBreakdown{Skills: 40, Experience: 25, Location: 15},
			},
		}},
	}
}

func TestEmptyResultMessage(t *testing.T) {
	assert.Empty(t, emptyResultMessage(sampleResult()))

	none := &types.DiscoveryResult{Query: "q", Matches: []types.RankedMatch{}}
	assert.Contains(t, emptyResultMessage(none), "No job postings found")

	belowThreshold := &types.DiscoveryResult{Query: "q", TotalFound: 4, MinScore: 70, Matches: []types.RankedMatch{}}
	msg := emptyResultMessage(belowThreshold)
	assert.Contains(t, msg, "Found 4 postings")
	assert.Contains(t, msg, "--min-score")
}

func TestReport_Table(t *testing.T) {
	var out, errOut bytes.Buffer

	err := report(&out, &errOut, sampleResult(), nil, outputOptions{})
	require.NoError(t, err)

	assert.Contains(t, out.String(), "DISCOVERY SUMMARY")
	assert.Contains(t, out.String(), "Cloud Security Engineer")
	assert.NotContains(t, out.String(), "CANDIDATE PROFILE")
	assert.Empty(t, errOut.String())
}

func TestReport_VerboseShowsDetails(t *testing.T) {
	var out, errOut bytes.Buffer
	years := 6

	err := report(&out, &errOut, sampleResult(), &types.CandidateProfile{Skills: []string{"aws"}, ExperienceYears: &years}, outputOptions{Verbose: true})
	require.NoError(t, err)

	assert.Contains(t, out.String(), "CANDIDATE PROFILE")
	assert.Contains(t, out.String(), "Matched: aws, python")
}

func TestReport_JSON(t *testing.T) {
	var out, errOut bytes.Buffer

	err := report(&out, &errOut, sampleResult(), nil, outputOptions{JSON: true})
	require.NoError(t, err)

	var decoded types.DiscoveryResult
	require.NoError(t, json.Unmarshal(out.Bytes(), &decoded))
	assert.Equal(t, "cloud security", decoded.Query)
	assert.Equal(t, 1, decoded.TotalMatching)
	require.Len(t, decoded.Matches, 1)
	assert.Equal(t, 80, decoded.Matches[0].Score.Score)
}

func TestReport_EmptyIsInformational(t *testing.T) {
	var out, errOut bytes.Buffer
	empty := &types.DiscoveryResult{Query: "q", MinScore: 60, Matches: []types.RankedMatch{}}

	require.NoError(t, report(&out, &errOut, empty, nil, outputOptions{}))
	assert.Contains(t, out.String(), "No job postings found")

	out.Reset()
	require.NoError(t, report(&out, &errOut, empty, nil, outputOptions{JSON: true}))
	// stdout stays parseable; the note goes to stderr
	var decoded types.DiscoveryResult
	require.NoError(t, json.Unmarshal(out.Bytes(), &decoded))
	assert.Contains(t, errOut.String(), "No job postings found")
}

func TestReport_Save(t *testing.T) {
	dir := t.TempDir()
	var out, errOut bytes.Buffer

	err := report(&out, &errOut, sampleResult(), nil, outputOptions{Save: true, ResultsDir: dir})
	require.NoError(t, err)

	path := filepath.Join(dir, "cloud_security_2026-03-04.json")
	assert.FileExists(t, path)
	assert.Contains(t, out.String(), "Saved results to "+path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"min_score": 60`)
}

func TestOutputOptionsFor(t *testing.T) {
	flagJSON, flagSave = true, false
	t.Cleanup(func() { flagJSON, flagSave = false, false })

	opts := outputOptionsFor(config.Config{Verbose: true, ResultsDir: "out"})
	assert.Equal(t, outputOptions{JSON: true, Verbose: true, ResultsDir: "out"}, opts)
}
