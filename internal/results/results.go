// Package results writes discovery runs to disk as JSON documents.
package results

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/jonathan/job-discovery/internal/schemas"
	"github.com/jonathan/job-discovery/internal/types"
)

// DefaultDir is where --save writes when no directory is configured
const DefaultDir = "data/job_discovery"

var nonAlnumRe = regexp.MustCompile(`[^a-z0-9]+`)

// Slug lowercases query and collapses every run of non-alphanumeric
// characters to a single underscore.
func Slug(query string) string {
	slug := strings.Trim(nonAlnumRe.ReplaceAllString(strings.ToLower(query), "_"), "_")
	if slug == "" {
		return "query"
	}
	return slug
}

// FileName returns <slug>_<YYYY-MM-DD>.json for the result's search date
func FileName(result *types.DiscoveryResult) string {
	return fmt.Sprintf("%s_%s.json", Slug(result.Query), result.SearchedAt.Format("2006-01-02"))
}

// Save validates result against the results schema and writes it under dir.
// It returns the written path.
func Save(dir string, result *types.DiscoveryResult) (string, error) {
	if dir == "" {
		dir = DefaultDir
	}
	if result.Matches == nil {
		result.Matches = []types.RankedMatch{}
	}

	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal results: %w", err)
	}
	if err := schemas.ValidateResults(data); err != nil {
		return "", fmt.Errorf("results failed schema validation: %w", err)
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create results directory: %w", err)
	}
	path := filepath.Join(dir, FileName(result))
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write results: %w", err)
	}
	return path, nil
}

// Load reads a saved result file, validating it first
func Load(path string) (*types.DiscoveryResult, error) {
	if err := schemas.ValidateResultsFile(path); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read results: %w", err)
	}
	var result types.DiscoveryResult
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("failed to parse results: %w", err)
	}
	return &result, nil
}
