package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jonathan/job-discovery/internal/observability"
	"github.com/jonathan/job-discovery/internal/parsing"
	"github.com/jonathan/job-discovery/internal/profile"
	"github.com/jonathan/job-discovery/internal/types"
	"github.com/spf13/cobra"
)

var scoreCmd = &cobra.Command{
	Use:   "score JOB_FILE",
	Short: "Score a saved job description against your résumé",
	Long: `Scores a job description stored in a plain-text file without launching a
browser. The first non-empty line is used as the title unless --title is given.`,
	Args: cobra.ExactArgs(1),
	RunE: runScore,
}

var (
	scoreTitle    string
	scoreCompany  string
	scoreLocation string
)

func init() {
	bindScoreFlags(scoreCmd)
	rootCmd.AddCommand(scoreCmd)
}

func bindScoreFlags(cmd *cobra.Command) {
	bindScoringFlags(cmd)
	cmd.Flags().StringVar(&scoreTitle, "title", "", "Job title (defaults to the first line of the file)")
	cmd.Flags().StringVar(&scoreCompany, "company", "", "Company name")
	cmd.Flags().StringVar(&scoreLocation, "location", "", "Job location (\"Remote\" marks the job remote)")
}

func runScore(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	cmd.SilenceUsage = true

	jobPath := args[0]
	content, err := os.ReadFile(jobPath)
	if err != nil {
		return fmt.Errorf("failed to read job file %s: %w", jobPath, err)
	}

	candidate, err := profile.Load(cfg.Resume)
	if err != nil {
		return err
	}

	posting, err := postingFromFile(jobPath, string(content), time.Now())
	if err != nil {
		return fmt.Errorf("job file %s: %w", jobPath, err)
	}

	ctx := context.Background()
	scorer, closeScorer, err := newScorer(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeScorer()

	score := scorer.Score(ctx, posting, candidate)

	if flagJSON {
		data, err := json.MarshalIndent(types.RankedMatch{Job: *posting, Score: score}, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal score to JSON: %w", err)
		}
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	}

	printer := observability.NewPrinter(cmd.OutOrStdout())
	if cfg.Verbose {
		printer.PrintProfile(candidate)
	}
	printer.PrintScore(posting, &score)
	return nil
}

// postingFromFile builds a posting from a local job description
func postingFromFile(path, content string, now time.Time) (*types.JobPosting, error) {
	title := scoreTitle
	if title == "" {
		title = firstLine(content)
	}
	pageURL := path
	if abs, err := filepath.Abs(path); err == nil {
		pageURL = "file://" + filepath.ToSlash(abs)
	}

	return parsing.BuildPosting(types.RawPosting{
		URL:            pageURL,
		Title:          title,
		Company:        scoreCompany,
		Location:       scoreLocation,
		Description:    content,
		SalaryText:     content,
		EmploymentText: content,
	}, "file", now)
}

func firstLine(text string) string {
	for _, line := range strings.Split(text, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			return line
		}
	}
	return ""
}
