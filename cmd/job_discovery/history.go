package main

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/jonathan/job-discovery/internal/db"
	"github.com/jonathan/job-discovery/internal/observability"
	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List previously stored matches",
	Long:  "Queries matches persisted by earlier runs that had a database configured (--db-url or DATABASE_URL), newest run first.",
	Args:  cobra.NoArgs,
	RunE:  runHistory,
}

var (
	historyQuery     string
	historyCompany   string
	historyMinScore  int
	historySinceDays int
	historyLimit     int
)

func init() {
	bindHistoryFlags(historyCmd)
	rootCmd.AddCommand(historyCmd)
}

func bindHistoryFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&flagConfigPath, "config", "", "Path to a JSON or YAML config file")
	cmd.Flags().StringVar(&flagDatabaseURL, "db-url", "", "PostgreSQL connection URL (optional, defaults to DATABASE_URL env var)")
	cmd.Flags().BoolVar(&flagJSON, "json", false, "Emit machine-readable JSON to stdout instead of a table")
	cmd.Flags().StringVarP(&historyQuery, "query", "q", "", "Only runs whose query contains this text")
	cmd.Flags().StringVar(&historyCompany, "company", "", "Only postings whose company contains this text")
	cmd.Flags().IntVar(&historyMinScore, "min", 0, "Minimum stored score")
	cmd.Flags().IntVar(&historySinceDays, "since-days", 0, "Only runs from the last N days")
	cmd.Flags().IntVar(&historyLimit, "max", db.DefaultHistoryLimit, "Maximum number of rows")
}

func historyFilter(now time.Time) db.HistoryFilter {
	f := db.HistoryFilter{
		Query:    historyQuery,
		Company:  historyCompany,
		MinScore: historyMinScore,
		Limit:    historyLimit,
	}
	if historySinceDays > 0 {
		f.Since = now.AddDate(0, 0, -historySinceDays)
	}
	return f
}

func runHistory(cmd *cobra.Command, _ []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	if cfg.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL environment variable or --db-url flag is required")
	}
	cmd.SilenceUsage = true

	ctx := context.Background()
	database, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer database.Close()

	records, err := database.ListMatches(ctx, historyFilter(time.Now()))
	if err != nil {
		return fmt.Errorf("failed to list matches: %w", err)
	}

	out := cmd.OutOrStdout()
	if flagJSON {
		data, err := json.MarshalIndent(records, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal history to JSON: %w", err)
		}
		_, _ = fmt.Fprintln(out, string(data))
		return nil
	}

	if len(records) == 0 {
		_, _ = fmt.Fprintln(out, "No stored matches. Run a discovery with --db-url (or DATABASE_URL) set to record some.")
		return nil
	}

	rows := make([][]string, 0, len(records))
	for _, r := range records {
		rows = append(rows, []string{
			r.SearchedAt.Format("2006-01-02 15:04"),
			observability.Truncate(r.Query, 24),
			strconv.Itoa(r.Score),
			r.Recommendation,
			observability.Truncate(r.Title, 40),
			observability.Truncate(r.Company, 24),
			observability.FormatDate(r.PostedAt),
		})
	}
	observability.NewPrinter(out).PrintTable([]string{"SEARCHED", "QUERY", "SCORE", "FIT", "TITLE", "COMPANY", "POSTED"}, rows)
	return nil
}
