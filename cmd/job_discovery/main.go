// Package main provides the job_discovery CLI: it scrapes job listings for a
// free-text query and ranks them against the candidate's résumé.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "job_discovery QUERY...",
	Short: "Discover and score job postings against your résumé",
	Long: `Searches a job board for QUERY, extracts each posting with a headless browser,
scores it against the résumé's skills, experience and remote preference, and
prints the postings that clear --min-score, best first.

Configuration can be loaded from a JSON or YAML file using --config. Command-line
flags override config file values.`,
	Example: `  job_discovery "cloud security engineer" --days 7 --remote
  job_discovery appsec --min-score 70 --limit 10 --save
  job_discovery "devsecops" --json > matches.json`,
	Args:          requireQuery,
	RunE:          runDiscover,
	SilenceErrors: true,
}

func init() {
	bindDiscoveryFlags(rootCmd)
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
