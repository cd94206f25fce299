package main

import (
	"fmt"
	"strings"

	"github.com/jonathan/job-discovery/internal/config"
	"github.com/spf13/cobra"
)

// Flag values shared by the commands that run discovery or scoring. Each
// command binds only the flags it accepts; resolveConfig reads the ones the
// user set.
var (
	flagConfigPath  string
	flagSource      string
	flagDays        int
	flagMinScore    int
	flagLimit       int
	flagResume      string
	flagRemote      bool
	flagLocation    string
	flagSave        bool
	flagJSON        bool
	flagResultsDir  string
	flagVerbose     bool
	flagDatabaseURL string
	flagRedisURL    string
	flagLLMSkills   bool
	flagShowBrowser bool
)

// bindScoringFlags registers the flags needed to load a résumé and score postings
func bindScoringFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&flagConfigPath, "config", "", "Path to a JSON or YAML config file (values can be overridden by other flags)")
	cmd.Flags().StringVar(&flagResume, "resume", "", "Path to résumé file (overrides auto-discovery)")
	cmd.Flags().BoolVar(&flagJSON, "json", false, "Emit machine-readable JSON to stdout instead of a table")
	cmd.Flags().BoolVarP(&flagVerbose, "verbose", "v", false, "Print detailed debug information")
	cmd.Flags().BoolVar(&flagLLMSkills, "llm-skills", false, "Extract job skills with Gemini (requires GEMINI_API_KEY)")
}

// bindDiscoveryFlags registers the full discovery flag set
func bindDiscoveryFlags(cmd *cobra.Command) {
	defaults := config.Defaults()

	bindScoringFlags(cmd)
	cmd.Flags().StringVar(&flagSource, "source", defaults.Source, "Job board to search")
	cmd.Flags().IntVar(&flagDays, "days", defaults.Days, "Only keep postings from the last N days")
	cmd.Flags().IntVar(&flagMinScore, "min-score", defaults.MinScore, "Minimum match score (0-100)")
	cmd.Flags().IntVar(&flagLimit, "limit", defaults.Limit, "Maximum number of results to show")
	cmd.Flags().BoolVar(&flagRemote, "remote", false, "Only keep remote postings")
	cmd.Flags().StringVar(&flagLocation, "location", "", "Only keep postings whose location contains LOC")
	cmd.Flags().BoolVar(&flagSave, "save", false, "Save results as JSON to the results directory")
	cmd.Flags().StringVar(&flagResultsDir, "results-dir", defaults.ResultsDir, "Directory for saved results")
	cmd.Flags().StringVar(&flagDatabaseURL, "db-url", "", "PostgreSQL connection URL (optional, defaults to DATABASE_URL env var)")
	cmd.Flags().StringVar(&flagRedisURL, "redis-url", "", "Redis URL for the posting cache (optional, defaults to REDIS_URL env var)")
	cmd.Flags().BoolVar(&flagShowBrowser, "show-browser", false, "Run Chrome with a visible window")
}

// requireQuery rejects invocations without a search query
func requireQuery(_ *cobra.Command, args []string) error {
	if strings.TrimSpace(strings.Join(args, " ")) == "" {
		return fmt.Errorf("a search query is required")
	}
	return nil
}

// queryFromArgs joins the positional arguments into one search query
func queryFromArgs(args []string) string {
	return strings.Join(strings.Fields(strings.Join(args, " ")), " ")
}

// resolveConfig loads the config file if one was given, fills defaults and
// environment values, then applies every flag the user explicitly set.
func resolveConfig(cmd *cobra.Command) (config.Config, error) {
	var cfg config.Config
	if flagConfigPath != "" {
		loaded, err := config.LoadConfig(flagConfigPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to load config: %w", err)
		}
		if err := loaded.Validate(); err != nil {
			return cfg, err
		}
		cfg = *loaded
	}
	cfg = cfg.MergeWithDefaults(config.Defaults())

	// Only override if the flag was explicitly set
	flags := cmd.Flags()
	if flags.Changed("source") {
		cfg.Source = flagSource
	}
	if flags.Changed("days") {
		cfg.Days = flagDays
	}
	if flags.Changed("min-score") {
		cfg.MinScore = flagMinScore
	}
	if flags.Changed("limit") {
		cfg.Limit = flagLimit
	}
	if flags.Changed("remote") {
		cfg.Remote = flagRemote
	}
	if flags.Changed("location") {
		cfg.Location = flagLocation
	}
	if flags.Changed("resume") {
		cfg.Resume = flagResume
	}
	if flags.Changed("results-dir") {
		cfg.ResultsDir = flagResultsDir
	}
	if flags.Changed("verbose") {
		cfg.Verbose = flagVerbose
	}
	if flags.Changed("llm-skills") {
		cfg.LLMSkills = flagLLMSkills
	}
	if flags.Changed("db-url") {
		cfg.DatabaseURL = flagDatabaseURL
	}
	if flags.Changed("redis-url") {
		cfg.RedisURL = flagRedisURL
	}
	if flags.Changed("show-browser") {
		cfg.ShowBrowser = flagShowBrowser
	}

	cfg.ApplyEnv()

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}
