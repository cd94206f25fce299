package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/jonathan/job-discovery/internal/config"
	"github.com/jonathan/job-discovery/internal/observability"
	"github.com/jonathan/job-discovery/internal/profile"
	"github.com/jonathan/job-discovery/internal/results"
	"github.com/jonathan/job-discovery/internal/types"
	"github.com/spf13/cobra"
)

// outputOptions controls how a finished discovery is reported
type outputOptions struct {
	JSON       bool
	Save       bool
	Verbose    bool
	ResultsDir string
}

func runDiscover(cmd *cobra.Command, args []string) error {
	query := queryFromArgs(args)

	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	// Arguments are valid from here on; failures are not usage problems
	cmd.SilenceUsage = true

	candidate, err := profile.Load(cfg.Resume)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if !flagJSON {
		_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Searching %s for %q (last %d days)...\n", cfg.Source, query, cfg.Days)
	}
	result, err := discover(ctx, cfg, query, candidate)
	if err != nil {
		return fmt.Errorf("discovery failed: %w", err)
	}

	return report(cmd.OutOrStdout(), cmd.ErrOrStderr(), result, candidate, outputOptionsFor(cfg))
}

func outputOptionsFor(cfg config.Config) outputOptions {
	return outputOptions{
		JSON:       flagJSON,
		Save:       flagSave,
		Verbose:    cfg.Verbose,
		ResultsDir: cfg.ResultsDir,
	}
}

// emptyResultMessage explains a run that produced no matches, or returns ""
// when there is something to show
func emptyResultMessage(result *types.DiscoveryResult) string {
	switch {
	case len(result.Matches) > 0:
		return ""
	case result.TotalFound == 0:
		return fmt.Sprintf("No job postings found for %q. Try a different query or a longer --days window.", result.Query)
	default:
		return fmt.Sprintf("Found %d postings for %q but none passed the filters with a score of %d or more. Try lowering --min-score or relaxing --remote/--location.",
			result.TotalFound, result.Query, result.MinScore)
	}
}

// report writes the result to out as JSON or as a summary and table, saving
// it first when requested. Informational notes go to errOut in JSON mode so
// stdout stays machine-readable.
func report(out, errOut io.Writer, result *types.DiscoveryResult, candidate *types.CandidateProfile, opts outputOptions) error {
	notes := out
	if opts.JSON {
		notes = errOut
	}

	if opts.Save {
		path, err := results.Save(opts.ResultsDir, result)
		if err != nil {
			return fmt.Errorf("failed to save results: %w", err)
		}
		_, _ = fmt.Fprintf(notes, "Saved results to %s\n", path)
	}

	if opts.JSON {
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal results to JSON: %w", err)
		}
		_, _ = fmt.Fprintln(out, string(data))
		if msg := emptyResultMessage(result); msg != "" {
			_, _ = fmt.Fprintln(errOut, msg)
		}
		return nil
	}

	printer := observability.NewPrinter(out)
	if opts.Verbose {
		printer.PrintProfile(candidate)
	}
	printer.PrintSummary(result)

	if msg := emptyResultMessage(result); msg != "" {
		_, _ = fmt.Fprintln(out, msg)
		return nil
	}

	printer.PrintMatches(result.Matches)
	if opts.Verbose {
		printer.PrintMatchDetails(result.Matches)
	}
	return nil
}
