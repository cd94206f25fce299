package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/jonathan/job-discovery/internal/config"
	"github.com/jonathan/job-discovery/internal/profile"
	"github.com/jonathan/job-discovery/internal/types"
	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"
)

var watchCmd = &cobra.Command{
	Use:   "watch QUERY...",
	Short: "Re-run a discovery on a schedule",
	Long: `Runs a discovery immediately and then on the cron schedule given by --schedule
(or watch_schedule in the config file) until interrupted. Each run starts its own
browser and releases it when done. Combine with --save or --db-url to keep results.`,
	Example: `  job_discovery watch "cloud security" --schedule "@every 6h" --save
  job_discovery watch appsec --schedule "0 8 * * 1-5" --db-url postgres://localhost/jobs`,
	Args: requireQuery,
	RunE: runWatch,
}

var watchSchedule string

func init() {
	bindDiscoveryFlags(watchCmd)
	watchCmd.Flags().StringVar(&watchSchedule, "schedule", "", "Cron spec or descriptor such as \"@every 6h\" (defaults to the config value)")
	rootCmd.AddCommand(watchCmd)
}

// newWatchCron builds the scheduler with job for spec. Runs that are still in
// progress when the next tick fires cause that tick to be skipped.
func newWatchCron(spec string, job func()) (*cron.Cron, error) {
	c := cron.New(
		cron.WithLogger(cron.DefaultLogger),
		cron.WithChain(cron.SkipIfStillRunning(cron.DefaultLogger)),
	)
	if _, err := c.AddFunc(spec, job); err != nil {
		return nil, fmt.Errorf("invalid watch schedule %q: %w", spec, err)
	}
	return c, nil
}

func runWatch(cmd *cobra.Command, args []string) error {
	query := queryFromArgs(args)

	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("schedule") {
		cfg.WatchSchedule = watchSchedule
	}

	candidate, err := profile.Load(cfg.Resume)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	tick := func() {
		watchOnce(ctx, cmd, cfg, query, candidate)
	}
	c, err := newWatchCron(cfg.WatchSchedule, tick)
	if err != nil {
		return err
	}
	cmd.SilenceUsage = true

	tick()
	c.Start()
	log.Printf("[WATCH] Scheduled %q with %s", query, cfg.WatchSchedule)

	<-ctx.Done()
	<-c.Stop().Done()
	log.Printf("[WATCH] Stopped")
	return nil
}

// watchOnce runs and reports one scheduled discovery. Failures are logged
// rather than returned so the schedule keeps running.
func watchOnce(ctx context.Context, cmd *cobra.Command, cfg config.Config, query string, candidate *types.CandidateProfile) {
	if ctx.Err() != nil {
		return
	}
	log.Printf("[WATCH] Discovery for %q started", query)

	result, err := discover(ctx, cfg, query, candidate)
	if err != nil {
		log.Printf("[WATCH] Discovery for %q failed: %v", query, err)
		return
	}
	if err := report(cmd.OutOrStdout(), cmd.ErrOrStderr(), result, candidate, outputOptionsFor(cfg)); err != nil {
		log.Printf("[WATCH] Reporting results failed: %v", err)
		return
	}
	log.Printf("[WATCH] Discovery for %q complete: %d of %d postings matched", query, result.TotalMatching, result.TotalFound)
}
