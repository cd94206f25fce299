package main

import (
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/job-discovery/internal/db"
)

func TestHistoryCommand_RequiresDatabase(t *testing.T) {
	clearEnv(t)
	cmd := &cobra.Command{Use: "history", RunE: runHistory}
	bindHistoryFlags(cmd)
	cmd.SetArgs([]string{})
	cmd.SetOut(&nopWriter{})
	cmd.SetErr(&nopWriter{})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DATABASE_URL")
}

func TestHistoryFilter(t *testing.T) {
	cmd := &cobra.Command{Use: "history"}
	bindHistoryFlags(cmd)
	require.NoError(t, cmd.ParseFlags([]string{"-q", "security", "--company", "acme", "--min", "70", "--since-days", "7", "--max", "10"}))

	now := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, db.HistoryFilter{
		Query:    "security",
		Company:  "acme",
		MinScore: 70,
		Since:    time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC),
		Limit:    10,
	}, historyFilter(now))
}

func TestHistoryFilter_Defaults(t *testing.T) {
	cmd := &cobra.Command{Use: "history"}
	bindHistoryFlags(cmd)
	require.NoError(t, cmd.ParseFlags(nil))

	f := historyFilter(time.Now())
	assert.True(t, f.Since.IsZero())
	assert.Equal(t, db.DefaultHistoryLimit, f.Limit)
}
