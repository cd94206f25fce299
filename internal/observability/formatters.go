// Package observability provides formatted output utilities for the CLI.
package observability

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/jonathan/job-discovery/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
	// maxCellWidth truncates long title/company cells in the results table
	maxCellWidth = 40
)

var headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)

var cellStyle = lipgloss.NewStyle().Padding(0, 1)

// Printer handles formatted output for human-readable mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		line = Truncate(line, boxWidth-4)
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// Truncate shortens s to at most n runes, marking the cut with "..."
func Truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 3 {
		return string(r[:n])
	}
	return string(r[:n-3]) + "..."
}

// PrintProfile outputs a summary of the candidate profile used for scoring.
func (p *Printer) PrintProfile(profile *types.CandidateProfile) {
	if profile == nil {
		return
	}

	var sb strings.Builder
	if profile.Source != "" {
		sb.WriteString(fmt.Sprintf("Résumé:     %s\n", profile.Source))
	}
	if profile.ExperienceYears != nil {
		sb.WriteString(fmt.Sprintf("Experience: %d years\n", *profile.ExperienceYears))
	} else {
		sb.WriteString("Experience: unknown\n")
	}
	sb.WriteString(fmt.Sprintf("Remote:     %t\n", profile.PrefersRemote))

	if len(profile.Skills) > 0 {
		sb.WriteString(fmt.Sprintf("\nSkills (%d):\n", len(profile.Skills)))
		count := min(len(profile.Skills), maxItemsToShow*2)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  • %s\n", profile.Skills[i]))
		}
		if len(profile.Skills) > count {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(profile.Skills)-count))
		}
	}

	p.printBox("CANDIDATE PROFILE", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintSummary outputs the run totals for a discovery result.
func (p *Printer) PrintSummary(result *types.DiscoveryResult) {
	if result == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Query:     %s\n", result.Query))
	sb.WriteString(fmt.Sprintf("Searched:  %s\n", result.SearchedAt.Format("2006-01-02 15:04")))
	sb.WriteString(fmt.Sprintf("Found:     %d\n", result.TotalFound))
	sb.WriteString(fmt.Sprintf("Matching:  %d (score >= %d)\n", result.TotalMatching, result.MinScore))
	sb.WriteString(fmt.Sprintf("Showing:   %d", len(result.Matches)))

	p.printBox("DISCOVERY SUMMARY", sb.String())
}

// PrintMatches renders the ranked matches as a table.
func (p *Printer) PrintMatches(matches []types.RankedMatch) {
	if len(matches) == 0 {
		return
	}

	rows := make([][]string, 0, len(matches))
	for i, m := range matches {
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			strconv.Itoa(m.Score.Score),
			string(m.Score.Recommendation),
			Truncate(m.Job.Title, maxCellWidth),
			Truncate(m.Job.Company, maxCellWidth),
			locationCell(&m.Job),
			FormatDate(m.Job.PostedAt),
		})
	}

	p.PrintTable([]string{"#", "SCORE", "FIT", "TITLE", "COMPANY", "LOCATION", "POSTED"}, rows)
}

// PrintTable renders rows under headers with a normal border.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintTable(headers []string, rows [][]string) {
	if len(rows) == 0 {
		return
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})

	fmt.Fprintln(p.out, t.Render())
}

// PrintMatchDetails outputs the breakdown and skill overlap for the top matches.
func (p *Printer) PrintMatchDetails(matches []types.RankedMatch) {
	count := min(len(matches), maxItemsToShow)
	for i := 0; i < count; i++ {
		p.PrintScore(&matches[i].Job, &matches[i].Score)
	}
}

// PrintScore outputs a single posting's score breakdown.
func (p *Printer) PrintScore(job *types.JobPosting, score *types.MatchScore) {
	if job == nil || score == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%s\n", job.Title))
	if job.Company != "" {
		sb.WriteString(fmt.Sprintf("at %s\n", job.Company))
	}
	sb.WriteString(fmt.Sprintf("\nScore: %d (%s)\n", score.Score, score.Recommendation))
	sb.WriteString(fmt.Sprintf("  Skills:     %.1f\n", score.Breakdown.Skills))
	sb.WriteString(fmt.Sprintf("  Experience: %.1f\n", score.Breakdown.Experience))
	sb.WriteString(fmt.Sprintf("  Location:   %.1f\n", score.Breakdown.Location))
	sb.WriteString(fmt.Sprintf("  Bonus:      %.1f\n", score.Breakdown.Bonus))

	if len(score.MatchedSkills) > 0 {
		sb.WriteString(fmt.Sprintf("\nMatched: %s\n", strings.Join(score.MatchedSkills, ", ")))
	}
	if len(score.MissingSkills) > 0 {
		sb.WriteString(fmt.Sprintf("Missing: %s\n", strings.Join(score.MissingSkills, ", ")))
	}
	if job.URL != "" {
		sb.WriteString(fmt.Sprintf("\n%s\n", job.URL))
	}

	p.printBox("MATCH", strings.TrimSuffix(sb.String(), "\n"))
}

func locationCell(job *types.JobPosting) string {
	loc := Truncate(job.Location, maxCellWidth/2)
	if job.IsRemote() && !strings.Contains(strings.ToLower(loc), "remote") {
		if loc == "" {
			return "Remote"
		}
		return loc + " (remote)"
	}
	return loc
}

// FormatDate renders t as a calendar date, or "-" when unset.
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format("2006-01-02")
}
