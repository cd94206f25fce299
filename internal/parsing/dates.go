package parsing

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	daysAgoRe  = regexp.MustCompile(`(?i)(\d+)\s*days?\s+ago`)
	hoursAgoRe = regexp.MustCompile(`(?i)(\d+)\s*hours?\s+ago`)
)

// maxPostingAgeDays caps relative ages; larger counts are treated as this old
const maxPostingAgeDays = 3650

// absoluteDateLayouts are tried in order once relative phrases fail
var absoluteDateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
	"January 2, 2006",
	"Jan 2, 2006",
	"2 January 2006",
	"2 Jan 2006",
	"01/02/2006",
	"Mon, 02 Jan 2006 15:04:05 MST",
}

// ParsePostedDate normalizes a posting date phrase against now. Supported
// inputs are "N days ago", "N hours ago" and a set of absolute layouts.
// Anything else resolves to now; an unparseable date is not an error.
func ParsePostedDate(text string, now time.Time) time.Time {
	text = strings.TrimSpace(text)
	if text == "" {
		return now
	}

	if m := daysAgoRe.FindStringSubmatch(text); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			return now.AddDate(0, 0, -min(n, maxPostingAgeDays))
		}
	}
	if m := hoursAgoRe.FindStringSubmatch(text); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			if n/24 >= maxPostingAgeDays {
				return now.AddDate(0, 0, -maxPostingAgeDays)
			}
			return now.Add(-time.Duration(n) * time.Hour)
		}
	}

	for _, layout := range absoluteDateLayouts {
		if t, err := time.Parse(layout, text); err == nil {
			return t
		}
	}

	return now
}
