// Package profile builds a candidate profile from free-text résumé content.
package profile

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/jonathan/job-discovery/internal/types"
)

// maxPlausibleYears bounds the "N years" match; larger numbers are usually not
// experience (e.g. "100 years of company history")
const maxPlausibleYears = 60

var (
	skillLineRes = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(?:skills?|technolog(?:y|ies)|tools?|expertise)\s*:\s*([^\n]+)`),
		regexp.MustCompile(`(?i)(?:proficient in|experience with)\s*:\s*([^\n]+)`),
	}
	skillDelimiterRe = regexp.MustCompile(`[,;|•]`)
	yearsRe          = regexp.MustCompile(`(?i)(\d+)\+?\s*years?`)
)

// tokenCutset is trimmed from both ends of every skill token (markdown emphasis, list markers)
const tokenCutset = " \t\r*_`-()[]"

// Parse extracts skills, experience and remote preference from résumé text.
// It never fails: sparse input yields a profile with an empty skill set.
func Parse(text string) *types.CandidateProfile {
	return &types.CandidateProfile{
		Skills:          extractSkills(text),
		ExperienceYears: extractYears(text),
		PrefersRemote:   strings.Contains(strings.ToLower(text), "remote"),
		Raw:             text,
	}
}

func extractSkills(text string) []string {
	seen := make(map[string]bool)
	for _, re := range skillLineRes {
		for _, m := range re.FindAllStringSubmatch(text, -1) {
			for _, token := range skillDelimiterRe.Split(m[1], -1) {
				skill := strings.ToLower(strings.TrimSuffix(strings.Trim(token, tokenCutset), "."))
				if skill != "" {
					seen[skill] = true
				}
			}
		}
	}

	skills := make([]string, 0, len(seen))
	for s := range seen {
		skills = append(skills, s)
	}
	sort.Strings(skills)
	return skills
}

func extractYears(text string) *int {
	for _, m := range yearsRe.FindAllStringSubmatch(text, -1) {
		n, err := strconv.Atoi(m[1])
		if err != nil || n <= 0 || n > maxPlausibleYears {
			continue
		}
		return &n
	}
	return nil
}
