// Package parsing normalizes raw detail-page text into validated job postings.
package parsing

import (
	"crypto/sha256"
	"encoding/hex"
	"regexp"
	"strings"
	"time"

	"github.com/jonathan/job-discovery/internal/types"
)

// ShortDescriptionLength is the rune budget of the truncated preview
const ShortDescriptionLength = 200

// postingIDLength is the number of hex characters kept from the hash
const postingIDLength = 16

var whitespaceRe = regexp.MustCompile(`\s+`)

// employmentPatterns maps a tag to the phrases that imply it
var employmentPatterns = []struct {
	tag string
	re  *regexp.Regexp
}{
	{"full_time", regexp.MustCompile(`(?i)\bfull[\s-]?time\b`)},
	{"part_time", regexp.MustCompile(`(?i)\bpart[\s-]?time\b`)},
	{"contract", regexp.MustCompile(`(?i)\bcontract(or)?\b`)},
	{"internship", regexp.MustCompile(`(?i)\bintern(ship)?\b`)},
	{"temporary", regexp.MustCompile(`(?i)\btemporary\b`)},
}

// DeriveLocationType classifies location text. "remote"/"anywhere" win over
// "hybrid"; everything else is onsite.
func DeriveLocationType(location string) types.LocationType {
	lower := strings.ToLower(location)
	switch {
	case strings.Contains(lower, "remote"), strings.Contains(lower, "anywhere"):
		return types.LocationRemote
	case strings.Contains(lower, "hybrid"):
		return types.LocationHybrid
	default:
		return types.LocationOnsite
	}
}

// ResolveLocation applies the title override: when the location text does not
// mention remote but the title does, the location becomes "Remote".
func ResolveLocation(location, title string) string {
	if !strings.Contains(strings.ToLower(location), "remote") &&
		strings.Contains(strings.ToLower(title), "remote") {
		return "Remote"
	}
	return location
}

// EmploymentTypes returns the employment tags mentioned in text, in a fixed order.
func EmploymentTypes(text string) []string {
	var tags []string
	for _, p := range employmentPatterns {
		if p.re.MatchString(text) {
			tags = append(tags, p.tag)
		}
	}
	return tags
}

// CleanText collapses all whitespace runs to single spaces.
func CleanText(text string) string {
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(text, " "))
}

// ShortDescription returns a whitespace-collapsed preview of the description.
func ShortDescription(description string) string {
	cleaned := CleanText(description)
	runes := []rune(cleaned)
	if len(runes) <= ShortDescriptionLength {
		return cleaned
	}
	return strings.TrimSpace(string(runes[:ShortDescriptionLength])) + "..."
}

// PostingID derives the deduplication identifier from company, title and URL.
func PostingID(company, title, url string) string {
	sum := sha256.Sum256([]byte(strings.ToLower(company) + "|" + strings.ToLower(title) + "|" + url))
	return hex.EncodeToString(sum[:])[:postingIDLength]
}

// BuildPosting turns raw page text into a validated posting. It returns an
// error when the record lacks a title or description.
func BuildPosting(raw types.RawPosting, source string, now time.Time) (*types.JobPosting, error) {
	title := CleanText(raw.Title)
	description := strings.TrimSpace(raw.Description)
	company := CleanText(raw.Company)
	location := ResolveLocation(CleanText(raw.Location), title)

	posting := &types.JobPosting{
		ID:               PostingID(company, title, raw.URL),
		Title:            title,
		Company:          company,
		Location:         location,
		Description:      description,
		ShortDescription: ShortDescription(description),
		URL:              raw.URL,
		ApplyURL:         raw.ApplyURL,
		PostedAt:         ParsePostedDate(raw.DateText, now),
		EmploymentTypes:  EmploymentTypes(raw.EmploymentText + " " + title),
		LocationType:     DeriveLocationType(location),
		Source:           source,
		ScrapedAt:        now,
	}
	if posting.ApplyURL == "" {
		posting.ApplyURL = raw.URL
	}
	if salary, ok := ParseSalary(raw.SalaryText); ok {
		posting.Salary = salary
	}

	if err := posting.Validate(); err != nil {
		return nil, &ValidationError{Field: invalidField(posting), Message: "posting is missing required content"}
	}
	return posting, nil
}

func invalidField(p *types.JobPosting) string {
	if p.Title == "" {
		return "title"
	}
	return "description"
}
