package sources

import (
	"encoding/json"
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/jonathan/job-discovery/internal/fetch"
	"github.com/jonathan/job-discovery/internal/types"
)

// HiringCafeName is the source identifier of hiring.cafe
const HiringCafeName = "hiringcafe"

const hiringCafeBaseURL = "https://hiring.cafe/"

var (
	companyPhraseRe = regexp.MustCompile(`\b(?:at|for|with)\s+([A-Z][\w&'-]*(?:\s+[A-Z][\w&'-]*){0,3})`)
	salaryTextRe    = regexp.MustCompile(`[$€£]\s*\d[\d,.]*\s*[kK]?(?:\s*(?:-|–|—|to)\s*[$€£]?\s*\d[\d,.]*\s*[kK]?)?(?:\s*(?:/|per|an|a)\s*(?:hour|hr|year|yr|month|mo|annum))?`)
	relativeDateRe  = regexp.MustCompile(`(?i)\d+\s*(?:days?|hours?)\s+ago`)
)

// HiringCafe reads hiring.cafe, a client-rendered board whose search state
// is a JSON document in the query string.
type HiringCafe struct {
	BaseURL string
}

// NewHiringCafe returns the strategy pointed at the public site
func NewHiringCafe() *HiringCafe {
	return &HiringCafe{BaseURL: hiringCafeBaseURL}
}

// Name implements Strategy
func (h *HiringCafe) Name() string { return HiringCafeName }

type hiringCafeSearchState struct {
	SearchQuery          string   `json:"searchQuery"`
	DateFetchedPastNDays int      `json:"dateFetchedPastNDays,omitempty"`
	WorkplaceTypes       []string `json:"workplaceTypes,omitempty"`
	Location             string   `json:"location,omitempty"`
}

// SearchURL implements Strategy
func (h *HiringCafe) SearchURL(q Query) string {
	state := hiringCafeSearchState{
		SearchQuery:          strings.TrimSpace(q.Text),
		DateFetchedPastNDays: q.Days,
		Location:             strings.TrimSpace(q.Location),
	}
	if q.Remote {
		state.WorkplaceTypes = []string{"Remote"}
	}
	encoded, _ := json.Marshal(state)
	return h.BaseURL + "?searchState=" + url.QueryEscape(string(encoded))
}

// IsPostingURL implements Strategy
func (h *HiringCafe) IsPostingURL(u string) bool {
	parsed, err := url.Parse(u)
	if err != nil {
		return false
	}
	return strings.Contains(parsed.Path, "/viewjob/")
}

// ParsePosting implements Strategy
func (h *HiringCafe) ParsePosting(doc *goquery.Document, pageURL string) types.RawPosting {
	raw := types.RawPosting{URL: pageURL}

	raw.Title = fetch.FirstText(doc, "h1", "h2")

	raw.Description = fetch.FirstText(doc, "article", "main")
	if raw.Description == "" {
		raw.Description = classContainsText(doc, "description")
	}

	raw.Company = classContainsText(doc, "company")
	if raw.Company == "" {
		if m := companyPhraseRe.FindStringSubmatch(raw.Description); m != nil {
			raw.Company = strings.TrimRight(m[1], ".,")
		}
	}

	raw.Location = classContainsText(doc, "location")

	raw.SalaryText = classContainsText(doc, "salary", "compensation")
	if raw.SalaryText == "" {
		raw.SalaryText = salaryTextRe.FindString(raw.Description)
	}

	raw.DateText = postedDateText(doc)
	raw.ApplyURL = applyURL(doc, pageURL)

	raw.EmploymentText = classContainsText(doc, "employment", "commitment", "job-type")
	if raw.EmploymentText == "" {
		raw.EmploymentText = raw.Description
	}

	return raw
}

func postedDateText(doc *goquery.Document) string {
	if dt, ok := doc.Find("time[datetime]").First().Attr("datetime"); ok && strings.TrimSpace(dt) != "" {
		return strings.TrimSpace(dt)
	}
	if t := classContainsText(doc, "posted", "date"); t != "" {
		if m := relativeDateRe.FindString(t); m != "" {
			return m
		}
		return t
	}
	return relativeDateRe.FindString(fetch.Text(doc.Find("body")))
}

func applyURL(doc *goquery.Document, pageURL string) string {
	base, _ := url.Parse(pageURL)
	var out string
	doc.Find("a[href]").EachWithBreak(func(_ int, a *goquery.Selection) bool {
		if !strings.Contains(strings.ToLower(a.Text()), "apply") {
			return true
		}
		if abs, ok := fetch.AbsoluteURL(base, a.AttrOr("href", "")); ok {
			out = abs
			return false
		}
		return true
	})
	return out
}
