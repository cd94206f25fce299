package parsing

import (
	"strings"
	"testing"
	"time"

	"github.com/jonathan/job-discovery/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2026, 2, 14, 12, 0, 0, 0, time.UTC)

func TestDeriveLocationType(t *testing.T) {
	tests := []struct {
		name     string
		location string
		expected types.LocationType
	}{
		{"remote", "Remote - US", types.LocationRemote},
		{"anywhere", "Work from anywhere", types.LocationRemote},
		{"hybrid", "Hybrid (Austin, TX)", types.LocationHybrid},
		{"remote beats hybrid", "Hybrid or Remote", types.LocationRemote},
		{"onsite city", "New York, NY", types.LocationOnsite},
		{"empty", "", types.LocationOnsite},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DeriveLocationType(tt.location))
		})
	}
}

func TestResolveLocation_TitleOverride(t *testing.T) {
	assert.Equal(t, "Remote", ResolveLocation("New York, NY", "Security Engineer (Remote)"))
	assert.Equal(t, "Remote, US", ResolveLocation("Remote, US", "Remote Security Engineer"))
	assert.Equal(t, "Denver, CO", ResolveLocation("Denver, CO", "Security Engineer"))
}

func TestEmploymentTypes(t *testing.T) {
	assert.Equal(t, []string{"full_time", "contract"}, EmploymentTypes("Full-time or contract role"))
	assert.Equal(t, []string{"part_time"}, EmploymentTypes("Part time"))
	assert.Empty(t, EmploymentTypes("Security Engineer"))
}

func TestShortDescription(t *testing.T) {
	short := ShortDescription("  hello \n\n  world  ")
	assert.Equal(t, "hello world", short)

	long := strings.Repeat("a", 500)
	preview := ShortDescription(long)
	assert.True(t, strings.HasSuffix(preview, "..."))
	assert.Len(t, []rune(preview), ShortDescriptionLength+3)
}

func TestPostingID_Deterministic(t *testing.T) {
	a := PostingID("Acme", "Security Engineer", "https://hiring.cafe/viewjob/1")
	b := PostingID("Acme", "Security Engineer", "https://hiring.cafe/viewjob/1")
	c := PostingID("Acme", "Security Engineer", "https://hiring.cafe/viewjob/2")

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Len(t, a, 16)
}

func TestBuildPosting_Success(t *testing.T) {
	raw := types.RawPosting{
		URL:            "https://hiring.cafe/viewjob/abc",
		Title:          "  Senior Security Engineer (Remote) ",
		Company:        "Acme Corp",
		Location:       "San Francisco, CA",
		Description:    "Protect our cloud with python and aws.",
		SalaryText:     "$140,000 - $180,000",
		DateText:       "3 days ago",
		EmploymentText: "Full-time",
	}

	posting, err := BuildPosting(raw, "hiringcafe", fixedNow)
	require.NoError(t, err)

	assert.Equal(t, "Senior Security Engineer (Remote)", posting.Title)
	assert.Equal(t, "Remote", posting.Location)
	assert.Equal(t, types.LocationRemote, posting.LocationType)
	assert.Equal(t, raw.URL, posting.ApplyURL)
	assert.Equal(t, fixedNow.Add(-72*time.Hour), posting.PostedAt)
	assert.Equal(t, []string{"full_time"}, posting.EmploymentTypes)
	require.NotNil(t, posting.Salary)
	assert.Equal(t, 140000.0, posting.Salary.Min)
	assert.Equal(t, "hiringcafe", posting.Source)
	assert.Equal(t, fixedNow, posting.ScrapedAt)
	assert.Equal(t, PostingID("Acme Corp", posting.Title, raw.URL), posting.ID)
}

func TestBuildPosting_MissingFields(t *testing.T) {
	tests := []struct {
		name  string
		raw   types.RawPosting
		field string
	}{
		{"no title", types.RawPosting{Description: "body"}, "title"},
		{"no description", types.RawPosting{Title: "Engineer", Description: "   "}, "description"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			posting, err := BuildPosting(tt.raw, "hiringcafe", fixedNow)
			assert.Nil(t, posting)
			var vErr *ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Equal(t, tt.field, vErr.Field)
		})
	}
}
