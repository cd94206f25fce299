package sources

import (
	"encoding/json"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/job-discovery/internal/fetch"
	"github.com/jonathan/job-discovery/internal/types"
)

func loadFixture(t *testing.T, name string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", name))
	require.NoError(t, err)
	return string(data)
}

func parseFixture(t *testing.T, name, pageURL string) types.RawPosting {
	t.Helper()
	doc, err := fetch.ParseDocument(loadFixture(t, name))
	require.NoError(t, err)
	return NewHiringCafe().ParsePosting(doc, pageURL)
}

func TestHiringCafe_SearchURL(t *testing.T) {
	h := NewHiringCafe()

	raw := h.SearchURL(Query{Text: " security engineer ", Days: 14, Remote: true, Location: "Austin"})

	require.True(t, strings.HasPrefix(raw, "https://hiring.cafe/?searchState="))
	u, err := url.Parse(raw)
	require.NoError(t, err)

	var state map[string]any
	require.NoError(t, json.Unmarshal([]byte(u.Query().Get("searchState")), &state))
	assert.Equal(t, "security engineer", state["searchQuery"])
	assert.Equal(t, float64(14), state["dateFetchedPastNDays"])
	assert.Equal(t, []any{"Remote"}, state["workplaceTypes"])
	assert.Equal(t, "Austin", state["location"])
}

func TestHiringCafe_SearchURL_OmitsUnsetFilters(t *testing.T) {
	raw := NewHiringCafe().SearchURL(Query{Text: "go developer"})
	u, err := url.Parse(raw)
	require.NoError(t, err)

	assert.JSONEq(t, `{"searchQuery":"go developer"}`, u.Query().Get("searchState"))
}

func TestHiringCafe_IsPostingURL(t *testing.T) {
	h := NewHiringCafe()

	assert.True(t, h.IsPostingURL("https://hiring.cafe/viewjob/abc123"))
	assert.True(t, h.IsPostingURL("https://hiring.cafe/viewjob/abc123?ref=search"))
	assert.False(t, h.IsPostingURL("https://hiring.cafe/"))
	assert.False(t, h.IsPostingURL("https://hiring.cafe/about?next=/viewjob/x"))
}

func TestHiringCafe_ParsePosting(t *testing.T) {
	raw := parseFixture(t, "hiringcafe_posting.html", "https://hiring.cafe/viewjob/abc123")

	assert.Equal(t, "https://hiring.cafe/viewjob/abc123", raw.URL)
	assert.Equal(t, "Senior Security Engineer (Remote)", raw.Title)
	assert.Equal(t, "Acme Security", raw.Company)
	assert.Equal(t, "United States", raw.Location)
	assert.Equal(t, "$140,000 - $180,000 a year", raw.SalaryText)
	assert.Equal(t, "2026-02-10T09:30:00Z", raw.DateText)
	assert.Equal(t, "https://jobs.acme.example/apply/123", raw.ApplyURL)
	assert.Equal(t, "Full Time", raw.EmploymentText)
	assert.Contains(t, raw.Description, "penetration testing")
	assert.NotContains(t, raw.Description, "hiring.cafe")
}

func TestHiringCafe_ParsePosting_Fallbacks(t *testing.T) {
	raw := parseFixture(t, "hiringcafe_sparse.html", "https://hiring.cafe/viewjob/xyz")

	assert.Equal(t, "Cloud Engineer", raw.Title)
	assert.Equal(t, "Northwind Traders", raw.Company)
	assert.Empty(t, raw.Location)
	assert.Equal(t, "$60/hour", raw.SalaryText)
	assert.Equal(t, "3 days ago", raw.DateText)
	assert.Empty(t, raw.ApplyURL)
	assert.Contains(t, raw.EmploymentText, "contract role")
}

func TestRegistry(t *testing.T) {
	r := DefaultRegistry()

	s, err := r.Get("HiringCafe")
	require.NoError(t, err)
	assert.Equal(t, HiringCafeName, s.Name())
	assert.Equal(t, []string{"hiringcafe"}, r.Names())

	_, err = r.Get("monster")
	var unknown *UnknownSourceError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "monster", unknown.Name)
	assert.Contains(t, err.Error(), "hiringcafe")
}
