package fetch

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDocument_StripsNoise(t *testing.T) {
	doc, err := ParseDocument(`<html><body>
		<nav>Menu</nav>
		<main><h1>  Staff   Engineer </h1><script>var x = 1;</script></main>
		<footer>Copyright</footer>
	</body></html>`)
	require.NoError(t, err)

	text := Text(doc.Find("body"))
	assert.Equal(t, "Staff Engineer", text)
}

func TestFirstText(t *testing.T) {
	doc, err := ParseDocument(`<html><body>
		<h1>   </h1>
		<h1>Real Title</h1>
		<h2>Subtitle</h2>
	</body></html>`)
	require.NoError(t, err)

	assert.Equal(t, "Real Title", FirstText(doc, "h1", "h2"))
	assert.Equal(t, "Subtitle", FirstText(doc, "h3", "h2"))
	assert.Empty(t, FirstText(doc, "h4"))
}

func TestCleanWhitespace(t *testing.T) {
	in := "  Line one  \n\n\t  Line   two\t\n   \n"
	assert.Equal(t, "Line one\nLine two", CleanWhitespace(in))
}

func TestAbsoluteURL(t *testing.T) {
	base, err := url.Parse("https://hiring.cafe/?searchState=x")
	require.NoError(t, err)

	tests := []struct {
		href   string
		want   string
		wantOK bool
	}{
		{"/viewjob/abc", "https://hiring.cafe/viewjob/abc", true},
		{"https://hiring.cafe/viewjob/def#apply", "https://hiring.cafe/viewjob/def", true},
		{"#top", "", false},
		{"", "", false},
		{"mailto:jobs@example.com", "", false},
		{"javascript:void(0)", "", false},
	}

	for _, tt := range tests {
		got, ok := AbsoluteURL(base, tt.href)
		assert.Equal(t, tt.wantOK, ok, tt.href)
		assert.Equal(t, tt.want, got, tt.href)
	}
}

func TestErrorTypes(t *testing.T) {
	cause := assert.AnError
	err := &Error{URL: "https://x", Message: "render failed", Cause: cause}
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "https://x")

	launch := &LaunchError{Message: "could not start Chrome", Cause: cause}
	assert.ErrorIs(t, launch, cause)
	assert.True(t, IsLaunchError(launch))
	assert.False(t, IsLaunchError(err))
}
