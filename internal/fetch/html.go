package fetch

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// noiseSelector matches elements that never carry posting content
const noiseSelector = "nav, footer, script, style, noscript, svg, .ad, .advertisement, .cookie-banner, .popup"

// ParseDocument parses rendered HTML and strips noise elements.
func ParseDocument(html string) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}
	doc.Find(noiseSelector).Remove()
	return doc, nil
}

// Text returns the whitespace-normalized text of sel
func Text(sel *goquery.Selection) string {
	if sel == nil {
		return ""
	}
	return CleanWhitespace(sel.Text())
}

// FirstText tries selectors in order and returns the text of the first
// non-empty match.
func FirstText(doc *goquery.Document, selectors ...string) string {
	for _, s := range selectors {
		var found string
		doc.Find(s).EachWithBreak(func(_ int, sel *goquery.Selection) bool {
			found = Text(sel)
			return found == ""
		})
		if found != "" {
			return found
		}
	}
	return ""
}

// CleanWhitespace trims each line, drops blank lines and collapses runs of
// spaces within a line.
func CleanWhitespace(text string) string {
	lines := strings.Split(text, "\n")
	cleaned := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.Join(strings.Fields(line), " ")
		if line != "" {
			cleaned = append(cleaned, line)
		}
	}
	return strings.Join(cleaned, "\n")
}

// AbsoluteURL resolves href against base. Fragments are dropped; only http(s)
// results are returned.
func AbsoluteURL(base *url.URL, href string) (string, bool) {
	href = strings.TrimSpace(href)
	if href == "" || strings.HasPrefix(href, "#") {
		return "", false
	}
	ref, err := url.Parse(href)
	if err != nil {
		return "", false
	}
	abs := ref
	if base != nil {
		abs = base.ResolveReference(ref)
	}
	if abs.Scheme != "http" && abs.Scheme != "https" {
		return "", false
	}
	abs.Fragment = ""
	return abs.String(), true
}
