package sources

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/jonathan/job-discovery/internal/fetch"
)

// classContainsText returns the text of the first element, in document
// order, whose class attribute contains any of words (case-insensitive).
func classContainsText(doc *goquery.Document, words ...string) string {
	var found string
	doc.Find("[class]").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		class := strings.ToLower(sel.AttrOr("class", ""))
		for _, w := range words {
			if strings.Contains(class, w) {
				found = fetch.Text(sel)
				break
			}
		}
		return found == ""
	})
	return found
}
