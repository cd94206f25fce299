package ranking

import "strings"

// DefaultSynonyms groups interchangeable skill spellings under a canonical name
var DefaultSynonyms = map[string][]string{
	"javascript":          {"js", "node", "nodejs", "node.js"},
	"typescript":          {"ts"},
	"golang":              {"go", "go lang"},
	"kubernetes":          {"k8s"},
	"penetration testing": {"pentest", "pentesting", "pen testing", "ethical hacking"},
	"aws":                 {"amazon web services"},
	"gcp":                 {"google cloud", "google cloud platform"},
	"azure":               {"microsoft azure"},
	"ci/cd":               {"continuous integration", "continuous delivery"},
	"incident response":   {"ir"},

	"identity and access management": {"iam"},
}

// SynonymTable answers whether two skill tokens name the same thing
type SynonymTable struct {
	canonical map[string]string
}

// NewSynonymTable indexes groups so that every alias resolves to its key
func NewSynonymTable(groups map[string][]string) *SynonymTable {
	t := &SynonymTable{canonical: map[string]string{}}
	for name, aliases := range groups {
		name = strings.ToLower(strings.TrimSpace(name))
		t.canonical[name] = name
		for _, a := range aliases {
			t.canonical[strings.ToLower(strings.TrimSpace(a))] = name
		}
	}
	return t
}

// Canonical returns the group name for skill, or skill itself
func (t *SynonymTable) Canonical(skill string) string {
	skill = strings.ToLower(strings.TrimSpace(skill))
	if c, ok := t.canonical[skill]; ok {
		return c
	}
	return skill
}

// Equivalent reports whether a and b belong to the same synonym group
func (t *SynonymTable) Equivalent(a, b string) bool {
	ca, okA := t.canonical[strings.ToLower(strings.TrimSpace(a))]
	cb, okB := t.canonical[strings.ToLower(strings.TrimSpace(b))]
	return okA && okB && ca == cb
}
