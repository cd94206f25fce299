// Package ranking scores job postings against a candidate profile.
package ranking

import (
	"context"
	"encoding/json"
	"log"
	"sort"
	"strings"

	"github.com/jonathan/job-discovery/internal/llm"
)

// SkillExtractor identifies the skills a job description asks for
type SkillExtractor interface {
	ExtractSkills(ctx context.Context, description string) []string
}

// DefaultVocabulary is the closed keyword list scanned for in job text.
// Terms that occur as substrings of common words are left out.
var DefaultVocabulary = []string{
	"python", "golang", "typescript", "javascript", "node", "sql",
	"aws", "azure", "gcp", "docker", "kubernetes", "terraform", "ansible", "linux",
	"security", "cloud security", "appsec", "devsecops", "zero trust", "owasp",
	"penetration testing", "threat modeling", "vulnerability management",
	"incident response", "siem", "splunk", "identity and access management",
	"ci/cd", "agile", "scrum",
}

// VocabularyExtractor reports every vocabulary term that occurs as a
// substring of the lowercased description, in vocabulary order.
type VocabularyExtractor struct {
	Vocabulary []string
}

// NewVocabularyExtractor returns an extractor over vocab, or DefaultVocabulary when vocab is empty
func NewVocabularyExtractor(vocab []string) *VocabularyExtractor {
	if len(vocab) == 0 {
		vocab = DefaultVocabulary
	}
	terms := make([]string, 0, len(vocab))
	seen := make(map[string]bool, len(vocab))
	for _, v := range vocab {
		v = strings.ToLower(strings.TrimSpace(v))
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		terms = append(terms, v)
	}
	return &VocabularyExtractor{Vocabulary: terms}
}

// ExtractSkills implements SkillExtractor
func (e *VocabularyExtractor) ExtractSkills(_ context.Context, description string) []string {
	desc := strings.ToLower(description)
	found := []string{}
	for _, term := range e.Vocabulary {
		if strings.Contains(desc, term) {
			found = append(found, term)
		}
	}
	return found
}

// GeminiExtractor asks an LLM for the skills of a posting and falls back to
// another extractor when the call fails or yields nothing.
type GeminiExtractor struct {
	Client     llm.Client
	Fallback   SkillExtractor
	Vocabulary []string // optional; restricts the model's answers
	Verbose    bool
}

// NewGeminiExtractor wraps client with a vocabulary fallback
func NewGeminiExtractor(client llm.Client, fallback *VocabularyExtractor, restrict bool) *GeminiExtractor {
	e := &GeminiExtractor{Client: client, Fallback: fallback}
	if restrict {
		e.Vocabulary = fallback.Vocabulary
	}
	return e
}

type skillsResponse struct {
	Skills []string `json:"skills"`
}

// ExtractSkills implements SkillExtractor
func (e *GeminiExtractor) ExtractSkills(ctx context.Context, description string) []string {
	skills, err := e.extract(ctx, description)
	if err != nil || len(skills) == 0 {
		if e.Verbose {
			log.Printf("[SKILLS] LLM extraction unavailable (%v), using vocabulary scan", err)
		}
		return e.Fallback.ExtractSkills(ctx, description)
	}
	return skills
}

func (e *GeminiExtractor) extract(ctx context.Context, description string) ([]string, error) {
	prompt := llm.BuildExtractionPrompt(llm.JobSkillsSchema(e.Vocabulary), description)
	text, err := e.Client.GenerateJSON(ctx, prompt, llm.TierLite)
	if err != nil {
		return nil, err
	}

	var resp skillsResponse
	if err := json.Unmarshal([]byte(llm.CleanJSONBlock(text)), &resp); err != nil {
		return nil, err
	}

	allowed := map[string]bool{}
	for _, v := range e.Vocabulary {
		allowed[v] = true
	}
	seen := map[string]bool{}
	out := []string{}
	for _, s := range resp.Skills {
		s = strings.ToLower(strings.TrimSpace(s))
		if s == "" || seen[s] {
			continue
		}
		if len(allowed) > 0 && !allowed[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	sort.Strings(out)
	return out, nil
}
