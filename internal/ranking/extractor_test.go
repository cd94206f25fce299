package ranking

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/job-discovery/internal/llm"
)

// MockLLMClient is a test double for llm.Client
type MockLLMClient struct {
	GenerateJSONFunc func(ctx context.Context, prompt string, tier llm.ModelTier) (string, error)
	prompts          []string
}

func (m *MockLLMClient) GenerateContent(ctx context.Context, prompt string, tier llm.ModelTier) (string, error) {
	return m.GenerateJSON(ctx, prompt, tier)
}

func (m *MockLLMClient) GenerateJSON(ctx context.Context, prompt string, tier llm.ModelTier) (string, error) {
	m.prompts = append(m.prompts, prompt)
	if m.GenerateJSONFunc != nil {
		return m.GenerateJSONFunc(ctx, prompt, tier)
	}
	return "", errors.New("not implemented")
}

func (m *MockLLMClient) GetModel(llm.ModelTier) string { return "mock" }

func (m *MockLLMClient) Close() error { return nil }

func TestVocabularyExtractor(t *testing.T) {
	e := NewVocabularyExtractor(nil)

	got := e.ExtractSkills(context.Background(), "Senior engineer: Python, AWS, Kubernetes; Incident Response on-call.")
	assert.Equal(t, []string{"python", "aws", "kubernetes", "incident response"}, got)
}

func TestVocabularyExtractor_JavaScriptOnly(t *testing.T) {
	e := NewVocabularyExtractor(nil)

	got := e.ExtractSkills(context.Background(), "Frontend role: JavaScript and TypeScript.")
	assert.Equal(t, []string{"typescript", "javascript"}, got)
}

func TestDefaultVocabulary_NoNestedSingleWords(t *testing.T) {
	// multi-word phrases such as "cloud security" may contain other terms
	for _, a := range DefaultVocabulary {
		for _, b := range DefaultVocabulary {
			if a == b || strings.Contains(b, " ") {
				continue
			}
			assert.False(t, strings.Contains(b, a), "%q occurs inside %q", a, b)
		}
	}
}

func TestVocabularyExtractor_CustomList(t *testing.T) {
	e := NewVocabularyExtractor([]string{" Rust ", "rust", "", "WASM"})

	assert.Equal(t, []string{"rust", "wasm"}, e.Vocabulary)
	assert.Equal(t, []string{"wasm"}, e.ExtractSkills(context.Background(), "We compile to wasm."))
}

func TestVocabularyExtractor_NoTerms(t *testing.T) {
	got := NewVocabularyExtractor(nil).ExtractSkills(context.Background(), "")
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestGeminiExtractor(t *testing.T) {
	mock := &MockLLMClient{
		GenerateJSONFunc: func(_ context.Context, _ string, tier llm.ModelTier) (string, error) {
			assert.Equal(t, llm.TierLite, tier)
			return "```json\n{\"skills\": [\"Python\", \"aws\", \"python\", \"cobol\"]}\n```", nil
		},
	}
	e := NewGeminiExtractor(mock, NewVocabularyExtractor(nil), true)

	got := e.ExtractSkills(context.Background(), "We want Python on AWS.")

	assert.Equal(t, []string{"aws", "python"}, got)
	if assert.Len(t, mock.prompts, 1) {
		assert.Contains(t, mock.prompts[0], "We want Python on AWS.")
		assert.Contains(t, mock.prompts[0], "Only use terms from this list")
	}
}

func TestGeminiExtractor_Unrestricted(t *testing.T) {
	mock := &MockLLMClient{
		GenerateJSONFunc: func(context.Context, string, llm.ModelTier) (string, error) {
			return `{"skills": ["cobol", " Mainframes "]}`, nil
		},
	}
	e := NewGeminiExtractor(mock, NewVocabularyExtractor(nil), false)

	assert.Equal(t, []string{"cobol", "mainframes"}, e.ExtractSkills(context.Background(), "legacy"))
}

func TestGeminiExtractor_FallsBack(t *testing.T) {
	tests := []struct {
		name string
		resp string
		err  error
	}{
		{"client error", "", errors.New("quota exceeded")},
		{"malformed json", "not json at all", nil},
		{"empty skills", `{"skills": []}`, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := &MockLLMClient{
				GenerateJSONFunc: func(context.Context, string, llm.ModelTier) (string, error) {
					return tt.resp, tt.err
				},
			}
			e := NewGeminiExtractor(mock, NewVocabularyExtractor(nil), true)

			got := e.ExtractSkills(context.Background(), "docker and linux")
			assert.Equal(t, []string{"docker", "linux"}, got)
		})
	}
}
