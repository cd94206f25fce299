package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanJSONBlock(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "plain object",
			input:    `{"skills": ["python"]}`,
			expected: `{"skills": ["python"]}`,
		},
		{
			name:     "json fence",
			input:    "```json\n{\"skills\": [\"aws\"]}\n```",
			expected: `{"skills": ["aws"]}`,
		},
		{
			name:     "bare fence",
			input:    "```\n{\"skills\": []}\n```",
			expected: `{"skills": []}`,
		},
		{
			name:     "preamble before object",
			input:    "Here is the JSON:\n{\"skills\": [\"docker\"]}",
			expected: `{"skills": ["docker"]}`,
		},
		{
			name:     "trailing text",
			input:    "{\"key\": \"value\"}\n\nLet me know if you need anything else!",
			expected: `{"key": "value"}`,
		},
		{
			name:     "array",
			input:    "Items:\n[\"a\", \"b\"]",
			expected: `["a", "b"]`,
		},
		{
			name:     "braces inside strings",
			input:    `Result: {"note": "use {curly} ] carefully", "n": {"x": 1}}`,
			expected: `{"note": "use {curly} ] carefully", "n": {"x": 1}}`,
		},
		{
			name:     "escaped quotes",
			input:    `{"message": "He said \"hi}\""}`,
			expected: `{"message": "He said \"hi}\""}`,
		},
		{
			name:     "no json",
			input:    "  nothing here  ",
			expected: "nothing here",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CleanJSONBlock(tt.input))
		})
	}
}
