package llm

import (
	"fmt"
	"strings"

	"github.com/jonathan/job-discovery/internal/prompts"
)

// ExtractionSchema describes a structured extraction task
type ExtractionSchema struct {
	Name        string        // e.g. "JobSkills"
	Description string        // preamble describing the task
	Fields      []SchemaField // expected output fields
}

// SchemaField is a single field of the extraction output
type SchemaField struct {
	Name        string // JSON field name
	Type        string // type hint shown to the model
	Description string
	Required    bool
}

// BuildExtractionPrompt constructs the prompt for schema over inputText
func BuildExtractionPrompt(schema ExtractionSchema, inputText string) string {
	var sb strings.Builder

	sb.WriteString(schema.Description)
	sb.WriteString("\n\n")

	sb.WriteString("Return ONLY valid JSON matching this exact structure:\n{\n")
	for i, field := range schema.Fields {
		typeHint := field.Type
		if typeHint == "" {
			typeHint = "string"
		}
		requiredHint := ""
		if field.Required {
			requiredHint = " (required)"
		}
		sb.WriteString(fmt.Sprintf("  \"%s\": %s%s", field.Name, typeHint, requiredHint))
		if field.Description != "" {
			sb.WriteString(fmt.Sprintf(" // %s", field.Description))
		}
		if i < len(schema.Fields)-1 {
			sb.WriteString(",")
		}
		sb.WriteString("\n")
	}
	sb.WriteString("}\n\n")

	sb.WriteString("IMPORTANT:\n")
	sb.WriteString("- Extract information directly from the text, do not invent.\n")
	sb.WriteString("- Return ONLY the JSON object, no markdown, no explanation.\n\n")

	sb.WriteString("Input text:\n\"\"\"\n")
	sb.WriteString(inputText)
	sb.WriteString("\n\"\"\"\n")

	return sb.String()
}

// JobSkillsSchema asks for the skills a posting requires. When vocabulary is
// non-empty the model is told to answer only with terms from it.
func JobSkillsSchema(vocabulary []string) ExtractionSchema {
	desc := prompts.MustGet("skills.json", "job-skills")
	if len(vocabulary) > 0 {
		desc += "\n" + prompts.Format(prompts.MustGet("skills.json", "vocabulary-restriction"), map[string]string{
			"Vocabulary": strings.Join(vocabulary, ", "),
		})
	}
	return ExtractionSchema{
		Name:        "JobSkills",
		Description: desc,
		Fields: []SchemaField{
			{
				Name:        "skills",
				Type:        "[\"string\"]",
				Description: prompts.MustGet("skills.json", "skills-field"),
				Required:    true,
			},
		},
	}
}
