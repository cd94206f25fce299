// Package llm wraps the Gemini API behind a small client interface used for
// optional LLM-assisted skill extraction.
package llm

import "os"

// APIKeyEnvVar is consulted when no key is passed explicitly
const APIKeyEnvVar = "GEMINI_API_KEY"

// ModelTier represents the capability level of a model
type ModelTier string

const (
	// TierLite is for classification and short extraction prompts
	TierLite ModelTier = "lite"
	// TierStandard is for structured output over longer documents
	TierStandard ModelTier = "standard"
)

// Config holds the model names per tier
type Config struct {
	Models map[ModelTier]string
}

// DefaultConfig returns the default Gemini configuration
func DefaultConfig() *Config {
	return &Config{
		Models: map[ModelTier]string{
			TierLite:     "gemini-2.5-flash-lite",
			TierStandard: "gemini-2.5-flash",
		},
	}
}

// GetModel returns the model name for a given tier
func (c *Config) GetModel(tier ModelTier) string {
	if model, ok := c.Models[tier]; ok {
		return model
	}
	// Fallback chain: standard, then lite
	if model, ok := c.Models[TierStandard]; ok {
		return model
	}
	if model, ok := c.Models[TierLite]; ok {
		return model
	}
	return ""
}

// WithModel returns a copy of c with model set for tier
func (c *Config) WithModel(tier ModelTier, model string) *Config {
	out := &Config{Models: make(map[ModelTier]string, len(c.Models)+1)}
	for k, v := range c.Models {
		out.Models[k] = v
	}
	out.Models[tier] = model
	return out
}

// ResolveAPIKey returns explicit when set, else the GEMINI_API_KEY environment variable
func ResolveAPIKey(explicit string) string {
	if explicit != "" {
		return explicit
	}
	return os.Getenv(APIKeyEnvVar)
}
