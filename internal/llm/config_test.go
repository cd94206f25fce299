package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	assert.Equal(t, "gemini-2.5-flash-lite", config.GetModel(TierLite))
	assert.Equal(t, "gemini-2.5-flash", config.GetModel(TierStandard))
}

func TestGetModel_Fallback(t *testing.T) {
	config := &Config{Models: map[ModelTier]string{TierLite: "fallback-model"}}

	// Unknown tier falls back to standard, then lite
	assert.Equal(t, "fallback-model", config.GetModel("unknown"))
}

func TestGetModel_EmptyConfig(t *testing.T) {
	config := &Config{Models: map[ModelTier]string{}}
	assert.Empty(t, config.GetModel(TierLite))
}

func TestWithModel(t *testing.T) {
	original := DefaultConfig()
	updated := original.WithModel(TierLite, "custom-model")

	assert.Equal(t, "custom-model", updated.GetModel(TierLite))
	assert.Equal(t, "gemini-2.5-flash-lite", original.GetModel(TierLite), "original must be unchanged")
	assert.Equal(t, "gemini-2.5-flash", updated.GetModel(TierStandard))
}

func TestResolveAPIKey(t *testing.T) {
	t.Setenv(APIKeyEnvVar, "from-env")

	assert.Equal(t, "explicit", ResolveAPIKey("explicit"))
	assert.Equal(t, "from-env", ResolveAPIKey(""))
}
