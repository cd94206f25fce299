package ranking

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSynonymTable(t *testing.T) {
	table := NewSynonymTable(DefaultSynonyms)

	assert.True(t, table.Equivalent("js", "javascript"))
	assert.True(t, table.Equivalent("Node.js", "nodejs"))
	assert.True(t, table.Equivalent("pentest", "ethical hacking"))
	assert.False(t, table.Equivalent("js", "typescript"))
	assert.False(t, table.Equivalent("cobol", "cobol"), "unknown skills are never synonyms")

	assert.Equal(t, "kubernetes", table.Canonical(" K8s "))
	assert.Equal(t, "cobol", table.Canonical("COBOL"))
}
