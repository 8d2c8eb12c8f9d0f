package prompts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet(t *testing.T) {
	ClearCache()

	prompt, err := Get("rendering.json", "section-intro")
	require.NoError(t, err)
	assert.Contains(t, prompt, "{{.SectionName}}")
}

func TestGet_MissingKey(t *testing.T) {
	_, err := Get("rendering.json", "no-such-key")
	assert.Error(t, err)
}

func TestGet_MissingFile(t *testing.T) {
	_, err := Get("missing.json", "any")
	assert.Error(t, err)
}

func TestMustGet_PanicsOnMissing(t *testing.T) {
	assert.Panics(t, func() { MustGet("rendering.json", "no-such-key") })
}

func TestFormat(t *testing.T) {
	out := Format("Section: {{.SectionName}} for {{.Role}}", map[string]string{
		"SectionName": "Impact",
		"Role":        "SDE2",
	})
	assert.Equal(t, "Section: Impact for SDE2", out)
}

func TestFormat_UnknownPlaceholderLeftAlone(t *testing.T) {
	out := Format("Hello {{.Missing}}", map[string]string{"Other": "x"})
	assert.Equal(t, "Hello {{.Missing}}", out)
}

func TestRenderingPromptsComplete(t *testing.T) {
	keys := []string{
		"section-intro",
		"section-evidence-header",
		"section-evidence-metric",
		"section-evidence-keyword",
		"section-evidence-qualitative",
		"section-requirements",
		"section-strict-retry",
	}
	for _, key := range keys {
		assert.NotEmpty(t, MustGet("rendering.json", key), key)
	}
}
