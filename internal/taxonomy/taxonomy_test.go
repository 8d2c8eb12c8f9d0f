package taxonomy

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSections_FixedShape(t *testing.T) {
	sections := Sections()
	require.Len(t, sections, 12)

	for i, s := range sections {
		assert.Equal(t, i+1, s.Number)
		assert.NotEmpty(t, s.Name)
		assert.NotEmpty(t, s.Style.Tone)
		assert.NotEmpty(t, s.Style.QualitativeHint)
	}

	// Group boundaries never move.
	for _, s := range sections[:5] {
		assert.Equal(t, GroupObjectives, s.Group)
	}
	for _, s := range sections[5:10] {
		assert.Equal(t, GroupCompetencies, s.Group)
	}
	for _, s := range sections[10:] {
		assert.Equal(t, GroupOpenQuestions, s.Group)
	}
}

func TestSectionByNumber(t *testing.T) {
	s, ok := SectionByNumber(9)
	require.True(t, ok)
	assert.Equal(t, "Impact", s.Name)

	_, ok = SectionByNumber(13)
	assert.False(t, ok)
}

func TestDefaultAffinities(t *testing.T) {
	cfg := DefaultAffinities()

	primary, secondary := cfg.SectionsFor("Roadmap Delivery")
	assert.Equal(t, 2, primary)
	assert.Equal(t, 9, secondary)

	primary, secondary = cfg.SectionsFor("Mentorship")
	assert.Equal(t, 4, primary)
	assert.Equal(t, 6, secondary)

	primary, secondary = cfg.SectionsFor("Unknown Category")
	assert.Equal(t, 0, primary)
	assert.Equal(t, 0, secondary)
}

func TestLoadAffinities(t *testing.T) {
	path := filepath.Join(t.TempDir(), "affinities.json")
	content := `{"affinities": [{"category": "Platform Work", "primary": 5, "secondary": 7}]}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadAffinities(path)
	require.NoError(t, err)

	primary, secondary := cfg.SectionsFor("Platform Work")
	assert.Equal(t, 5, primary)
	assert.Equal(t, 7, secondary)
}

func TestLoadAffinities_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "affinities.json")

	// Section numbers outside 1-12 fail structural validation.
	content := `{"affinities": [{"category": "Platform Work", "primary": 40}]}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	_, err := LoadAffinities(path)
	assert.Error(t, err)
}

func TestLoadAffinities_MissingFile(t *testing.T) {
	_, err := LoadAffinities(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}
