package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deathook007/perf-review-tool/internal/taxonomy"
	"github.com/deathook007/perf-review-tool/internal/types"
)

var (
	openingWords = []string{
		"notably", "consistently", "proactively", "steadily", "deliberately",
		"methodically", "independently", "collaboratively", "measurably",
		"reliably", "thoughtfully", "decisively",
	}
	bulletVerbs = []string{"delivered", "improved", "advanced", "drove", "completed"}
)

func writeReviewArtifact(t *testing.T, dir string) string {
	t.Helper()

	review := types.Review{
		Metadata: types.ReviewMetadata{Owner: "Priya Sharma", Role: "SDE2", Team: "Payments"},
	}
	for _, section := range taxonomy.Sections() {
		rs := types.RenderedSection{
			Section: section.Number,
			Name:    section.Name,
			Group:   section.Group,
		}
		word := openingWords[section.Number-1]
		for slot := 0; slot < types.BulletsPerSection; slot++ {
			rs.Bullets = append(rs.Bullets, fmt.Sprintf(
				"%s I %s meaningful work for the team this cycle.",
				strings.ToUpper(word[:1])+word[1:], bulletVerbs[slot]))
		}
		review.Sections = append(review.Sections, rs)
	}

	data, err := json.Marshal(review)
	require.NoError(t, err)
	path := filepath.Join(dir, "review.json")
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func writeEvidenceArtifact(t *testing.T, dir string) string {
	t.Helper()

	evidence := []types.Evidence{{
		SourceObjectiveID: "o1",
		Kind:              types.KindMetric,
		RawText:           "10s to 250ms",
		Context:           "Reduced Order History load time from 10s to 250ms",
	}}
	data, err := json.Marshal(evidence)
	require.NoError(t, err)
	path := filepath.Join(dir, "evidence.json")
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func TestValidate_PositionalArguments(t *testing.T) {
	dir := t.TempDir()
	review := writeReviewArtifact(t, dir)
	evidence := writeEvidenceArtifact(t, dir)

	err := runValidate(validateCmd, []string{review, evidence})
	assert.NoError(t, err)
}

func TestValidate_RequiresReview(t *testing.T) {
	err := runValidate(validateCmd, nil)
	assert.ErrorContains(t, err, "review JSON artifact is required")
}

func TestValidate_PositionalConflictsWithFlag(t *testing.T) {
	validateReview = "review.json"
	t.Cleanup(func() { validateReview = "" })

	err := runValidate(validateCmd, []string{"other.json"})
	assert.ErrorContains(t, err, "mutually exclusive")
}
