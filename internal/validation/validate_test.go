package validation

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deathook007/perf-review-tool/internal/taxonomy"
	"github.com/deathook007/perf-review-tool/internal/types"
)

var (
	sectionWords = []string{
		"notably", "consistently", "proactively", "steadily", "deliberately",
		"methodically", "independently", "collaboratively", "measurably",
		"reliably", "thoughtfully", "decisively",
	}
	slotWords = []string{"delivered", "improved", "advanced", "drove", "completed"}
)

// cleanReview builds a structurally valid review: twelve sections, five
// bullets each, unique openings, no numeric tokens.
func cleanReview() *types.Review {
	review := &types.Review{
		Metadata: types.ReviewMetadata{Owner: "Priya Sharma", Role: "SDE2", Team: "Payments"},
	}
	for _, section := range taxonomy.Sections() {
		rs := types.RenderedSection{
			Section: section.Number,
			Name:    section.Name,
			Group:   section.Group,
		}
		for slot := 0; slot < types.BulletsPerSection; slot++ {
			rs.Bullets = append(rs.Bullets, fmt.Sprintf(
				"%s I %s meaningful work for the team this cycle.",
				capitalize(sectionWords[section.Number-1]), slotWords[slot]))
		}
		review.Sections = append(review.Sections, rs)
	}
	return review
}

func capitalize(w string) string {
	return strings.ToUpper(w[:1]) + w[1:]
}

func sampleEvidence() []types.Evidence {
	return []types.Evidence{
		{
			SourceObjectiveID: "o1",
			Kind:              types.KindMetric,
			RawText:           "10s to 250ms",
			Context:           "Reduced Order History load time from 10s to 250ms",
			Normalized:        &types.MetricDelta{Before: "10s", After: "250ms", Unit: "ms"},
		},
	}
}

func TestValidate_CleanReviewPasses(t *testing.T) {
	report := NewValidator().Validate(cleanReview(), sampleEvidence(), nil)

	assert.True(t, report.Passed)
	assert.Empty(t, report.Violations)
}

func TestValidate_InventedNumber(t *testing.T) {
	review := cleanReview()
	review.Sections[0].Bullets[0] = "Notably I cut build times by 37% this half."

	report := NewValidator().Validate(review, sampleEvidence(), nil)

	require.False(t, report.Passed)
	errs := report.Errors()
	require.Len(t, errs, 1)
	assert.Equal(t, "invented_number", errs[0].Type)
	assert.Contains(t, errs[0].Details, "37")
	require.NotNil(t, errs[0].Section)
	assert.Equal(t, 1, *errs[0].Section)
}

func TestValidate_SourcedNumbersAllowed(t *testing.T) {
	review := cleanReview()
	review.Sections[0].Bullets[0] = "Notably I reduced Order History load time from 10s to 250ms."

	report := NewValidator().Validate(review, sampleEvidence(), nil)
	assert.True(t, report.Passed, "digits present in evidence raw text must not be flagged")
}

func TestValidate_RoleDigitsAllowed(t *testing.T) {
	review := cleanReview()
	review.Sections[0].Bullets[0] = "Notably I operated at the SDE2 level across the stack."

	report := NewValidator().Validate(review, sampleEvidence(), nil)
	assert.True(t, report.Passed)
}

func TestValidate_AccuracySkippedWithoutEvidence(t *testing.T) {
	review := cleanReview()
	review.Sections[0].Bullets[0] = "Notably I cut build times by 37% this half."

	report := NewValidator().Validate(review, nil, nil)
	assert.True(t, report.Passed, "nothing to trace against, so accuracy cannot be judged")
}

func TestValidate_MissingSectionAndBullets(t *testing.T) {
	review := cleanReview()
	review.Sections = review.Sections[:11]
	review.Sections[0].Bullets = review.Sections[0].Bullets[:4]

	report := NewValidator().Validate(review, sampleEvidence(), nil)

	require.False(t, report.Passed)
	typesSeen := make(map[string]bool)
	for _, v := range report.Errors() {
		typesSeen[v.Type] = true
	}
	assert.True(t, typesSeen["missing_section"])
	assert.True(t, typesSeen["missing_bullet"])
}

func TestValidate_EmptyBullet(t *testing.T) {
	review := cleanReview()
	review.Sections[3].Bullets[2] = "   "

	report := NewValidator().Validate(review, sampleEvidence(), nil)
	require.False(t, report.Passed)
	assert.Equal(t, "missing_bullet", report.Errors()[0].Type)
}

func TestValidate_LongBulletIsWarningOnly(t *testing.T) {
	review := cleanReview()
	review.Sections[0].Bullets[0] = "Notably I " + strings.Repeat("shipped and shipped ", 20) + "without pause."

	report := NewValidator().Validate(review, sampleEvidence(), nil)

	assert.True(t, report.Passed)
	warnings := report.Warnings()
	require.Len(t, warnings, 1)
	assert.Equal(t, "bullet_too_long", warnings[0].Type)
}

func TestValidate_DuplicateOpening(t *testing.T) {
	review := cleanReview()
	review.Sections[7].Bullets[4] = "Notably I delivered something in a different section entirely."

	report := NewValidator().Validate(review, sampleEvidence(), nil)

	require.False(t, report.Passed)
	errs := report.Errors()
	require.Len(t, errs, 1)
	assert.Equal(t, "duplicate_opening", errs[0].Type)
	assert.Contains(t, errs[0].Details, "notably i delivered")
}

func TestValidate_DuplicateBullet(t *testing.T) {
	review := cleanReview()
	review.Sections[7].Bullets[4] = review.Sections[2].Bullets[1]

	report := NewValidator().Validate(review, sampleEvidence(), nil)

	require.False(t, report.Passed)
	typesSeen := make(map[string]bool)
	for _, v := range report.Errors() {
		typesSeen[v.Type] = true
	}
	assert.True(t, typesSeen["duplicate_bullet"])
}

func TestValidate_MetricTextMustSurvive(t *testing.T) {
	review := cleanReview()
	evidence := sampleEvidence()
	alloc := &types.Allocation{
		EvidenceTotal: 25,
		Sections: []types.SectionAllocation{
			{Section: 1, Name: "Engineering/Operation Excellence", Slots: []types.Slot{
				{Evidence: &evidence[0]},
			}},
		},
	}

	report := NewValidator().Validate(review, evidence, alloc)
	require.False(t, report.Passed)

	var found bool
	for _, v := range report.Errors() {
		if v.Type == "metric_text_missing" {
			found = true
			assert.Contains(t, v.Details, "10s to 250ms")
		}
	}
	assert.True(t, found)

	// Quoting the metric verbatim clears the violation.
	review.Sections[0].Bullets[0] = "Notably I cut Order History load time from 10s to 250ms."
	report = NewValidator().Validate(review, evidence, alloc)
	assert.True(t, report.Passed)
}

func TestValidate_AllocatorRendererMismatch(t *testing.T) {
	review := cleanReview()
	review.Sections[0].Qualitative = []bool{true, true, true, true, true}
	review.Sections[0].Bullets[0] = "Notably I cut Order History load time from 10s to 250ms."

	evidence := sampleEvidence()
	alloc := &types.Allocation{
		EvidenceTotal: 25,
		Sections: []types.SectionAllocation{
			{Section: 1, Name: "Engineering/Operation Excellence", Slots: []types.Slot{
				{Evidence: &evidence[0]},
			}},
		},
	}

	report := NewValidator().Validate(review, evidence, alloc)

	assert.True(t, report.Passed, "mismatch is a warning, not an error")
	warnings := report.Warnings()
	require.Len(t, warnings, 1)
	assert.Equal(t, "allocator_renderer_mismatch", warnings[0].Type)
}

func TestValidate_ThirdPersonVoiceRejected(t *testing.T) {
	review := cleanReview()
	for i := range review.Sections {
		for j := range review.Sections[i].Bullets {
			review.Sections[i].Bullets[j] = fmt.Sprintf(
				"%s %s she delivered strong outcomes and the team admired her work.",
				capitalize(sectionWords[i]), slotWords[j])
		}
	}

	report := NewValidator().Validate(review, sampleEvidence(), nil)

	require.False(t, report.Passed, "a fully third-person review must not pass")
	var count int
	for _, v := range report.Errors() {
		if v.Type == "third_person_voice" {
			count++
		}
	}
	assert.Equal(t, types.SectionCount*types.BulletsPerSection, count)
}

func TestValidate_MissingFirstPersonIsWarning(t *testing.T) {
	review := cleanReview()
	review.Sections[0].Bullets[0] = "Notably the checkout revamp shipped on schedule."

	report := NewValidator().Validate(review, sampleEvidence(), nil)

	assert.True(t, report.Passed)
	warnings := report.Warnings()
	require.Len(t, warnings, 1)
	assert.Equal(t, "missing_first_person", warnings[0].Type)
}

func TestValidate_PassiveVoiceWarning(t *testing.T) {
	review := cleanReview()
	review.Sections[0].Bullets[0] = "Notably I ensured the alerting pipeline was implemented on time."

	report := NewValidator().Validate(review, sampleEvidence(), nil)

	assert.True(t, report.Passed)
	warnings := report.Warnings()
	require.Len(t, warnings, 1)
	assert.Equal(t, "passive_voice", warnings[0].Type)
}

func TestValidate_GenericPhraseWarning(t *testing.T) {
	review := cleanReview()
	review.Sections[0].Bullets[0] = "Notably I contributed to various projects across my pod."

	report := NewValidator().Validate(review, sampleEvidence(), nil)

	assert.True(t, report.Passed)
	warnings := report.Warnings()
	require.Len(t, warnings, 1)
	assert.Equal(t, "generic_phrase", warnings[0].Type)
	assert.Contains(t, warnings[0].Details, "various projects")
}

func TestValidate_CustomLimits(t *testing.T) {
	review := cleanReview()

	// With a 2-word prefix the shared "Notably I" openings collide.
	report := NewValidator().WithLimits(0, 2).Validate(review, sampleEvidence(), nil)
	assert.False(t, report.Passed)
}
