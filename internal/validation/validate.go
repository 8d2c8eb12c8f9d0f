// Package validation checks a rendered review against the structural and
// factual rules the generator promises: full 12x5 shape, no invented
// numbers, metric text reproduced verbatim, and globally unique bullet
// openings. It reports, it never aborts.
package validation

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/deathook007/perf-review-tool/internal/types"
)

// Defaults mirror the renderer's structural constraints.
const (
	DefaultMaxChars    = 200
	DefaultPrefixWords = 3
)

// numberPattern captures numeric tokens including decimal and thousand
// separators, so "99.9" and "1,200" each come out as one token.
var numberPattern = regexp.MustCompile(`\d+(?:[.,]\d+)*`)

// Voice patterns. Plural pronouns are deliberately absent: "their first
// launch" is normal mentorship phrasing, "she delivered" is not.
var (
	thirdPersonPattern = regexp.MustCompile(`(?i)\b(he|she|him|his|hers|himself|herself)\b`)
	firstPersonPattern = regexp.MustCompile(`\b(?:I|I'm|I've|[Mm]y|[Mm]e)\b`)
)

// passiveIndicators flag bullets that bury the author behind the work.
var passiveIndicators = []string{
	"was implemented", "were created", "was developed", "were completed",
	"was built", "were delivered",
}

// genericPhrases map weak filler to the concrete fix a reviewer would ask for.
var genericPhrases = map[string]string{
	"various projects":      "be specific about which projects",
	"multiple times":        "specify how many times or give examples",
	"several initiatives":   "name the initiatives",
	"numerous improvements": "quantify the improvements",
	"enhanced quality":      "specify how quality was enhanced",
	"improved performance":  "use the extracted metrics",
	"increased efficiency":  "quantify the efficiency gain",
	"better experience":     "describe what improved",
}

// Validator holds the structural limits bullets are checked against.
type Validator struct {
	maxChars    int
	prefixWords int
}

// NewValidator creates a Validator with default limits.
func NewValidator() *Validator {
	return &Validator{maxChars: DefaultMaxChars, prefixWords: DefaultPrefixWords}
}

// WithLimits overrides the bullet length proxy and prefix width. Callers
// pass the same values the renderer was configured with.
func (v *Validator) WithLimits(maxChars, prefixWords int) *Validator {
	if maxChars > 0 {
		v.maxChars = maxChars
	}
	if prefixWords > 0 {
		v.prefixWords = prefixWords
	}
	return v
}

// Validate runs every check and returns the full report. evidence is the
// extractor output the review was built from; when it is absent the
// accuracy check has nothing to trace against and is skipped. alloc may be
// nil when only the review artifact is available.
func (v *Validator) Validate(review *types.Review, evidence []types.Evidence, alloc *types.Allocation) *types.ValidationReport {
	var violations []types.Violation

	violations = append(violations, v.checkCompleteness(review)...)
	if len(evidence) > 0 {
		violations = append(violations, v.checkAccuracy(review, evidence)...)
	}
	violations = append(violations, v.checkVoice(review)...)
	violations = append(violations, v.checkUniqueness(review)...)
	if alloc != nil {
		violations = append(violations, v.checkCoherence(review, alloc)...)
	}

	report := &types.ValidationReport{Passed: true, Violations: violations}
	for _, viol := range violations {
		if viol.Severity == types.SeverityError {
			report.Passed = false
			break
		}
	}
	return report
}

// checkCompleteness verifies the fixed 12x5 shape and the bullet length proxy.
func (v *Validator) checkCompleteness(review *types.Review) []types.Violation {
	var out []types.Violation

	if len(review.Sections) != types.SectionCount {
		out = append(out, types.Violation{
			Type:     "missing_section",
			Severity: types.SeverityError,
			Details:  fmt.Sprintf("review has %d sections, expected %d", len(review.Sections), types.SectionCount),
		})
	}

	for _, section := range review.Sections {
		section := section
		if len(section.Bullets) != types.BulletsPerSection {
			out = append(out, types.Violation{
				Type:     "missing_bullet",
				Severity: types.SeverityError,
				Details:  fmt.Sprintf("section %d has %d bullets, expected %d", section.Section, len(section.Bullets), types.BulletsPerSection),
				Section:  &section.Section,
			})
		}
		for i, bullet := range section.Bullets {
			i, bullet := i, bullet
			if strings.TrimSpace(bullet) == "" {
				out = append(out, types.Violation{
					Type:        "missing_bullet",
					Severity:    types.SeverityError,
					Details:     "bullet is empty",
					Section:     &section.Section,
					BulletIndex: &i,
				})
				continue
			}
			if len(bullet) > v.maxChars {
				out = append(out, types.Violation{
					Type:        "bullet_too_long",
					Severity:    types.SeverityWarning,
					Details:     fmt.Sprintf("bullet is %d characters, limit is %d", len(bullet), v.maxChars),
					Section:     &section.Section,
					BulletIndex: &i,
					BulletText:  &bullet,
				})
			}
		}
	}
	return out
}

// checkAccuracy verifies every numeric token in a bullet traces back to
// source data: metric raw text, normalized values, objective titles, or the
// person's role. Anything else is an invented number.
func (v *Validator) checkAccuracy(review *types.Review, evidence []types.Evidence) []types.Violation {
	allowed := allowedNumbers(review.Metadata, evidence)

	var out []types.Violation
	for _, section := range review.Sections {
		section := section
		for i, bullet := range section.Bullets {
			i, bullet := i, bullet
			for _, token := range numberPattern.FindAllString(bullet, -1) {
				if _, ok := allowed[token]; !ok {
					out = append(out, types.Violation{
						Type:        "invented_number",
						Severity:    types.SeverityError,
						Details:     fmt.Sprintf("numeric token %q does not appear in any source data", token),
						Section:     &section.Section,
						BulletIndex: &i,
						BulletText:  &bullet,
					})
				}
			}
		}
	}
	return out
}

// checkVoice enforces the first-person singular contract. Third-person
// pronouns are errors; a bullet with no first-person marker at all, passive
// constructions, and generic filler are warnings.
func (v *Validator) checkVoice(review *types.Review) []types.Violation {
	var out []types.Violation
	for _, section := range review.Sections {
		section := section
		for i, bullet := range section.Bullets {
			i, bullet := i, bullet
			if strings.TrimSpace(bullet) == "" {
				continue
			}
			lower := strings.ToLower(bullet)

			if match := thirdPersonPattern.FindString(bullet); match != "" {
				out = append(out, types.Violation{
					Type:        "third_person_voice",
					Severity:    types.SeverityError,
					Details:     fmt.Sprintf("bullet uses third-person %q; the review must be written as the person", match),
					Section:     &section.Section,
					BulletIndex: &i,
					BulletText:  &bullet,
				})
			} else if !firstPersonPattern.MatchString(bullet) {
				out = append(out, types.Violation{
					Type:        "missing_first_person",
					Severity:    types.SeverityWarning,
					Details:     "bullet carries no first-person marker",
					Section:     &section.Section,
					BulletIndex: &i,
					BulletText:  &bullet,
				})
			}

			for _, indicator := range passiveIndicators {
				if strings.Contains(lower, indicator) {
					out = append(out, types.Violation{
						Type:        "passive_voice",
						Severity:    types.SeverityWarning,
						Details:     fmt.Sprintf("passive construction %q; prefer the active form", indicator),
						Section:     &section.Section,
						BulletIndex: &i,
						BulletText:  &bullet,
					})
				}
			}

			for phrase, suggestion := range genericPhrases {
				if strings.Contains(lower, phrase) {
					out = append(out, types.Violation{
						Type:        "generic_phrase",
						Severity:    types.SeverityWarning,
						Details:     fmt.Sprintf("generic phrase %q; %s", phrase, suggestion),
						Section:     &section.Section,
						BulletIndex: &i,
						BulletText:  &bullet,
					})
				}
			}
		}
	}
	return out
}

// checkUniqueness flags verbatim duplicate bullets and opening-prefix
// collisions across the whole review.
func (v *Validator) checkUniqueness(review *types.Review) []types.Violation {
	var out []types.Violation

	seenBullets := make(map[string]int)
	seenPrefixes := make(map[string]int)
	for _, section := range review.Sections {
		section := section
		for i, bullet := range section.Bullets {
			i, bullet := i, bullet
			normalized := strings.ToLower(strings.TrimSpace(bullet))
			if normalized == "" {
				continue
			}
			if first, dup := seenBullets[normalized]; dup {
				out = append(out, types.Violation{
					Type:        "duplicate_bullet",
					Severity:    types.SeverityError,
					Details:     fmt.Sprintf("bullet repeats section %d verbatim", first),
					Section:     &section.Section,
					BulletIndex: &i,
					BulletText:  &bullet,
				})
			} else {
				seenBullets[normalized] = section.Section
			}

			prefix := types.OpeningPrefix(bullet, v.prefixWords)
			if prefix == "" {
				continue
			}
			if first, dup := seenPrefixes[prefix]; dup {
				out = append(out, types.Violation{
					Type:        "duplicate_opening",
					Severity:    types.SeverityError,
					Details:     fmt.Sprintf("opening %q already used in section %d", prefix, first),
					Section:     &section.Section,
					BulletIndex: &i,
					BulletText:  &bullet,
				})
			} else {
				seenPrefixes[prefix] = section.Section
			}
		}
	}
	return out
}

// checkCoherence cross-checks rendered sections against the allocation:
// allocated metric text must survive into the section's bullets, and a
// section the allocator backed with evidence should not read as entirely
// qualitative.
func (v *Validator) checkCoherence(review *types.Review, alloc *types.Allocation) []types.Violation {
	rendered := make(map[int]types.RenderedSection, len(review.Sections))
	for _, section := range review.Sections {
		rendered[section.Section] = section
	}

	var out []types.Violation
	for _, sa := range alloc.Sections {
		sa := sa
		section, ok := rendered[sa.Section]
		if !ok {
			continue
		}
		body := strings.Join(section.Bullets, "\n")

		for _, slot := range sa.Slots {
			if slot.Evidence == nil || !slot.Evidence.IsMetric() {
				continue
			}
			if !strings.Contains(body, slot.Evidence.RawText) {
				out = append(out, types.Violation{
					Type:     "metric_text_missing",
					Severity: types.SeverityError,
					Details:  fmt.Sprintf("metric %q was allocated but does not appear verbatim in the section", slot.Evidence.RawText),
					Section:  &sa.Section,
				})
			}
		}

		if !alloc.Sparse && sa.EvidenceCount() > 0 && allQualitative(section) {
			out = append(out, types.Violation{
				Type:     "allocator_renderer_mismatch",
				Severity: types.SeverityWarning,
				Details:  fmt.Sprintf("section was allocated %d evidence items but rendered as entirely qualitative", sa.EvidenceCount()),
				Section:  &sa.Section,
			})
		}
	}
	return out
}

// allowedNumbers collects every numeric token the review is permitted to
// contain. Tokens come from metric raw text and normalized values, from the
// objective titles evidence was mined from, and from the role string
// (levels like SDE2 carry a digit).
func allowedNumbers(meta types.ReviewMetadata, evidence []types.Evidence) map[string]struct{} {
	allowed := make(map[string]struct{})
	add := func(s string) {
		for _, token := range numberPattern.FindAllString(s, -1) {
			allowed[token] = struct{}{}
		}
	}

	for _, ev := range evidence {
		add(ev.RawText)
		add(ev.Context)
		if ev.Normalized != nil {
			add(ev.Normalized.Before)
			add(ev.Normalized.After)
		}
	}
	add(meta.Role)
	add(meta.Team)
	return allowed
}

func allQualitative(section types.RenderedSection) bool {
	if len(section.Qualitative) == 0 {
		return false
	}
	for _, q := range section.Qualitative {
		if !q {
			return false
		}
	}
	return true
}
