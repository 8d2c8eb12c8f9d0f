// Package extraction mines normalized objectives for quantitative metrics
// and vocabulary keywords, producing tagged evidence items.
package extraction

import (
	"strings"

	"github.com/deathook007/perf-review-tool/internal/types"
)

// Extract scans every objective title for metric patterns and vocabulary
// keywords. It is a pure function of its inputs: the same objectives and
// vocabulary always yield the same evidence, in the same order.
//
// An objective yielding no evidence is not an error; it stays eligible for
// qualitative narrative use downstream.
func Extract(objectives []types.Objective, vocab *Vocabulary) []types.Evidence {
	if vocab == nil {
		vocab = DefaultVocabulary()
	}

	var evidence []types.Evidence
	for _, obj := range objectives {
		for _, m := range findMetrics(obj.Title) {
			evidence = append(evidence, types.Evidence{
				SourceObjectiveID: obj.ID,
				Kind:              types.KindMetric,
				RawText:           m.rawText,
				Context:           obj.Title,
				Normalized:        m.normalized,
			})
		}

		evidence = append(evidence, matchKeywords(obj, vocab.Technologies, types.KindTechnology)...)
		evidence = append(evidence, matchKeywords(obj, vocab.Themes, types.KindTheme)...)
	}

	return evidence
}

// matchKeywords emits one evidence item per vocabulary keyword present in
// the objective title. Matching is case-insensitive but the canonical
// vocabulary casing is what lands in RawText.
func matchKeywords(obj types.Objective, keywords []string, kind types.EvidenceKind) []types.Evidence {
	titleLower := strings.ToLower(obj.Title)

	var out []types.Evidence
	for _, kw := range keywords {
		if kw == "" {
			continue
		}
		if strings.Contains(titleLower, strings.ToLower(kw)) {
			out = append(out, types.Evidence{
				SourceObjectiveID: obj.ID,
				Kind:              kind,
				RawText:           kw,
				Context:           obj.Title,
			})
		}
	}
	return out
}
