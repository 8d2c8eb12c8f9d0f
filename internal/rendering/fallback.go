package rendering

import (
	"fmt"
	"strings"

	"github.com/deathook007/perf-review-tool/internal/taxonomy"
	"github.com/deathook007/perf-review-tool/internal/types"
)

// Opening word tables for fallback bullets. The (section, slot) pair picks a
// distinct adverb+verb combination so fallback text cannot trip the global
// opening-prefix uniqueness rule.
var (
	fallbackAdverbs = []string{
		"Notably", "Consistently", "Proactively", "Steadily", "Deliberately",
		"Methodically", "Independently", "Collaboratively", "Measurably",
		"Reliably", "Thoughtfully", "Decisively",
	}
	fallbackVerbs = []string{
		"delivered", "improved", "advanced", "drove", "completed",
	}
)

// FallbackBullets builds deterministic bullets straight from the allocated
// slots. Used when narrative generation fails for a section: the review
// keeps its 12x5 shape, the section is flagged incomplete, and metric raw
// text still appears verbatim. usedPrefixes carries the openings earlier
// sections already consumed, LLM-written or fallback alike, so degraded
// sections never collide with rendered ones.
func FallbackBullets(section taxonomy.Section, slots []types.Slot, usedPrefixes []string) []string {
	used := make(map[string]bool, len(usedPrefixes))
	for _, p := range usedPrefixes {
		used[p] = true
	}

	bullets := make([]string, 0, len(slots))
	for i, slot := range slots {
		var body string
		switch {
		case slot.Evidence != nil:
			body = slot.Evidence.Context
			if body == "" {
				body = slot.Evidence.RawText
			}
		default:
			body = slot.Hint
			if body == "" {
				body = "work aligned with " + section.Name
			}
		}

		opening := pickOpening(section.Number, i, used)
		bullets = append(bullets, fmt.Sprintf("%s %s.", opening, lowerFirst(body)))
	}
	return bullets
}

// pickOpening walks the adverb/verb grid from the section's home pair until
// it finds an opening whose prefix is unclaimed, then claims it. The grid
// holds 60 combinations, one per bullet of a full review, so a free pair
// always exists in practice; if the scan somehow exhausts them the home
// pair is reused and left for the validator to flag.
func pickOpening(sectionNumber, slot int, used map[string]bool) string {
	home := fmt.Sprintf("%s, I %s",
		fallbackAdverbs[(sectionNumber-1)%len(fallbackAdverbs)],
		fallbackVerbs[slot%len(fallbackVerbs)])

	total := len(fallbackAdverbs) * len(fallbackVerbs)
	for attempt := 0; attempt < total; attempt++ {
		adverb := fallbackAdverbs[(sectionNumber-1+attempt/len(fallbackVerbs))%len(fallbackAdverbs)]
		verb := fallbackVerbs[(slot+attempt)%len(fallbackVerbs)]
		candidate := fmt.Sprintf("%s, I %s", adverb, verb)
		prefix := types.OpeningPrefix(candidate, DefaultPrefixWords)
		if !used[prefix] {
			used[prefix] = true
			return candidate
		}
	}
	return home
}

func lowerFirst(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}
