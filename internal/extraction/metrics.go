package extraction

import (
	"regexp"
	"sort"
	"strconv"

	"github.com/deathook007/perf-review-tool/internal/types"
)

// metricPattern couples a numeric pattern with its normalization rule.
// normalize may return nil when the match has no before/after transition.
type metricPattern struct {
	re        *regexp.Regexp
	normalize func(groups []string) *types.MetricDelta
}

// Transition separators: objective titles use "to" or an arrow.
const toSep = `\s*(?:to|→|->)\s*`

// metricPatterns is the fixed pattern set, applied per objective title.
// Order does not matter for precedence; overlaps are resolved by span length.
var metricPatterns = []metricPattern{
	// Percentage deltas: "99.4% to 99.73%"
	{
		re: regexp.MustCompile(`(\d+\.?\d*)\s*%` + toSep + `(\d+\.?\d*)\s*%`),
		normalize: func(g []string) *types.MetricDelta {
			return numericDelta(g[1], g[2], g[1]+"%", g[2]+"%", "%")
		},
	},
	// Time deltas: "10s to 250ms", "35 hr/week to 41 hr/week"
	{
		re: regexp.MustCompile(`(\d+\.?\d*)\s*(ms|s|secs?|hr/week|hrs?|hours|minutes|mins)\b` + toSep + `(\d+\.?\d*)\s*(ms|s|secs?|hr/week|hrs?|hours|minutes|mins)\b`),
		normalize: func(g []string) *types.MetricDelta {
			return numericDelta(g[1], g[3], g[1]+g[2], g[3]+g[4], g[4])
		},
	},
	// Currency deltas: "Rs 3600 to Rs 4300"
	{
		re: regexp.MustCompile(`Rs\s+(\d+\.?\d*)` + toSep + `Rs\s+(\d+\.?\d*)`),
		normalize: func(g []string) *types.MetricDelta {
			return numericDelta(g[1], g[2], "Rs "+g[1], "Rs "+g[2], "Rs")
		},
	},
	// Version upgrades: "0.73.8 to 0.78.2". Versions are not numbers, so
	// the raw text is the only carrier; no normalized pair.
	{
		re:        regexp.MustCompile(`(\d+\.\d+\.\d+)` + toSep + `(\d+\.\d+\.\d+)`),
		normalize: func([]string) *types.MetricDelta { return nil },
	},
	// Bare counts: "150+ events", "48 dependencies"
	{
		re:        regexp.MustCompile(`(\d+)\+?\s+(events|dependencies|items|files|repositories|repos|screens|modules|services)\b`),
		normalize: func([]string) *types.MetricDelta { return nil },
	},
	// Multiplicative factors: "~20× faster"
	{
		re:        regexp.MustCompile(`~?(\d+\.?\d*)\s*[×x]\s*(faster|slower|more|less)\b`),
		normalize: func([]string) *types.MetricDelta { return nil },
	},
	// Reductions: "reduced by 10%"
	{
		re:        regexp.MustCompile(`(?:reduced\s+)?by\s+(\d+\.?\d*)\s*%`),
		normalize: func([]string) *types.MetricDelta { return nil },
	},
	// Bare percentages: "~11.76%", "18.38%"
	{
		re:        regexp.MustCompile(`~?(\d+\.?\d*)\s*%`),
		normalize: func([]string) *types.MetricDelta { return nil },
	},
}

// numericDelta builds a MetricDelta only when both sides parse as numbers,
// keeping the original strings so no digit is ever rewritten.
func numericDelta(beforeNum, afterNum, before, after, unit string) *types.MetricDelta {
	if _, err := strconv.ParseFloat(beforeNum, 64); err != nil {
		return nil
	}
	if _, err := strconv.ParseFloat(afterNum, 64); err != nil {
		return nil
	}
	return &types.MetricDelta{Before: before, After: after, Unit: unit}
}

// metricMatch is one pattern hit with its span in the source text.
type metricMatch struct {
	start, end int
	rawText    string
	normalized *types.MetricDelta
}

// findMetrics returns all non-overlapping metric matches in text.
// Overlapping spans keep only the longest match, resolved left to right.
func findMetrics(text string) []metricMatch {
	var all []metricMatch
	for _, p := range metricPatterns {
		for _, idx := range p.re.FindAllStringSubmatchIndex(text, -1) {
			groups := make([]string, 0, len(idx)/2)
			for i := 0; i < len(idx); i += 2 {
				if idx[i] < 0 {
					groups = append(groups, "")
					continue
				}
				groups = append(groups, text[idx[i]:idx[i+1]])
			}
			all = append(all, metricMatch{
				start:      idx[0],
				end:        idx[1],
				rawText:    text[idx[0]:idx[1]],
				normalized: p.normalize(groups),
			})
		}
	}

	// Leftmost first; at equal starts, longest first.
	sort.Slice(all, func(i, j int) bool {
		if all[i].start != all[j].start {
			return all[i].start < all[j].start
		}
		return all[i].end > all[j].end
	})

	var kept []metricMatch
	lastEnd := -1
	for _, m := range all {
		if m.start < lastEnd {
			continue
		}
		kept = append(kept, m)
		lastEnd = m.end
	}
	return kept
}
