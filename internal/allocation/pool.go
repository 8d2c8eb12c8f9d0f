package allocation

import (
	"sort"

	"github.com/deathook007/perf-review-tool/internal/types"
)

// candidate is one pool entry: an evidence item plus its source category.
type candidate struct {
	evidence *types.Evidence
	category string
	consumed bool
}

// pool holds the per-run candidate evidence. It is explicit state threaded
// through the allocation loop, never shared across runs: an item consumed by
// one section leaves the pool for every later section.
type pool struct {
	candidates []candidate
}

// newPool builds a pool from evidence, resolving each item's category via
// its source objective. Evidence with an unknown source is dropped.
func newPool(objectives []types.Objective, evidence []types.Evidence) *pool {
	categoryByID := make(map[string]string, len(objectives))
	for _, obj := range objectives {
		categoryByID[obj.ID] = obj.ParentCategory
	}

	p := &pool{candidates: make([]candidate, 0, len(evidence))}
	for i := range evidence {
		category, ok := categoryByID[evidence[i].SourceObjectiveID]
		if !ok {
			continue
		}
		p.candidates = append(p.candidates, candidate{
			evidence: &evidence[i],
			category: category,
		})
	}
	return p
}

// kindRank orders evidence richness: metrics carry the most data.
func kindRank(kind types.EvidenceKind) int {
	switch kind {
	case types.KindMetric:
		return 0
	case types.KindTechnology:
		return 1
	default:
		return 2
	}
}

// take consumes up to n unconsumed candidates accepted by the filter,
// richest kind first, insertion order within a kind.
func (p *pool) take(n int, accept func(candidate) bool) []*types.Evidence {
	var indices []int
	for i := range p.candidates {
		c := &p.candidates[i]
		if c.consumed || !accept(*c) {
			continue
		}
		indices = append(indices, i)
	}

	sort.SliceStable(indices, func(a, b int) bool {
		return kindRank(p.candidates[indices[a]].evidence.Kind) < kindRank(p.candidates[indices[b]].evidence.Kind)
	})

	if len(indices) > n {
		indices = indices[:n]
	}

	out := make([]*types.Evidence, 0, len(indices))
	for _, i := range indices {
		p.candidates[i].consumed = true
		out = append(out, p.candidates[i].evidence)
	}
	return out
}

// remaining counts unconsumed candidates.
func (p *pool) remaining() int {
	n := 0
	for _, c := range p.candidates {
		if !c.consumed {
			n++
		}
	}
	return n
}

// metricDensity returns per-category counts of metric evidence across the
// whole pool, consumed or not. Used for the aggregate open-question signal.
func (p *pool) metricDensity() map[string]int {
	density := make(map[string]int)
	for _, c := range p.candidates {
		if c.evidence.Kind == types.KindMetric {
			density[c.category]++
		}
	}
	return density
}
