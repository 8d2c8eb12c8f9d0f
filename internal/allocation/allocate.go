// Package allocation assigns extracted evidence to the twelve review
// sections under category-affinity rules and a global no-reuse constraint.
package allocation

import (
	"fmt"
	"sort"

	"github.com/deathook007/perf-review-tool/internal/taxonomy"
	"github.com/deathook007/perf-review-tool/internal/types"
)

// SparseThreshold is the minimum total evidence count below which the
// allocation is flagged sparse (~1.7 items per section).
const SparseThreshold = 20

// Allocate distributes evidence across the fixed taxonomy. Sections are
// filled in priority order (Objectives, then Competencies, then Open
// Questions); an evidence item consumed by one section is unavailable to all
// later ones. Slots that cannot be backed by evidence become qualitative
// placeholders seeded with the section's hint.
func Allocate(objectives []types.Objective, evidence []types.Evidence, affinities *taxonomy.AffinityConfig) (*types.Allocation, error) {
	if affinities == nil {
		affinities = taxonomy.DefaultAffinities()
	}

	p := newPool(objectives, evidence)

	alloc := &types.Allocation{
		EvidenceTotal: len(p.candidates),
		Sparse:        len(p.candidates) < SparseThreshold,
	}

	for _, section := range taxonomy.Sections() {
		var sa types.SectionAllocation
		var err error

		switch section.Group {
		case taxonomy.GroupOpenQuestions:
			sa = allocateOpenQuestion(section, p)
		default:
			sa, err = allocateBySections(section, p, affinities)
			if err != nil {
				return nil, err
			}
		}

		padQualitative(&sa, section)
		alloc.Sections = append(alloc.Sections, sa)
	}

	alloc.Unplaced = p.remaining()
	return alloc, nil
}

// allocateBySections fills an Objectives or Competencies section from the
// pool in affinity tiers: primary category first, then secondary, then — for
// competencies only — whatever remains anywhere.
func allocateBySections(section taxonomy.Section, p *pool, affinities *taxonomy.AffinityConfig) (types.SectionAllocation, error) {
	sa := types.SectionAllocation{Section: section.Number, Name: section.Name}

	primaryOf := func(category string) int {
		primary, _ := affinities.SectionsFor(category)
		return primary
	}
	secondaryOf := func(category string) int {
		_, secondary := affinities.SectionsFor(category)
		return secondary
	}

	need := types.BulletsPerSection
	for _, ev := range p.take(need, func(c candidate) bool {
		return primaryOf(c.category) == section.Number
	}) {
		sa.Slots = append(sa.Slots, types.Slot{Evidence: ev})
	}

	if missing := need - len(sa.Slots); missing > 0 {
		for _, ev := range p.take(missing, func(c candidate) bool {
			return secondaryOf(c.category) == section.Number
		}) {
			sa.Slots = append(sa.Slots, types.Slot{Evidence: ev})
		}
	}

	if section.Group == taxonomy.GroupCompetencies {
		if missing := need - len(sa.Slots); missing > 0 {
			for _, ev := range p.take(missing, func(candidate) bool { return true }) {
				sa.Slots = append(sa.Slots, types.Slot{Evidence: ev})
			}
		}
	}

	if len(sa.Slots) > need {
		return sa, &Error{Message: fmt.Sprintf("section %d overfilled with %d slots", section.Number, len(sa.Slots))}
	}
	return sa, nil
}

// allocateOpenQuestion fills sections 11 and 12 from the aggregate signal
// rather than per-category affinity. Strength draws remaining evidence from
// the most metric-dense categories; Development is qualitative by design,
// keyed to the least-covered category.
func allocateOpenQuestion(section taxonomy.Section, p *pool) types.SectionAllocation {
	sa := types.SectionAllocation{Section: section.Number, Name: section.Name}
	density := p.metricDensity()

	if section.Number == 11 {
		ranked := categoriesByDensity(density, true)
		for _, category := range ranked {
			missing := types.BulletsPerSection - len(sa.Slots)
			if missing <= 0 {
				break
			}
			for _, ev := range p.take(missing, func(c candidate) bool {
				return c.category == category
			}) {
				sa.Slots = append(sa.Slots, types.Slot{Evidence: ev})
			}
		}
		return sa
	}

	// Section 12: no direct evidence draw. Name the thinnest category so the
	// renderer can anchor development areas to something real.
	if ranked := categoriesByDensity(density, false); len(ranked) > 0 {
		sa.Slots = append(sa.Slots, types.Slot{
			Qualitative: true,
			Hint:        fmt.Sprintf("growth in the least-covered area: %s", ranked[0]),
		})
	}
	return sa
}

// categoriesByDensity orders category names by metric count, descending when
// desc is true. Name order breaks ties so allocation stays deterministic.
func categoriesByDensity(density map[string]int, desc bool) []string {
	names := make([]string, 0, len(density))
	for name := range density {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if density[names[i]] != density[names[j]] {
			if desc {
				return density[names[i]] > density[names[j]]
			}
			return density[names[i]] < density[names[j]]
		}
		return names[i] < names[j]
	})
	return names
}

// padQualitative tops a section up to five slots with placeholders.
func padQualitative(sa *types.SectionAllocation, section taxonomy.Section) {
	for len(sa.Slots) < types.BulletsPerSection {
		sa.Slots = append(sa.Slots, types.Slot{
			Qualitative: true,
			Hint:        section.Style.QualitativeHint,
		})
	}
}
