//nolint:revive // types is a standard Go package name pattern
package types

// BulletsPerSection is the fixed number of bullet entries every section must carry.
const BulletsPerSection = 5

// SectionCount is the fixed number of sections in a review.
const SectionCount = 12

// Slot is one of the five allocation positions of a section.
// Either Evidence is set, or Qualitative is true and Hint describes the
// non-metric angle the renderer should write about.
type Slot struct {
	Evidence    *Evidence `json:"evidence,omitempty"`
	Qualitative bool      `json:"qualitative,omitempty"`
	Hint        string    `json:"hint,omitempty"`
}

// SectionAllocation holds the five slots chosen for one section.
type SectionAllocation struct {
	Section int    `json:"section"`
	Name    string `json:"name"`
	Slots   []Slot `json:"slots"`
}

// Allocation maps the full taxonomy to evidence, in section order.
type Allocation struct {
	Sections []SectionAllocation `json:"sections"`
	// Sparse is set when total extractable evidence fell below the
	// threshold and placeholders dominate the allocation.
	Sparse bool `json:"sparse,omitempty"`
	// EvidenceTotal is the size of the candidate pool before allocation.
	EvidenceTotal int `json:"evidence_total"`
	// Unplaced counts pool items no section had room for.
	Unplaced int `json:"unplaced,omitempty"`
}

// EvidenceCount returns the number of evidence-backed slots in a section allocation.
func (a SectionAllocation) EvidenceCount() int {
	n := 0
	for _, s := range a.Slots {
		if s.Evidence != nil {
			n++
		}
	}
	return n
}

// RenderedSection is one section of the final review.
type RenderedSection struct {
	Section int      `json:"section"`
	Name    string   `json:"name"`
	Group   string   `json:"group"`
	Bullets []string `json:"bullets"`
	// Qualitative mirrors the allocation slots: true where the bullet was
	// written without metric evidence.
	Qualitative []bool `json:"qualitative,omitempty"`
	// Incomplete marks sections whose narrative generation failed and was
	// replaced with deterministic fallback text.
	Incomplete bool `json:"incomplete,omitempty"`
}

// ReviewMetadata identifies the person and source of a generated review.
type ReviewMetadata struct {
	Owner        string `json:"owner"`
	Role         string `json:"role,omitempty"`
	Team         string `json:"team"`
	SourceFileID string `json:"source_file_id"`
}

// Review is the final artifact: twelve ordered sections of five bullets each.
type Review struct {
	Metadata ReviewMetadata    `json:"metadata"`
	Sections []RenderedSection `json:"sections"`
}
