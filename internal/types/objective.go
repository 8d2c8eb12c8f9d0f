// Package types provides type definitions for structured data used throughout the review generator.
//
//nolint:revive // types is a standard Go package name pattern
package types

// Objective represents one normalized row of the objectives export.
// Objectives are immutable after parsing.
type Objective struct {
	ID             string `json:"id"`
	ParentCategory string `json:"parent_category"`
	Title          string `json:"title"`
	Owner          string `json:"owner"`
	Team           string `json:"team"`

	// Optional columns carried for prompt context when present in the export
	State    string `json:"state,omitempty"`
	Progress string `json:"progress,omitempty"`
}

// Metadata holds the person-level information recovered from the export.
type Metadata struct {
	Owner string `json:"owner"`
	Team  string `json:"team"`
	// Role is best-effort pattern recovery (e.g. "SD2"); empty when unresolved.
	Role string `json:"role,omitempty"`
}

// ParseResult is the Row Parser output: retained objectives plus diagnostics.
type ParseResult struct {
	Objectives  []Objective `json:"objectives"`
	Metadata    Metadata    `json:"metadata"`
	SkippedRows int         `json:"skipped_rows"`
}

// CategoryCounts returns the number of retained objectives per parent category.
func (r *ParseResult) CategoryCounts() map[string]int {
	counts := make(map[string]int)
	for _, obj := range r.Objectives {
		counts[obj.ParentCategory]++
	}
	return counts
}
