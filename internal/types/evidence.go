//nolint:revive // types is a standard Go package name pattern
package types

// EvidenceKind classifies how an evidence item was extracted.
type EvidenceKind string

// Evidence kinds, in descending richness order.
const (
	KindMetric     EvidenceKind = "metric"
	KindTechnology EvidenceKind = "technology"
	KindTheme      EvidenceKind = "theme"
)

// MetricDelta is the normalized before/after pair of a metric evidence item.
// Values are kept as the original strings so digits and units survive verbatim.
type MetricDelta struct {
	Before string `json:"before"`
	After  string `json:"after"`
	Unit   string `json:"unit,omitempty"`
}

// Evidence is a single extracted fact attributable to one Objective.
type Evidence struct {
	SourceObjectiveID string       `json:"source_objective_id"`
	Kind              EvidenceKind `json:"kind"`
	// RawText is the matched text exactly as it appeared in the objective.
	// Downstream stages must reproduce its digits and units unmodified.
	RawText string `json:"raw_text"`
	// Context is the full objective title the evidence was mined from.
	Context    string       `json:"context,omitempty"`
	Normalized *MetricDelta `json:"normalized_value,omitempty"`
}

// IsMetric reports whether the evidence carries quantitative data.
func (e Evidence) IsMetric() bool {
	return e.Kind == KindMetric
}
