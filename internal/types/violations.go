//nolint:revive // types is a standard Go package name pattern
package types

// Violation represents a single validation failure
type Violation struct {
	Type     string `json:"type"`
	Severity string `json:"severity"`
	Details  string `json:"details"`

	// Fields for tracking which bullet caused the violation
	Section     *int    `json:"section,omitempty"`
	BulletIndex *int    `json:"bullet_index,omitempty"`
	BulletText  *string `json:"bullet_text,omitempty"`
}

// Violation severities. Only errors fail a report.
const (
	SeverityError   = "error"
	SeverityWarning = "warning"
)

// ValidationReport is the Quality Validator output. It is always returned,
// never raised: callers inspect Violations and decide what to re-render.
type ValidationReport struct {
	Passed     bool        `json:"passed"`
	Violations []Violation `json:"violations"`
}

// Errors returns only the error-severity violations.
func (r *ValidationReport) Errors() []Violation {
	var out []Violation
	for _, v := range r.Violations {
		if v.Severity == SeverityError {
			out = append(out, v)
		}
	}
	return out
}

// Warnings returns only the warning-severity violations.
func (r *ValidationReport) Warnings() []Violation {
	var out []Violation
	for _, v := range r.Violations {
		if v.Severity == SeverityWarning {
			out = append(out, v)
		}
	}
	return out
}
