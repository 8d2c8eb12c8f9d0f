package rendering

import "fmt"

// RenderError represents a section-level narrative generation failure.
// It is recoverable at section granularity: the pipeline substitutes
// deterministic fallback text and marks the section incomplete.
type RenderError struct {
	Section  int
	Timeout  bool
	Message  string
	Cause    error
	Attempts int
}

func (e *RenderError) Error() string {
	kind := "malformed output"
	if e.Timeout {
		kind = "timeout"
	}
	if e.Cause != nil {
		return fmt.Sprintf("rendering section %d failed (%s, %d attempts): %s: %v", e.Section, kind, e.Attempts, e.Message, e.Cause)
	}
	return fmt.Sprintf("rendering section %d failed (%s, %d attempts): %s", e.Section, kind, e.Attempts, e.Message)
}

func (e *RenderError) Unwrap() error {
	return e.Cause
}
