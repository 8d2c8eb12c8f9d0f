package parsing

import (
	"regexp"
	"strings"
)

// rolePatterns is the fixed recovery set for role mentions in free text.
// Exports rarely carry a dedicated role column.
var rolePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\bsd[1-3]\b`),
	regexp.MustCompile(`(?i)\bsde\s*[1-3]\b`),
	regexp.MustCompile(`(?i)\bstaff\s+engineer\b`),
	regexp.MustCompile(`(?i)\bsenior\s+engineer\b`),
	regexp.MustCompile(`(?i)\blead\s+engineer\b`),
	regexp.MustCompile(`(?i)\bprincipal\s+engineer\b`),
}

// InferRole attempts to recover a role designation from free text.
// Returns "" when nothing matches; callers must not invent a default.
func InferRole(text string) string {
	for _, pattern := range rolePatterns {
		if match := pattern.FindString(text); match != "" {
			return strings.ToUpper(strings.Join(strings.Fields(match), " "))
		}
	}
	return ""
}
