package rendering

import (
	"fmt"
	"strings"

	"github.com/deathook007/perf-review-tool/internal/taxonomy"
	"github.com/deathook007/perf-review-tool/internal/types"
)

// RenderMarkdown pretty-prints a review with the fixed heading structure:
// one document title, one heading per section group, numbered section
// headers, five bullet lines per section.
func RenderMarkdown(review *types.Review) string {
	var sb strings.Builder

	sb.WriteString("# Performance Review\n\n")
	if review.Metadata.Owner != "" {
		sb.WriteString(fmt.Sprintf("**Owner:** %s\n", review.Metadata.Owner))
	}
	if review.Metadata.Role != "" {
		sb.WriteString(fmt.Sprintf("**Role:** %s\n", review.Metadata.Role))
	}
	if review.Metadata.Team != "" {
		sb.WriteString(fmt.Sprintf("**Team:** %s\n", review.Metadata.Team))
	}
	sb.WriteString("\n")

	currentGroup := ""
	for _, section := range review.Sections {
		if section.Group != currentGroup {
			currentGroup = section.Group
			sb.WriteString(fmt.Sprintf("## %s\n\n", currentGroup))
		}

		sb.WriteString(fmt.Sprintf("### %d. %s\n\n", section.Section, section.Name))
		if section.Incomplete {
			sb.WriteString("_Narrative generation was incomplete for this section; bullets below are drawn directly from source data._\n\n")
		}
		for _, bullet := range section.Bullets {
			sb.WriteString("• " + bullet + "\n")
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// GroupOrder returns the three group headings in rendering order. Exposed
// for callers that lay out summaries the same way the document does.
func GroupOrder() []string {
	return []string{taxonomy.GroupObjectives, taxonomy.GroupCompetencies, taxonomy.GroupOpenQuestions}
}
