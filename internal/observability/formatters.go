// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/deathook007/perf-review-tool/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintParseSummary outputs a human-readable summary of the parsed export.
func (p *Printer) PrintParseSummary(result *types.ParseResult) {
	if result == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Owner:      %s\n", result.Metadata.Owner))
	if result.Metadata.Role != "" {
		sb.WriteString(fmt.Sprintf("Role:       %s\n", result.Metadata.Role))
	}
	sb.WriteString(fmt.Sprintf("Team:       %s\n", result.Metadata.Team))
	sb.WriteString(fmt.Sprintf("Objectives: %d\n", len(result.Objectives)))
	if result.SkippedRows > 0 {
		sb.WriteString(fmt.Sprintf("Skipped:    %d malformed rows\n", result.SkippedRows))
	}
	sb.WriteString("\n")

	counts := result.CategoryCounts()
	if len(counts) > 0 {
		categories := make([]string, 0, len(counts))
		for category := range counts {
			categories = append(categories, category)
		}
		sort.Strings(categories)

		sb.WriteString("Categories:\n")
		for i, category := range categories {
			if i == maxItemsToShow {
				sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(categories)-maxItemsToShow))
				break
			}
			sb.WriteString(fmt.Sprintf("  • %s (%d)\n", category, counts[category]))
		}
	}

	p.printBox("PARSED OBJECTIVES", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintEvidence outputs the extracted evidence grouped by kind.
func (p *Printer) PrintEvidence(evidence []types.Evidence) {
	if len(evidence) == 0 {
		return
	}

	byKind := make(map[types.EvidenceKind][]types.Evidence)
	for _, ev := range evidence {
		byKind[ev.Kind] = append(byKind[ev.Kind], ev)
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Total evidence: %d\n", len(evidence)))

	for _, kind := range []types.EvidenceKind{types.KindMetric, types.KindTechnology, types.KindTheme} {
		items := byKind[kind]
		if len(items) == 0 {
			continue
		}
		sb.WriteString(fmt.Sprintf("\n%s (%d):\n", titleKind(kind), len(items)))
		count := min(len(items), maxItemsToShow)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  • %s\n", items[i].RawText))
		}
		if len(items) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(items)-maxItemsToShow))
		}
	}

	p.printBox("EXTRACTED EVIDENCE", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintAllocation outputs per-section slot counts and the sparse flag.
func (p *Printer) PrintAllocation(alloc *types.Allocation) {
	if alloc == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Evidence pool: %d", alloc.EvidenceTotal))
	if alloc.Sparse {
		sb.WriteString(" (sparse)")
	}
	if alloc.Unplaced > 0 {
		sb.WriteString(fmt.Sprintf(", unplaced: %d", alloc.Unplaced))
	}
	sb.WriteString("\n\n")

	for _, section := range alloc.Sections {
		evidence := section.EvidenceCount()
		qualitative := len(section.Slots) - evidence
		sb.WriteString(fmt.Sprintf("%2d. %-36s ev:%d q:%d\n",
			section.Section, section.Name, evidence, qualitative))
	}

	p.printBox("SECTION ALLOCATION", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintValidationReport outputs the validator verdict and each violation.
func (p *Printer) PrintValidationReport(report *types.ValidationReport) {
	if report == nil {
		return
	}

	var sb strings.Builder
	if report.Passed {
		sb.WriteString("Result: PASSED\n")
	} else {
		sb.WriteString("Result: FAILED\n")
	}
	sb.WriteString(fmt.Sprintf("Errors:   %d\n", len(report.Errors())))
	sb.WriteString(fmt.Sprintf("Warnings: %d\n", len(report.Warnings())))

	count := min(len(report.Violations), maxItemsToShow)
	if count > 0 {
		sb.WriteString("\n")
	}
	for i := 0; i < count; i++ {
		v := report.Violations[i]
		location := ""
		if v.Section != nil {
			location = fmt.Sprintf(" [section %d]", *v.Section)
		}
		sb.WriteString(fmt.Sprintf("• %s (%s)%s\n", v.Type, v.Severity, location))
	}
	if len(report.Violations) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("... and %d more\n", len(report.Violations)-maxItemsToShow))
	}

	p.printBox("VALIDATION REPORT", strings.TrimSuffix(sb.String(), "\n"))
}

func titleKind(kind types.EvidenceKind) string {
	s := string(kind)
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// PrintRenderProgress outputs a one-line status after each section renders.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintRenderProgress(section int, name string, fallback bool) {
	status := "ok"
	if fallback {
		status = "fallback"
	}
	fmt.Fprintf(p.out, "  [%2d/12] %-36s %s\n", section, name, status)
}
