// Package pipeline orchestrates the full review generation flow:
// parse, extract, allocate, render, validate, write.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/deathook007/perf-review-tool/internal/allocation"
	"github.com/deathook007/perf-review-tool/internal/extraction"
	"github.com/deathook007/perf-review-tool/internal/llm"
	"github.com/deathook007/perf-review-tool/internal/observability"
	"github.com/deathook007/perf-review-tool/internal/parsing"
	"github.com/deathook007/perf-review-tool/internal/rendering"
	"github.com/deathook007/perf-review-tool/internal/taxonomy"
	"github.com/deathook007/perf-review-tool/internal/types"
	"github.com/deathook007/perf-review-tool/internal/validation"
)

// Options controls a single generation run.
type Options struct {
	CSVPath        string
	OutputPath     string
	VocabPath      string
	AffinitiesPath string

	// RoleOverride wins over the role inferred from objective titles.
	RoleOverride string

	// Owner and Team override metadata mined from the export. When Owner is
	// set, an export whose rows carry no metadata still generates: the CLI
	// collects these interactively before aborting on that condition.
	Owner string
	Team  string

	APIKey      string
	MaxChars    int
	PrefixWords int
	Timeout     time.Duration

	// Client lets tests and batch runs inject a shared LLM client. When nil,
	// a Gemini client is created from APIKey and closed when the run ends.
	Client llm.Client

	// Printer receives stage summaries in verbose mode; nil disables them.
	Printer *observability.Printer
}

// Result is everything a run produced, including the intermediate artifacts
// the validate command needs.
type Result struct {
	Review      *types.Review
	Report      *types.ValidationReport
	Allocation  *types.Allocation
	Evidence    []types.Evidence
	SkippedRows int
	OutputPath  string
}

// Run executes the full pipeline for one CSV export. Render failures degrade
// to fallback bullets at section granularity; only stage-level failures
// (unreadable input, no usable rows, client construction) abort the run.
func Run(ctx context.Context, opts Options) (*Result, error) {
	parsed, err := parsing.ParseFile(opts.CSVPath)
	if err != nil {
		// Missing metadata is recoverable when the caller supplied an owner;
		// the parse result still carries whatever rows survived.
		var metaErr *parsing.MissingMetadataError
		if !errors.As(err, &metaErr) || opts.Owner == "" {
			return nil, fmt.Errorf("parsing %s: %w", opts.CSVPath, err)
		}
	}
	if opts.Owner != "" {
		parsed.Metadata.Owner = opts.Owner
	}
	if opts.Team != "" {
		parsed.Metadata.Team = opts.Team
	}
	if opts.RoleOverride != "" {
		parsed.Metadata.Role = opts.RoleOverride
	}
	if opts.Printer != nil {
		opts.Printer.PrintParseSummary(parsed)
	}

	vocab := extraction.DefaultVocabulary()
	if opts.VocabPath != "" {
		vocab, err = extraction.LoadVocabulary(opts.VocabPath)
		if err != nil {
			return nil, fmt.Errorf("loading vocabulary: %w", err)
		}
	}

	affinities := taxonomy.DefaultAffinities()
	if opts.AffinitiesPath != "" {
		affinities, err = taxonomy.LoadAffinities(opts.AffinitiesPath)
		if err != nil {
			return nil, fmt.Errorf("loading affinities: %w", err)
		}
	}

	evidence := extraction.Extract(parsed.Objectives, vocab)
	if opts.Printer != nil {
		opts.Printer.PrintEvidence(evidence)
	}

	alloc, err := allocation.Allocate(parsed.Objectives, evidence, affinities)
	if err != nil {
		return nil, fmt.Errorf("allocating sections: %w", err)
	}
	if opts.Printer != nil {
		opts.Printer.PrintAllocation(alloc)
	}

	client := opts.Client
	if client == nil {
		created, clientErr := llm.NewClient(ctx, llm.DefaultConfig(), opts.APIKey)
		if clientErr != nil {
			return nil, fmt.Errorf("creating LLM client: %w", clientErr)
		}
		defer created.Close() //nolint:errcheck // close failures are not actionable here
		client = created
	}

	renderer := rendering.NewRenderer(client).
		WithTimeout(opts.Timeout).
		WithLimits(opts.MaxChars, opts.PrefixWords)

	review := &types.Review{
		Metadata: types.ReviewMetadata{
			Owner:        parsed.Metadata.Owner,
			Role:         parsed.Metadata.Role,
			Team:         parsed.Metadata.Team,
			SourceFileID: uuid.NewString(),
		},
	}

	review.Sections = renderSections(ctx, renderer, alloc, parsed.Metadata, opts.Printer)

	report := validation.NewValidator().
		WithLimits(renderer.MaxChars(), renderer.PrefixWords()).
		Validate(review, evidence, alloc)
	if opts.Printer != nil {
		opts.Printer.PrintValidationReport(report)
	}

	result := &Result{
		Review:      review,
		Report:      report,
		Allocation:  alloc,
		Evidence:    evidence,
		SkippedRows: parsed.SkippedRows,
	}

	if opts.OutputPath != "" {
		if err := writeMarkdown(opts.OutputPath, review); err != nil {
			return result, err
		}
		result.OutputPath = opts.OutputPath
	}
	return result, nil
}

// renderSections walks the allocation in section order, threading the global
// opening-prefix exclusion list through each call. A section whose render
// fails keeps its slot data as deterministic fallback text.
func renderSections(ctx context.Context, renderer *rendering.Renderer, alloc *types.Allocation, meta types.Metadata, printer *observability.Printer) []types.RenderedSection {
	sections := make([]types.RenderedSection, 0, len(alloc.Sections))
	var usedPrefixes []string

	for _, sa := range alloc.Sections {
		section, ok := taxonomy.SectionByNumber(sa.Section)
		if !ok {
			continue
		}

		rendered := types.RenderedSection{
			Section:     sa.Section,
			Name:        sa.Name,
			Group:       section.Group,
			Qualitative: qualitativeFlags(sa.Slots),
		}

		bullets, err := renderer.RenderSection(ctx, section, meta, sa.Slots, usedPrefixes)
		if err != nil {
			bullets = rendering.FallbackBullets(section, sa.Slots, usedPrefixes)
			rendered.Incomplete = true
		}
		rendered.Bullets = bullets

		for _, b := range bullets {
			usedPrefixes = append(usedPrefixes, types.OpeningPrefix(b, renderer.PrefixWords()))
		}
		if printer != nil {
			printer.PrintRenderProgress(sa.Section, sa.Name, rendered.Incomplete)
		}
		sections = append(sections, rendered)
	}
	return sections
}

func qualitativeFlags(slots []types.Slot) []bool {
	flags := make([]bool, len(slots))
	for i, slot := range slots {
		flags[i] = slot.Evidence == nil
	}
	return flags
}

func writeMarkdown(path string, review *types.Review) error {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(rendering.RenderMarkdown(review)), 0o644); err != nil {
		return fmt.Errorf("writing review: %w", err)
	}
	return nil
}
