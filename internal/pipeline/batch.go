package pipeline

import (
	"context"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"
)

// defaultBatchConcurrency caps parallel runs so a large batch does not fan
// out unbounded LLM traffic.
const defaultBatchConcurrency = 3

// BatchItem is the outcome of one CSV in a batch run. Failures are isolated:
// one bad export never aborts the others.
type BatchItem struct {
	CSVPath string
	Result  *Result
	Err     error
}

// RunBatch generates one review per CSV path, reusing the per-run Options
// template. Each run gets its own output path derived from the CSV name
// unless the template names an output directory.
func RunBatch(ctx context.Context, csvPaths []string, template Options) []BatchItem {
	items := make([]BatchItem, len(csvPaths))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(defaultBatchConcurrency)

	for i, path := range csvPaths {
		i, path := i, path
		g.Go(func() error {
			opts := template
			opts.CSVPath = path
			opts.OutputPath = batchOutputPath(template.OutputPath, path)
			// Stage printers interleave badly across goroutines.
			opts.Printer = nil

			result, err := Run(ctx, opts)
			items[i] = BatchItem{CSVPath: path, Result: result, Err: err}
			return nil
		})
	}

	// Goroutines always return nil; Wait only fences completion.
	_ = g.Wait()
	return items
}

// batchOutputPath maps a CSV path to its review path. When base is a
// directory the review lands there; otherwise it sits beside the CSV.
func batchOutputPath(base, csvPath string) string {
	name := strings.TrimSuffix(filepath.Base(csvPath), filepath.Ext(csvPath)) + "_review.md"
	if base != "" {
		return filepath.Join(base, name)
	}
	return filepath.Join(filepath.Dir(csvPath), name)
}
