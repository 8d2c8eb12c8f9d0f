package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/deathook007/perf-review-tool/internal/config"
	"github.com/deathook007/perf-review-tool/internal/observability"
	"github.com/deathook007/perf-review-tool/internal/parsing"
	"github.com/deathook007/perf-review-tool/internal/pipeline"
	"github.com/deathook007/perf-review-tool/internal/rendering"
)

var generateCmd = &cobra.Command{
	Use:   "generate <objectives.csv> [more.csv...]",
	Short: "Generate a performance review from a CSV objectives export",
	Long:  "Generate runs the full pipeline: parse the export, extract metrics and themes, allocate them across the twelve sections, render bullets, validate, and write the Markdown review. Several exports at once run as a batch.",
	Args:  cobra.ArbitraryArgs,
	RunE:  runGenerate,
}

var (
	generateCSV        string
	generateBatch      []string
	generateOutput     string
	generateRole       string
	generateOwner      string
	generateTeam       string
	generateVocab      string
	generateAffinities string
	generateConfig     string
	generateAPIKey     string
	generateMaxChars   int
	generatePrefix     int
	generateTimeout    int
	generateVerbose    bool
)

func init() {
	generateCmd.Flags().StringVarP(&generateCSV, "csv", "c", "", "Path to the objectives CSV export")
	generateCmd.Flags().StringSliceVar(&generateBatch, "batch", nil, "Generate reviews for multiple CSV exports (repeatable or comma-separated)")
	generateCmd.Flags().StringVarP(&generateOutput, "out", "o", "", "Path for the generated Markdown review (directory in batch mode)")
	generateCmd.Flags().StringVar(&generateRole, "role", "", "Role level, e.g. SDE2 (overrides title inference)")
	generateCmd.Flags().StringVar(&generateOwner, "owner", "", "Owner name (overrides export metadata)")
	generateCmd.Flags().StringVar(&generateTeam, "team", "", "Team name (overrides export metadata)")
	generateCmd.Flags().StringVar(&generateVocab, "vocab", "", "Path to a custom extraction vocabulary JSON")
	generateCmd.Flags().StringVar(&generateAffinities, "affinities", "", "Path to a custom category-to-section affinity JSON")
	generateCmd.Flags().StringVar(&generateConfig, "config", "", "Path to a JSON config file")
	generateCmd.Flags().StringVar(&generateAPIKey, "api-key", "", "Gemini API key (overrides GEMINI_API_KEY env var)")
	generateCmd.Flags().IntVar(&generateMaxChars, "max-chars", 0, "Maximum characters per bullet")
	generateCmd.Flags().IntVar(&generatePrefix, "prefix-words", 0, "Opening-prefix width for uniqueness checks")
	generateCmd.Flags().IntVar(&generateTimeout, "timeout", 0, "Per-section generation timeout in seconds")
	generateCmd.Flags().BoolVarP(&generateVerbose, "verbose", "v", false, "Print stage summaries")

	rootCmd.AddCommand(generateCmd)
}

func runGenerate(_ *cobra.Command, args []string) error {
	cfg := config.Config{
		CSV:         generateCSV,
		Output:      generateOutput,
		Vocab:       generateVocab,
		Affinities:  generateAffinities,
		Role:        generateRole,
		APIKey:      generateAPIKey,
		MaxChars:    generateMaxChars,
		PrefixWords: generatePrefix,
		TimeoutSecs: generateTimeout,
		Verbose:     generateVerbose,
	}

	if generateConfig != "" {
		fileCfg, err := config.LoadConfig(generateConfig)
		if err != nil {
			return err
		}
		cfg = cfg.MergeWithDefaults(*fileCfg)
	}

	// One export runs single, several run as a batch. Positional arguments
	// and the input flags name the same thing, so mixing them is refused.
	batchPaths := generateBatch
	if len(args) > 0 {
		if cfg.CSV != "" || len(batchPaths) > 0 {
			return fmt.Errorf("positional CSV arguments and --csv/--batch are mutually exclusive")
		}
		if len(args) == 1 {
			cfg.CSV = args[0]
		} else {
			batchPaths = args
		}
	}
	batchMode := len(batchPaths) > 0
	if cfg.CSV == "" && !batchMode {
		return fmt.Errorf("a CSV export is required (pass it as an argument, or use --csv or --batch)")
	}
	if cfg.CSV != "" && batchMode {
		return fmt.Errorf("--csv and --batch are mutually exclusive")
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	apiKey := cfg.APIKey
	if apiKey == "" {
		apiKey = os.Getenv("GEMINI_API_KEY")
	}
	if apiKey == "" {
		return fmt.Errorf("API key is required (set GEMINI_API_KEY environment variable or use --api-key flag)")
	}

	opts := pipeline.Options{
		CSVPath:        cfg.CSV,
		OutputPath:     cfg.Output,
		VocabPath:      cfg.Vocab,
		AffinitiesPath: cfg.Affinities,
		RoleOverride:   cfg.Role,
		Owner:          generateOwner,
		Team:           generateTeam,
		APIKey:         apiKey,
		MaxChars:       cfg.MaxChars,
		PrefixWords:    cfg.PrefixWords,
		Timeout:        time.Duration(cfg.TimeoutSecs) * time.Second,
	}
	if cfg.Verbose {
		opts.Printer = observability.NewPrinter(os.Stdout)
	}

	ctx := context.Background()

	if batchMode {
		return runGenerateBatch(ctx, batchPaths, opts)
	}

	if opts.OutputPath == "" {
		opts.OutputPath = defaultOutputPath(cfg.CSV)
	}

	// A quick pre-parse so missing metadata can be asked for before any LLM
	// calls are spent. Non-interactive runs continue with what they have;
	// a metadata-less export without an owner override still fails inside
	// the pipeline.
	parsed, parseErr := parsing.ParseFile(cfg.CSV)
	switch {
	case parseErr == nil:
		if opts.RoleOverride == "" && parsed.Metadata.Role == "" {
			opts.RoleOverride = promptLine("Role could not be inferred from the export. Enter role (or leave blank): ")
		}
	default:
		var metaErr *parsing.MissingMetadataError
		if errors.As(parseErr, &metaErr) && opts.Owner == "" {
			opts.Owner = promptLine("No row in the export carries owner metadata. Enter owner name: ")
			if opts.Owner != "" && opts.Team == "" {
				opts.Team = promptLine("Enter team (or leave blank): ")
			}
		}
	}

	result, err := pipeline.Run(ctx, opts)
	if err != nil {
		return err
	}
	printRunSummary(result)

	if result.OutputPath == "" {
		// No output path resolved; print the document instead.
		fmt.Fprint(os.Stdout, rendering.RenderMarkdown(result.Review))
	}
	return nil
}

func runGenerateBatch(ctx context.Context, csvPaths []string, opts pipeline.Options) error {
	items := pipeline.RunBatch(ctx, csvPaths, opts)

	failures := 0
	for _, item := range items {
		if item.Err != nil {
			failures++
			fmt.Fprintf(os.Stderr, "✗ %s: %v\n", item.CSVPath, item.Err)
			continue
		}
		fmt.Fprintf(os.Stdout, "✓ %s → %s\n", item.CSVPath, item.Result.OutputPath)
	}
	if failures > 0 {
		return fmt.Errorf("%d of %d reviews failed", failures, len(items))
	}
	return nil
}

func printRunSummary(result *pipeline.Result) {
	fmt.Fprintf(os.Stdout, "Generated review for %s", result.Review.Metadata.Owner)
	if result.Review.Metadata.Role != "" {
		fmt.Fprintf(os.Stdout, " (%s)", result.Review.Metadata.Role)
	}
	fmt.Fprintln(os.Stdout)

	if result.SkippedRows > 0 {
		fmt.Fprintf(os.Stdout, "Skipped %d malformed rows\n", result.SkippedRows)
	}
	if result.Allocation.Sparse {
		fmt.Fprintln(os.Stdout, "Note: source data is sparse; qualitative placeholders dominate")
	}

	incomplete := 0
	for _, section := range result.Review.Sections {
		if section.Incomplete {
			incomplete++
		}
	}
	if incomplete > 0 {
		fmt.Fprintf(os.Stdout, "Warning: %d sections fell back to source-data bullets\n", incomplete)
	}

	if result.Report.Passed {
		fmt.Fprintln(os.Stdout, "Validation: passed")
	} else {
		fmt.Fprintf(os.Stdout, "Validation: %d errors, %d warnings\n", len(result.Report.Errors()), len(result.Report.Warnings()))
	}
	if result.OutputPath != "" {
		fmt.Fprintf(os.Stdout, "Output: %s\n", result.OutputPath)
	}
}

// defaultOutputPath derives the review path from the CSV name.
func defaultOutputPath(csvPath string) string {
	base := strings.TrimSuffix(csvPath, ".csv")
	return base + "_review.md"
}

// promptLine asks for one value when stdin is a terminal. Non-interactive
// runs get an empty string back.
func promptLine(prompt string) string {
	info, err := os.Stdin.Stat()
	if err != nil || info.Mode()&os.ModeCharDevice == 0 {
		return ""
	}
	fmt.Fprint(os.Stdout, prompt)
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return ""
	}
	return strings.TrimSpace(line)
}
