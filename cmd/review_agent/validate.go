package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/deathook007/perf-review-tool/internal/observability"
	"github.com/deathook007/perf-review-tool/internal/types"
	"github.com/deathook007/perf-review-tool/internal/validation"
)

var validateCmd = &cobra.Command{
	Use:   "validate <review.json> [evidence.json]",
	Short: "Validate a generated review against its source evidence",
	Long:  "Validate re-runs the quality checks on a review JSON artifact: completeness of the twelve-by-five shape, numeric accuracy against evidence, bullet uniqueness, and allocation coherence.",
	Args:  cobra.MaximumNArgs(2),
	RunE:  runValidate,
}

var (
	validateReview   string
	validateEvidence string
	validateAsJSON   bool
	validateMaxChars int
	validatePrefix   int
)

func init() {
	validateCmd.Flags().StringVar(&validateReview, "review", "", "Path to the review JSON artifact")
	validateCmd.Flags().StringVar(&validateEvidence, "evidence", "", "Path to the evidence JSON produced by 'parse --json'")
	validateCmd.Flags().BoolVar(&validateAsJSON, "json", false, "Emit the validation report as JSON")
	validateCmd.Flags().IntVar(&validateMaxChars, "max-chars", 0, "Maximum characters per bullet")
	validateCmd.Flags().IntVar(&validatePrefix, "prefix-words", 0, "Opening-prefix width for uniqueness checks")

	rootCmd.AddCommand(validateCmd)
}

func runValidate(_ *cobra.Command, args []string) error {
	reviewPath, evidencePath := validateReview, validateEvidence
	if len(args) > 0 {
		if reviewPath != "" {
			return fmt.Errorf("positional review argument and --review are mutually exclusive")
		}
		reviewPath = args[0]
	}
	if len(args) > 1 {
		if evidencePath != "" {
			return fmt.Errorf("positional evidence argument and --evidence are mutually exclusive")
		}
		evidencePath = args[1]
	}
	if reviewPath == "" {
		return fmt.Errorf("a review JSON artifact is required (pass it as an argument or use --review)")
	}

	var review types.Review
	if err := readJSONFile(reviewPath, &review); err != nil {
		return fmt.Errorf("failed to read review: %w", err)
	}

	var evidence []types.Evidence
	if evidencePath != "" {
		// Accept either a bare evidence array or the 'parse --json' envelope.
		if err := readJSONFile(evidencePath, &evidence); err != nil {
			var envelope struct {
				Evidence []types.Evidence `json:"evidence"`
			}
			if envErr := readJSONFile(evidencePath, &envelope); envErr != nil {
				return fmt.Errorf("failed to read evidence: %w", err)
			}
			evidence = envelope.Evidence
		}
	}

	report := validation.NewValidator().
		WithLimits(validateMaxChars, validatePrefix).
		Validate(&review, evidence, nil)

	if validateAsJSON {
		jsonBytes, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		fmt.Fprintln(os.Stdout, string(jsonBytes))
	} else {
		observability.NewPrinter(os.Stdout).PrintValidationReport(report)
	}

	if !report.Passed {
		return fmt.Errorf("validation failed with %d errors", len(report.Errors()))
	}
	return nil
}

func readJSONFile(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}
