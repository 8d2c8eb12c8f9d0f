package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/deathook007/perf-review-tool/internal/extraction"
	"github.com/deathook007/perf-review-tool/internal/observability"
	"github.com/deathook007/perf-review-tool/internal/parsing"
)

var parseCmd = &cobra.Command{
	Use:   "parse <objectives.csv>",
	Short: "Parse a CSV objectives export and report what was found",
	Long:  "Parse reads the export, shows the recovered owner, team, role, and category counts, and runs extraction so the evidence yield can be inspected before spending any LLM calls. No API key required.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runParse,
}

var (
	parseCSV    string
	parseVocab  string
	parseAsJSON bool
)

func init() {
	parseCmd.Flags().StringVarP(&parseCSV, "csv", "c", "", "Path to the objectives CSV export")
	parseCmd.Flags().StringVar(&parseVocab, "vocab", "", "Path to a custom extraction vocabulary JSON")
	parseCmd.Flags().BoolVar(&parseAsJSON, "json", false, "Emit objectives and evidence as JSON instead of a summary")

	rootCmd.AddCommand(parseCmd)
}

func runParse(_ *cobra.Command, args []string) error {
	csvPath := parseCSV
	if len(args) == 1 {
		if csvPath != "" {
			return fmt.Errorf("positional CSV argument and --csv are mutually exclusive")
		}
		csvPath = args[0]
	}
	if csvPath == "" {
		return fmt.Errorf("a CSV export is required (pass it as an argument or use --csv)")
	}

	result, err := parsing.ParseFile(csvPath)
	if err != nil {
		var missingMeta *parsing.MissingMetadataError
		if errors.As(err, &missingMeta) {
			return fmt.Errorf("export has no usable rows: %w", err)
		}
		return err
	}

	vocab := extraction.DefaultVocabulary()
	if parseVocab != "" {
		vocab, err = extraction.LoadVocabulary(parseVocab)
		if err != nil {
			return err
		}
	}
	evidence := extraction.Extract(result.Objectives, vocab)

	if parseAsJSON {
		out := struct {
			Parse    any `json:"parse"`
			Evidence any `json:"evidence"`
		}{Parse: result, Evidence: evidence}

		jsonBytes, err := json.MarshalIndent(out, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		fmt.Fprintln(os.Stdout, string(jsonBytes))
		return nil
	}

	printer := observability.NewPrinter(os.Stdout)
	printer.PrintParseSummary(result)
	printer.PrintEvidence(evidence)
	return nil
}
