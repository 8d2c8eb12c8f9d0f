// Package parsing turns raw objectives-export rows into the normalized
// objective model and recovers person-level metadata.
package parsing

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/google/uuid"

	"github.com/deathook007/perf-review-tool/internal/types"
)

// Required export columns. Additional columns are ignored except for the
// optional ones picked up opportunistically below.
const (
	colParent = "Parent Objective Title"
	colTitle  = "Title"
	colOwner  = "Owner"
	colTeams  = "Teams"

	colState    = "State"
	colProgress = "Progress %"
)

// ParseFile opens and parses an objectives CSV export.
func ParseFile(path string) (*types.ParseResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open objectives file: %w", err)
	}
	defer func() { _ = f.Close() }()

	return ParseCSV(f)
}

// ParseCSV parses an objectives export from a reader. Rows missing a parent
// category or title are dropped and counted, never fatal. Metadata comes from
// the first well-formed row; if none exists a *MissingMetadataError is
// returned alongside the (empty) result so the caller can prompt a human.
func ParseCSV(r io.Reader) (*types.ParseResult, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // exports are ragged in practice

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("objectives file is empty")
		}
		return nil, fmt.Errorf("failed to read header row: %w", err)
	}

	cols := indexColumns(header)
	for _, required := range []string{colParent, colTitle, colOwner, colTeams} {
		if _, ok := cols[required]; !ok {
			return nil, &HeaderError{Column: required}
		}
	}

	result := &types.ParseResult{}
	rows := 0
	metadataSet := false

	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			// Malformed row: recoverable, skip and count.
			result.SkippedRows++
			continue
		}
		rows++

		parent := strings.TrimSpace(field(record, cols, colParent))
		title := strings.TrimSpace(field(record, cols, colTitle))
		if parent == "" || title == "" {
			result.SkippedRows++
			continue
		}

		obj := types.Objective{
			ID:             uuid.NewString(),
			ParentCategory: parent,
			Title:          title,
			Owner:          strings.TrimSpace(field(record, cols, colOwner)),
			Team:           strings.TrimSpace(field(record, cols, colTeams)),
			State:          strings.TrimSpace(field(record, cols, colState)),
			Progress:       strings.TrimSpace(field(record, cols, colProgress)),
		}
		result.Objectives = append(result.Objectives, obj)

		if !metadataSet {
			result.Metadata = types.Metadata{
				Owner: obj.Owner,
				Team:  obj.Team,
				Role:  InferRole(obj.Owner + " " + obj.Title),
			}
			metadataSet = true
		}
	}

	if !metadataSet {
		return result, &MissingMetadataError{Rows: rows}
	}

	// Role is frequently absent from the first row's text; widen the search
	// before giving up and leaving it unresolved.
	if result.Metadata.Role == "" {
		for _, obj := range result.Objectives {
			if role := InferRole(obj.Title); role != "" {
				result.Metadata.Role = role
				break
			}
		}
	}

	return result, nil
}

// indexColumns maps header names to their positions.
func indexColumns(header []string) map[string]int {
	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.TrimSpace(name)] = i
	}
	return cols
}

// field returns the named column of a record, or "" when the record is short.
func field(record []string, cols map[string]int, name string) string {
	idx, ok := cols[name]
	if !ok || idx >= len(record) {
		return ""
	}
	return record[idx]
}
