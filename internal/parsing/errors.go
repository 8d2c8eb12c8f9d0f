package parsing

import "fmt"

// MissingMetadataError signals that no well-formed row carried owner/team
// information. The caller decides whether to prompt a human or fail.
type MissingMetadataError struct {
	Rows int
}

func (e *MissingMetadataError) Error() string {
	return fmt.Sprintf("no well-formed row with owner and team metadata found (%d rows read)", e.Rows)
}

// HeaderError signals that the export is missing a required column.
type HeaderError struct {
	Column string
}

func (e *HeaderError) Error() string {
	return fmt.Sprintf("required column %q not found in header", e.Column)
}
