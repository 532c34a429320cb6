package sequence

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotFound marks a label whose normalized key is absent from the table.
	ErrNotFound = errors.New("sequence not found")
	// ErrSource marks a reference source that is missing, unreadable, or malformed.
	ErrSource = errors.New("reference source error")
)

// MissingColumnError reports required header columns absent from a reference source.
type MissingColumnError struct {
	Columns []string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("missing required column(s): %s", strings.Join(e.Columns, ", "))
}

// ErrorKind classifies the error for callers that map failures to exit codes.
func (e *MissingColumnError) ErrorKind() string { return "validation" }

func sourceError(path, operation string, err error) error {
	if err != nil {
		return fmt.Errorf("%w: %s %s: %w", ErrSource, operation, path, err)
	}
	return fmt.Errorf("%w: %s %s", ErrSource, operation, path)
}
