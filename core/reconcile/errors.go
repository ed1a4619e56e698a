package reconcile

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownKeyColumn matches any UnknownKeyColumnError via errors.Is.
	ErrUnknownKeyColumn = errors.New("unknown key column")

	// ErrNoKeyColumns is returned when indexing is requested without a key.
	ErrNoKeyColumns = errors.New("at least one key column is required")
)

// UnknownKeyColumnError reports a key column missing from a table's header.
type UnknownKeyColumnError struct {
	Column string
	Table  string
}

func (e *UnknownKeyColumnError) Error() string {
	if e.Table == "" {
		return fmt.Sprintf("key column '%s' not found", e.Column)
	}
	return fmt.Sprintf("key column '%s' not found in %s", e.Column, e.Table)
}

// Is lets errors.Is match against ErrUnknownKeyColumn.
func (e *UnknownKeyColumnError) Is(target error) bool {
	return target == ErrUnknownKeyColumn
}
