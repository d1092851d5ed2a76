package analysis

import (
	"errors"
	"fmt"
)

// ErrColumnNotFound is matched by errors.Is for any ColumnNotFoundError.
var ErrColumnNotFound = errors.New("column not found")

// ColumnNotFoundError reports a grouping column absent from the dataset.
type ColumnNotFoundError struct {
	Column    string
	Available []string
}

func (e *ColumnNotFoundError) Error() string {
	return fmt.Sprintf("column '%s' not found in dataset", e.Column)
}

func (e *ColumnNotFoundError) Unwrap() error { return ErrColumnNotFound }
