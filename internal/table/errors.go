package table

import (
	"errors"
	"fmt"
)

// ErrInvalidFormat indicates the text is not rectangular tab-separated numeric data.
var ErrInvalidFormat = errors.New("invalid tab-separated format")

// ErrInsufficientColumns indicates fewer than two columns were supplied.
var ErrInsufficientColumns = errors.New("at least two columns are required")

// ErrNoRows indicates the text contained no data rows.
var ErrNoRows = fmt.Errorf("%w: no data rows", ErrInvalidFormat)

// FormatError describes where a paste stopped being valid tab-separated data.
// Line and Column are 1-based; Column is 0 when the whole line is at fault.
type FormatError struct {
	Line   int
	Column int
	Reason string
}

func (e *FormatError) Error() string {
	if e.Column > 0 {
		return fmt.Sprintf("line %d, column %d: %s", e.Line, e.Column, e.Reason)
	}
	return fmt.Sprintf("line %d: %s", e.Line, e.Reason)
}

func (e *FormatError) Unwrap() error {
	return ErrInvalidFormat
}
