// Package table parses pasted tab-separated text into a numeric table.
package table

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// MinColumns is the number of leading columns that must be present and numeric.
const MinColumns = 2

// Table is a rectangular, row-ordered set of numeric values.
type Table struct {
	rows [][]float64
	cols int
}

// Rows returns the number of data rows
func (t *Table) Rows() int {
	return len(t.rows)
}

// Cols returns the number of columns shared by every row
func (t *Table) Cols() int {
	return t.cols
}

// Column returns a copy of column i in row order.
func (t *Table) Column(i int) []float64 {
	if i < 0 || i >= t.cols {
		return nil
	}
	out := make([]float64, len(t.rows))
	for r, row := range t.rows {
		out[r] = row[i]
	}
	return out
}

// Row returns a copy of row i.
func (t *Table) Row(i int) []float64 {
	if i < 0 || i >= len(t.rows) {
		return nil
	}
	return append([]float64(nil), t.rows[i]...)
}

// Parse turns raw tab-separated text into a Table. Every non-blank line is a
// data row; the first one fixes the column count. Columns past MinColumns that
// are not numbers are kept as NaN.
func Parse(raw string) (*Table, error) {
	// tabs are significant: an empty first or last field is still a field
	text := strings.Trim(raw, "\r\n ")
	if text == "" {
		return nil, ErrNoRows
	}

	t := &Table{}
	for i, line := range strings.Split(text, "\n") {
		lineNo := i + 1
		line = strings.TrimSuffix(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}

		fields := strings.Split(line, "\t")
		if len(t.rows) == 0 {
			t.cols = len(fields)
			if t.cols < MinColumns {
				return nil, ErrInsufficientColumns
			}
		} else if len(fields) != t.cols {
			return nil, &FormatError{
				Line:   lineNo,
				Reason: fmt.Sprintf("expected %d fields, found %d", t.cols, len(fields)),
			}
		}

		row := make([]float64, t.cols)
		for c, field := range fields {
			v, err := parseNumber(field)
			if err != nil {
				if c < MinColumns {
					return nil, &FormatError{Line: lineNo, Column: c + 1, Reason: err.Error()}
				}
				v = math.NaN()
			}
			row[c] = v
		}
		t.rows = append(t.rows, row)
	}

	if len(t.rows) == 0 {
		return nil, ErrNoRows
	}
	return t, nil
}

func parseNumber(field string) (float64, error) {
	s := strings.TrimSpace(field)
	if s == "" {
		return 0, fmt.Errorf("empty value")
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%q is not a number", s)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%q is not a finite number", s)
	}
	return v, nil
}
