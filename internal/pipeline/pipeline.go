// Package pipeline runs one generate action: parse the pasted text, build the
// chart and classify any failure into a renderable result.
package pipeline

import (
	"errors"
	"fmt"

	"github.com/kartoza/rf-radar/internal/chart"
	"github.com/kartoza/rf-radar/internal/table"
)

// Kind tags what a Result holds.
type Kind string

const (
	KindPlaceholder         Kind = "placeholder"
	KindChart               Kind = "chart"
	KindFormatError         Kind = "format_error"
	KindInsufficientColumns Kind = "insufficient_columns"
	KindUnexpectedError     Kind = "unexpected_error"
)

// Annotation texts shown in place of a chart.
const (
	MsgPlaceholder         = "Paste data and click 'Generate Radar Chart'"
	MsgFormatError         = "Invalid data format. Please paste tab-separated values."
	MsgInsufficientColumns = "Please provide data with at least two columns."
	msgUnexpectedPrefix    = "Error processing data: "
)

// buildFigure is swapped in tests to exercise the recovery path.
var buildFigure = chart.Build

// Result is what the page renders after an action: a figure when Kind is
// KindChart, otherwise a message.
type Result struct {
	Kind    Kind
	Figure  *chart.Figure
	Message string
	// Err keeps the underlying failure for logging; it is not shown to the user.
	Err error
}

// OK reports whether the result carries a chart.
func (r Result) OK() bool {
	return r.Kind == KindChart
}

// IsError reports whether the action failed.
func (r Result) IsError() bool {
	switch r.Kind {
	case KindFormatError, KindInsufficientColumns, KindUnexpectedError:
		return true
	}
	return false
}

// Run executes a single generate action. Before the first trigger, or with
// nothing pasted, it returns the placeholder prompt.
func Run(raw string, triggered bool) (res Result) {
	if !triggered || raw == "" {
		return Result{Kind: KindPlaceholder, Message: MsgPlaceholder}
	}

	defer func() {
		if p := recover(); p != nil {
			res = unexpected(fmt.Errorf("panic: %v", p))
		}
	}()

	tbl, err := table.Parse(raw)
	if err != nil {
		return classify(err)
	}

	fig, err := buildFigure(tbl)
	if err != nil {
		return unexpected(err)
	}
	return Result{Kind: KindChart, Figure: fig}
}

func classify(err error) Result {
	switch {
	case errors.Is(err, table.ErrInsufficientColumns):
		return Result{Kind: KindInsufficientColumns, Message: MsgInsufficientColumns, Err: err}
	case errors.Is(err, table.ErrInvalidFormat):
		return Result{Kind: KindFormatError, Message: MsgFormatError, Err: err}
	default:
		return unexpected(err)
	}
}

func unexpected(err error) Result {
	return Result{Kind: KindUnexpectedError, Message: msgUnexpectedPrefix + err.Error(), Err: err}
}
