// Package chart builds closed radar (polar) chart figures from parsed tables.
package chart

import (
	"errors"
	"fmt"
	"math"

	"github.com/google/uuid"
	"github.com/kartoza/rf-radar/internal/table"
)

const (
	// Title is shown above every generated chart.
	Title = "Radar Chart of RF Data"

	// FillToSelf closes each series polygon and fills its interior.
	FillToSelf = "toself"
)

// SeriesStyle fixes the label and colour of one plotted column.
type SeriesStyle struct {
	Label string
	Color string
}

// Styles for the two plotted columns, in column order.
var Styles = [2]SeriesStyle{
	{Label: "Front /90 deg (5V)", Color: "blue"},
	{Label: "Front /0 deg (5V)", Color: "red"},
}

// ErrEmptyTable indicates Build was given no rows or too few columns.
var ErrEmptyTable = errors.New("chart: table has no plottable data")

// Series is one closed polygon on the polar plot.
type Series struct {
	Label       string    `json:"name"`
	Color       string    `json:"color"`
	Fill        string    `json:"fill"`
	R           []float64 `json:"r"`
	Theta       []float64 `json:"theta_deg"`
	ThetaLabels []string  `json:"theta"`
}

// RadialAxis describes the radius scale.
type RadialAxis struct {
	Visible bool       `json:"visible"`
	Range   [2]float64 `json:"range"`
}

// AngularAxis pins tick marks to the sampled angles.
type AngularAxis struct {
	TickMode string   `json:"tickmode"`
	TickVals []string `json:"tickvals"`
	TickText []string `json:"ticktext"`
}

// Figure is an immutable description of a rendered radar chart.
type Figure struct {
	ID          string      `json:"id"`
	Title       string      `json:"title"`
	Series      [2]Series   `json:"series"`
	RadialAxis  RadialAxis  `json:"radial_axis"`
	AngularAxis AngularAxis `json:"angular_axis"`
	ShowLegend  bool        `json:"show_legend"`
}

// Samples returns the number of data rows behind the figure (without the closing point).
func (f *Figure) Samples() int {
	n := len(f.Series[0].R)
	if n == 0 {
		return 0
	}
	return n - 1
}

// Build turns the first two columns of t into a closed two-series radar figure.
func Build(t *table.Table) (*Figure, error) {
	if t == nil || t.Rows() == 0 || t.Cols() < table.MinColumns {
		return nil, ErrEmptyTable
	}

	n := t.Rows()
	theta, labels := angles(n)
	theta = closeLoop(theta)
	labels = closeLoop(labels)

	fig := &Figure{
		ID:         uuid.New().String(),
		Title:      Title,
		ShowLegend: true,
	}

	rmax := math.Inf(-1)
	for i, style := range Styles {
		r := closeLoop(t.Column(i))
		for _, v := range r {
			rmax = math.Max(rmax, v)
		}
		fig.Series[i] = Series{
			Label:       style.Label,
			Color:       style.Color,
			Fill:        FillToSelf,
			R:           r,
			Theta:       append([]float64(nil), theta...),
			ThetaLabels: append([]string(nil), labels...),
		}
	}

	fig.RadialAxis = RadialAxis{Visible: true, Range: [2]float64{0, rmax}}
	fig.AngularAxis = AngularAxis{
		TickMode: "array",
		TickVals: append([]string(nil), labels...),
		TickText: append([]string(nil), labels...),
	}
	return fig, nil
}

// angles returns n evenly spaced angles in degrees and their display labels.
func angles(n int) ([]float64, []string) {
	theta := make([]float64, n)
	labels := make([]string, n)
	for i := 0; i < n; i++ {
		theta[i] = float64(i) * 360 / float64(n)
		labels[i] = FormatAngle(theta[i])
	}
	return theta, labels
}

// FormatAngle renders degrees with one decimal place and a degree sign.
func FormatAngle(deg float64) string {
	return fmt.Sprintf("%.1f°", deg)
}

// closeLoop appends the first element so the polygon returns to its start.
func closeLoop[T any](s []T) []T {
	if len(s) == 0 {
		return s
	}
	out := make([]T, 0, len(s)+1)
	out = append(out, s...)
	return append(out, s[0])
}
