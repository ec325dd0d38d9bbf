package export

import (
	"github.com/guptarohit/asciigraph"
	"github.com/kartoza/rf-radar/internal/chart"
)

// ASCII plots both series unrolled along the angle axis for terminal output.
func ASCII(fig *chart.Figure, height int) string {
	if fig == nil || fig.Samples() == 0 {
		return ""
	}
	if height <= 0 {
		height = 10
	}

	data := make([][]float64, 0, len(fig.Series))
	colors := make([]asciigraph.AnsiColor, 0, len(fig.Series))
	legends := make([]string, 0, len(fig.Series))
	for _, s := range fig.Series {
		data = append(data, s.R)
		colors = append(colors, lookupColor(s.Color).ascii)
		legends = append(legends, s.Label)
	}

	return asciigraph.PlotMany(data,
		asciigraph.Height(height),
		asciigraph.Precision(2),
		asciigraph.Caption(fig.Title),
		asciigraph.SeriesColors(colors...),
		asciigraph.SeriesLegends(legends...),
	)
}
