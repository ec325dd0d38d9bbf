package export

import (
	"bytes"
	"fmt"
	"image/color"
	"math"

	"github.com/kartoza/rf-radar/internal/chart"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

const (
	gridRings    = 4
	ringSegments = 120
	labelOffset  = 1.1
	fillAlpha    = 0x50
	pngDPI       = 96
)

var gridColor = color.Gray{Y: 0xc8}

// PNG draws the figure as a filled radar chart. Angles run counter-clockwise
// from the top, matching the browser rendering.
func PNG(fig *chart.Figure, width, height int) ([]byte, error) {
	if fig == nil || fig.Samples() == 0 {
		return nil, fmt.Errorf("export: nothing to draw")
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("export: invalid image size %dx%d", width, height)
	}

	p := plot.New()
	p.Title.Text = fig.Title
	p.HideAxes()
	p.Legend.Top = true

	outer := fig.RadialAxis.Range[1]
	if outer <= 0 {
		outer = 1
	}

	// Concentric rings at even fractions of the radial range
	for i := 1; i <= gridRings; i++ {
		ring, err := plotter.NewLine(circle(outer * float64(i) / gridRings))
		if err != nil {
			return nil, fmt.Errorf("failed to create grid ring: %w", err)
		}
		ring.LineStyle.Color = gridColor
		ring.LineStyle.Width = vg.Points(0.5)
		p.Add(ring)
	}

	// Spokes and angle labels, one per sample
	n := fig.Samples()
	labelXYs := make(plotter.XYs, n)
	labels := make([]string, n)
	for i := 0; i < n; i++ {
		deg := fig.Series[0].Theta[i]
		x, y := polar(outer, deg)
		spoke, err := plotter.NewLine(plotter.XYs{{X: 0, Y: 0}, {X: x, Y: y}})
		if err != nil {
			return nil, fmt.Errorf("failed to create spoke: %w", err)
		}
		spoke.LineStyle.Color = gridColor
		spoke.LineStyle.Width = vg.Points(0.5)
		p.Add(spoke)

		labelXYs[i].X, labelXYs[i].Y = polar(outer*labelOffset, deg)
		labels[i] = fig.Series[0].ThetaLabels[i]
	}
	tickLabels, err := plotter.NewLabels(plotter.XYLabels{XYs: labelXYs, Labels: labels})
	if err != nil {
		return nil, fmt.Errorf("failed to create angle labels: %w", err)
	}
	p.Add(tickLabels)

	for _, s := range fig.Series {
		pts := make(plotter.XYs, len(s.R))
		for i, r := range s.R {
			pts[i].X, pts[i].Y = polar(math.Max(r, 0), s.Theta[i])
		}
		poly, err := plotter.NewPolygon(pts)
		if err != nil {
			return nil, fmt.Errorf("failed to create series %q: %w", s.Label, err)
		}
		c := lookupColor(s.Color).rgba
		poly.LineStyle.Color = c
		poly.LineStyle.Width = vg.Points(1.5)
		poly.Color = color.NRGBA{R: c.R, G: c.G, B: c.B, A: fillAlpha}
		p.Add(poly)
		p.Legend.Add(s.Label, poly)
	}

	pad := outer * (labelOffset + 0.15)
	p.X.Min, p.X.Max = -pad, pad
	p.Y.Min, p.Y.Max = -pad, pad

	w, err := p.WriterTo(pixels(width), pixels(height), "png")
	if err != nil {
		return nil, fmt.Errorf("failed to create plot writer: %w", err)
	}

	var buf bytes.Buffer
	if _, err := w.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("failed to write plot to buffer: %w", err)
	}
	return buf.Bytes(), nil
}

// polar converts a radius and an angle in degrees to plot coordinates.
func polar(r, deg float64) (float64, float64) {
	rad := (deg + 90) * math.Pi / 180
	return r * math.Cos(rad), r * math.Sin(rad)
}

func circle(r float64) plotter.XYs {
	pts := make(plotter.XYs, ringSegments+1)
	for i := range pts {
		pts[i].X, pts[i].Y = polar(r, float64(i)*360/ringSegments)
	}
	return pts
}

func pixels(px int) vg.Length {
	return vg.Length(px) * vg.Inch / pngDPI
}
