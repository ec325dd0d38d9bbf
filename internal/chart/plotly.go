package chart

import "encoding/json"

// plotlyTrace is a Scatterpolar trace as understood by plotly.js
type plotlyTrace struct {
	Type  string            `json:"type"`
	R     []float64         `json:"r"`
	Theta []string          `json:"theta"`
	Fill  string            `json:"fill"`
	Name  string            `json:"name"`
	Line  map[string]string `json:"line"`
}

type plotlyLayout struct {
	Polar struct {
		RadialAxis  RadialAxis  `json:"radialaxis"`
		AngularAxis AngularAxis `json:"angularaxis"`
	} `json:"polar"`
	ShowLegend bool   `json:"showlegend"`
	Title      string `json:"title"`
}

// PlotlyFigure is the {data, layout} pair handed to Plotly.newPlot.
type PlotlyFigure struct {
	Data   []plotlyTrace `json:"data"`
	Layout plotlyLayout  `json:"layout"`
}

// Plotly converts the figure into the shape plotly.js renders directly.
func (f *Figure) Plotly() PlotlyFigure {
	var pf PlotlyFigure
	for _, s := range f.Series {
		pf.Data = append(pf.Data, plotlyTrace{
			Type:  "scatterpolar",
			R:     s.R,
			Theta: s.ThetaLabels,
			Fill:  s.Fill,
			Name:  s.Label,
			Line:  map[string]string{"color": s.Color},
		})
	}
	pf.Layout.Polar.RadialAxis = f.RadialAxis
	pf.Layout.Polar.AngularAxis = f.AngularAxis
	pf.Layout.ShowLegend = f.ShowLegend
	pf.Layout.Title = f.Title
	return pf
}

// MarshalPlotly encodes the figure as plotly.js JSON.
func (f *Figure) MarshalPlotly() ([]byte, error) {
	return json.Marshal(f.Plotly())
}
