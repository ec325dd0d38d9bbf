// Package export renders chart figures to PNG, XLSX and terminal text.
package export

import (
	"image/color"

	"github.com/guptarohit/asciigraph"
)

// namedColor ties a figure colour name to its representation in each output.
type namedColor struct {
	rgba  color.RGBA
	hex   string
	ascii asciigraph.AnsiColor
}

var palette = map[string]namedColor{
	"blue": {rgba: color.RGBA{R: 0x00, G: 0x00, B: 0xff, A: 0xff}, hex: "0000FF", ascii: asciigraph.Blue},
	"red":  {rgba: color.RGBA{R: 0xff, G: 0x00, B: 0x00, A: 0xff}, hex: "FF0000", ascii: asciigraph.Red},
}

// lookupColor falls back to black for names outside the palette.
func lookupColor(name string) namedColor {
	if c, ok := palette[name]; ok {
		return c
	}
	return namedColor{rgba: color.RGBA{A: 0xff}, hex: "000000", ascii: asciigraph.Default}
}
