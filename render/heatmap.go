package render

import (
	"image/color"

	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotter"

	"github.com/Hazboun6/PsrSigSim/dsp/grid"
	"github.com/Hazboun6/PsrSigSim/measure/scint"
)

const paletteSize = 255

// GridXYZ adapts a grid to plotter.GridXYZ. Columns map to x and rows to
// y; cell centers are spread evenly over Extent, with row 0 at YMin.
type GridXYZ struct {
	Grid   *grid.Grid
	Extent scint.Extent
}

// Dims returns columns then rows, as plotter.GridXYZ expects.
func (g GridXYZ) Dims() (c, r int) {
	rows, cols := g.Grid.Dims()
	return cols, rows
}

// Z returns the value of cell (c, r).
func (g GridXYZ) Z(c, r int) float64 {
	return g.Grid.At(r, c)
}

// X returns the center of column c.
func (g GridXYZ) X(c int) float64 {
	_, cols := g.Grid.Dims()
	dx := (g.Extent.XMax - g.Extent.XMin) / float64(cols)
	return g.Extent.XMin + (float64(c)+0.5)*dx
}

// Y returns the center of row r.
func (g GridXYZ) Y(r int) float64 {
	rows, _ := g.Grid.Dims()
	dy := (g.Extent.YMax - g.Extent.YMin) / float64(rows)
	return g.Extent.YMin + (float64(r)+0.5)*dy
}

// newHeatMap builds a heat map whose color range spans the grid values.
// Flat grids get a unit range so every cell maps to a valid color.
func newHeatMap(g *grid.Grid, ext scint.Extent, pal palette.Palette) *plotter.HeatMap {
	xyz := GridXYZ{Grid: g, Extent: ext}
	hm := plotter.NewHeatMap(xyz, pal)
	hm.Rasterized = true
	if !(hm.Max > hm.Min) {
		hm.Max = hm.Min + 1
	}
	return hm
}

type colors []color.Color

func (c colors) Colors() []color.Color { return c }

// binary runs from white at the minimum to black at the maximum.
func binary(n int) palette.Palette {
	out := make(colors, n)
	for i := range out {
		v := uint8(255 - (255*i)/(n-1))
		out[i] = color.Gray{Y: v}
	}
	return out
}

func reversed(p palette.Palette) palette.Palette {
	src := p.Colors()
	out := make(colors, len(src))
	for i, c := range src {
		out[len(src)-1-i] = c
	}
	return out
}

// filterBankPalette is a perceptual purple-to-yellow ramp.
func filterBankPalette() palette.Palette {
	return moreland.ExtendedKindlmann().Palette(paletteSize)
}

// acfPalette runs from light at low correlation to dark at the peak.
func acfPalette() palette.Palette {
	return reversed(moreland.ExtendedBlackBody().Palette(paletteSize))
}
