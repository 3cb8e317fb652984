// Package render draws pulsar signals and scintillation diagnostics with
// gonum/plot.
//
// Every builder takes an explicit Style and returns a plot the caller
// saves or composes; nothing here holds package-level styling state.
package render

import (
	"errors"
	"io"
	"path/filepath"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"

	// Output formats for Save and WriteTo.
	_ "gonum.org/v1/plot/vg/vgeps"
	_ "gonum.org/v1/plot/vg/vgimg"
	_ "gonum.org/v1/plot/vg/vgpdf"
	_ "gonum.org/v1/plot/vg/vgsvg"
)

// Errors returned by plot builders.
var (
	ErrNilSignal         = errors.New("render: nil signal")
	ErrNoProfile         = errors.New("render: signal has no profile template")
	ErrVoltageFilterBank = errors.New("render: filter bank not supported for voltage signals")
	ErrPulsesExceedData  = errors.New("render: requested pulses exceed signal length")
	ErrNilScreen         = errors.New("render: nil screen")
)

const (
	profileLineWidth = 0.7
	pulseLineWidth   = 0.4
)

// Style holds the figure defaults applied to every plot.
type Style struct {
	// Width and Height size single plots.
	Width, Height vg.Length
	// FigureWidth and FigureHeight size the 2x2 dynamic spectrum figure.
	FigureWidth, FigureHeight vg.Length
	// FontSize applies to titles and axis labels; tick labels use 80% of it.
	FontSize vg.Length
}

// DefaultStyle returns an 8x6 inch, 14 pt style.
func DefaultStyle() Style {
	return Style{
		Width:        8 * vg.Inch,
		Height:       6 * vg.Inch,
		FigureWidth:  15 * vg.Inch,
		FigureHeight: 15 * vg.Inch,
		FontSize:     vg.Points(14),
	}
}

func (s Style) withDefaults() Style {
	d := DefaultStyle()
	if s.Width <= 0 {
		s.Width = d.Width
	}
	if s.Height <= 0 {
		s.Height = d.Height
	}
	if s.FigureWidth <= 0 {
		s.FigureWidth = d.FigureWidth
	}
	if s.FigureHeight <= 0 {
		s.FigureHeight = d.FigureHeight
	}
	if s.FontSize <= 0 {
		s.FontSize = d.FontSize
	}
	return s
}

// newPlot returns an empty plot with the style's fonts applied.
func (s Style) newPlot(title, xLabel, yLabel string) *plot.Plot {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = xLabel
	p.Y.Label.Text = yLabel

	p.Title.TextStyle.Font.Size = s.FontSize
	p.X.Label.TextStyle.Font.Size = s.FontSize
	p.Y.Label.TextStyle.Font.Size = s.FontSize
	p.X.Tick.Label.Font.Size = s.FontSize * 0.8
	p.Y.Tick.Label.Font.Size = s.FontSize * 0.8

	return p
}

// Save writes p to path at the style's single-plot size. The format
// follows the file extension.
func Save(p *plot.Plot, style Style, path string) error {
	style = style.withDefaults()
	return p.Save(style.Width, style.Height, path)
}

// WriteTo encodes p in format ("png", "svg", "pdf", ...) to w.
func WriteTo(w io.Writer, p *plot.Plot, style Style, format string) error {
	style = style.withDefaults()
	wt, err := p.WriterTo(style.Width, style.Height, format)
	if err != nil {
		return err
	}
	_, err = wt.WriteTo(w)
	return err
}

// formatOf maps a file name to a gonum/plot format name, defaulting to png.
func formatOf(path string) string {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	if ext == "" {
		return "png"
	}
	return ext
}
