package render

import (
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/Hazboun6/PsrSigSim/measure/scint"
	"github.com/Hazboun6/PsrSigSim/pulsar"
)

// acfYMin and acfYMax bound the ACF cut panels.
const (
	acfYMin = -0.05
	acfYMax = 1.05
)

// Figure is a titled 2x2 grid of plots.
type Figure struct {
	Title string
	Plots [2][2]*plot.Plot

	// Analysis is the scintillation estimate the panels were drawn from.
	Analysis *scint.Analysis

	style Style
}

// DynamicSpectrum analyzes the dynamic spectrum through the middle of the
// screen and draws it with its ACF diagnostics:
//
//	[0][0] dynamic spectrum    [0][1] time ACF cut with the 1/e level
//	[1][0] frequency ACF cut   [1][1] ACF surface around the peak
//
// Frequency lags are in MHz from sig.FreqBinSize; time lags are in screen
// samples. mode sizes the displayed lag window.
func DynamicSpectrum(screen *pulsar.Screen, sig *pulsar.Signal, style Style, mode scint.WindowMode, opts ...scint.Option) (*Figure, error) {
	if screen == nil {
		return nil, ErrNilScreen
	}
	if sig == nil {
		return nil, ErrNilSignal
	}

	spectrum := screen.MidSlice()
	analysis, err := scint.Analyze(spectrum, sig.FreqBinSize, 1, mode, opts...)
	if err != nil {
		return nil, err
	}
	cfg := scint.ApplyOptions(opts...)
	style = style.withDefaults()

	_, nx := spectrum.Dims()
	freqs := sig.FreqArray()
	dsExtent := scint.Extent{XMax: float64(nx), YMin: sig.FirstFreq, YMax: sig.LastFreq}
	if len(freqs) > 0 {
		dsExtent.YMin, dsExtent.YMax = freqs[0], freqs[len(freqs)-1]
	}

	fig := &Figure{Analysis: analysis, style: style}

	ds := style.newPlot("Dynamic Spectrum", "", "Frequency (MHz)")
	ds.Add(newHeatMap(spectrum, dsExtent, binary(paletteSize)))
	setLimits(ds, dsExtent)
	fig.Plots[0][0] = ds

	frame := analysis.Frame
	cuts := analysis.Cuts

	timeSpan := float64(frame.Time)
	timeACF, err := cutPlot(style, "Time ACF", "Time Lag", cuts.TimeLag, cuts.TimeACF, cfg.TimeThreshold, timeSpan)
	if err != nil {
		return nil, err
	}
	fig.Plots[0][1] = timeACF

	freqSpan := float64(frame.Freq) * sig.FreqBinSize
	freqACF, err := cutPlot(style, "Frequency ACF", "Freq Lag (MHz)", cuts.FreqLag, cuts.FreqACF, cfg.FreqThreshold, freqSpan)
	if err != nil {
		return nil, err
	}
	fig.Plots[1][0] = freqACF

	surface := style.newPlot("Autocorrelation Function", "Time Lag", "Freq Lag (MHz)")
	if cuts.Window != nil {
		surface.Add(newHeatMap(cuts.Window, cuts.WindowExtent, acfPalette()))
		setLimits(surface, cuts.WindowExtent)
	}
	fig.Plots[1][1] = surface

	fig.Title = suptitle(sig.Meta, analysis.Scales.Bandwidth)

	return fig, nil
}

// cutPlot draws an ACF cut with a dashed threshold level over [-span, span].
func cutPlot(style Style, title, xLabel string, lag, acf []float64, level, span float64) (*plot.Plot, error) {
	p := style.newPlot(title, xLabel, "")

	line, err := plotter.NewLine(xys(lag, acf))
	if err != nil {
		return nil, fmt.Errorf("render: %s: %w", title, err)
	}
	line.LineStyle.Color = plotutil.Color(0)

	cutoff, err := plotter.NewLine(plotter.XYs{{X: -span, Y: level}, {X: span, Y: level}})
	if err != nil {
		return nil, fmt.Errorf("render: %s cutoff: %w", title, err)
	}
	cutoff.LineStyle.Color = plotutil.Color(1)
	cutoff.LineStyle.Dashes = []vg.Length{vg.Points(6), vg.Points(4)}

	p.Add(line, cutoff)

	if span > 0 {
		p.X.Min, p.X.Max = -span, span
	}
	p.Y.Min, p.Y.Max = acfYMin, acfYMax

	return p, nil
}

// suptitle reports the dispersion measure and the input and measured
// scintillation bandwidths, in kHz when the input rounds to 0 MHz.
func suptitle(meta pulsar.MetaData, measured float64) string {
	unit, factor := "MHz", 1.0
	if math.Round(meta.DISSDecorrBW) == 0 {
		unit, factor = "kHz", 1e3
	}
	input := math.Round(meta.DISSDecorrBW*factor*1e3) / 1e3

	return fmt.Sprintf("Dynamic Spectra, DM= %g\nInput Scintillation BW=%g %s\nMeasured Scintillation BW=%g %s",
		meta.DM, input, unit, measured*factor, unit)
}

// Save writes the figure to path, choosing the format from the extension.
func (f *Figure) Save(path string) (err error) {
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := out.Close(); err == nil {
			err = cerr
		}
	}()

	return f.WriteTo(out, formatOf(path))
}

// WriteTo encodes the figure in format ("png", "svg", "pdf", ...) to w.
func (f *Figure) WriteTo(w io.Writer, format string) error {
	style := f.style.withDefaults()

	c, err := draw.NewFormattedCanvas(style.FigureWidth, style.FigureHeight, format)
	if err != nil {
		return err
	}
	f.draw(draw.New(c), style)

	_, err = c.WriteTo(w)
	return err
}

func (f *Figure) draw(dc draw.Canvas, style Style) {
	titleStyle := plot.New().Title.TextStyle
	titleStyle.XAlign = text.XCenter
	titleStyle.YAlign = text.YTop
	titleStyle.Font.Size = style.FontSize * 1.2

	pad := vg.Length(strings.Count(f.Title, "\n")+2) * titleStyle.Font.Size * 1.4

	if f.Title != "" {
		top := vg.Point{X: dc.Center().X, Y: dc.Max.Y - titleStyle.Font.Size*0.5}
		dc.FillText(titleStyle, top, f.Title)
	}

	tiles := draw.Tiles{
		Rows:      2,
		Cols:      2,
		PadTop:    pad,
		PadBottom: vg.Points(10),
		PadLeft:   vg.Points(10),
		PadRight:  vg.Points(10),
		PadX:      vg.Points(30),
		PadY:      vg.Points(40),
	}

	plots := make([][]*plot.Plot, 2)
	for i := range plots {
		plots[i] = f.Plots[i][:]
	}

	canvases := plot.Align(plots, tiles, dc)
	for i := range plots {
		for j, p := range plots[i] {
			if p != nil {
				p.Draw(canvases[i][j])
			}
		}
	}
}
