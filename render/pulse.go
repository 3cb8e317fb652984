package render

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/Hazboun6/PsrSigSim/pulsar"
)

// Profile plots the pulse profile template against phase in [0, 1] or
// against time in [0, period] ms.
func Profile(sig *pulsar.Signal, style Style, phase bool) (*plot.Plot, error) {
	if sig == nil {
		return nil, ErrNilSignal
	}
	profile := sig.Meta.Profile
	if len(profile) == 0 {
		return nil, ErrNoProfile
	}

	style = style.withDefaults()

	var x []float64
	var p *plot.Plot
	if phase {
		x = linspace(0, 1, len(profile))
		p = style.newPlot("Pulsar Profile Template", "Phase", "")
		p.Y.Tick.Marker = plot.ConstantTicks(nil)
	} else {
		x = linspace(0, sig.Meta.Period, len(profile))
		p = style.newPlot("Pulsar Profile Template", "Time (ms)", "")
	}

	line, err := plotter.NewLine(xys(x, profile))
	if err != nil {
		return nil, fmt.Errorf("render: profile line: %w", err)
	}
	line.LineStyle.Width = vg.Points(profileLineWidth)
	p.Add(line)

	if peak := floats.Max(profile); peak > 0 {
		p.Y.Min = 0
		p.Y.Max = peak * 1.05
	}

	return p, nil
}

// PulseOptions selects what Pulse draws.
type PulseOptions struct {
	// Pulses is the number of periods drawn, at least 1.
	Pulses int
	// PolBin is the row drawn for voltage signals.
	PolBin int
	// FreqBin is the row drawn for intensity signals.
	FreqBin int
	// StartTime offsets the time axis, in ms.
	StartTime float64
	// Phase labels the x axis in pulse phase instead of time.
	Phase bool
}

// Pulse plots the first opts.Pulses periods of one signal row: the
// FreqBin channel of an intensity signal or the PolBin polarization of a
// voltage signal.
func Pulse(sig *pulsar.Signal, style Style, opts PulseOptions) (*plot.Plot, error) {
	if sig == nil {
		return nil, ErrNilSignal
	}
	perPeriod, err := sig.SamplesPerPeriod()
	if err != nil {
		return nil, err
	}

	var title string
	var rowIdx int
	switch sig.Type {
	case pulsar.Intensity:
		title, rowIdx = "Pulse Intensity", opts.FreqBin
	case pulsar.Voltage:
		title, rowIdx = "Pulse Voltage", opts.PolBin
	default:
		return nil, fmt.Errorf("%w: %d", pulsar.ErrUnknownType, int(sig.Type))
	}

	row, err := sig.Row(rowIdx)
	if err != nil {
		return nil, err
	}

	pulses := max(opts.Pulses, 1)
	n := pulses * perPeriod
	if n > len(row) {
		return nil, fmt.Errorf("%w: %d pulses need %d samples, have %d", ErrPulsesExceedData, pulses, n, len(row))
	}

	style = style.withDefaults()

	var x []float64
	var p *plot.Plot
	if opts.Phase {
		x = linspace(0, float64(pulses), n)
		p = style.newPlot(title, "Phase", "")
	} else {
		stop := opts.StartTime + float64(n)*sig.TimeBinSize
		x = linspace(opts.StartTime, stop, n)
		p = style.newPlot(title, "Time (ms)", "")
	}

	line, err := plotter.NewLine(xys(x, row[:n]))
	if err != nil {
		return nil, fmt.Errorf("render: pulse line: %w", err)
	}
	line.LineStyle.Width = vg.Points(pulseLineWidth)
	p.Add(line)

	return p, nil
}

// linspace returns n evenly spaced values from lo to hi inclusive.
func linspace(lo, hi float64, n int) []float64 {
	out := make([]float64, n)
	if n == 1 {
		out[0] = lo
		return out
	}
	floats.Span(out, lo, hi)
	out[n-1] = hi
	return out
}

func xys(x, y []float64) plotter.XYs {
	pts := make(plotter.XYs, len(y))
	for i := range pts {
		pts[i].X = x[i]
		pts[i].Y = y[i]
	}
	return pts
}
