package render

import (
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"

	"github.com/Hazboun6/PsrSigSim/measure/scint"
	"github.com/Hazboun6/PsrSigSim/pulsar"
)

// FilterBankOptions selects what FilterBank draws.
type FilterBankOptions struct {
	// Pulses is the number of periods drawn, at least 1.
	Pulses int
	// StartTime offsets the time axis, in ms.
	StartTime float64
	// Phase labels the x axis in pulse phase instead of time.
	Phase bool
	// Grid overlays grid lines.
	Grid bool
}

// FilterBank draws every frequency channel of an intensity signal over the
// first opts.Pulses periods as a heat map, frequency on the y axis.
func FilterBank(sig *pulsar.Signal, style Style, opts FilterBankOptions) (*plot.Plot, error) {
	if sig == nil {
		return nil, ErrNilSignal
	}
	if sig.Type == pulsar.Voltage {
		return nil, ErrVoltageFilterBank
	}
	if sig.Data == nil {
		return nil, pulsar.ErrNoData
	}
	perPeriod, err := sig.SamplesPerPeriod()
	if err != nil {
		return nil, err
	}

	pulses := max(opts.Pulses, 1)
	stop := pulses * perPeriod
	if stop > sig.Nt() {
		return nil, fmt.Errorf("%w: %d pulses need %d samples, have %d", ErrPulsesExceedData, pulses, stop, sig.Nt())
	}

	data, _ := sig.Data.Window(0, sig.Nf(), 0, stop)

	style = style.withDefaults()

	ext := scint.Extent{YMin: sig.FirstFreq, YMax: sig.LastFreq}
	var p *plot.Plot
	if opts.Phase {
		ext.XMin, ext.XMax = 0, float64(pulses)
		p = style.newPlot("Filter Bank", "Phase", "Frequency (MHz)")
	} else {
		ext.XMin = opts.StartTime
		ext.XMax = opts.StartTime + float64(stop)*sig.TimeBinSize
		p = style.newPlot("Filter Bank", "Observation Time (ms)", "Frequency (MHz)")
	}

	p.Add(newHeatMap(data, ext, filterBankPalette()))
	if opts.Grid {
		p.Add(plotter.NewGrid())
	}
	setLimits(p, ext)

	return p, nil
}

func setLimits(p *plot.Plot, ext scint.Extent) {
	p.X.Min, p.X.Max = ext.XMin, ext.XMax
	p.Y.Min, p.Y.Max = ext.YMin, ext.YMax
}
