package scint

import (
	"fmt"

	"github.com/Hazboun6/PsrSigSim/dsp/grid"
)

// Analysis bundles an estimate with its physical scales, display frame and
// plotting cuts.
type Analysis struct {
	*Result
	Scales Scales
	Frame  Frame
	Cuts   Cuts
}

// Analyze estimates scintillation scales for a frequency x time dynamic
// spectrum with channel width freqBin and time resolution timeBin, then
// sizes the display window with mode.
func Analyze(spectrum *grid.Grid, freqBin, timeBin float64, mode WindowMode, opts ...Option) (*Analysis, error) {
	if !(freqBin > 0) || !(timeBin > 0) {
		return nil, ErrInvalidBinSize
	}

	res, err := Estimate(spectrum, opts...)
	if err != nil {
		return nil, err
	}

	scales := res.Scales(freqBin, timeBin)
	nFreq, nTime := spectrum.Dims()

	frame, err := FrameFor(mode, scales, freqBin, timeBin, nFreq, nTime)
	if err != nil {
		return nil, fmt.Errorf("scint: %s window: %w", mode, err)
	}

	return &Analysis{
		Result: res,
		Scales: scales,
		Frame:  frame,
		Cuts:   res.Cuts(frame, freqBin, timeBin),
	}, nil
}
