package scint

import (
	"fmt"
	"math"
	"strings"
)

const (
	defaultFreqFactor = 100
	defaultTimeFactor = 50
	factorStep        = 2

	// unitTolerance absorbs rounding when a bandwidth computed as
	// crossing*bin is divided by bin again.
	unitTolerance = 1e-9
)

// WindowMode selects how the ACF display window is sized.
type WindowMode int

const (
	// WindowOptimal sizes the window as a multiple of the measured scales,
	// shrinking the multiple until the window fits the grid.
	WindowOptimal WindowMode = iota

	// WindowFull covers half the grid extent on each side of the peak.
	WindowFull
)

// String returns the mode name.
func (m WindowMode) String() string {
	switch m {
	case WindowOptimal:
		return "optimal"
	case WindowFull:
		return "full"
	default:
		return "unknown"
	}
}

// ParseWindowMode parses "optimal" or "full" (case-insensitive).
func ParseWindowMode(s string) (WindowMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "optimal", "":
		return WindowOptimal, nil
	case "full":
		return WindowFull, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownWindowMode, s)
	}
}

// Frame is the half-extent of a display window centered on the ACF peak,
// in samples along each axis.
type Frame struct {
	Freq int
	Time int
}

// FullFrame returns a window spanning half of each axis.
func FullFrame(nFreq, nTime int) Frame {
	return Frame{Freq: nFreq / 2, Time: nTime / 2}
}

// OptimalFrame sizes the window from the measured scales. The frequency
// half-extent starts at floor(bandwidth/freqBin)*100 and the time
// half-extent at floor(timescale/timeBin)*50; each multiplier is reduced
// by 2 until twice the half-extent fits the axis. ErrNonConvergentWindow
// is returned when the multiplier would reach zero or the base unit is not
// positive.
func OptimalFrame(s Scales, freqBin, timeBin float64, nFreq, nTime int) (Frame, error) {
	if !(freqBin > 0) || !(timeBin > 0) {
		return Frame{}, ErrInvalidBinSize
	}

	freq, err := shrinkToFit(baseUnit(s.Bandwidth, freqBin), defaultFreqFactor, nFreq)
	if err != nil {
		return Frame{}, fmt.Errorf("frequency axis: %w", err)
	}

	tm, err := shrinkToFit(baseUnit(s.Timescale, timeBin), defaultTimeFactor, nTime)
	if err != nil {
		return Frame{}, fmt.Errorf("time axis: %w", err)
	}

	return Frame{Freq: freq, Time: tm}, nil
}

// FrameFor dispatches on mode.
func FrameFor(mode WindowMode, s Scales, freqBin, timeBin float64, nFreq, nTime int) (Frame, error) {
	switch mode {
	case WindowOptimal:
		return OptimalFrame(s, freqBin, timeBin, nFreq, nTime)
	case WindowFull:
		return FullFrame(nFreq, nTime), nil
	default:
		return Frame{}, fmt.Errorf("%w: %d", ErrUnknownWindowMode, int(mode))
	}
}

func baseUnit(scale, bin float64) int {
	return int(math.Floor(scale/bin + unitTolerance))
}

func shrinkToFit(unit, factor, axis int) (int, error) {
	if unit <= 0 {
		return 0, fmt.Errorf("%w: base unit %d", ErrNonConvergentWindow, unit)
	}

	for ; factor > 0; factor -= factorStep {
		size := unit * factor
		if 2*size <= axis {
			return size, nil
		}
	}

	return 0, fmt.Errorf("%w: base unit %d on axis of %d samples", ErrNonConvergentWindow, unit, axis)
}
