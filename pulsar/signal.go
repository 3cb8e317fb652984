// Package pulsar defines the simulated pulsar signal data consumed by the
// analysis and plotting packages.
//
// Signals and screens are produced by a simulator; this package only
// describes their layout and validates the sampling metadata the
// consumers depend on.
package pulsar

import (
	"errors"
	"fmt"
	"math"

	"github.com/Hazboun6/PsrSigSim/dsp/grid"
)

// Errors returned by signal accessors.
var (
	ErrNotSampled  = errors.New("pulsar: signal has no pulse sampling, need period > 0 and time bin > 0")
	ErrNoData      = errors.New("pulsar: signal has no data")
	ErrUnknownType = errors.New("pulsar: unknown signal type")
	ErrBinRange    = errors.New("pulsar: bin index out of range")
)

// SignalType distinguishes filter-bank intensities from baseband voltages.
type SignalType int

const (
	// Intensity signals hold one row per frequency channel.
	Intensity SignalType = iota
	// Voltage signals hold one row per polarization.
	Voltage
)

// String returns the type name.
func (t SignalType) String() string {
	switch t {
	case Intensity:
		return "intensity"
	case Voltage:
		return "voltage"
	default:
		return "unknown"
	}
}

// MetaData holds the simulation parameters attached to a signal.
type MetaData struct {
	// Profile is the pulse profile template over one period.
	Profile []float64
	// Period is the pulse period in ms.
	Period float64
	// DM is the dispersion measure in pc cm^-3.
	DM float64
	// DISSDecorrBW is the input diffractive scintillation bandwidth in MHz.
	DISSDecorrBW float64
	// F0 is the center frequency in MHz.
	F0 float64
	// ScreenNx is the number of time samples across the phase screen.
	ScreenNx int
}

// Signal is a simulated observation: rows are frequency channels
// (intensity) or polarizations (voltage), columns are time bins.
type Signal struct {
	Type SignalType
	Data *grid.Grid

	// TimeBinSize is the sample spacing in ms.
	TimeBinSize float64
	// FreqBinSize is the channel width in MHz.
	FreqBinSize float64
	// FirstFreq and LastFreq are the centers of the first and last channels in MHz.
	FirstFreq float64
	LastFreq  float64

	Meta MetaData
}

// Nf returns the number of rows (frequency channels or polarizations).
func (s *Signal) Nf() int {
	if s.Data == nil {
		return 0
	}
	rows, _ := s.Data.Dims()
	return rows
}

// Nt returns the number of time bins.
func (s *Signal) Nt() int {
	if s.Data == nil {
		return 0
	}
	_, cols := s.Data.Dims()
	return cols
}

// FreqArray returns the channel center frequencies, evenly spaced from
// FirstFreq to LastFreq.
func (s *Signal) FreqArray() []float64 {
	n := s.Nf()
	out := make([]float64, n)
	if n == 1 {
		out[0] = s.FirstFreq
		return out
	}
	step := (s.LastFreq - s.FirstFreq) / float64(n-1)
	for i := range out {
		out[i] = s.FirstFreq + float64(i)*step
	}
	return out
}

// SamplesPerPeriod returns floor(Period / TimeBinSize), the number of time
// bins covering one pulse.
func (s *Signal) SamplesPerPeriod() (int, error) {
	if !(s.Meta.Period > 0) || !(s.TimeBinSize > 0) {
		return 0, ErrNotSampled
	}

	n := int(math.Floor(s.Meta.Period / s.TimeBinSize))
	if n < 1 {
		return 0, fmt.Errorf("%w: period %g ms shorter than time bin %g ms", ErrNotSampled, s.Meta.Period, s.TimeBinSize)
	}
	return n, nil
}

// Validate checks the fields every consumer relies on.
func (s *Signal) Validate() error {
	if s.Data == nil {
		return ErrNoData
	}
	if s.Type != Intensity && s.Type != Voltage {
		return fmt.Errorf("%w: %d", ErrUnknownType, int(s.Type))
	}
	if _, err := s.SamplesPerPeriod(); err != nil {
		return err
	}
	return nil
}

// Row returns a copy of row i, or ErrBinRange.
func (s *Signal) Row(i int) ([]float64, error) {
	if s.Data == nil {
		return nil, ErrNoData
	}
	if i < 0 || i >= s.Nf() {
		return nil, fmt.Errorf("%w: row %d of %d", ErrBinRange, i, s.Nf())
	}
	return s.Data.Row(i), nil
}
