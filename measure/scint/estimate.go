package scint

import (
	"fmt"

	"github.com/Hazboun6/PsrSigSim/dsp/conv"
	"github.com/Hazboun6/PsrSigSim/dsp/grid"
)

// degenerateRatio bounds the residual energy of a zero-mean image relative
// to its DC energy below which the image is treated as constant. Mean
// subtraction of a constant image leaves rounding noise, not structure.
const degenerateRatio = 1e-20

// Index is a (row, column) position in a grid.
type Index struct {
	Row int
	Col int
}

// Result holds the estimator output.
type Result struct {
	// Peak is the position of the ACF maximum.
	Peak Index
	// ACF is the normalized auto-correlation surface, same shape as the input.
	ACF *grid.Grid
	// FreqCrossing is the distance in rows from the peak to the frequency
	// threshold crossing.
	FreqCrossing int
	// TimeCrossing is the distance in columns from the peak to the time
	// threshold crossing.
	TimeCrossing int
	// Mean is the value subtracted from the image before correlating.
	Mean float64
}

// Estimator measures scintillation crossings with a fixed configuration.
type Estimator struct {
	cfg Config
}

// NewEstimator creates an estimator.
func NewEstimator(opts ...Option) *Estimator {
	return &Estimator{cfg: ApplyOptions(opts...)}
}

// Config returns the estimator configuration.
func (e *Estimator) Config() Config {
	return e.cfg
}

// Estimate is a one-shot estimation with the given options.
func Estimate(image *grid.Grid, opts ...Option) (*Result, error) {
	return NewEstimator(opts...).Estimate(image)
}

// Estimate computes the normalized ACF of image and its threshold crossings.
// image is not modified.
func (e *Estimator) Estimate(image *grid.Grid) (*Result, error) {
	if image == nil {
		return nil, ErrInsufficientData
	}

	rows, cols := image.Dims()
	if rows < 2 || cols < 2 {
		return nil, fmt.Errorf("%w: got %dx%d", ErrInsufficientData, rows, cols)
	}
	if !image.IsFinite() {
		return nil, ErrNonFinite
	}

	mean := image.Mean()
	zeroMean := image.SubtractMean()
	if zeroMean.Energy() <= degenerateRatio*float64(rows*cols)*mean*mean {
		return nil, ErrDegenerateInput
	}

	acf, err := conv.AutoCorrelate2D(zeroMean, conv.ModeSame)
	if err != nil {
		return nil, fmt.Errorf("scint: autocorrelation failed: %w", err)
	}

	peakRow, peakCol, peak := conv.FindPeak2D(acf)
	if !(peak > 0) {
		return nil, ErrDegenerateInput
	}

	// Divide rather than scale so the peak is exactly 1.
	data := acf.RawData()
	for i := range data {
		data[i] /= peak
	}

	freqCut := acf.Col(peakCol)[peakRow:]
	timeCut := acf.Row(peakRow)[peakCol:]

	return &Result{
		Peak:         Index{Row: peakRow, Col: peakCol},
		ACF:          acf,
		FreqCrossing: Crossing(freqCut, e.cfg.FreqThreshold),
		TimeCrossing: Crossing(timeCut, e.cfg.TimeThreshold),
		Mean:         mean,
	}, nil
}

// Crossing returns the first index k with values[k] <= threshold. When no
// value crosses, the last index is returned. An empty slice yields 0.
func Crossing(values []float64, threshold float64) int {
	for k, v := range values {
		if v <= threshold {
			return k
		}
	}
	if len(values) == 0 {
		return 0
	}
	return len(values) - 1
}

// Scales holds crossings converted to physical units.
type Scales struct {
	// Bandwidth is the scintillation bandwidth, FreqCrossing * freqBin.
	Bandwidth float64
	// Timescale is the scintillation timescale, TimeCrossing * timeBin.
	Timescale float64
}

// Scales converts the crossings to physical units. Pass timeBin = 1 to keep
// the timescale in samples.
func (r *Result) Scales(freqBin, timeBin float64) Scales {
	return Scales{
		Bandwidth: float64(r.FreqCrossing) * freqBin,
		Timescale: float64(r.TimeCrossing) * timeBin,
	}
}
