// Package signal generates deterministic synthetic inputs for the
// scintillation analysis: scintillated dynamic spectra, propagation screens
// and filter-bank pulse trains.
package signal

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/cwbudde/algo-vecmath"

	"github.com/Hazboun6/PsrSigSim/dsp/conv"
	"github.com/Hazboun6/PsrSigSim/dsp/grid"
	"github.com/Hazboun6/PsrSigSim/pulsar"
)

// kernelSigmas is the kernel half-width in standard deviations.
const kernelSigmas = 3

// Generator creates deterministic signals from a seed.
type Generator struct {
	seed int64
}

// Option configures a Generator.
type Option func(*Generator)

// WithSeed sets deterministic random seed for noise generation.
func WithSeed(seed int64) Option {
	return func(g *Generator) {
		g.seed = seed
	}
}

// NewGenerator creates a configured signal generator.
func NewGenerator(opts ...Option) *Generator {
	g := &Generator{seed: 1}
	for _, opt := range opts {
		if opt != nil {
			opt(g)
		}
	}
	return g
}

// Seed returns the generator seed.
func (g *Generator) Seed() int64 {
	return g.seed
}

// SetSeed updates the generator seed.
func (g *Generator) SetSeed(seed int64) {
	g.seed = seed
}

// DynamicSpectrum generates an nFreq x nTime scintillated intensity with
// unit mean. A complex Gaussian field is smoothed by a Gaussian kernel with
// standard deviations freqScale channels and timeScale samples, and the
// intensity is its squared magnitude. The intensity ACF then falls off as
// exp(-lag^2 / (2*scale^2)) along each axis, reaching one half at about
// 1.18*scale and 1/e at about 1.41*scale.
func (g *Generator) DynamicSpectrum(nFreq, nTime int, freqScale, timeScale float64) (*grid.Grid, error) {
	rng := rand.New(rand.NewSource(g.seed))
	return dynamicSpectrum(rng, nFreq, nTime, freqScale, timeScale)
}

// Screen generates an nFreq x nx x ny screen. Every screen column is an
// independent DynamicSpectrum realization along x.
func (g *Generator) Screen(nFreq, nx, ny int, freqScale, timeScale float64) (*pulsar.Screen, error) {
	if nFreq <= 0 || nx <= 0 || ny <= 0 {
		return nil, fmt.Errorf("screen shape must be > 0: %dx%dx%d", nFreq, nx, ny)
	}

	rng := rand.New(rand.NewSource(g.seed))
	planes := make([]*grid.Grid, nFreq)
	for f := range planes {
		planes[f] = grid.New(nx, ny)
	}

	for y := 0; y < ny; y++ {
		ds, err := dynamicSpectrum(rng, nFreq, nx, freqScale, timeScale)
		if err != nil {
			return nil, err
		}
		for f := 0; f < nFreq; f++ {
			for x := 0; x < nx; x++ {
				planes[f].Set(x, y, ds.At(f, x))
			}
		}
	}

	return pulsar.NewScreen(planes)
}

func dynamicSpectrum(rng *rand.Rand, nFreq, nTime int, freqScale, timeScale float64) (*grid.Grid, error) {
	if nFreq <= 0 || nTime <= 0 {
		return nil, fmt.Errorf("dynamic spectrum shape must be > 0: %dx%d", nFreq, nTime)
	}
	if !(freqScale > 0) || !(timeScale > 0) {
		return nil, fmt.Errorf("dynamic spectrum scales must be > 0: %f, %f", freqScale, timeScale)
	}

	kernel := gaussianKernel(freqScale, timeScale)

	re, err := conv.Convolve2D(gaussianGrid(rng, nFreq, nTime), kernel, conv.ModeSame)
	if err != nil {
		return nil, fmt.Errorf("dynamic spectrum smoothing: %w", err)
	}
	im, err := conv.Convolve2D(gaussianGrid(rng, nFreq, nTime), kernel, conv.ModeSame)
	if err != nil {
		return nil, fmt.Errorf("dynamic spectrum smoothing: %w", err)
	}

	out := grid.New(nFreq, nTime)
	data := out.RawData()
	vecmath.Power(data, re.RawData(), im.RawData())

	if sum := vecmath.Sum(data); sum > 0 {
		vecmath.ScaleBlockInPlace(data, float64(len(data))/sum)
	}

	return out, nil
}

func gaussianGrid(rng *rand.Rand, rows, cols int) *grid.Grid {
	g := grid.New(rows, cols)
	data := g.RawData()
	for i := range data {
		data[i] = rng.NormFloat64()
	}
	return g
}

// gaussianKernel returns a separable 2-D Gaussian truncated at
// kernelSigmas standard deviations, with an odd extent on each axis.
func gaussianKernel(sigmaRow, sigmaCol float64) *grid.Grid {
	rowTaps := gaussianTaps(sigmaRow)
	colTaps := gaussianTaps(sigmaCol)

	k := grid.New(len(rowTaps), len(colTaps))
	for i, wr := range rowTaps {
		for j, wc := range colTaps {
			k.Set(i, j, wr*wc)
		}
	}
	return k
}

func gaussianTaps(sigma float64) []float64 {
	half := int(math.Ceil(kernelSigmas * sigma))
	taps := make([]float64, 2*half+1)
	for i := range taps {
		d := float64(i - half)
		taps[i] = math.Exp(-d * d / (2 * sigma * sigma))
	}
	return taps
}

// GaussianProfile returns an n-bin pulse profile with a Gaussian peak of
// unit height at phase center and width in phase units.
func GaussianProfile(n int, center, width float64) ([]float64, error) {
	if n <= 0 {
		return nil, fmt.Errorf("profile bins must be > 0: %d", n)
	}
	if !(width > 0) {
		return nil, fmt.Errorf("profile width must be > 0: %f", width)
	}

	out := make([]float64, n)
	for i := range out {
		d := float64(i)/float64(n) - center
		out[i] = math.Exp(-d * d / (2 * width * width))
	}
	return out, nil
}

// PulseTrain repeats profile for pulses periods in each of nChan channels
// and adds uniform noise in [-noise, noise]. The profile is normalized to
// unit peak first.
func (g *Generator) PulseTrain(profile []float64, nChan, pulses int, noise float64) (*grid.Grid, error) {
	if nChan <= 0 || pulses <= 0 {
		return nil, fmt.Errorf("pulse train shape must be > 0: %d channels, %d pulses", nChan, pulses)
	}

	template, err := Normalize(profile, 1)
	if err != nil {
		return nil, fmt.Errorf("pulse train profile: %w", err)
	}

	nBins := len(template) * pulses
	out := grid.New(nChan, nBins)
	data := out.RawData()
	for c := 0; c < nChan; c++ {
		row := data[c*nBins : (c+1)*nBins]
		for p := 0; p < pulses; p++ {
			copy(row[p*len(template):], template)
		}
	}

	if noise > 0 {
		n, err := g.WhiteNoise(noise, len(data))
		if err != nil {
			return nil, err
		}
		vecmath.AddBlockInPlace(data, n)
	}

	return out, nil
}

// WhiteNoise generates deterministic white noise in [-amplitude, amplitude].
func (g *Generator) WhiteNoise(amplitude float64, samples int) ([]float64, error) {
	if samples <= 0 {
		return nil, fmt.Errorf("noise samples must be > 0: %d", samples)
	}
	if amplitude < 0 {
		return nil, fmt.Errorf("noise amplitude must be >= 0: %f", amplitude)
	}
	out := make([]float64, samples)
	rng := rand.New(rand.NewSource(g.seed))
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}
	return out, nil
}

// Normalize scales data to target peak amplitude and returns a new slice.
func Normalize(data []float64, targetPeak float64) ([]float64, error) {
	if targetPeak < 0 {
		return nil, fmt.Errorf("normalize target peak must be >= 0: %f", targetPeak)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("normalize input must not be empty")
	}

	out := make([]float64, len(data))
	maxAbs := vecmath.MaxAbs(data)
	if maxAbs == 0 || targetPeak == 0 {
		return out, nil
	}

	vecmath.ScaleBlock(out, data, targetPeak/maxAbs)
	return out, nil
}
