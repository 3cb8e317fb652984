package conv

import (
	"github.com/cwbudde/algo-vecmath"

	"github.com/Hazboun6/PsrSigSim/dsp/grid"
)

// Correlate2D computes the linear cross-correlation of a and b.
// In full mode element (i, j) corresponds to lag (i-(rb-1), j-(cb-1)), see
// [LagFromIndex].
//
// Cross-correlation is convolution with the second operand flipped along
// both axes: corr(a, b) = conv(a, flip(b)).
func Correlate2D(a, b *grid.Grid, mode Mode) (*grid.Grid, error) {
	if a == nil || b == nil {
		return nil, ErrEmptyInput
	}

	full, err := convolveFull(a, flip(b))
	if err != nil {
		return nil, err
	}

	return trimToMode(full, a, b, mode)
}

// CorrelateDirect2D computes the full cross-correlation using direct
// accumulation regardless of size.
func CorrelateDirect2D(a, b *grid.Grid) (*grid.Grid, error) {
	if a == nil || b == nil {
		return nil, ErrEmptyInput
	}

	return Direct2D(a, flip(b))
}

// CorrelateFFT2D computes the full cross-correlation as
// IFFT(FFT(a) * conj(FFT(b))) over a zero-padded grid large enough to
// avoid circular wrap-around.
func CorrelateFFT2D(a, b *grid.Grid) (*grid.Grid, error) {
	if a == nil || b == nil {
		return nil, ErrEmptyInput
	}

	ra, ca := a.Dims()
	rb, cb := b.Dims()

	p, err := newPlan2D(nextPowerOf2(ra+rb-1), nextPowerOf2(ca+cb-1))
	if err != nil {
		return nil, err
	}

	aFreq := p.embed(a)
	bFreq := p.embed(b)
	if err := p.forward(aFreq); err != nil {
		return nil, err
	}
	if err := p.forward(bFreq); err != nil {
		return nil, err
	}

	for i := range aFreq {
		bConj := complex(real(bFreq[i]), -imag(bFreq[i]))
		aFreq[i] *= bConj
	}

	if err := p.inverse(aFreq); err != nil {
		return nil, err
	}

	return unwrapLags(p, aFreq, ra, ca, rb, cb), nil
}

// AutoCorrelate2D computes the auto-correlation of a.
// In full mode the zero lag sits at (rows-1, cols-1); in same mode at
// (rows/2, cols/2).
func AutoCorrelate2D(a *grid.Grid, mode Mode) (*grid.Grid, error) {
	if a == nil {
		return nil, ErrEmptyInput
	}

	rows, cols := a.Dims()

	var (
		full *grid.Grid
		err  error
	)
	if rows*cols <= directThreshold {
		full, err = Direct2D(a, flip(a))
	} else {
		full, err = autoCorrelateFFT(a)
	}
	if err != nil {
		return nil, err
	}

	return trimToMode(full, a, a, mode)
}

// autoCorrelateFFT evaluates the full auto-correlation as the inverse
// transform of the power spectrum |FFT(a)|^2.
func autoCorrelateFFT(a *grid.Grid) (*grid.Grid, error) {
	rows, cols := a.Dims()

	p, err := newPlan2D(nextPowerOf2(2*rows-1), nextPowerOf2(2*cols-1))
	if err != nil {
		return nil, err
	}

	freq := p.embed(a)
	if err := p.forward(freq); err != nil {
		return nil, err
	}

	re := make([]float64, len(freq))
	im := make([]float64, len(freq))
	for i, c := range freq {
		re[i] = real(c)
		im[i] = imag(c)
	}

	power := make([]float64, len(freq))
	vecmath.Power(power, re, im)
	for i, v := range power {
		freq[i] = complex(v, 0)
	}

	if err := p.inverse(freq); err != nil {
		return nil, err
	}

	return unwrapLags(p, freq, rows, cols, rows, cols), nil
}

// unwrapLags rearranges a circular correlation into the linear full layout.
// Negative lags are read from the end of each padded axis.
func unwrapLags(p *plan2D, circ []complex128, ra, ca, rb, cb int) *grid.Grid {
	outRows, outCols := ra+rb-1, ca+cb-1
	out := grid.New(outRows, outCols)
	dst := out.RawData()

	for i := 0; i < outRows; i++ {
		si := wrap(i-(rb-1), p.rows)
		for j := 0; j < outCols; j++ {
			sj := wrap(j-(cb-1), p.cols)
			dst[i*outCols+j] = real(circ[si*p.cols+sj])
		}
	}

	return out
}

func wrap(i, n int) int {
	i %= n
	if i < 0 {
		i += n
	}
	return i
}

// flip returns a copy of g reversed along both axes. Reversing the
// row-major storage reverses rows and columns at once.
func flip(g *grid.Grid) *grid.Grid {
	out := g.Clone()
	dst := out.RawData()
	for i, j := 0, len(dst)-1; i < j; i, j = i+1, j-1 {
		dst[i], dst[j] = dst[j], dst[i]
	}
	return out
}

// FindPeak2D finds the position and value of the maximum of a correlation
// surface. Ties resolve to the first occurrence in row-major order.
func FindPeak2D(corr *grid.Grid) (row, col int, value float64) {
	if corr == nil {
		return -1, -1, 0
	}

	row, col = corr.ArgMax()
	return row, col, corr.At(row, col)
}

// LagFromIndex converts a full-mode correlation index along one axis to a
// lag value, where lenB is the second operand's extent on that axis.
func LagFromIndex(index, lenB int) int {
	return index - (lenB - 1)
}

// IndexFromLag converts a lag value to a full-mode correlation index.
func IndexFromLag(lag, lenB int) int {
	return lag + (lenB - 1)
}
