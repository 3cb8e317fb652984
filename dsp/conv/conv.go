package conv

import (
	"errors"

	"github.com/Hazboun6/PsrSigSim/dsp/grid"
)

// Errors returned by convolution functions.
var (
	ErrEmptyInput  = errors.New("conv: empty input")
	ErrEmptyKernel = errors.New("conv: empty kernel")
	ErrInvalidMode = errors.New("conv: invalid mode")
)

// Mode specifies the output mode for convolution and correlation.
type Mode int

const (
	// ModeFull returns the full result of shape (ra+rb-1) x (ca+cb-1).
	ModeFull Mode = iota

	// ModeSame returns output with the same shape as the first input.
	ModeSame

	// ModeValid returns only the portion where both inputs fully overlap,
	// with extent |na-nb|+1 along each axis.
	ModeValid
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case ModeFull:
		return "full"
	case ModeSame:
		return "same"
	case ModeValid:
		return "valid"
	default:
		return "unknown"
	}
}

// directThreshold is the kernel sample count up to which the direct
// algorithm beats the FFT path.
const directThreshold = 64

// Direct2D performs direct spatial-domain linear convolution of a and k.
// The result has shape (ra+rk-1) x (ca+ck-1).
func Direct2D(a, k *grid.Grid) (*grid.Grid, error) {
	if a == nil {
		return nil, ErrEmptyInput
	}
	if k == nil {
		return nil, ErrEmptyKernel
	}

	ra, ca := a.Dims()
	rk, ck := k.Dims()
	out := grid.New(ra+rk-1, ca+ck-1)

	DirectTo2D(out, a, k)
	return out, nil
}

// DirectTo2D performs direct convolution into a pre-allocated destination
// of shape (ra+rk-1) x (ca+ck-1). dst is cleared first.
func DirectTo2D(dst, a, k *grid.Grid) {
	ra, ca := a.Dims()
	rk, ck := k.Dims()
	_, cd := dst.Dims()

	out := dst.RawData()
	for i := range out {
		out[i] = 0
	}

	src := a.RawData()
	ker := k.RawData()
	for i := 0; i < ra; i++ {
		for j := 0; j < ca; j++ {
			v := src[i*ca+j]
			if v == 0 {
				continue
			}
			for m := 0; m < rk; m++ {
				row := out[(i+m)*cd+j : (i+m)*cd+j+ck]
				kr := ker[m*ck : (m+1)*ck]
				for n, kv := range kr {
					row[n] += v * kv
				}
			}
		}
	}
}

// Convolve2D performs linear 2-D convolution with automatic algorithm
// selection and crops the result according to mode.
func Convolve2D(a, k *grid.Grid, mode Mode) (*grid.Grid, error) {
	full, err := convolveFull(a, k)
	if err != nil {
		return nil, err
	}

	return trimToMode(full, a, k, mode)
}

func convolveFull(a, k *grid.Grid) (*grid.Grid, error) {
	if a == nil {
		return nil, ErrEmptyInput
	}
	if k == nil {
		return nil, ErrEmptyKernel
	}

	rk, ck := k.Dims()
	if rk*ck <= directThreshold {
		return Direct2D(a, k)
	}

	ra, ca := a.Dims()
	if ra*ca <= directThreshold {
		// Convolution commutes; keep the short operand as the kernel.
		return Direct2D(k, a)
	}

	return ConvolveFFT2D(a, k)
}

// ConvolveFFT2D performs full linear convolution using zero-padded 2-D FFTs.
func ConvolveFFT2D(a, k *grid.Grid) (*grid.Grid, error) {
	if a == nil {
		return nil, ErrEmptyInput
	}
	if k == nil {
		return nil, ErrEmptyKernel
	}

	ra, ca := a.Dims()
	rk, ck := k.Dims()
	outRows, outCols := ra+rk-1, ca+ck-1

	p, err := newPlan2D(nextPowerOf2(outRows), nextPowerOf2(outCols))
	if err != nil {
		return nil, err
	}

	aFreq := p.embed(a)
	kFreq := p.embed(k)
	if err := p.forward(aFreq); err != nil {
		return nil, err
	}
	if err := p.forward(kFreq); err != nil {
		return nil, err
	}

	for i := range aFreq {
		aFreq[i] *= kFreq[i]
	}

	if err := p.inverse(aFreq); err != nil {
		return nil, err
	}

	out := grid.New(outRows, outCols)
	dst := out.RawData()
	for i := 0; i < outRows; i++ {
		for j := 0; j < outCols; j++ {
			dst[i*outCols+j] = real(aFreq[i*p.cols+j])
		}
	}

	return out, nil
}

// trimToMode extracts the appropriate portion of a full 2-D result for
// operands a (first) and b (second).
func trimToMode(full, a, b *grid.Grid, mode Mode) (*grid.Grid, error) {
	ra, ca := a.Dims()
	rb, cb := b.Dims()

	switch mode {
	case ModeFull:
		return full, nil
	case ModeSame:
		r0 := (rb - 1) / 2
		c0 := (cb - 1) / 2
		out, _ := full.Window(r0, r0+ra, c0, c0+ca)
		return out, nil
	case ModeValid:
		r0, r1 := validRange(ra, rb)
		c0, c1 := validRange(ca, cb)
		out, _ := full.Window(r0, r1, c0, c1)
		return out, nil
	default:
		return nil, ErrInvalidMode
	}
}

// validRange returns the fully overlapping index range along one axis.
func validRange(na, nb int) (lo, hi int) {
	if na >= nb {
		return nb - 1, na
	}
	return na - 1, nb
}

// nextPowerOf2 returns the next power of 2 >= n.
func nextPowerOf2(n int) int {
	if n <= 1 {
		return 1
	}
	p := 1
	for p < n {
		p *= 2
	}
	return p
}
