package pulsar

import (
	"errors"
	"fmt"

	"github.com/Hazboun6/PsrSigSim/dsp/grid"
)

// ErrScreenShape is returned when screen planes disagree in shape.
var ErrScreenShape = errors.New("pulsar: screen planes must share one shape")

// Screen is the scintillated intensity cube behind a propagation screen,
// indexed [frequency][x][y]. Each plane is an Nx x Ny grid for one
// frequency channel; x runs along the observer track, which maps to time.
type Screen struct {
	planes []*grid.Grid
}

// NewScreen wraps one Nx x Ny intensity plane per frequency channel.
func NewScreen(planes []*grid.Grid) (*Screen, error) {
	if len(planes) == 0 || planes[0] == nil {
		return nil, fmt.Errorf("%w: no planes", ErrScreenShape)
	}

	nx, ny := planes[0].Dims()
	for i, p := range planes {
		if p == nil {
			return nil, fmt.Errorf("%w: plane %d is nil", ErrScreenShape, i)
		}
		if r, c := p.Dims(); r != nx || c != ny {
			return nil, fmt.Errorf("%w: plane %d is %dx%d, want %dx%d", ErrScreenShape, i, r, c, nx, ny)
		}
	}

	return &Screen{planes: planes}, nil
}

// Dims returns the number of frequency channels and the screen extent.
func (s *Screen) Dims() (nFreq, nx, ny int) {
	nx, ny = s.planes[0].Dims()
	return len(s.planes), nx, ny
}

// Plane returns the intensity plane of channel i.
func (s *Screen) Plane(i int) *grid.Grid {
	return s.planes[i]
}

// Slice returns the nFreq x Nx dynamic spectrum along screen column y.
func (s *Screen) Slice(y int) (*grid.Grid, error) {
	nFreq, nx, ny := s.Dims()
	if y < 0 || y >= ny {
		return nil, fmt.Errorf("%w: column %d of %d", ErrBinRange, y, ny)
	}

	out := grid.New(nFreq, nx)
	for f, p := range s.planes {
		for x := 0; x < nx; x++ {
			out.Set(f, x, p.At(x, y))
		}
	}
	return out, nil
}

// MidSlice returns the dynamic spectrum through the middle of the screen,
// column Ny/2.
func (s *Screen) MidSlice() *grid.Grid {
	_, _, ny := s.Dims()
	out, _ := s.Slice(ny / 2)
	return out
}
