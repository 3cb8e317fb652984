package pulsar

import (
	"errors"
	"testing"

	"github.com/Hazboun6/PsrSigSim/dsp/grid"
)

func TestScreenMidSlice(t *testing.T) {
	planes := make([]*grid.Grid, 3)
	for f := range planes {
		planes[f] = grid.New(4, 5)
		for x := 0; x < 4; x++ {
			for y := 0; y < 5; y++ {
				planes[f].Set(x, y, float64(100*f+10*x+y))
			}
		}
	}

	s, err := NewScreen(planes)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	nf, nx, ny := s.Dims()
	if nf != 3 || nx != 4 || ny != 5 {
		t.Fatalf("dims = %d,%d,%d", nf, nx, ny)
	}

	mid := s.MidSlice()
	rows, cols := mid.Dims()
	if rows != 3 || cols != 4 {
		t.Fatalf("slice dims = %dx%d, want 3x4", rows, cols)
	}
	// Column y = ny/2 = 2.
	if got := mid.At(2, 3); got != 232 {
		t.Fatalf("slice[2][3] = %v, want 232", got)
	}
	if s.Plane(1).At(0, 0) != 100 {
		t.Fatal("Plane returned the wrong channel")
	}

	if _, err := s.Slice(5); !errors.Is(err, ErrBinRange) {
		t.Fatalf("expected ErrBinRange, got %v", err)
	}
}

func TestNewScreenErrors(t *testing.T) {
	if _, err := NewScreen(nil); !errors.Is(err, ErrScreenShape) {
		t.Fatalf("expected ErrScreenShape, got %v", err)
	}

	_, err := NewScreen([]*grid.Grid{grid.New(2, 2), grid.New(2, 3)})
	if !errors.Is(err, ErrScreenShape) {
		t.Fatalf("expected ErrScreenShape, got %v", err)
	}

	_, err = NewScreen([]*grid.Grid{grid.New(2, 2), nil})
	if !errors.Is(err, ErrScreenShape) {
		t.Fatalf("expected ErrScreenShape, got %v", err)
	}
}
