package conv

import (
	"errors"
	"math"
	"testing"

	"github.com/Hazboun6/PsrSigSim/dsp/grid"
	"github.com/Hazboun6/PsrSigSim/internal/testutil"
)

func mustGrid(t *testing.T, rows [][]float64) *grid.Grid {
	t.Helper()
	g, err := grid.FromRows(rows)
	if err != nil {
		t.Fatalf("grid.FromRows: %v", err)
	}
	return g
}

func assertGridNear(t *testing.T, got *grid.Grid, want [][]float64, tol float64) {
	t.Helper()
	rows, cols := got.Dims()
	if rows != len(want) || cols != len(want[0]) {
		t.Fatalf("dims = %dx%d, want %dx%d", rows, cols, len(want), len(want[0]))
	}
	for i := range want {
		for j := range want[i] {
			if math.Abs(got.At(i, j)-want[i][j]) > tol {
				t.Errorf("[%d][%d] = %v, want %v", i, j, got.At(i, j), want[i][j])
			}
		}
	}
}

func TestDirect2D(t *testing.T) {
	tests := []struct {
		name     string
		a        [][]float64
		k        [][]float64
		expected [][]float64
	}{
		{
			name:     "identity kernel",
			a:        [][]float64{{1, 2}, {3, 4}},
			k:        [][]float64{{1}},
			expected: [][]float64{{1, 2}, {3, 4}},
		},
		{
			name:     "box 2x2",
			a:        [][]float64{{1, 2}, {3, 4}},
			k:        [][]float64{{1, 1}, {1, 1}},
			expected: [][]float64{{1, 3, 2}, {4, 10, 6}, {3, 7, 4}},
		},
		{
			name:     "shifted impulse",
			a:        [][]float64{{1, 2}, {3, 4}},
			k:        [][]float64{{0, 0}, {0, 1}},
			expected: [][]float64{{0, 0, 0}, {0, 1, 2}, {0, 3, 4}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := Direct2D(mustGrid(t, tt.a), mustGrid(t, tt.k))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			assertGridNear(t, result, tt.expected, 1e-12)
		})
	}
}

func TestDirect2DErrors(t *testing.T) {
	_, err := Direct2D(nil, grid.New(1, 1))
	if !errors.Is(err, ErrEmptyInput) {
		t.Errorf("expected ErrEmptyInput, got %v", err)
	}

	_, err = Direct2D(grid.New(1, 1), nil)
	if !errors.Is(err, ErrEmptyKernel) {
		t.Errorf("expected ErrEmptyKernel, got %v", err)
	}
}

func TestConvolveFFT2DMatchesDirect(t *testing.T) {
	a := testutil.NoiseGrid(7, 1.0, 13, 11)
	k := testutil.NoiseGrid(8, 1.0, 9, 10)

	direct, err := Direct2D(a, k)
	if err != nil {
		t.Fatalf("Direct2D failed: %v", err)
	}
	fft, err := ConvolveFFT2D(a, k)
	if err != nil {
		t.Fatalf("ConvolveFFT2D failed: %v", err)
	}

	assertGridNear(t, fft, direct.Rows(), 1e-9)
}

func TestConvolve2DModes(t *testing.T) {
	a := mustGrid(t, [][]float64{{1, 2, 3}, {4, 5, 6}, {7, 8, 9}})
	k := mustGrid(t, [][]float64{{0, 0, 0}, {0, 1, 0}, {0, 0, 0}})

	tests := []struct {
		mode     Mode
		expected [][]float64
	}{
		{ModeSame, [][]float64{{1, 2, 3}, {4, 5, 6}, {7, 8, 9}}},
		{ModeValid, [][]float64{{5}}},
	}

	for _, tt := range tests {
		t.Run(tt.mode.String(), func(t *testing.T) {
			out, err := Convolve2D(a, k, tt.mode)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			assertGridNear(t, out, tt.expected, 1e-12)
		})
	}

	full, err := Convolve2D(a, k, ModeFull)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r, c := full.Dims(); r != 5 || c != 5 {
		t.Fatalf("full dims = %dx%d, want 5x5", r, c)
	}

	if _, err := Convolve2D(a, k, Mode(42)); !errors.Is(err, ErrInvalidMode) {
		t.Fatalf("expected ErrInvalidMode, got %v", err)
	}
}

func TestModeString(t *testing.T) {
	if ModeFull.String() != "full" || ModeSame.String() != "same" || ModeValid.String() != "valid" {
		t.Fatal("unexpected mode names")
	}
	if Mode(9).String() != "unknown" {
		t.Fatalf("Mode(9) = %q", Mode(9).String())
	}
}

func TestNextPowerOf2(t *testing.T) {
	tests := []struct{ in, want int }{
		{0, 1}, {1, 1}, {2, 2}, {3, 4}, {17, 32}, {64, 64},
	}
	for _, tt := range tests {
		if got := nextPowerOf2(tt.in); got != tt.want {
			t.Errorf("nextPowerOf2(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}
