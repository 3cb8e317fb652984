package conv

import (
	"errors"
	"math"
	"testing"

	"github.com/Hazboun6/PsrSigSim/dsp/grid"
	"github.com/Hazboun6/PsrSigSim/internal/testutil"
)

func TestCorrelateDirect2D(t *testing.T) {
	a := mustGrid(t, [][]float64{{1, 2}, {3, 4}})
	b := mustGrid(t, [][]float64{{1, 0}, {0, 0}})

	// Correlating with an impulse at the origin reproduces a at lags >= 0,
	// which sit at offset (rb-1, cb-1) in full mode.
	result, err := CorrelateDirect2D(a, b)
	if err != nil {
		t.Fatalf("CorrelateDirect2D failed: %v", err)
	}

	expected := [][]float64{{0, 0, 0}, {0, 1, 2}, {0, 3, 4}}
	assertGridNear(t, result, expected, 1e-12)
}

func TestCorrelateFFT2DMatchesDirect(t *testing.T) {
	a := testutil.NoiseGrid(1, 1.0, 12, 9)
	b := testutil.NoiseGrid(2, 1.0, 5, 7)

	direct, err := CorrelateDirect2D(a, b)
	if err != nil {
		t.Fatalf("CorrelateDirect2D failed: %v", err)
	}

	fft, err := CorrelateFFT2D(a, b)
	if err != nil {
		t.Fatalf("CorrelateFFT2D failed: %v", err)
	}

	assertGridNear(t, fft, direct.Rows(), 1e-9)
}

func TestCorrelate2DAutoSelectsConsistently(t *testing.T) {
	a := testutil.NoiseGrid(3, 1.0, 16, 16)
	b := testutil.NoiseGrid(4, 1.0, 10, 10)

	auto, err := Correlate2D(a, b, ModeFull)
	if err != nil {
		t.Fatalf("Correlate2D failed: %v", err)
	}
	direct, _ := CorrelateDirect2D(a, b)

	assertGridNear(t, auto, direct.Rows(), 1e-9)
}

func TestCorrelate2DErrors(t *testing.T) {
	if _, err := Correlate2D(nil, grid.New(2, 2), ModeFull); !errors.Is(err, ErrEmptyInput) {
		t.Errorf("expected ErrEmptyInput, got %v", err)
	}
	if _, err := CorrelateFFT2D(grid.New(2, 2), nil); !errors.Is(err, ErrEmptyInput) {
		t.Errorf("expected ErrEmptyInput, got %v", err)
	}
	if _, err := AutoCorrelate2D(nil, ModeSame); !errors.Is(err, ErrEmptyInput) {
		t.Errorf("expected ErrEmptyInput, got %v", err)
	}
}

func TestAutoCorrelate2DZeroLagPosition(t *testing.T) {
	tests := []struct {
		name       string
		rows, cols int
	}{
		{"odd small", 5, 5},
		{"even small", 4, 6},
		{"odd fft", 15, 21},
		{"even fft", 16, 32},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := testutil.NoiseGrid(11, 1.0, tt.rows, tt.cols).SubtractMean()

			acf, err := AutoCorrelate2D(a, ModeSame)
			if err != nil {
				t.Fatalf("AutoCorrelate2D failed: %v", err)
			}

			rows, cols := acf.Dims()
			if rows != tt.rows || cols != tt.cols {
				t.Fatalf("dims = %dx%d, want %dx%d", rows, cols, tt.rows, tt.cols)
			}

			r, c, peak := FindPeak2D(acf)
			if r != tt.rows/2 || c != tt.cols/2 {
				t.Fatalf("peak at (%d,%d), want (%d,%d)", r, c, tt.rows/2, tt.cols/2)
			}
			if math.Abs(peak-a.Energy()) > 1e-9*a.Energy() {
				t.Fatalf("zero-lag value = %v, want energy %v", peak, a.Energy())
			}
		})
	}
}

func TestAutoCorrelate2DFFTMatchesDirect(t *testing.T) {
	a := testutil.NoiseGrid(5, 2.0, 12, 14)

	fft, err := AutoCorrelate2D(a, ModeFull)
	if err != nil {
		t.Fatalf("AutoCorrelate2D failed: %v", err)
	}
	direct, _ := CorrelateDirect2D(a, a)

	assertGridNear(t, fft, direct.Rows(), 1e-9)
}

func TestAutoCorrelate2DPeriodic(t *testing.T) {
	const period = 8
	a := testutil.SinusoidGrid(32, 64, 0, period)

	acf, err := AutoCorrelate2D(a, ModeSame)
	if err != nil {
		t.Fatalf("AutoCorrelate2D failed: %v", err)
	}

	r0, c0, _ := FindPeak2D(acf)
	row := acf.Row(r0)

	// Secondary maxima along the modulated axis are spaced one period apart.
	var maxima []int
	for j := c0; j < len(row)-1; j++ {
		if j > 0 && row[j] > row[j-1] && row[j] >= row[j+1] {
			maxima = append(maxima, j)
		}
	}
	if len(maxima) < 3 {
		t.Fatalf("found %d local maxima, want at least 3", len(maxima))
	}
	for i := 1; i < len(maxima); i++ {
		if d := maxima[i] - maxima[i-1]; d != period {
			t.Fatalf("maxima spacing %d at %v, want %d", d, maxima, period)
		}
	}
	if maxima[0] != c0 {
		t.Fatalf("first maximum at %d, want zero lag %d", maxima[0], c0)
	}
}

func TestFindPeak2DNil(t *testing.T) {
	r, c, v := FindPeak2D(nil)
	if r != -1 || c != -1 || v != 0 {
		t.Fatalf("FindPeak2D(nil) = (%d,%d,%v)", r, c, v)
	}
}

func TestLagIndexRoundTrip(t *testing.T) {
	for lag := -4; lag <= 4; lag++ {
		idx := IndexFromLag(lag, 5)
		if got := LagFromIndex(idx, 5); got != lag {
			t.Fatalf("round trip lag %d -> %d", lag, got)
		}
	}
}
