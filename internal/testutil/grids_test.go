package testutil

import (
	"math"
	"testing"
)

func TestNoiseGridReproducible(t *testing.T) {
	a := NoiseGrid(42, 1.0, 4, 5)
	b := NoiseGrid(42, 1.0, 4, 5)
	RequireGridEqual(t, a, b)

	for _, v := range a.RawData() {
		if v < -1 || v >= 1 {
			t.Fatalf("value %v out of range", v)
		}
	}
}

func TestNoiseGridDifferentSeeds(t *testing.T) {
	a := NoiseGrid(1, 1.0, 4, 4)
	b := NoiseGrid(2, 1.0, 4, 4)

	d, err := MaxAbsDiff(a.RawData(), b.RawData())
	if err != nil {
		t.Fatalf("MaxAbsDiff error: %v", err)
	}
	if d == 0 {
		t.Fatal("different seeds produced identical noise")
	}
}

func TestImpulseGrid(t *testing.T) {
	g := ImpulseGrid(5, 5, 2, 2, 4)
	if g.At(2, 2) != 4 {
		t.Fatalf("center = %v, want 4", g.At(2, 2))
	}
	if g.Energy() != 16 {
		t.Fatalf("energy = %v, want 16", g.Energy())
	}

	outside := ImpulseGrid(3, 3, 7, 0, 1)
	if outside.Energy() != 0 {
		t.Fatal("out-of-range impulse should leave grid empty")
	}
}

func TestConstGrid(t *testing.T) {
	g := ConstGrid(2, 3, 1.5)
	if g.Mean() != 1.5 {
		t.Fatalf("mean = %v, want 1.5", g.Mean())
	}
}

func TestSinusoidGrid(t *testing.T) {
	g := SinusoidGrid(3, 8, 0, 4)
	RequireSliceNearlyEqual(t, g.Row(0), g.Row(2), 0)
	if math.Abs(g.At(0, 1)-1) > 1e-12 {
		t.Fatalf("g[0][1] = %v, want 1", g.At(0, 1))
	}
}

func TestGaussianBlobGridPeak(t *testing.T) {
	g := GaussianBlobGrid(9, 11, 2, 3)
	r, c := g.ArgMax()
	if r != 4 || c != 5 {
		t.Fatalf("peak at (%d,%d), want (4,5)", r, c)
	}
	if g.At(4, 5) != 1 {
		t.Fatalf("peak value = %v, want 1", g.At(4, 5))
	}
}

func TestMaxAbsDiffLengthMismatch(t *testing.T) {
	_, err := MaxAbsDiff([]float64{1}, []float64{1, 2})
	if err == nil {
		t.Fatal("expected error for length mismatch")
	}
}
