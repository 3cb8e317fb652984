package testutil

import (
	"math"
	"math/rand"

	"github.com/Hazboun6/PsrSigSim/dsp/grid"
)

// NoiseGrid generates a rows x cols grid of uniform noise in
// [-amplitude, amplitude) with a fixed seed for reproducibility.
func NoiseGrid(seed int64, amplitude float64, rows, cols int) *grid.Grid {
	g := grid.New(rows, cols)
	rng := rand.New(rand.NewSource(seed))
	data := g.RawData()
	for i := range data {
		data[i] = (rng.Float64()*2 - 1) * amplitude
	}
	return g
}

// ImpulseGrid generates a zero grid with value at (row, col).
func ImpulseGrid(rows, cols, row, col int, value float64) *grid.Grid {
	g := grid.New(rows, cols)
	if row >= 0 && row < rows && col >= 0 && col < cols {
		g.Set(row, col, value)
	}
	return g
}

// ConstGrid generates a grid filled with value.
func ConstGrid(rows, cols int, value float64) *grid.Grid {
	g := grid.New(rows, cols)
	data := g.RawData()
	for i := range data {
		data[i] = value
	}
	return g
}

// SinusoidGrid generates a plane wave sin(2*pi*(i/rowPeriod + j/colPeriod)).
// A zero period leaves that axis constant.
func SinusoidGrid(rows, cols int, rowPeriod, colPeriod float64) *grid.Grid {
	var fr, fc float64
	if rowPeriod > 0 {
		fr = 1 / rowPeriod
	}
	if colPeriod > 0 {
		fc = 1 / colPeriod
	}

	g := grid.New(rows, cols)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			g.Set(i, j, math.Sin(2*math.Pi*(float64(i)*fr+float64(j)*fc)))
		}
	}
	return g
}

// GaussianBlobGrid generates exp(-(di/sigmaRow)^2/2 - (dj/sigmaCol)^2/2)
// centered at (rows/2, cols/2).
func GaussianBlobGrid(rows, cols int, sigmaRow, sigmaCol float64) *grid.Grid {
	g := grid.New(rows, cols)
	for i := 0; i < rows; i++ {
		di := float64(i-rows/2) / sigmaRow
		for j := 0; j < cols; j++ {
			dj := float64(j-cols/2) / sigmaCol
			g.Set(i, j, math.Exp(-0.5*(di*di+dj*dj)))
		}
	}
	return g
}
