package grid

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Errors returned by grid constructors.
var (
	ErrEmpty          = errors.New("grid: empty input")
	ErrRagged         = errors.New("grid: rows have different lengths")
	ErrLengthMismatch = errors.New("grid: data length does not match shape")
)

// Grid is a dense rows x cols matrix of float64 samples stored row-major.
type Grid struct {
	rows int
	cols int
	data []float64
}

// New allocates a zero-filled grid. It panics if either dimension is not
// positive.
func New(rows, cols int) *Grid {
	if rows <= 0 || cols <= 0 {
		panic(fmt.Sprintf("grid: invalid shape %dx%d", rows, cols))
	}

	return &Grid{rows: rows, cols: cols, data: make([]float64, rows*cols)}
}

// FromRows copies a slice-of-rows representation into a new grid.
func FromRows(rows [][]float64) (*Grid, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, ErrEmpty
	}

	cols := len(rows[0])
	g := New(len(rows), cols)
	for i, row := range rows {
		if len(row) != cols {
			return nil, fmt.Errorf("%w: row %d has %d values, want %d", ErrRagged, i, len(row), cols)
		}
		copy(g.data[i*cols:(i+1)*cols], row)
	}

	return g, nil
}

// FromData copies row-major data of the given shape into a new grid.
func FromData(rows, cols int, data []float64) (*Grid, error) {
	if rows <= 0 || cols <= 0 {
		return nil, ErrEmpty
	}
	if len(data) != rows*cols {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrLengthMismatch, len(data), rows*cols)
	}

	g := New(rows, cols)
	copy(g.data, data)
	return g, nil
}

// Dims returns the number of rows and columns.
func (g *Grid) Dims() (rows, cols int) {
	return g.rows, g.cols
}

// At returns the sample at row i, column j.
func (g *Grid) At(i, j int) float64 {
	return g.data[i*g.cols+j]
}

// Set stores v at row i, column j.
func (g *Grid) Set(i, j int, v float64) {
	g.data[i*g.cols+j] = v
}

// RawData returns the backing row-major slice. Writes through it modify g.
func (g *Grid) RawData() []float64 {
	return g.data
}

// Clone returns a deep copy of g.
func (g *Grid) Clone() *Grid {
	out := &Grid{rows: g.rows, cols: g.cols, data: make([]float64, len(g.data))}
	copy(out.data, g.data)
	return out
}

// Row returns a copy of row i.
func (g *Grid) Row(i int) []float64 {
	out := make([]float64, g.cols)
	copy(out, g.data[i*g.cols:(i+1)*g.cols])
	return out
}

// Col returns a copy of column j.
func (g *Grid) Col(j int) []float64 {
	out := make([]float64, g.rows)
	for i := range out {
		out[i] = g.data[i*g.cols+j]
	}
	return out
}

// Rows returns the grid as a freshly allocated slice of rows.
func (g *Grid) Rows() [][]float64 {
	out := make([][]float64, g.rows)
	for i := range out {
		out[i] = g.Row(i)
	}
	return out
}

// Mean returns the arithmetic mean of all samples.
func (g *Grid) Mean() float64 {
	return stat.Mean(g.data, nil)
}

// Max returns the largest sample.
func (g *Grid) Max() float64 {
	return floats.Max(g.data)
}

// ArgMax returns the position of the largest sample. Ties resolve to the
// first occurrence in row-major order.
func (g *Grid) ArgMax() (row, col int) {
	idx := floats.MaxIdx(g.data)
	return idx / g.cols, idx % g.cols
}

// SubtractMean returns a zero-mean copy of g. The receiver is not modified.
func (g *Grid) SubtractMean() *Grid {
	out := g.Clone()
	floats.AddConst(-g.Mean(), out.data)
	return out
}

// Scale multiplies every sample by s in place.
func (g *Grid) Scale(s float64) {
	floats.Scale(s, g.data)
}

// Energy returns the sum of squared samples.
func (g *Grid) Energy() float64 {
	return floats.Dot(g.data, g.data)
}

// IsFinite reports whether every sample is neither NaN nor infinite.
func (g *Grid) IsFinite() bool {
	for _, v := range g.data {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Window copies rows [r0, r1) and columns [c0, c1) into a new grid.
// Bounds are clamped to the grid; ok is false when the clamped window is
// empty.
func (g *Grid) Window(r0, r1, c0, c1 int) (w *Grid, ok bool) {
	r0, r1 = clampRange(r0, r1, g.rows)
	c0, c1 = clampRange(c0, c1, g.cols)
	if r1 <= r0 || c1 <= c0 {
		return nil, false
	}

	w = New(r1-r0, c1-c0)
	for i := r0; i < r1; i++ {
		copy(w.data[(i-r0)*w.cols:(i-r0+1)*w.cols], g.data[i*g.cols+c0:i*g.cols+c1])
	}
	return w, true
}

func clampRange(lo, hi, n int) (int, int) {
	if lo < 0 {
		lo = 0
	}
	if hi > n {
		hi = n
	}
	return lo, hi
}
