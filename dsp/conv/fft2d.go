package conv

import (
	"fmt"

	algofft "github.com/MeKo-Christian/algo-fft"

	"github.com/Hazboun6/PsrSigSim/dsp/grid"
)

// plan2D performs separable 2-D transforms on row-major complex data:
// a 1-D transform over every row, then over every column.
type plan2D struct {
	rows int
	cols int

	rowPlan *algofft.Plan[complex128]
	colPlan *algofft.Plan[complex128]

	// Column scratch buffer
	col []complex128
}

func newPlan2D(rows, cols int) (*plan2D, error) {
	rowPlan, err := algofft.NewPlan64(cols)
	if err != nil {
		return nil, fmt.Errorf("conv: failed to create FFT plan: %w", err)
	}

	colPlan := rowPlan
	if rows != cols {
		colPlan, err = algofft.NewPlan64(rows)
		if err != nil {
			return nil, fmt.Errorf("conv: failed to create FFT plan: %w", err)
		}
	}

	return &plan2D{
		rows:    rows,
		cols:    cols,
		rowPlan: rowPlan,
		colPlan: colPlan,
		col:     make([]complex128, rows),
	}, nil
}

// embed zero-pads g into the top-left corner of a rows x cols buffer.
func (p *plan2D) embed(g *grid.Grid) []complex128 {
	gr, gc := g.Dims()
	src := g.RawData()
	out := make([]complex128, p.rows*p.cols)
	for i := 0; i < gr; i++ {
		for j := 0; j < gc; j++ {
			out[i*p.cols+j] = complex(src[i*gc+j], 0)
		}
	}
	return out
}

func (p *plan2D) forward(data []complex128) error {
	if err := p.transform(data, false); err != nil {
		return fmt.Errorf("conv: forward FFT failed: %w", err)
	}
	return nil
}

// inverse applies the normalized inverse transform.
func (p *plan2D) inverse(data []complex128) error {
	if err := p.transform(data, true); err != nil {
		return fmt.Errorf("conv: inverse FFT failed: %w", err)
	}
	return nil
}

func (p *plan2D) transform(data []complex128, inverse bool) error {
	for i := 0; i < p.rows; i++ {
		row := data[i*p.cols : (i+1)*p.cols]
		if err := apply(p.rowPlan, row, inverse); err != nil {
			return err
		}
	}

	for j := 0; j < p.cols; j++ {
		for i := 0; i < p.rows; i++ {
			p.col[i] = data[i*p.cols+j]
		}
		if err := apply(p.colPlan, p.col, inverse); err != nil {
			return err
		}
		for i := 0; i < p.rows; i++ {
			data[i*p.cols+j] = p.col[i]
		}
	}

	return nil
}

func apply(plan *algofft.Plan[complex128], buf []complex128, inverse bool) error {
	if inverse {
		return plan.Inverse(buf, buf)
	}
	return plan.Forward(buf, buf)
}
