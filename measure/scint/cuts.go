package scint

import "github.com/Hazboun6/PsrSigSim/dsp/grid"

// Extent is the physical bounding box of a grid, x along columns and y
// along rows.
type Extent struct {
	XMin, XMax float64
	YMin, YMax float64
}

// Cuts are the ACF slices through the peak, restricted to a display frame
// and clamped to the grid.
type Cuts struct {
	Frame Frame

	// FreqLag[k] is the frequency lag of FreqACF[k], in freqBin units.
	FreqLag []float64
	FreqACF []float64

	// TimeLag[k] is the time lag of TimeACF[k], in timeBin units.
	TimeLag []float64
	TimeACF []float64

	// Window is the ACF sub-grid covered by the frame, nil when empty.
	Window *grid.Grid
	// WindowExtent is the lag range of Window.
	WindowExtent Extent
}

// Cuts extracts the frequency and time ACF slices through the peak over
// [peak-frame, peak+frame) on each axis.
func (r *Result) Cuts(frame Frame, freqBin, timeBin float64) Cuts {
	rows, cols := r.ACF.Dims()
	r0, r1 := clampSpan(r.Peak.Row-frame.Freq, r.Peak.Row+frame.Freq, rows)
	c0, c1 := clampSpan(r.Peak.Col-frame.Time, r.Peak.Col+frame.Time, cols)

	out := Cuts{Frame: frame}

	for i := r0; i < r1; i++ {
		out.FreqLag = append(out.FreqLag, float64(i-r.Peak.Row)*freqBin)
		out.FreqACF = append(out.FreqACF, r.ACF.At(i, r.Peak.Col))
	}
	for j := c0; j < c1; j++ {
		out.TimeLag = append(out.TimeLag, float64(j-r.Peak.Col)*timeBin)
		out.TimeACF = append(out.TimeACF, r.ACF.At(r.Peak.Row, j))
	}

	if w, ok := r.ACF.Window(r0, r1, c0, c1); ok {
		out.Window = w
		out.WindowExtent = Extent{
			XMin: float64(c0-r.Peak.Col) * timeBin,
			XMax: float64(c1-r.Peak.Col) * timeBin,
			YMin: float64(r0-r.Peak.Row) * freqBin,
			YMax: float64(r1-r.Peak.Row) * freqBin,
		}
	}

	return out
}

func clampSpan(lo, hi, n int) (int, int) {
	if lo < 0 {
		lo = 0
	}
	if hi > n {
		hi = n
	}
	if hi < lo {
		hi = lo
	}
	return lo, hi
}
