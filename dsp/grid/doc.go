// Package grid provides a dense, row-major 2-D sample grid.
//
// A [Grid] is the common currency between the correlation routines in
// package conv, the scintillation estimator in measure/scint and the
// plotting helpers in render. By convention rows index frequency channels
// and columns index time bins, matching the layout of a dynamic spectrum
// or filter bank.
//
// Operations that derive a new grid (Clone, SubtractMean, Window) never
// alias the receiver's storage, so callers may keep using their input
// after handing it to an analysis routine:
//
//	g, err := grid.FromRows([][]float64{{1, 1}, {1, 3}})
//	zm := g.SubtractMean() // g is unchanged
package grid
