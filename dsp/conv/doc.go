// Package conv provides 2-D convolution and correlation routines over
// [grid.Grid] values.
//
// Two strategies are available:
//
//   - Direct: O(N*M) spatial-domain accumulation, best for small kernels (<= 64 samples)
//   - FFT: zero-padded 2-D transforms via algo-fft, rows then columns, for everything else
//
// # Usage
//
// For one-shot operations, use the simple functions. They select the
// strategy automatically:
//
//	out, err := conv.Convolve2D(image, kernel, conv.ModeSame)
//	corr, err := conv.Correlate2D(a, b, conv.ModeFull)
//	acf, err := conv.AutoCorrelate2D(image, conv.ModeSame)
//
// # Output modes
//
// All operations are linear, never circular. [ModeFull] returns the
// complete (ra+rb-1) x (ca+cb-1) result. [ModeSame] crops it to the shape
// of the first operand, starting at offset ((rb-1)/2, (cb-1)/2); for an
// autocorrelation this puts the zero lag at (rows/2, cols/2). [ModeValid]
// keeps only lags where the operands fully overlap.
//
// # Correlation
//
// Output index k along an axis corresponds to lag k - (lenB - 1) in full
// mode, see [LagFromIndex]. Auto-correlation of a zero-mean image peaks at
// zero lag:
//
//	acf, err := conv.AutoCorrelate2D(image.SubtractMean(), conv.ModeSame)
//	row, col, peak := conv.FindPeak2D(acf)
package conv
