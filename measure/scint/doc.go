// Package scint estimates scintillation scales from a dynamic spectrum.
//
// The estimator removes the mean from a frequency x time intensity image,
// computes its 2-D auto-correlation function (ACF) in "same" mode,
// normalizes the ACF to a peak of exactly 1.0 and walks away from the peak
// along each axis:
//
//   - down the frequency axis until the ACF first drops to or below one half
//     (the half-maximum crossing, giving the scintillation bandwidth)
//   - along the time axis until it first drops to or below 1/e (giving the
//     scintillation timescale)
//
// When no crossing occurs before the edge of the grid the distance to the
// last sample is reported instead.
//
// # Usage
//
//	res, err := scint.Estimate(spectrum)
//	if err != nil {
//		return err
//	}
//	scales := res.Scales(freqBinMHz, timeBin)
//	frame, err := scint.FrameFor(scint.WindowOptimal, scales, freqBinMHz, timeBin, nFreq, nTime)
//
// [Analyze] bundles estimation, physical scaling, display-window sizing and
// the ACF cuts used for plotting.
//
// The input grid is never modified. Every call allocates its own working
// arrays, so concurrent calls on distinct inputs are safe.
package scint
