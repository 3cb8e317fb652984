package scint

import "errors"

// Errors returned by the estimator and the display-window policy.
var (
	// ErrInsufficientData is returned for grids with fewer than 2 rows or
	// 2 columns, where a one-sided crossing search is meaningless.
	ErrInsufficientData = errors.New("scint: need at least 2 rows and 2 columns")

	// ErrDegenerateInput is returned when the ACF maximum is not positive,
	// for example for a constant image.
	ErrDegenerateInput = errors.New("scint: degenerate input, ACF maximum is not positive")

	// ErrNonFinite is returned when the image contains NaN or Inf samples.
	ErrNonFinite = errors.New("scint: input contains non-finite samples")

	// ErrNonConvergentWindow is returned when the optimal display window
	// cannot be shrunk to fit inside the image.
	ErrNonConvergentWindow = errors.New("scint: display window does not fit the grid")

	// ErrUnknownWindowMode is returned for unrecognized window mode names.
	ErrUnknownWindowMode = errors.New("scint: unknown window mode")

	// ErrInvalidBinSize is returned for non-positive bin widths.
	ErrInvalidBinSize = errors.New("scint: bin size must be > 0")
)
