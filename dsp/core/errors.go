package core

import "errors"

// Errors shared by the drift-correction packages. Callers match them with
// errors.Is; packages wrap them with context via fmt.Errorf("...: %w", err).
var (
	// ErrShapeMismatch is returned when two spectra, or two peak lists, that
	// must be index-aligned have different lengths.
	ErrShapeMismatch = errors.New("drift: shape mismatch")

	// ErrInsufficientPoints is returned when a calibration fit has fewer
	// point pairs than the polynomial has coefficients (or fewer than two).
	ErrInsufficientPoints = errors.New("drift: insufficient calibration points")

	// ErrDegenerateFit is returned when the calibration design matrix is
	// rank deficient, e.g. all peak positions identical.
	ErrDegenerateFit = errors.New("drift: degenerate calibration fit")

	// ErrInvalidDegree is returned for a negative polynomial degree.
	ErrInvalidDegree = errors.New("drift: invalid polynomial degree")

	// ErrInvalidStep is returned when the rebin step size is not a finite
	// positive number, or is below rebin.MinStep (1e-12).
	ErrInvalidStep = errors.New("drift: step must be finite and > 0")

	// ErrIndexOutOfRange signals a broken rebin invariant: a sample position
	// landed outside the source spectrum after clamping.
	ErrIndexOutOfRange = errors.New("drift: source index out of range")

	// ErrNonFinite is returned when a NaN or Inf appears where finite values
	// are required.
	ErrNonFinite = errors.New("drift: NaN or Inf encountered")

	// ErrNegativeCount is returned when a spectrum contains a negative count.
	ErrNegativeCount = errors.New("drift: negative count")
)
