// Package calib fits channel-to-channel calibration polynomials from paired
// peak positions.
//
// Given the positions of the same K peaks in a reference spectrum and in a
// drifted spectrum, [Fit] solves the ordinary least-squares problem
//
//	min Σ_j (y_j - poly(x_j))²
//
// via a QR factorization of the Vandermonde design matrix. [FitPair] fits the
// forward (reference → shifted) and inverse (shifted → reference) mappings
// independently. The two are generally not exact inverses of each other when
// K exceeds degree+1; callers that need both keep both.
package calib
