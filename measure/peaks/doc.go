// Package peaks refines nominal peak channels of a counts spectrum to
// sub-channel positions and measures their full width at half maximum.
//
// Positions are reported in the index coordinate used by the calibration
// mapping (index 0 is channel 1).
package peaks
