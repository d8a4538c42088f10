// Package shift estimates the global channel offset between two spectra from
// the peak of their FFT cross-correlation.
//
// A positive lag means the candidate spectrum sits at higher channels than
// the reference. The estimate is a single rigid offset; a stretched spectrum
// reports the offset that best aligns its overall shape.
package shift
