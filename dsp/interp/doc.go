// Package interp provides the small interpolation primitives used to read
// spectra between channel centres.
//
//   - [Linear]:    2-point linear interpolation
//   - [Crossing]:  fractional position where a segment crosses a level
//   - [Parabolic]: vertex of the parabola through three equally spaced points
package interp
