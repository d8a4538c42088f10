// Package align assembles the reference-aligned result table: one row per
// reference channel pairing the original reference count with the rebinned
// count of the shifted spectrum.
//
// A Table is immutable. Totals are computed once with compensated summation
// and the table never normalizes, so MassDrift reports how much count mass
// the rebinning gained or lost.
package align
