// Package counts computes summary statistics for counts-per-channel spectra:
// compensated totals, the tallest channel, the count-weighted centroid and
// its spread.
package counts
