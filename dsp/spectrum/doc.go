// Package spectrum defines the channel/count data model of a gamma-ray
// spectrum.
//
// A [Spectrum] is an ordered, immutable sequence of non-negative counts.
// Channels are contiguous and 1-based: index i of the count slice holds
// channel i+1. Constructors copy their input and accessors return copies, so
// a Spectrum can be shared read-only between concurrent corrections.
//
// Count lookups by channel ([Spectrum.CountAt]) report an explicit absent
// value instead of an error: a missing channel is an expected condition for
// interactive callers (no channel selected yet, channel beyond the grid).
package spectrum
