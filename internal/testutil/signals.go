package testutil

import (
	"math"
	"math/rand"
)

// Reference peak configuration of a thermally drifted NaI spectrum:
// channel positions at baseline temperature and after heating.
var (
	ReferencePeaks = []float64{62, 108, 122, 227}
	ShiftedPeaks   = []float64{51, 89, 101, 187}
)

// GaussianPeaks returns a spectrum of length n whose index j holds
// Σ amplitude * exp(-(j-center)²/(2σ²)) over the given centers.
func GaussianPeaks(n int, centers []float64, amplitude, sigma float64) []float64 {
	out := make([]float64, n)
	for j := range out {
		x := float64(j)
		for _, c := range centers {
			d := (x - c) / sigma
			out[j] += amplitude * math.Exp(-0.5*d*d)
		}
	}
	return out
}

// DeterministicCounts returns non-negative pseudo-random counts in
// [0, maxCount) with a fixed seed for reproducibility.
func DeterministicCounts(seed int64, maxCount float64, length int) []float64 {
	out := make([]float64, length)
	rng := rand.New(rand.NewSource(seed))
	for i := range out {
		out[i] = rng.Float64() * maxCount
	}
	return out
}

// Ramp returns counts offset + slope*j for j in [0, length).
func Ramp(offset, slope float64, length int) []float64 {
	out := make([]float64, length)
	for i := range out {
		out[i] = offset + slope*float64(i)
	}
	return out
}

// Flat returns a constant-count spectrum.
func Flat(value float64, length int) []float64 {
	out := make([]float64, length)
	for i := range out {
		out[i] = value
	}
	return out
}

// ArgMax returns the index of the largest value in xs, or -1 when empty.
func ArgMax(xs []float64) int {
	if len(xs) == 0 {
		return -1
	}
	best := 0
	for i, v := range xs {
		if v > xs[best] {
			best = i
		}
	}
	return best
}
