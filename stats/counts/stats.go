package counts

import (
	"math"

	"github.com/cwbudde/algo-vecmath"
)

// Stats holds summary statistics of a counts-per-channel spectrum.
// Positions are 0-based indices; add one for the channel number.
type Stats struct {
	Length   int
	Total    float64 // compensated sum of counts
	Max      float64
	MaxPos   int
	Min      float64
	MinPos   int
	Centroid float64 // count-weighted mean index
	Spread   float64 // count-weighted standard deviation around Centroid
}

// Calculate computes all statistics in a single pass. Weighted moments use
// the West incremental update so that large totals stay stable.
func Calculate(counts []float64) Stats {
	n := len(counts)
	if n == 0 {
		return Stats{}
	}

	var (
		sum, comp float64
		wsum      float64
		mean      float64
		m2        float64
		maxVal    = counts[0]
		maxPos    int
		minVal    = counts[0]
		minPos    int
	)

	for i, c := range counts {
		y := c - comp
		t := sum + y
		comp = (t - sum) - y
		sum = t

		if c > maxVal {
			maxVal = c
			maxPos = i
		}

		if c < minVal {
			minVal = c
			minPos = i
		}

		if c <= 0 {
			continue
		}

		wsum += c
		delta := float64(i) - mean
		r := delta * c / wsum
		mean += r
		m2 += (wsum - c) * delta * r
	}

	s := Stats{
		Length: n,
		Total:  sum,
		Max:    maxVal,
		MaxPos: maxPos,
		Min:    minVal,
		MinPos: minPos,
	}

	if wsum > 0 {
		s.Centroid = mean
		s.Spread = math.Sqrt(m2 / wsum)
	}

	return s
}

// Total returns the Kahan-compensated sum of counts.
func Total(counts []float64) float64 {
	var sum, c float64
	for _, x := range counts {
		y := x - c
		t := sum + y
		c = (t - sum) - y
		sum = t
	}

	return sum
}

// Peak returns the largest count and its index. An empty slice yields (0, -1).
func Peak(counts []float64) (value float64, index int) {
	if len(counts) == 0 {
		return 0, -1
	}

	value = counts[0]
	for i, x := range counts[1:] {
		if x > value {
			value = x
			index = i + 1
		}
	}

	return value, index
}

// Centroid returns the count-weighted mean index. ok is false when the
// spectrum carries no positive counts.
func Centroid(counts []float64) (centroid float64, ok bool) {
	s := Calculate(counts)
	if s.Total <= 0 {
		return 0, false
	}

	return s.Centroid, true
}

// Normalize writes counts scaled to unit total into dst, which is grown as
// needed and returned. A spectrum with non-positive total is copied as is.
func Normalize(dst, counts []float64) []float64 {
	if cap(dst) < len(counts) {
		dst = make([]float64, len(counts))
	}
	dst = dst[:len(counts)]

	total := Total(counts)
	if total <= 0 {
		copy(dst, counts)
		return dst
	}

	vecmath.ScaleBlock(dst, counts, 1/total)

	return dst
}
