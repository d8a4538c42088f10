package counts

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-gamma/internal/testutil"
)

const tolerance = 1e-9

func TestCalculateEmpty(t *testing.T) {
	s := Calculate(nil)
	if s.Length != 0 || s.Total != 0 || s.Centroid != 0 {
		t.Fatalf("empty stats not zero: %+v", s)
	}
}

func TestCalculateSymmetricPeak(t *testing.T) {
	counts := []float64{0, 1, 4, 1, 0}
	s := Calculate(counts)

	if s.Length != 5 {
		t.Fatalf("Length = %d, want 5", s.Length)
	}
	if s.Total != 6 {
		t.Fatalf("Total = %v, want 6", s.Total)
	}
	if s.Max != 4 || s.MaxPos != 2 {
		t.Fatalf("Max = %v@%d, want 4@2", s.Max, s.MaxPos)
	}
	if s.Min != 0 || s.MinPos != 0 {
		t.Fatalf("Min = %v@%d, want 0@0", s.Min, s.MinPos)
	}
	if math.Abs(s.Centroid-2) > tolerance {
		t.Fatalf("Centroid = %v, want 2", s.Centroid)
	}
	// Variance = (1*1 + 1*1) / 6.
	if want := math.Sqrt(2.0 / 6.0); math.Abs(s.Spread-want) > tolerance {
		t.Fatalf("Spread = %v, want %v", s.Spread, want)
	}
}

func TestCalculateMatchesTwoPass(t *testing.T) {
	counts := testutil.DeterministicCounts(7, 500, 256)
	s := Calculate(counts)

	var total, first float64
	for i, c := range counts {
		total += c
		first += float64(i) * c
	}
	mean := first / total

	var second float64
	for i, c := range counts {
		d := float64(i) - mean
		second += c * d * d
	}

	if math.Abs(s.Total-total) > 1e-6 {
		t.Fatalf("Total = %v, want %v", s.Total, total)
	}
	if math.Abs(s.Centroid-mean) > 1e-9 {
		t.Fatalf("Centroid = %v, want %v", s.Centroid, mean)
	}
	if want := math.Sqrt(second / total); math.Abs(s.Spread-want) > 1e-9 {
		t.Fatalf("Spread = %v, want %v", s.Spread, want)
	}
}

func TestTotalCompensated(t *testing.T) {
	counts := make([]float64, 10001)
	counts[0] = 1e16
	for i := 1; i < len(counts); i++ {
		counts[i] = 1
	}

	if got := Total(counts); got != 1e16+10000 {
		t.Fatalf("Total = %v, want %v", got, 1e16+10000)
	}
}

func TestPeak(t *testing.T) {
	v, i := Peak([]float64{3, 9, 9, 1})
	if v != 9 || i != 1 {
		t.Fatalf("Peak = %v@%d, want 9@1", v, i)
	}

	v, i = Peak(nil)
	if v != 0 || i != -1 {
		t.Fatalf("Peak(nil) = %v@%d, want 0@-1", v, i)
	}
}

func TestCentroidNoCounts(t *testing.T) {
	if _, ok := Centroid([]float64{0, 0, 0}); ok {
		t.Fatal("Centroid of zero spectrum reported ok")
	}

	c, ok := Centroid([]float64{0, 0, 5})
	if !ok || c != 2 {
		t.Fatalf("Centroid = %v,%v want 2,true", c, ok)
	}
}

func TestNormalize(t *testing.T) {
	got := Normalize(nil, []float64{1, 3, 0, 4})
	want := []float64{0.125, 0.375, 0, 0.5}
	testutil.RequireSliceNearlyEqual(t, got, want, 1e-15)

	zero := Normalize(make([]float64, 8), []float64{0, 0})
	testutil.RequireSliceNearlyEqual(t, zero, []float64{0, 0}, 0)
}
