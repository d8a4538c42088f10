package testutil

import (
	"math"
	"testing"
)

func TestGaussianPeaks(t *testing.T) {
	s := GaussianPeaks(256, ReferencePeaks, 1000, 3)
	if len(s) != 256 {
		t.Fatalf("len = %d, want 256", len(s))
	}
	for _, c := range ReferencePeaks {
		if math.Abs(s[int(c)]-1000) > 1 {
			t.Fatalf("s[%v] = %v, want ~1000", c, s[int(c)])
		}
	}
	for i, v := range s {
		if v < 0 {
			t.Fatalf("s[%d] = %v is negative", i, v)
		}
	}
}

func TestDeterministicCounts(t *testing.T) {
	a := DeterministicCounts(42, 100, 64)
	b := DeterministicCounts(42, 100, 64)
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("counts not deterministic at index %d", i)
		}
		if a[i] < 0 || a[i] >= 100 {
			t.Fatalf("a[%d] = %v out of range", i, a[i])
		}
	}
}

func TestDeterministicCountsDifferentSeeds(t *testing.T) {
	a := DeterministicCounts(1, 1.0, 16)
	b := DeterministicCounts(2, 1.0, 16)
	same := true
	for i := range a {
		if a[i] != b[i] {
			same = false
			break
		}
	}
	if same {
		t.Fatal("different seeds produced identical counts")
	}
}

func TestRampAndFlat(t *testing.T) {
	r := Ramp(10, 2, 4)
	if r[0] != 10 || r[3] != 16 {
		t.Fatalf("Ramp = %v", r)
	}
	f := Flat(0.5, 3)
	for i, v := range f {
		if v != 0.5 {
			t.Fatalf("Flat[%d] = %v, want 0.5", i, v)
		}
	}
}

func TestArgMax(t *testing.T) {
	if ArgMax(nil) != -1 {
		t.Fatal("ArgMax(nil) should be -1")
	}
	if got := ArgMax([]float64{1, 5, 3, 5}); got != 1 {
		t.Fatalf("ArgMax = %d, want 1", got)
	}
}
