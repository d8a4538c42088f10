package calib

import "testing"

func TestPolyEval(t *testing.T) {
	p := NewPoly(1, 2, 3) // 1 + 2x + 3x^2

	tests := []struct {
		x, want float64
	}{
		{0, 1},
		{1, 6},
		{-1, 2},
		{2, 17},
	}
	for _, tc := range tests {
		if got := p.Eval(tc.x); got != tc.want {
			t.Fatalf("Eval(%v) = %v, want %v", tc.x, got, tc.want)
		}
	}

	if got := p.Slope(2); got != 14 {
		t.Fatalf("Slope(2) = %v, want 14", got)
	}
}

func TestPolyZeroValue(t *testing.T) {
	var p Poly
	if p.Eval(42) != 0 || p.Degree() != -1 || p.Slope(1) != 0 {
		t.Fatalf("zero Poly misbehaves: eval=%v degree=%d", p.Eval(42), p.Degree())
	}
}

func TestPolyIsImmutable(t *testing.T) {
	in := []float64{1, 2}
	p := NewPoly(in...)
	in[0] = 9
	c := p.Coeffs()
	c[1] = 9
	if p.Eval(1) != 3 {
		t.Fatalf("Poly shares coefficient storage: Eval(1) = %v", p.Eval(1))
	}
}

func TestIdentity(t *testing.T) {
	id := Identity()
	for _, x := range []float64{-3, 0, 17.25} {
		if id.Eval(x) != x {
			t.Fatalf("Identity().Eval(%v) = %v", x, id.Eval(x))
		}
	}
}
