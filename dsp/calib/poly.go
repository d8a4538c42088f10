package calib

import "github.com/cwbudde/algo-gamma/dsp/core"

// Poly is a real polynomial c0 + c1*x + ... + cd*x^d.
// The zero value evaluates to 0 everywhere.
type Poly struct {
	coeffs []float64
}

// NewPoly returns the polynomial with the given ascending coefficients.
func NewPoly(coeffs ...float64) Poly {
	return Poly{coeffs: core.Clone(coeffs)}
}

// Identity returns the mapping x -> x.
func Identity() Poly {
	return NewPoly(0, 1)
}

// Coeffs returns a copy of the ascending coefficients.
func (p Poly) Coeffs() []float64 { return core.Clone(p.coeffs) }

// Degree returns the nominal degree (number of coefficients minus one).
// The zero polynomial has degree -1.
func (p Poly) Degree() int { return len(p.coeffs) - 1 }

// Eval evaluates the polynomial at x using Horner's scheme.
func (p Poly) Eval(x float64) float64 {
	var y float64
	for i := len(p.coeffs) - 1; i >= 0; i-- {
		y = y*x + p.coeffs[i]
	}
	return y
}

// EvalSlice evaluates the polynomial at each element of xs.
func (p Poly) EvalSlice(xs []float64) []float64 {
	out := make([]float64, len(xs))
	for i, x := range xs {
		out[i] = p.Eval(x)
	}
	return out
}

// Slope returns the derivative of the polynomial at x.
func (p Poly) Slope(x float64) float64 {
	var d float64
	for i := len(p.coeffs) - 1; i >= 1; i-- {
		d = d*x + float64(i)*p.coeffs[i]
	}
	return d
}
