package calib

import (
	"errors"
	"fmt"
	"sort"

	"gonum.org/v1/gonum/mat"

	"github.com/cwbudde/algo-gamma/dsp/core"
)

// Pair holds the two independently fitted mappings between a reference
// channel grid and a shifted one.
type Pair struct {
	// Forward maps reference channel coordinates to shifted coordinates.
	Forward Poly
	// Inverse maps shifted channel coordinates back to reference
	// coordinates. It is fitted on its own, not derived from Forward.
	Inverse Poly
}

// FitPair fits Forward (reference -> shifted) and Inverse
// (shifted -> reference) from positionally paired peak lists.
func FitPair(reference, shifted []float64, degree int) (Pair, error) {
	fwd, err := Fit(reference, shifted, degree)
	if err != nil {
		return Pair{}, fmt.Errorf("calib: forward mapping: %w", err)
	}
	inv, err := Fit(shifted, reference, degree)
	if err != nil {
		return Pair{}, fmt.Errorf("calib: inverse mapping: %w", err)
	}
	return Pair{Forward: fwd, Inverse: inv}, nil
}

// Fit returns the least-squares polynomial of the given degree mapping x to y.
//
// It fails with core.ErrShapeMismatch when x and y differ in length,
// core.ErrInsufficientPoints when there are fewer than max(2, degree+1)
// points, core.ErrDegenerateFit when fewer than degree+1 distinct x values
// exist or the solve is singular, and core.ErrNonFinite on NaN/Inf input.
func Fit(x, y []float64, degree int) (Poly, error) {
	if err := validate(x, y, degree); err != nil {
		return Poly{}, err
	}

	n := len(x)
	cols := degree + 1

	a := mat.NewDense(n, cols, nil)
	b := mat.NewVecDense(n, nil)
	for i := 0; i < n; i++ {
		v := 1.0
		for j := 0; j < cols; j++ {
			a.Set(i, j, v)
			v *= x[i]
		}
		b.SetVec(i, y[i])
	}

	var qr mat.QR
	qr.Factorize(a)

	var params mat.VecDense
	if err := qr.SolveVecTo(&params, false, b); err != nil {
		var cond mat.Condition
		if errors.As(err, &cond) {
			return Poly{}, fmt.Errorf("%w: condition number %g", core.ErrDegenerateFit, float64(cond))
		}
		return Poly{}, fmt.Errorf("%w: %v", core.ErrDegenerateFit, err)
	}

	coeffs := make([]float64, cols)
	for j := range coeffs {
		coeffs[j] = params.AtVec(j)
	}
	if i := core.AllFinite(coeffs); i >= 0 {
		return Poly{}, fmt.Errorf("%w: coefficient %d not finite", core.ErrDegenerateFit, i)
	}
	return Poly{coeffs: coeffs}, nil
}

func validate(x, y []float64, degree int) error {
	if degree < 0 {
		return fmt.Errorf("%w: %d", core.ErrInvalidDegree, degree)
	}
	if len(x) != len(y) {
		return fmt.Errorf("%w: %d reference peaks vs %d shifted peaks", core.ErrShapeMismatch, len(x), len(y))
	}
	need := degree + 1
	if need < 2 {
		need = 2
	}
	if len(x) < need {
		return fmt.Errorf("%w: have %d, degree %d needs %d", core.ErrInsufficientPoints, len(x), degree, need)
	}
	if i := core.AllFinite(x); i >= 0 {
		return fmt.Errorf("calib: x[%d]: %w", i, core.ErrNonFinite)
	}
	if i := core.AllFinite(y); i >= 0 {
		return fmt.Errorf("calib: y[%d]: %w", i, core.ErrNonFinite)
	}
	if d := distinct(x); d < degree+1 {
		return fmt.Errorf("%w: %d distinct positions for degree %d", core.ErrDegenerateFit, d, degree)
	}
	return nil
}

func distinct(x []float64) int {
	s := core.Clone(x)
	sort.Float64s(s)
	n := 0
	for i, v := range s {
		if i == 0 || v != s[i-1] {
			n++
		}
	}
	return n
}

// Residuals returns y[i] - p(x[i]) for each pair. x and y must have equal
// length; extra elements of the longer slice are ignored.
func Residuals(p Poly, x, y []float64) []float64 {
	n := min(len(x), len(y))
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		out[i] = y[i] - p.Eval(x[i])
	}
	return out
}

// RSS returns the residual sum of squares of p over the pairs (x, y).
func RSS(p Poly, x, y []float64) float64 {
	var sum float64
	for _, r := range Residuals(p, x, y) {
		sum += r * r
	}
	return sum
}
