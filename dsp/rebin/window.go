package rebin

import "math"

// Mapping carries a reference-grid coordinate into the source grid.
type Mapping interface {
	Eval(x float64) float64
}

// MappingFunc adapts a plain function as a [Mapping].
type MappingFunc func(float64) float64

// Eval calls f(x).
func (f MappingFunc) Eval(x float64) float64 { return f(x) }

// Window is a clamped half-open source interval [Left, Right).
type Window struct {
	Left  float64
	Right float64
}

// Empty reports whether the window holds no source mass. Windows with NaN
// bounds are empty.
func (w Window) Empty() bool { return !(w.Left < w.Right) }

// Width returns Right-Left, or 0 for an empty window.
func (w Window) Width() float64 {
	if w.Empty() {
		return 0
	}
	return w.Right - w.Left
}

// WindowAt returns the clamped source window of reference index i on a grid
// of n channels.
func WindowAt(m Mapping, i, n int) Window {
	left := m.Eval(float64(i))
	right := m.Eval(float64(i + 1))

	if left < 0 {
		left = 0
	}
	if hi := float64(n - 1); right > hi {
		right = hi
	}
	return Window{Left: left, Right: right}
}

// Windows returns the clamped source window of every reference index.
func Windows(m Mapping, n int) []Window {
	if n <= 0 {
		return nil
	}
	out := make([]Window, n)
	for i := range out {
		out[i] = WindowAt(m, i, n)
	}
	return out
}

// Steps returns the number of sample positions left + k*h (k >= 0) that fall
// strictly below right, i.e. the iteration count of the stepped loop.
func Steps(w Window, h float64) int {
	if w.Empty() || !(h > 0) {
		return 0
	}
	k := int(math.Ceil((w.Right - w.Left) / h))
	for k > 0 && w.Left+float64(k-1)*h >= w.Right {
		k--
	}
	for w.Left+float64(k)*h < w.Right {
		k++
	}
	return k
}
