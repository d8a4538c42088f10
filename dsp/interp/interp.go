package interp

// Linear interpolates between x0 and x1 at frac in [0,1].
func Linear(frac, x0, x1 float64) float64 {
	return x0 + frac*(x1-x0)
}

// Crossing returns the fraction t in [0,1] at which the segment from y0 to
// y1 reaches level. ok is false when the level is not bracketed.
func Crossing(y0, y1, level float64) (t float64, ok bool) {
	if y0 == y1 {
		return 0, y0 == level
	}
	t = (level - y0) / (y1 - y0)
	if t < 0 || t > 1 {
		return 0, false
	}
	return t, true
}

// Parabolic fits a parabola through (-1, ym1), (0, y0), (1, y1) and returns
// the vertex offset in [-1, 1] relative to the centre point together with the
// interpolated vertex value. A flat or non-concave triple yields offset 0 and
// value y0.
func Parabolic(ym1, y0, y1 float64) (offset, value float64) {
	denom := ym1 - 2*y0 + y1
	if denom >= 0 {
		return 0, y0
	}
	offset = 0.5 * (ym1 - y1) / denom
	if offset < -1 {
		offset = -1
	} else if offset > 1 {
		offset = 1
	}
	value = y0 - 0.25*(ym1-y1)*offset
	return offset, value
}
