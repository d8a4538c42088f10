package rebin

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-gamma/dsp/core"
)

// MinStep is the smallest accepted integration step. Below it the step
// count of a single channel no longer fits float64 integer precision.
const MinStep = 1e-12

// maxSteppedIterations bounds one window of the stepped loop.
const maxSteppedIterations = 1 << 32

// ErrUnknownMethod is returned by ParseMethod for an unrecognized name.
var ErrUnknownMethod = errors.New("rebin: unknown method")

// Method selects how the windowed sum is evaluated.
type Method int

const (
	// MethodCounted derives per-channel step counts in closed form.
	MethodCounted Method = iota
	// MethodStepped walks every sample position.
	MethodStepped
	// MethodExact integrates with exact overlap lengths, ignoring h.
	MethodExact
)

// String returns the method name.
func (m Method) String() string {
	switch m {
	case MethodCounted:
		return "counted"
	case MethodStepped:
		return "stepped"
	case MethodExact:
		return "exact"
	default:
		return fmt.Sprintf("Method(%d)", int(m))
	}
}

// ParseMethod converts a method name back to a [Method].
func ParseMethod(name string) (Method, error) {
	for _, m := range []Method{MethodCounted, MethodStepped, MethodExact} {
		if m.String() == name {
			return m, nil
		}
	}
	return 0, fmt.Errorf("%w %q", ErrUnknownMethod, name)
}

// Option configures a [Sampler].
type Option func(*Sampler)

// WithMethod selects the evaluation method.
func WithMethod(m Method) Option {
	return func(s *Sampler) {
		if m >= MethodCounted && m <= MethodExact {
			s.method = m
		}
	}
}

// Sampler rebins source spectra with a fixed step. A Sampler holds no mutable
// state and is safe for concurrent use.
type Sampler struct {
	step   float64
	method Method
}

// NewSampler returns a sampler with integration step h.
// It fails with core.ErrInvalidStep unless MinStep <= h < +Inf.
func NewSampler(step float64, opts ...Option) (*Sampler, error) {
	if err := ValidateStep(step); err != nil {
		return nil, err
	}
	s := &Sampler{step: step, method: MethodCounted}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s, nil
}

// ValidateStep checks an integration step.
func ValidateStep(step float64) error {
	if math.IsNaN(step) || math.IsInf(step, 0) || step <= 0 {
		return fmt.Errorf("%w: %g", core.ErrInvalidStep, step)
	}
	if step < MinStep {
		return fmt.Errorf("%w: %g below minimum %g", core.ErrInvalidStep, step, MinStep)
	}
	return nil
}

// Step returns the integration step h.
func (s *Sampler) Step() float64 { return s.step }

// Method returns the evaluation method.
func (s *Sampler) Method() Method { return s.method }

// Rebin is shorthand for NewSampler(step) followed by Sampler.Rebin.
func Rebin(src []float64, m Mapping, step float64) ([]float64, error) {
	s, err := NewSampler(step)
	if err != nil {
		return nil, err
	}
	return s.Rebin(src, m)
}

// Rebin resamples src onto the reference grid through the forward mapping m.
// The output has len(src) entries; out[i] is the mass of src inside the
// clamped window of reference index i.
func (s *Sampler) Rebin(src []float64, m Mapping) ([]float64, error) {
	n := len(src)
	out := make([]float64, n)

	var scratch []float64
	for i := range out {
		w := WindowAt(m, i, n)
		if w.Empty() {
			continue
		}

		var (
			v   float64
			err error
		)
		switch s.method {
		case MethodStepped:
			v, err = s.stepped(src, w)
		case MethodExact:
			v = exact(src, w)
		default:
			v, scratch, err = s.counted(src, w, scratch)
		}
		if err != nil {
			return nil, fmt.Errorf("rebin: reference index %d: %w", i, err)
		}
		out[i] = v
	}
	return out, nil
}

// sourceIndex maps a sample position to a source channel index. A position
// that overshoots to exactly n through float accumulation is folded back.
func sourceIndex(pos float64, n int) (int, error) {
	idx := int(math.Floor(pos))
	if idx == n {
		idx = n - 1
	}
	if idx < 0 || idx >= n {
		return 0, fmt.Errorf("%w: position %g, %d channels", core.ErrIndexOutOfRange, pos, n)
	}
	return idx, nil
}

func (s *Sampler) stepped(src []float64, w Window) (float64, error) {
	h := s.step
	steps := Steps(w, h)
	if steps > maxSteppedIterations {
		return 0, fmt.Errorf("%w: %d iterations per window, use the counted method", core.ErrInvalidStep, steps)
	}

	var acc float64
	for k := 0; k < steps; k++ {
		idx, err := sourceIndex(w.Left+float64(k)*h, len(src))
		if err != nil {
			return 0, err
		}
		acc += h * src[idx]
	}
	return acc, nil
}

// counted groups the steps of a window by the source channel they land in:
// channel c receives the k in [ceil((c-left)/h), ceil((c+1-left)/h)).
func (s *Sampler) counted(src []float64, w Window, scratch []float64) (float64, []float64, error) {
	h := s.step
	steps := Steps(w, h)
	if steps == 0 {
		return 0, scratch, nil
	}

	first, err := sourceIndex(w.Left, len(src))
	if err != nil {
		return 0, scratch, err
	}
	last, err := sourceIndex(w.Left+float64(steps-1)*h, len(src))
	if err != nil {
		return 0, scratch, err
	}
	if last < first {
		last = first
	}

	span := last - first + 1
	scratch = core.EnsureLen(scratch, 2*span)
	weights, prod := scratch[:span], scratch[span:]

	for c := first; c <= last; c++ {
		lo, hi := 0, steps
		if c > first {
			lo = kFrom(float64(c), w.Left, h, steps)
		}
		if c < last {
			hi = kFrom(float64(c+1), w.Left, h, steps)
		}
		if hi < lo {
			hi = lo
		}
		weights[c-first] = h * float64(hi-lo)
	}

	vecmath.MulBlock(prod, weights, src[first:last+1])

	var acc float64
	for _, v := range prod {
		acc += v
	}
	return acc, scratch, nil
}

// kFrom returns the first step index whose position reaches edge, clamped
// to [0, steps].
func kFrom(edge, left, h float64, steps int) int {
	k := int(math.Ceil((edge - left) / h))
	if k < 0 {
		return 0
	}
	if k > steps {
		return steps
	}
	return k
}

func exact(src []float64, w Window) float64 {
	var acc float64
	for c := int(math.Floor(w.Left)); c < len(src) && float64(c) < w.Right; c++ {
		lo := math.Max(w.Left, float64(c))
		hi := math.Min(w.Right, float64(c+1))
		if hi > lo {
			acc += (hi - lo) * src[c]
		}
	}
	return acc
}
