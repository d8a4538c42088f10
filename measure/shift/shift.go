package shift

import (
	"errors"
	"fmt"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-gamma/dsp/interp"
)

const minFFTSize = 8

var (
	// ErrEmptyInput is returned when either spectrum is empty.
	ErrEmptyInput = errors.New("shift: empty input")
	// ErrFlat is returned when a mean-removed spectrum is identically zero.
	ErrFlat = errors.New("shift: spectrum has no structure to correlate")
)

// Correlate returns the linear cross-correlation of a against b computed via
// FFT. Output index k corresponds to lag k - (len(b) - 1), where the value at
// lag L is Σ a[i+L]·b[i].
func Correlate(a, b []float64) ([]float64, error) {
	if len(a) == 0 || len(b) == 0 {
		return nil, ErrEmptyInput
	}

	n := len(a)
	m := len(b)
	fftSize := max(nextPowerOf2(n+m-1), minFFTSize)

	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return nil, fmt.Errorf("shift: failed to create FFT plan: %w", err)
	}

	aPadded := make([]complex128, fftSize)
	bPadded := make([]complex128, fftSize)

	for i, v := range a {
		aPadded[i] = complex(v, 0)
	}

	for i, v := range b {
		bPadded[i] = complex(v, 0)
	}

	aFreq := make([]complex128, fftSize)
	bFreq := make([]complex128, fftSize)

	if err := plan.Forward(aFreq, aPadded); err != nil {
		return nil, fmt.Errorf("shift: forward FFT failed: %w", err)
	}

	if err := plan.Forward(bFreq, bPadded); err != nil {
		return nil, fmt.Errorf("shift: forward FFT failed: %w", err)
	}

	// a · conj(b), reusing aFreq.
	for i := range aFreq {
		aFreq[i] *= complex(real(bFreq[i]), -imag(bFreq[i]))
	}

	if err := plan.Inverse(aPadded, aFreq); err != nil {
		return nil, fmt.Errorf("shift: inverse FFT failed: %w", err)
	}

	// Circular result: non-negative lags at the front, negative lags wrap
	// around from the end.
	out := make([]float64, n+m-1)
	for i := range n {
		out[m-1+i] = real(aPadded[i])
	}

	for i := range m - 1 {
		out[i] = real(aPadded[fftSize-m+1+i])
	}

	return out, nil
}

// EstimateLag returns the sub-channel lag that best aligns candidate onto
// reference. Both inputs have their mean removed before correlation and the
// integer peak is refined with a parabolic fit.
func EstimateLag(reference, candidate []float64) (float64, error) {
	if len(reference) == 0 || len(candidate) == 0 {
		return 0, ErrEmptyInput
	}

	ref, ok := centered(reference)
	if !ok {
		return 0, ErrFlat
	}

	cand, ok := centered(candidate)
	if !ok {
		return 0, ErrFlat
	}

	corr, err := Correlate(cand, ref)
	if err != nil {
		return 0, err
	}

	best := 0
	for i, v := range corr {
		if v > corr[best] {
			best = i
		}
	}

	lag := float64(best - (len(ref) - 1))
	if best > 0 && best < len(corr)-1 {
		offset, _ := interp.Parabolic(corr[best-1], corr[best], corr[best+1])
		lag += offset
	}

	return lag, nil
}

func centered(x []float64) ([]float64, bool) {
	var mean float64
	for _, v := range x {
		mean += v
	}

	mean /= float64(len(x))

	out := make([]float64, len(x))
	flat := true

	for i, v := range x {
		out[i] = v - mean
		if out[i] != 0 {
			flat = false
		}
	}

	return out, !flat
}

func nextPowerOf2(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}

	return p
}
