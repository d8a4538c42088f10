package drift

import (
	"fmt"

	"github.com/cwbudde/algo-gamma/dsp/align"
	"github.com/cwbudde/algo-gamma/dsp/calib"
	"github.com/cwbudde/algo-gamma/dsp/core"
	"github.com/cwbudde/algo-gamma/dsp/rebin"
	"github.com/cwbudde/algo-gamma/dsp/spectrum"
)

// Result is the outcome of one correction.
type Result struct {
	// Table holds channel, reference count and corrected count rows.
	Table *align.Table
	// Forward maps reference coordinates to shifted coordinates and drives
	// the rebinning.
	Forward calib.Poly
	// Inverse maps shifted coordinates to reference coordinates. It is fitted
	// independently of Forward.
	Inverse calib.Poly
	// Config is the configuration the result was computed with.
	Config Config
}

// Corrected returns the rebinned counts, index i holding channel i+1.
func (r *Result) Corrected() []float64 { return r.Table.After() }

// Correct aligns shifted onto the channel grid of reference.
//
// Both spectra must have the same number of channels. The configuration is
// validated first, so an invalid step or mismatched peak lists fail before
// any fitting. Errors wrap the sentinels of package core.
func Correct(reference, shifted spectrum.Spectrum, cfg Config) (*Result, error) {
	if reference.Len() == 0 || shifted.Len() == 0 {
		return nil, spectrum.ErrEmpty
	}

	if reference.Len() != shifted.Len() {
		return nil, fmt.Errorf("drift: reference has %d channels, shifted has %d: %w",
			reference.Len(), shifted.Len(), core.ErrShapeMismatch)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	method, _ := cfg.method()

	pair, err := calib.FitPair(cfg.PeaksReference, cfg.PeaksShifted, cfg.Degree)
	if err != nil {
		return nil, fmt.Errorf("drift: %w", err)
	}

	sampler, err := rebin.NewSampler(cfg.Step, rebin.WithMethod(method))
	if err != nil {
		return nil, err
	}

	rebinned, err := sampler.Rebin(shifted.Counts(), pair.Forward)
	if err != nil {
		return nil, fmt.Errorf("drift: %w", err)
	}

	table, err := align.Assemble(reference, rebinned)
	if err != nil {
		return nil, fmt.Errorf("drift: %w", err)
	}

	return &Result{
		Table:   table,
		Forward: pair.Forward,
		Inverse: pair.Inverse,
		Config:  cfg.clone(),
	}, nil
}
