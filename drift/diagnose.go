package drift

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-gamma/dsp/calib"
	"github.com/cwbudde/algo-gamma/dsp/core"
	"github.com/cwbudde/algo-gamma/dsp/spectrum"
	"github.com/cwbudde/algo-gamma/measure/peaks"
	"github.com/cwbudde/algo-gamma/measure/shift"
	"github.com/cwbudde/algo-gamma/stats/counts"
)

// PeakCheck compares a reference peak with the peak found near it in the
// corrected spectrum.
type PeakCheck struct {
	Reference float64 `json:"reference"`
	Found     bool    `json:"found"`
	Position  float64 `json:"position,omitempty"`
	Offset    float64 `json:"offset,omitempty"`
	FWHM      float64 `json:"fwhm,omitempty"`
}

// Diagnostics summarizes how well a correction re-aligned the spectra.
type Diagnostics struct {
	TotalReference float64 `json:"total_reference"`
	TotalShifted   float64 `json:"total_shifted"`
	TotalCorrected float64 `json:"total_corrected"`
	// MassDrift is TotalReference - TotalCorrected.
	MassDrift float64 `json:"mass_drift"`

	ForwardRSS float64 `json:"forward_rss"`
	InverseRSS float64 `json:"inverse_rss"`
	// RemappedPeaks are the shifted peaks carried back through the inverse
	// mapping; they approximate the reference peaks.
	RemappedPeaks []float64 `json:"remapped_peaks"`

	// Lags are global offsets against the reference; LagOK is false when a
	// spectrum had no structure to correlate.
	LagBefore float64 `json:"lag_before"`
	LagAfter  float64 `json:"lag_after"`
	LagOK     bool    `json:"lag_ok"`

	Peaks []PeakCheck `json:"peaks"`
}

// Diagnose computes diagnostics for res, which must have been produced from
// reference and shifted.
func Diagnose(reference, shifted spectrum.Spectrum, res *Result) (*Diagnostics, error) {
	if res == nil || res.Table == nil {
		return nil, errors.New("drift: nil result")
	}

	ref := reference.Counts()
	src := shifted.Counts()
	corrected := res.Corrected()

	if len(ref) != len(corrected) || len(src) != len(corrected) {
		return nil, fmt.Errorf("drift: diagnose: spectra do not match result: %w", core.ErrShapeMismatch)
	}

	cfg := res.Config
	d := &Diagnostics{
		TotalReference: res.Table.TotalOrigin(),
		TotalShifted:   counts.Total(src),
		TotalCorrected: res.Table.TotalAfter(),
		MassDrift:      res.Table.MassDrift(),
		ForwardRSS:     calib.RSS(res.Forward, cfg.PeaksReference, cfg.PeaksShifted),
		InverseRSS:     calib.RSS(res.Inverse, cfg.PeaksShifted, cfg.PeaksReference),
		RemappedPeaks:  res.Inverse.EvalSlice(cfg.PeaksShifted),
	}

	before, errBefore := shift.EstimateLag(ref, src)
	after, errAfter := shift.EstimateLag(ref, corrected)

	switch {
	case errors.Is(errBefore, shift.ErrFlat), errors.Is(errAfter, shift.ErrFlat):
	case errBefore != nil:
		return nil, fmt.Errorf("drift: diagnose: %w", errBefore)
	case errAfter != nil:
		return nil, fmt.Errorf("drift: diagnose: %w", errAfter)
	default:
		d.LagBefore, d.LagAfter, d.LagOK = before, after, true
	}

	d.Peaks = make([]PeakCheck, len(cfg.PeaksReference))
	for i, nominal := range cfg.PeaksReference {
		check := PeakCheck{Reference: nominal}

		p, err := peaks.Locate(corrected, nominal, peaks.DefaultHalfWidth)
		if err == nil {
			check.Found = true
			check.Position = p.Position
			check.Offset = p.Offset()
			check.FWHM = p.FWHM
		}

		d.Peaks[i] = check
	}

	return d, nil
}
