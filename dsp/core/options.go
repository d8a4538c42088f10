package core

import "math"

// Reference configuration of the drift correction.
const (
	DefaultDegree   = 1
	DefaultStep     = 1e-4
	DefaultChannels = 256
)

// CorrectionConfig holds the numeric knobs of a drift correction run.
type CorrectionConfig struct {
	// Degree is the calibration polynomial degree.
	Degree int
	// Step is the rebin integration step h, in channels.
	Step float64
}

// CorrectionOption mutates a CorrectionConfig.
type CorrectionOption func(*CorrectionConfig)

// DefaultCorrectionConfig returns the reference configuration
// (linear calibration, h = 1e-4).
func DefaultCorrectionConfig() CorrectionConfig {
	return CorrectionConfig{
		Degree: DefaultDegree,
		Step:   DefaultStep,
	}
}

// WithDegree sets the calibration polynomial degree.
func WithDegree(degree int) CorrectionOption {
	return func(cfg *CorrectionConfig) {
		if degree >= 0 {
			cfg.Degree = degree
		}
	}
}

// WithStep sets the rebin integration step.
func WithStep(step float64) CorrectionOption {
	return func(cfg *CorrectionConfig) {
		if step > 0 && !math.IsInf(step, 0) {
			cfg.Step = step
		}
	}
}

// ApplyCorrectionOptions applies zero or more options to the default config.
func ApplyCorrectionOptions(opts ...CorrectionOption) CorrectionConfig {
	cfg := DefaultCorrectionConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}
