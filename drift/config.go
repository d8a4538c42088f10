package drift

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/cwbudde/algo-gamma/dsp/core"
	"github.com/cwbudde/algo-gamma/dsp/rebin"
)

// Reference peak channels of the default configuration: positions at
// baseline temperature and after the thermal shift.
var (
	DefaultPeaksReference = []float64{62, 108, 122, 227}
	DefaultPeaksShifted   = []float64{51, 89, 101, 187}
)

// Config is the configuration surface of one correction.
type Config struct {
	Degree         int       `json:"degree"`
	Step           float64   `json:"step"`
	PeaksReference []float64 `json:"peaks_reference"`
	PeaksShifted   []float64 `json:"peaks_shifted"`
	// Method names the rebin evaluation method; empty selects "counted".
	Method string `json:"method,omitempty"`
}

// DefaultConfig returns the reference configuration with opts applied.
func DefaultConfig(opts ...core.CorrectionOption) Config {
	c := core.ApplyCorrectionOptions(opts...)

	return Config{
		Degree:         c.Degree,
		Step:           c.Step,
		PeaksReference: core.Clone(DefaultPeaksReference),
		PeaksShifted:   core.Clone(DefaultPeaksShifted),
	}
}

// LoadConfig reads a JSON configuration file. Keys absent from the file keep
// their default values. The result is validated.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("drift: read config: %w", err)
	}

	cfg := DefaultConfig()
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("drift: parse config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Validate checks the configuration without fitting anything.
func (c Config) Validate() error {
	if c.Degree < 0 {
		return fmt.Errorf("drift: degree %d: %w", c.Degree, core.ErrInvalidDegree)
	}

	if err := rebin.ValidateStep(c.Step); err != nil {
		return err
	}

	if len(c.PeaksReference) != len(c.PeaksShifted) {
		return fmt.Errorf("drift: %d reference peaks vs %d shifted peaks: %w",
			len(c.PeaksReference), len(c.PeaksShifted), core.ErrShapeMismatch)
	}

	if _, err := c.method(); err != nil {
		return err
	}

	return nil
}

func (c Config) method() (rebin.Method, error) {
	if c.Method == "" {
		return rebin.MethodCounted, nil
	}

	return rebin.ParseMethod(c.Method)
}

func (c Config) clone() Config {
	c.PeaksReference = core.Clone(c.PeaksReference)
	c.PeaksShifted = core.Clone(c.PeaksShifted)

	return c
}
