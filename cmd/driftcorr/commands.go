package main

import (
	"fmt"
	"time"

	"github.com/cwbudde/algo-gamma/drift"
	"github.com/cwbudde/algo-gamma/internal/chart"
	"github.com/cwbudde/algo-gamma/internal/logging"
	"github.com/cwbudde/algo-gamma/internal/server"
	"github.com/cwbudde/algo-gamma/internal/specio"
)

// CorrectCmd runs one correction.
//
// Stdout carries a single artifact: the diagnostics report with --diagnose,
// the requested rows with --channel, the CSV table when no --out is given,
// or a one-line summary otherwise.
type CorrectCmd struct {
	Reference string `arg:"" type:"existingfile" help:"Reference spectrum (.txt or .csv)."`
	Shifted   string `arg:"" type:"existingfile" help:"Shifted spectrum (.txt or .csv)."`

	Config         string    `short:"c" type:"existingfile" help:"JSON configuration file (degree, step, peaks_reference, peaks_shifted, method)."`
	Degree         *int      `help:"Calibration polynomial degree; overrides the configuration."`
	Step           *float64  `help:"Rebin integration step in channels; overrides the configuration."`
	PeaksReference []float64 `name:"peaks-reference" help:"Reference peak positions, comma separated."`
	PeaksShifted   []float64 `name:"peaks-shifted" help:"Shifted peak positions, comma separated."`
	Method         string    `help:"Rebin method: counted, stepped or exact."`

	Out      string `short:"o" type:"path" help:"Write the result table (.csv or .json)."`
	Chart    string `type:"path" help:"Write a chart (.png, .svg or .pdf)."`
	LinearY  bool   `name:"linear-y" help:"Use a linear count axis in the chart."`
	Channels []int  `name:"channel" help:"Print the rows of these channels."`
	Diagnose bool   `help:"Print a diagnostics report."`
}

func (c *CorrectCmd) config() (drift.Config, error) {
	cfg := drift.DefaultConfig()
	if c.Config != "" {
		var err error
		if cfg, err = drift.LoadConfig(c.Config); err != nil {
			return drift.Config{}, err
		}
	}

	if c.Degree != nil {
		cfg.Degree = *c.Degree
	}
	if c.Step != nil {
		cfg.Step = *c.Step
	}
	if len(c.PeaksReference) > 0 {
		cfg.PeaksReference = c.PeaksReference
	}
	if len(c.PeaksShifted) > 0 {
		cfg.PeaksShifted = c.PeaksShifted
	}
	if c.Method != "" {
		cfg.Method = c.Method
	}

	return cfg, nil
}

func (c *CorrectCmd) Run(e *env) error {
	cfg, err := c.config()
	if err != nil {
		return err
	}

	ref, err := specio.ReadFile(c.Reference)
	if err != nil {
		return err
	}

	shifted, err := specio.ReadFile(c.Shifted)
	if err != nil {
		return err
	}

	start := time.Now()

	res, err := drift.Correct(ref, shifted, cfg)
	if err != nil {
		return err
	}

	logging.Correction(e.ctx, res.Table.Len(), cfg.Degree, cfg.Step, res.Table.MassDrift(), time.Since(start),
		"reference", c.Reference, "shifted", c.Shifted)

	if c.Out != "" {
		if err := specio.WriteFile(c.Out, res.Table); err != nil {
			return err
		}
		logging.Info("wrote table", "path", c.Out, "rows", res.Table.Len())
	}

	if c.Chart != "" {
		opts := chart.DefaultOptions()
		opts.LogY = !c.LinearY
		opts.Peaks = cfg.PeaksReference

		if err := chart.Save(c.Chart, res.Table, opts); err != nil {
			return err
		}
		logging.Info("wrote chart", "path", c.Chart)
	}

	switch {
	case c.Diagnose:
		d, err := drift.Diagnose(ref, shifted, res)
		if err != nil {
			return err
		}
		return printReport(e.stdout, res, d)
	case len(c.Channels) > 0:
		return printRows(e.stdout, res.Table, c.Channels)
	case c.Out == "":
		return specio.WriteCSV(e.stdout, res.Table)
	default:
		_, err := fmt.Fprintf(e.stdout, "%d channels, mass drift %.6g\n", res.Table.Len(), res.Table.MassDrift())
		return err
	}
}

// LookupCmd prints the count at one channel, or "no data" when the channel
// is outside the spectrum.
type LookupCmd struct {
	File    string `arg:"" type:"existingfile" help:"Spectrum file (.txt or .csv)."`
	Channel int    `arg:"" help:"1-based channel number."`
}

func (c *LookupCmd) Run(e *env) error {
	s, err := specio.ReadFile(c.File)
	if err != nil {
		return err
	}

	count, ok := s.CountAt(c.Channel)
	if !ok {
		_, err = fmt.Fprintln(e.stdout, "no data")
		return err
	}

	_, err = fmt.Fprintf(e.stdout, "%g\n", count)
	return err
}

// ServeCmd starts the HTTP API and blocks until interrupted.
type ServeCmd struct {
	Addr      string `default:":8080" help:"Listen address."`
	CacheSize int           `name:"cache-size" default:"128" help:"Number of cached corrections."`
	CacheTTL  time.Duration `name:"cache-ttl" help:"Expire cached corrections after this long (0 keeps them)."`
	MaxBody   int64         `name:"max-body" default:"8388608" help:"Maximum request body in bytes."`
}

func (c *ServeCmd) Run(e *env) error {
	s := server.New(server.Config{
		Addr:         c.Addr,
		CacheSize:    c.CacheSize,
		CacheTTL:     c.CacheTTL,
		MaxBodyBytes: c.MaxBody,
		Version:      version,
	})

	return s.ListenAndServe(e.ctx)
}

// VersionCmd prints version information.
type VersionCmd struct{}

func (c *VersionCmd) Run(e *env) error {
	_, err := fmt.Fprintf(e.stdout, "driftcorr version %s\n", version)
	return err
}
