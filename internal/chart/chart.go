// Package chart renders an aligned result as a line chart: the reference
// spectrum and the corrected spectrum over channel number, with dashed
// vertical markers at the reference peaks.
package chart

import (
	"errors"
	"fmt"
	"image/color"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/cwbudde/algo-gamma/dsp/align"
)

// logFloor replaces non-positive counts on a log axis.
const logFloor = 0.1

// ErrEmptyTable is returned when there is nothing to draw.
var ErrEmptyTable = errors.New("chart: empty table")

// Options controls the chart.
type Options struct {
	Title string
	// LogY selects a logarithmic count axis.
	LogY bool
	// Peaks are marker positions in 0-based index coordinates; they are
	// drawn at channel index+1.
	Peaks  []float64
	Width  vg.Length
	Height vg.Length
}

// DefaultOptions returns an 8x4.5 inch chart with a log count axis.
func DefaultOptions() Options {
	return Options{
		Title:  "Spectrum",
		LogY:   true,
		Width:  8 * vg.Inch,
		Height: 4.5 * vg.Inch,
	}
}

var (
	referenceColor = color.RGBA{B: 255, A: 255}
	correctedColor = color.RGBA{R: 220, A: 255}
	markerColor    = color.RGBA{R: 220, G: 80, B: 80, A: 255}
)

// New builds the plot for tbl.
func New(tbl *align.Table, opts Options) (*plot.Plot, error) {
	if tbl == nil || tbl.Len() == 0 {
		return nil, ErrEmptyTable
	}

	p := plot.New()
	p.Title.Text = opts.Title
	p.X.Label.Text = "Channels"
	p.Y.Label.Text = "Counts"
	p.Add(plotter.NewGrid())

	ref, after, top := series(tbl, opts.LogY)

	refLine, err := plotter.NewLine(ref)
	if err != nil {
		return nil, fmt.Errorf("chart: reference line: %w", err)
	}
	refLine.LineStyle.Color = referenceColor
	refLine.LineStyle.Width = vg.Points(1)

	afterLine, err := plotter.NewLine(after)
	if err != nil {
		return nil, fmt.Errorf("chart: corrected line: %w", err)
	}
	afterLine.LineStyle.Color = correctedColor
	afterLine.LineStyle.Width = vg.Points(1)

	p.Add(refLine, afterLine)
	p.Legend.Add("The normal spectrum", refLine)
	p.Legend.Add("After correction", afterLine)
	p.Legend.Top = true

	bottom := 0.0
	if opts.LogY {
		bottom = logFloor
		p.Y.Scale = plot.LogScale{}
		p.Y.Tick.Marker = plot.LogTicks{Prec: -1}
	}

	for _, peak := range opts.Peaks {
		if math.IsNaN(peak) || math.IsInf(peak, 0) {
			continue
		}

		x := peak + 1
		marker, err := plotter.NewLine(plotter.XYs{{X: x, Y: bottom}, {X: x, Y: top}})
		if err != nil {
			return nil, fmt.Errorf("chart: peak marker: %w", err)
		}
		marker.LineStyle.Color = markerColor
		marker.LineStyle.Width = vg.Points(0.75)
		marker.LineStyle.Dashes = []vg.Length{vg.Points(5), vg.Points(3)}

		p.Add(marker)
	}

	return p, nil
}

func series(tbl *align.Table, logY bool) (ref, after plotter.XYs, top float64) {
	rows := tbl.Rows()
	ref = make(plotter.XYs, len(rows))
	after = make(plotter.XYs, len(rows))
	top = logFloor

	for i, r := range rows {
		o, a := r.Origin, r.After
		if logY {
			o = math.Max(o, logFloor)
			a = math.Max(a, logFloor)
		}

		x := float64(r.Channel)
		ref[i] = plotter.XY{X: x, Y: o}
		after[i] = plotter.XY{X: x, Y: a}
		top = math.Max(top, math.Max(o, a))
	}

	return ref, after, top
}

// Render writes the chart in the given format ("png", "svg", "pdf", ...).
func Render(w io.Writer, tbl *align.Table, format string, opts Options) error {
	p, err := New(tbl, opts)
	if err != nil {
		return err
	}

	width, height := opts.Width, opts.Height
	if width <= 0 || height <= 0 {
		d := DefaultOptions()
		width, height = d.Width, d.Height
	}

	wt, err := p.WriterTo(width, height, strings.ToLower(format))
	if err != nil {
		return fmt.Errorf("chart: %w", err)
	}

	if _, err := wt.WriteTo(w); err != nil {
		return fmt.Errorf("chart: %w", err)
	}

	return nil
}

// Save renders the chart to path, choosing the format by extension.
func Save(path string, tbl *align.Table, opts Options) (err error) {
	format := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	if format == "" {
		return fmt.Errorf("chart: %s: missing file extension", path)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("chart: %w", err)
	}

	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("chart: %w", cerr)
		}
	}()

	return Render(f, tbl, format, opts)
}
