package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/cwbudde/algo-gamma/drift"
	"github.com/cwbudde/algo-gamma/dsp/align"
	"github.com/cwbudde/algo-gamma/dsp/calib"
)

func printRows(w io.Writer, tbl *align.Table, channels []int) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintf(tw, "Channel\tCounts_origin\tCounts_after\n"); err != nil {
		return err
	}

	for _, ch := range channels {
		row, ok := tbl.Lookup(ch)

		var err error
		if ok {
			_, err = fmt.Fprintf(tw, "%d\t%.6g\t%.6g\n", row.Channel, row.Origin, row.After)
		} else {
			_, err = fmt.Fprintf(tw, "%d\tno data\tno data\n", ch)
		}
		if err != nil {
			return err
		}
	}

	return tw.Flush()
}

func printReport(w io.Writer, res *drift.Result, d *drift.Diagnostics) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	lines := []struct {
		label string
		value string
	}{
		{"Channels", fmt.Sprintf("%d", res.Table.Len())},
		{"Degree", fmt.Sprintf("%d", res.Config.Degree)},
		{"Step", fmt.Sprintf("%g", res.Config.Step)},
		{"Forward", formatPoly(res.Forward)},
		{"Inverse", formatPoly(res.Inverse)},
		{"Forward RSS", fmt.Sprintf("%.6g", d.ForwardRSS)},
		{"Inverse RSS", fmt.Sprintf("%.6g", d.InverseRSS)},
		{"Total reference", fmt.Sprintf("%.6g", d.TotalReference)},
		{"Total shifted", fmt.Sprintf("%.6g", d.TotalShifted)},
		{"Total corrected", fmt.Sprintf("%.6g", d.TotalCorrected)},
		{"Mass drift", fmt.Sprintf("%.6g", d.MassDrift)},
	}

	if d.LagOK {
		lines = append(lines,
			struct{ label, value string }{"Lag before", fmt.Sprintf("%+.3f", d.LagBefore)},
			struct{ label, value string }{"Lag after", fmt.Sprintf("%+.3f", d.LagAfter)},
		)
	} else {
		lines = append(lines, struct{ label, value string }{"Lag", "n/a"})
	}

	for _, l := range lines {
		if _, err := fmt.Fprintf(tw, "%s:\t%s\n", l.label, l.value); err != nil {
			return err
		}
	}

	if _, err := fmt.Fprintf(tw, "\nPeak\tRemapped\tFound\tOffset\tFWHM\n"); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(tw, "----\t--------\t-----\t------\t----\n"); err != nil {
		return err
	}

	for i, p := range d.Peaks {
		remapped := "-"
		if i < len(d.RemappedPeaks) {
			remapped = fmt.Sprintf("%.3f", d.RemappedPeaks[i])
		}

		var err error
		if p.Found {
			_, err = fmt.Fprintf(tw, "%g\t%s\t%.3f\t%+.3f\t%.3f\n", p.Reference, remapped, p.Position, p.Offset, p.FWHM)
		} else {
			_, err = fmt.Fprintf(tw, "%g\t%s\tno data\t-\t-\n", p.Reference, remapped)
		}
		if err != nil {
			return err
		}
	}

	return tw.Flush()
}

// formatPoly writes coefficients in ascending order: c0 + c1·x + ...
func formatPoly(p calib.Poly) string {
	s := ""
	for i, c := range p.Coeffs() {
		switch i {
		case 0:
			s = fmt.Sprintf("%.6g", c)
		case 1:
			s += fmt.Sprintf(" %+.6g·x", c)
		default:
			s += fmt.Sprintf(" %+.6g·x^%d", c, i)
		}
	}
	if s == "" {
		return "0"
	}
	return s
}
