package align

import (
	"fmt"

	"github.com/cwbudde/algo-gamma/dsp/core"
	"github.com/cwbudde/algo-gamma/dsp/spectrum"
	"github.com/cwbudde/algo-gamma/stats/counts"
)

// Row is one channel of the aligned result.
type Row struct {
	Channel int     `json:"channel"`
	Origin  float64 `json:"counts_origin"`
	After   float64 `json:"counts_after"`
}

// Table is the aligned result for channels 1..N.
type Table struct {
	rows        []Row
	totalOrigin float64
	totalAfter  float64
}

// Assemble pairs reference counts with the rebinned counts index by index.
// The rebinned slice must have the reference length and hold finite values.
func Assemble(reference spectrum.Spectrum, rebinned []float64) (*Table, error) {
	n := reference.Len()
	if len(rebinned) != n {
		return nil, fmt.Errorf("align: reference has %d channels, rebinned has %d: %w",
			n, len(rebinned), core.ErrShapeMismatch)
	}

	if i := core.AllFinite(rebinned); i >= 0 {
		return nil, fmt.Errorf("align: rebinned channel %d: %w", i+1, core.ErrNonFinite)
	}

	origin := reference.Counts()

	rows := make([]Row, n)
	for i := range rows {
		rows[i] = Row{Channel: i + 1, Origin: origin[i], After: rebinned[i]}
	}

	return &Table{
		rows:        rows,
		totalOrigin: counts.Total(origin),
		totalAfter:  counts.Total(rebinned),
	}, nil
}

// Len returns the number of rows.
func (t *Table) Len() int { return len(t.rows) }

// Rows returns a copy of the rows in channel order.
func (t *Table) Rows() []Row {
	out := make([]Row, len(t.rows))
	copy(out, t.rows)
	return out
}

// Lookup returns the row for a 1-based channel. ok is false on a miss.
func (t *Table) Lookup(channel int) (row Row, ok bool) {
	if channel < 1 || channel > len(t.rows) {
		return Row{}, false
	}
	return t.rows[channel-1], true
}

// Origin returns a copy of the reference counts column.
func (t *Table) Origin() []float64 {
	out := make([]float64, len(t.rows))
	for i, r := range t.rows {
		out[i] = r.Origin
	}
	return out
}

// After returns a copy of the rebinned counts column.
func (t *Table) After() []float64 {
	out := make([]float64, len(t.rows))
	for i, r := range t.rows {
		out[i] = r.After
	}
	return out
}

// TotalOrigin is the summed reference counts.
func (t *Table) TotalOrigin() float64 { return t.totalOrigin }

// TotalAfter is the summed rebinned counts.
func (t *Table) TotalAfter() float64 { return t.totalAfter }

// MassDrift is TotalOrigin - TotalAfter.
func (t *Table) MassDrift() float64 { return t.totalOrigin - t.totalAfter }
