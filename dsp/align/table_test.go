package align

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-gamma/dsp/core"
	"github.com/cwbudde/algo-gamma/dsp/spectrum"
	"github.com/stretchr/testify/require"
)

func mustSpectrum(t *testing.T, counts []float64) spectrum.Spectrum {
	t.Helper()
	s, err := spectrum.New(counts)
	require.NoError(t, err)
	return s
}

func TestAssembleRows(t *testing.T) {
	ref := mustSpectrum(t, []float64{10, 20, 30})
	tbl, err := Assemble(ref, []float64{1.5, 2.5, 3.5})
	require.NoError(t, err)

	require.Equal(t, 3, tbl.Len())
	require.Equal(t, []Row{
		{Channel: 1, Origin: 10, After: 1.5},
		{Channel: 2, Origin: 20, After: 2.5},
		{Channel: 3, Origin: 30, After: 3.5},
	}, tbl.Rows())
	require.Equal(t, []float64{10, 20, 30}, tbl.Origin())
	require.Equal(t, []float64{1.5, 2.5, 3.5}, tbl.After())

	require.Equal(t, 60.0, tbl.TotalOrigin())
	require.Equal(t, 7.5, tbl.TotalAfter())
	require.Equal(t, 52.5, tbl.MassDrift())
}

func TestAssembleShapeMismatch(t *testing.T) {
	ref := mustSpectrum(t, []float64{1, 2, 3})
	_, err := Assemble(ref, []float64{1, 2})
	require.True(t, errors.Is(err, core.ErrShapeMismatch), "err = %v", err)
}

func TestAssembleNonFinite(t *testing.T) {
	ref := mustSpectrum(t, []float64{1, 2})
	_, err := Assemble(ref, []float64{1, math.Inf(1)})
	require.ErrorIs(t, err, core.ErrNonFinite)
}

func TestAssembleDoesNotAlias(t *testing.T) {
	ref := mustSpectrum(t, []float64{1, 2})
	rebinned := []float64{5, 6}

	tbl, err := Assemble(ref, rebinned)
	require.NoError(t, err)

	rebinned[0] = 99
	rows := tbl.Rows()
	rows[1].After = -1

	row, ok := tbl.Lookup(1)
	require.True(t, ok)
	require.Equal(t, 5.0, row.After)

	row, ok = tbl.Lookup(2)
	require.True(t, ok)
	require.Equal(t, 6.0, row.After)
}

func TestLookupMiss(t *testing.T) {
	tbl, err := Assemble(mustSpectrum(t, []float64{4, 5, 6}), []float64{0, 0, 0})
	require.NoError(t, err)

	for _, ch := range []int{0, -3, 4, 1000} {
		row, ok := tbl.Lookup(ch)
		require.False(t, ok, "channel %d", ch)
		require.Zero(t, row)
	}

	row, ok := tbl.Lookup(3)
	require.True(t, ok)
	require.Equal(t, Row{Channel: 3, Origin: 6, After: 0}, row)
}
