package chart

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/plot"

	"github.com/cwbudde/algo-gamma/dsp/align"
	"github.com/cwbudde/algo-gamma/dsp/spectrum"
	"github.com/cwbudde/algo-gamma/internal/testutil"
)

func table(t *testing.T) *align.Table {
	t.Helper()
	counts := testutil.GaussianPeaks(64, []float64{20, 40}, 500, 2)
	ref, err := spectrum.New(counts)
	require.NoError(t, err)

	// Zeros exercise the log-axis floor.
	after := make([]float64, len(counts))
	copy(after, counts[1:])

	tbl, err := align.Assemble(ref, after)
	require.NoError(t, err)
	return tbl
}

func TestNewLogScale(t *testing.T) {
	opts := DefaultOptions()
	opts.Peaks = []float64{20, 40}

	p, err := New(table(t), opts)
	require.NoError(t, err)
	require.IsType(t, plot.LogScale{}, p.Y.Scale)
	require.Equal(t, "Spectrum", p.Title.Text)
	require.Equal(t, "Channels", p.X.Label.Text)
}

func TestSeriesFloorsLogValues(t *testing.T) {
	ref, after, top := series(table(t), true)
	for i := range ref {
		require.GreaterOrEqual(t, ref[i].Y, logFloor)
		require.GreaterOrEqual(t, after[i].Y, logFloor)
	}
	require.InDelta(t, 500, top, 1e-9)
	require.Equal(t, 1.0, ref[0].X)
}

func TestRenderPNG(t *testing.T) {
	var buf bytes.Buffer
	opts := DefaultOptions()
	opts.Peaks = []float64{20, 40}

	require.NoError(t, Render(&buf, table(t), "png", opts))
	require.True(t, bytes.HasPrefix(buf.Bytes(), []byte("\x89PNG")))
}

func TestRenderSVGLinear(t *testing.T) {
	var buf bytes.Buffer
	opts := Options{Title: "linear"}

	require.NoError(t, Render(&buf, table(t), "SVG", opts))
	require.Contains(t, buf.String(), "<svg")
}

func TestRenderErrors(t *testing.T) {
	var buf bytes.Buffer
	require.ErrorIs(t, Render(&buf, nil, "png", DefaultOptions()), ErrEmptyTable)
	require.Error(t, Render(&buf, table(t), "bmp-ish", DefaultOptions()))
}

func TestSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chart.png")
	require.NoError(t, Save(path, table(t), DefaultOptions()))

	info, err := os.Stat(path)
	require.NoError(t, err)
	require.Positive(t, info.Size())

	require.Error(t, Save(filepath.Join(t.TempDir(), "chart"), table(t), DefaultOptions()))
}
