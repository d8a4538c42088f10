// Package specio reads spectra from text and CSV files and writes aligned
// result tables as CSV or JSON.
//
// Text files carry one header line followed by one count per line; channels
// are numbered from 1 in file order. CSV files carry a header with a
// "channels" and a "counts" column (case-insensitive, extra columns ignored).
package specio

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/cwbudde/algo-gamma/dsp/spectrum"
)

var (
	// ErrUnsupportedFormat is returned for file extensions without a reader
	// or writer.
	ErrUnsupportedFormat = errors.New("specio: unsupported file format")
	// ErrMissingColumn is returned when a CSV header lacks a required column.
	ErrMissingColumn = errors.New("specio: missing column")
)

// Column names of CSV spectrum input.
const (
	ColumnChannels = "channels"
	ColumnCounts   = "counts"
)

// ReadFile reads a spectrum, choosing the format by extension.
func ReadFile(path string) (spectrum.Spectrum, error) {
	read, err := readerFor(path)
	if err != nil {
		return spectrum.Spectrum{}, err
	}

	f, err := os.Open(path)
	if err != nil {
		return spectrum.Spectrum{}, fmt.Errorf("specio: %w", err)
	}
	defer f.Close()

	s, err := read(f)
	if err != nil {
		return spectrum.Spectrum{}, fmt.Errorf("%s: %w", path, err)
	}

	return s, nil
}

func readerFor(path string) (func(io.Reader) (spectrum.Spectrum, error), error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".txt", ".dat":
		return ReadText, nil
	case ".csv":
		return ReadCSV, nil
	case ".xlsx", ".xls":
		return nil, fmt.Errorf("%w: %s (Excel workbooks are not read; export the sheet as CSV)",
			ErrUnsupportedFormat, ext)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
}

// ReadText reads a header line followed by one count per line. Blank lines
// are skipped.
func ReadText(r io.Reader) (spectrum.Spectrum, error) {
	sc := bufio.NewScanner(r)

	var (
		counts []float64
		line   int
	)

	for sc.Scan() {
		line++
		if line == 1 {
			continue
		}

		field := strings.TrimSpace(sc.Text())
		if field == "" {
			continue
		}

		v, err := parseCount(field)
		if err != nil {
			return spectrum.Spectrum{}, fmt.Errorf("specio: line %d: %w", line, err)
		}

		counts = append(counts, v)
	}

	if err := sc.Err(); err != nil {
		return spectrum.Spectrum{}, fmt.Errorf("specio: %w", err)
	}

	return spectrum.New(counts)
}

// ReadCSV reads channel/count rows. Rows may be in any order but channels
// must cover 1..N exactly once.
func ReadCSV(r io.Reader) (spectrum.Spectrum, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return spectrum.Spectrum{}, fmt.Errorf("specio: read header: %w", err)
	}

	chCol, cntCol := -1, -1
	for i, name := range header {
		switch strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))) {
		case ColumnChannels:
			chCol = i
		case ColumnCounts:
			cntCol = i
		}
	}

	if chCol < 0 {
		return spectrum.Spectrum{}, fmt.Errorf("%w: %s", ErrMissingColumn, ColumnChannels)
	}
	if cntCol < 0 {
		return spectrum.Spectrum{}, fmt.Errorf("%w: %s", ErrMissingColumn, ColumnCounts)
	}

	var (
		channels []int
		counts   []float64
	)

	for row := 2; ; row++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return spectrum.Spectrum{}, fmt.Errorf("specio: row %d: %w", row, err)
		}

		if len(rec) <= max(chCol, cntCol) {
			return spectrum.Spectrum{}, fmt.Errorf("specio: row %d: %d fields", row, len(rec))
		}

		ch, err := parseChannel(rec[chCol])
		if err != nil {
			return spectrum.Spectrum{}, fmt.Errorf("specio: row %d: %w", row, err)
		}

		v, err := parseCount(rec[cntCol])
		if err != nil {
			return spectrum.Spectrum{}, fmt.Errorf("specio: row %d: %w", row, err)
		}

		channels = append(channels, ch)
		counts = append(counts, v)
	}

	return spectrum.FromPairs(channels, counts)
}

func parseCount(field string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
	if err != nil {
		return 0, fmt.Errorf("count %q: %w", field, err)
	}
	return v, nil
}

// parseChannel accepts integral values written as "12" or "12.0".
func parseChannel(field string) (int, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
	if err != nil {
		return 0, fmt.Errorf("channel %q: %w", field, err)
	}

	if v != math.Trunc(v) || math.Abs(v) > math.MaxInt32 {
		return 0, fmt.Errorf("channel %q: not an integer", field)
	}

	return int(v), nil
}
