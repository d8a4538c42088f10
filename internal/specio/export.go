package specio

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/cwbudde/algo-gamma/dsp/align"
)

// CSVHeader is the header row of exported result tables.
var CSVHeader = []string{"Channels", "Counts_origin", "Counts_after"}

// Document is the JSON form of an aligned result table.
type Document struct {
	Rows        []align.Row `json:"rows"`
	TotalOrigin float64     `json:"total_origin"`
	TotalAfter  float64     `json:"total_after"`
	MassDrift   float64     `json:"mass_drift"`
}

// NewDocument captures tbl for serialization.
func NewDocument(tbl *align.Table) Document {
	return Document{
		Rows:        tbl.Rows(),
		TotalOrigin: tbl.TotalOrigin(),
		TotalAfter:  tbl.TotalAfter(),
		MassDrift:   tbl.MassDrift(),
	}
}

// WriteCSV writes one row per channel under CSVHeader.
func WriteCSV(w io.Writer, tbl *align.Table) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(CSVHeader); err != nil {
		return fmt.Errorf("specio: write header: %w", err)
	}

	rec := make([]string, 3)
	for _, r := range tbl.Rows() {
		rec[0] = strconv.Itoa(r.Channel)
		rec[1] = strconv.FormatFloat(r.Origin, 'g', -1, 64)
		rec[2] = strconv.FormatFloat(r.After, 'g', -1, 64)

		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("specio: write row %d: %w", r.Channel, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("specio: %w", err)
	}

	return nil
}

// WriteJSON writes tbl as an indented Document.
func WriteJSON(w io.Writer, tbl *align.Table) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	if err := enc.Encode(NewDocument(tbl)); err != nil {
		return fmt.Errorf("specio: %w", err)
	}

	return nil
}

// WriteFile writes tbl to path as CSV or JSON depending on the extension.
func WriteFile(path string, tbl *align.Table) (err error) {
	var write func(io.Writer, *align.Table) error

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".csv":
		write = WriteCSV
	case ".json":
		write = WriteJSON
	case ".xlsx", ".xls":
		return fmt.Errorf("%w: %s (write .csv instead)", ErrUnsupportedFormat, ext)
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("specio: %w", err)
	}

	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("specio: %w", cerr)
		}
	}()

	return write(f, tbl)
}
