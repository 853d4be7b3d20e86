// Package ingest reads magnetometer logging sessions from disk into a
// series.Series. Two on-disk formats are supported: phyphox-style Excel
// exports and whitespace-delimited text logs with a two-line preamble.
// Both carry the same five columns in fixed order: time, Bx, By, Bz and
// the sensor-reported absolute field.
package ingest

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/banshee-data/magnetic.report/internal/geomag"
	"github.com/banshee-data/magnetic.report/internal/series"
)

// ReadFile loads a session, choosing the reader from the file
// extension. The returned series has at least one row; a file with no
// data rows is an error so the processing core never sees an empty
// table.
func ReadFile(path string) (*series.Series, error) {
	var rows [][]string
	var err error

	switch strings.ToLower(filepath.Ext(path)) {
	case ".xls", ".xlsx":
		rows, err = readExcelRows(path)
	default:
		rows, err = readTextRows(path)
	}
	if err != nil {
		return nil, err
	}

	return buildSeries(path, rows)
}

// buildSeries converts raw string cells into the five-column table.
// Cells that do not parse as a float become missing values rather than
// failing the whole session; short rows are padded with missing cells.
func buildSeries(path string, rows [][]string) (*series.Series, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("ingest: %s contains no data rows", path)
	}

	n := len(rows)
	columns := make([][]series.Value, len(geomag.RawColumns))
	for c := range columns {
		columns[c] = make([]series.Value, n)
	}

	for r, row := range rows {
		for c := range geomag.RawColumns {
			if c >= len(row) {
				continue // already missing
			}
			columns[c][r] = parseCell(row[c])
		}
	}

	s := series.New(n)
	for c, name := range geomag.RawColumns {
		if err := s.AddColumn(name, columns[c]); err != nil {
			return nil, fmt.Errorf("ingest: %w", err)
		}
	}
	return s, nil
}

func parseCell(cell string) series.Value {
	v, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
	if err != nil {
		return series.Missing()
	}
	return series.Num(v)
}
