package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/banshee-data/magnetic.report/internal/series"
)

// WriteCSV writes the full augmented table, one column per series
// column in insertion order. Missing cells are written empty so the
// file round-trips through spreadsheet tools without inventing zeros.
func WriteCSV(w io.Writer, s *series.Series) error {
	cw := csv.NewWriter(w)

	names := s.ColumnNames()
	if err := cw.Write(names); err != nil {
		return fmt.Errorf("report: write csv header: %w", err)
	}

	columns := make([][]series.Value, len(names))
	for i, name := range names {
		col, err := s.Column(name)
		if err != nil {
			return fmt.Errorf("report: %w", err)
		}
		columns[i] = col
	}

	row := make([]string, len(names))
	for r := 0; r < s.Len(); r++ {
		for c := range columns {
			v := columns[c][r]
			if v.Valid {
				row[c] = strconv.FormatFloat(v.V, 'f', 6, 64)
			} else {
				row[c] = ""
			}
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("report: write csv row %d: %w", r, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("report: flush csv: %w", err)
	}
	return nil
}

// WriteCSVFile writes the table to path, creating or truncating it.
func WriteCSVFile(path string, s *series.Series) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("report: create %s: %w", path, err)
	}
	defer f.Close()

	if err := WriteCSV(f, s); err != nil {
		return err
	}
	return f.Close()
}
