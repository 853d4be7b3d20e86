// Package report turns a processed session into caller-facing
// artifacts: a summary statistics block, a CSV table and an optional
// interactive HTML chart.
package report

import (
	"fmt"
	"io"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/banshee-data/magnetic.report/internal/geomag"
	"github.com/banshee-data/magnetic.report/internal/series"
	"github.com/banshee-data/magnetic.report/internal/units"
)

// ColumnStats summarises the valid cells of one column. Min and Max are
// NaN when the column has no valid cells.
type ColumnStats struct {
	Mean float64
	Min  float64
	Max  float64
}

// Summary holds the per-session statistics printed by the CLI and
// stored in the session archive.
type Summary struct {
	Samples     int
	Dip         ColumnStats
	Declination ColumnStats
	Bz          ColumnStats
	TotalField  ColumnStats
}

// Summarize computes summary statistics over the derived angle columns
// and the raw vertical and total-field columns. Missing cells are
// excluded; statistics describe observed values only.
func Summarize(s *series.Series) (*Summary, error) {
	sum := &Summary{Samples: s.Len()}

	for _, c := range []struct {
		name string
		dest *ColumnStats
	}{
		{geomag.ColDip, &sum.Dip},
		{geomag.ColDeclination, &sum.Declination},
		{geomag.ColBz, &sum.Bz},
		{geomag.ColAbsoluteField, &sum.TotalField},
	} {
		vals, err := s.ValidFloat64s(c.name)
		if err != nil {
			return nil, fmt.Errorf("report: %w", err)
		}
		*c.dest = columnStats(vals)
	}

	return sum, nil
}

func columnStats(vals []float64) ColumnStats {
	if len(vals) == 0 {
		return ColumnStats{Mean: math.NaN(), Min: math.NaN(), Max: math.NaN()}
	}
	return ColumnStats{
		Mean: stat.Mean(vals, nil),
		Min:  floats.Min(vals),
		Max:  floats.Max(vals),
	}
}

// WriteText writes the human-readable statistics block. Field
// magnitudes are converted from µT to fieldUnits for display; angles
// are always degrees.
func (s *Summary) WriteText(w io.Writer, fieldUnits string) {
	label := units.Label(fieldUnits)
	fmt.Fprintf(w, "Magnetic parameter statistics (%d samples):\n", s.Samples)
	fmt.Fprintf(w, "  Average dip angle: %.2f°\n", s.Dip.Mean)
	fmt.Fprintf(w, "  Dip angle range: %.2f° to %.2f°\n", s.Dip.Min, s.Dip.Max)
	fmt.Fprintf(w, "  Average declination: %.2f°\n", s.Declination.Mean)
	fmt.Fprintf(w, "  Declination range: %.2f° to %.2f°\n", s.Declination.Min, s.Declination.Max)
	fmt.Fprintf(w, "  Vertical component (Bz) range: %.2f to %.2f %s\n",
		units.ConvertField(s.Bz.Min, fieldUnits), units.ConvertField(s.Bz.Max, fieldUnits), label)
	fmt.Fprintf(w, "  Total field range: %.2f to %.2f %s\n",
		units.ConvertField(s.TotalField.Min, fieldUnits), units.ConvertField(s.TotalField.Max, fieldUnits), label)
}
