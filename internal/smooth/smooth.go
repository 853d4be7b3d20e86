package smooth

import (
	"fmt"

	"github.com/banshee-data/magnetic.report/internal/geomag"
	"github.com/banshee-data/magnetic.report/internal/series"
)

// Smoothed column names appended by Smooth.
const (
	ColDipSmooth         = "dip_smooth"
	ColDeclinationSmooth = "declination_smooth"
	ColBzSmooth          = "bz_smooth"
)

// targets maps each smoothed column to the column it is derived from.
var targets = []struct {
	source, dest string
}{
	{geomag.ColDip, ColDipSmooth},
	{geomag.ColDeclination, ColDeclinationSmooth},
	{geomag.ColBz, ColBzSmooth},
}

// Smooth applies the session's smoothing plan to the dip, declination
// and vertical-component columns and returns an augmented copy of s.
// When the plan is disabled the smoothed columns are verbatim copies of
// their sources; the three columns are always appended together, never
// partially.
//
// A plan whose window exceeds the series length (possible for series
// just above the minimum-sample threshold) is an error naming both
// lengths; the caller decides whether to retry with smoothing disabled.
func Smooth(s *series.Series, p Params) (*series.Series, error) {
	if s.Len() == 0 {
		return nil, fmt.Errorf("smooth: refusing to smooth empty series")
	}
	for _, t := range targets {
		if !s.HasColumn(t.source) {
			return nil, fmt.Errorf("smooth: series is missing column %q; run angle derivation first", t.source)
		}
	}

	plan := NewPlan(s.Len(), p)

	out := s.Clone()
	for _, t := range targets {
		smoothed, err := smoothColumn(s, t.source, plan)
		if err != nil {
			return nil, err
		}
		if err := out.AddColumn(t.dest, smoothed); err != nil {
			return nil, fmt.Errorf("smooth: %w", err)
		}
	}
	return out, nil
}

func smoothColumn(s *series.Series, name string, plan Plan) ([]series.Value, error) {
	col, err := s.Column(name)
	if err != nil {
		return nil, fmt.Errorf("smooth: %w", err)
	}

	if !plan.Enabled {
		out := make([]series.Value, len(col))
		copy(out, col)
		return out, nil
	}

	raw, err := s.Float64s(name)
	if err != nil {
		return nil, fmt.Errorf("smooth: %w", err)
	}
	filtered, err := Filter(raw, plan.WindowLength, plan.PolyOrder)
	if err != nil {
		return nil, fmt.Errorf("smooth: column %q: %w", name, err)
	}

	out := make([]series.Value, len(filtered))
	for i, v := range filtered {
		out[i] = series.FromFloat64(v)
	}
	return out, nil
}
