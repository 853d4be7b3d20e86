// Package geomag derives geomagnetic orientation angles from raw
// three-axis magnetometer samples. The sensor frame is NED: bx points
// north, by east, bz down, all in microtesla.
package geomag

import (
	"fmt"
	"math"

	"github.com/banshee-data/magnetic.report/internal/series"
)

// Raw column names shared by ingestion and the processing pipeline.
const (
	ColTime          = "time_s"
	ColBx            = "bx_ut"
	ColBy            = "by_ut"
	ColBz            = "bz_ut"
	ColAbsoluteField = "absolute_field_ut"
)

// Derived column names appended by DeriveAngles.
const (
	ColHorizontal  = "h_ut"
	ColDip         = "dip_deg"
	ColDeclination = "declination_deg"
)

// RawColumns lists the columns every ingested session must carry, in
// file order.
var RawColumns = []string{ColTime, ColBx, ColBy, ColBz, ColAbsoluteField}

// DeriveAngles computes the horizontal field magnitude, dip angle and
// declination for every sample and returns an augmented copy of s.
//
//	h    = hypot(bx, by)
//	dip  = degrees(atan2(bz, h))
//	decl = degrees(atan2(by, bx))
//
// The two-argument arctangent keeps the quadrant correct and makes
// bx = 0 and h = 0 well defined; atan2(0, 0) = 0 so a vertical field
// yields a declination of exactly 0 rather than an error. Missing
// inputs produce missing outputs for the affected sample only.
func DeriveAngles(s *series.Series) (*series.Series, error) {
	if s.Len() == 0 {
		return nil, fmt.Errorf("geomag: refusing to derive angles for empty series")
	}

	bx, err := s.Column(ColBx)
	if err != nil {
		return nil, fmt.Errorf("geomag: %w", err)
	}
	by, err := s.Column(ColBy)
	if err != nil {
		return nil, fmt.Errorf("geomag: %w", err)
	}
	bz, err := s.Column(ColBz)
	if err != nil {
		return nil, fmt.Errorf("geomag: %w", err)
	}

	n := s.Len()
	h := make([]series.Value, n)
	dip := make([]series.Value, n)
	decl := make([]series.Value, n)

	for i := 0; i < n; i++ {
		if bx[i].Valid && by[i].Valid {
			hv := math.Hypot(bx[i].V, by[i].V)
			h[i] = series.Num(hv)
			decl[i] = series.Num(degrees(math.Atan2(by[i].V, bx[i].V)))
			if bz[i].Valid {
				dip[i] = series.Num(degrees(math.Atan2(bz[i].V, hv)))
			}
		}
	}

	out := s.Clone()
	for _, col := range []struct {
		name   string
		values []series.Value
	}{
		{ColHorizontal, h},
		{ColDip, dip},
		{ColDeclination, decl},
	} {
		if out.HasColumn(col.name) {
			continue // rerun over already-derived output keeps prior columns
		}
		if err := out.AddColumn(col.name, col.values); err != nil {
			return nil, fmt.Errorf("geomag: %w", err)
		}
	}
	return out, nil
}

func degrees(rad float64) float64 {
	return rad * 180 / math.Pi
}
