// Package testutil provides shared test fixtures.
//
// This package centralises the synthetic session builders used by the
// reporting and persistence tests, so each test file does not rebuild
// the same tables by hand.
package testutil

import (
	"math"
	"testing"

	"github.com/banshee-data/magnetic.report/internal/geomag"
	"github.com/banshee-data/magnetic.report/internal/series"
	"github.com/banshee-data/magnetic.report/internal/smooth"
)

// RawSession builds a raw n-sample session at 10 Hz with a slowly
// rotating field of roughly 46 µT total magnitude. The signal is
// deterministic so tests can assert on derived values.
func RawSession(t *testing.T, n int) *series.Series {
	t.Helper()

	timeCol := make([]series.Value, n)
	bx := make([]series.Value, n)
	by := make([]series.Value, n)
	bz := make([]series.Value, n)
	abs := make([]series.Value, n)
	for i := 0; i < n; i++ {
		phase := float64(i) * 0.01
		bxv := 21 + math.Sin(phase)
		byv := -3 + 0.5*math.Cos(phase)
		bzv := 40 + 0.8*math.Sin(phase*3)

		timeCol[i] = series.Num(float64(i) * 0.1)
		bx[i] = series.Num(bxv)
		by[i] = series.Num(byv)
		bz[i] = series.Num(bzv)
		abs[i] = series.Num(math.Sqrt(bxv*bxv + byv*byv + bzv*bzv))
	}

	s := series.New(n)
	for _, col := range []struct {
		name   string
		values []series.Value
	}{
		{geomag.ColTime, timeCol},
		{geomag.ColBx, bx},
		{geomag.ColBy, by},
		{geomag.ColBz, bz},
		{geomag.ColAbsoluteField, abs},
	} {
		if err := s.AddColumn(col.name, col.values); err != nil {
			t.Fatalf("build session: %v", err)
		}
	}
	return s
}

// ProcessedSession builds a session that has been through angle
// derivation and smoothing with default parameters.
func ProcessedSession(t *testing.T, n int) *series.Series {
	t.Helper()

	derived, err := geomag.DeriveAngles(RawSession(t, n))
	if err != nil {
		t.Fatalf("derive angles: %v", err)
	}
	smoothed, err := smooth.Smooth(derived, smooth.DefaultParams())
	if err != nil {
		t.Fatalf("smooth: %v", err)
	}
	return smoothed
}
