package geomag

import (
	"math"
	"testing"

	"github.com/banshee-data/magnetic.report/internal/series"
)

const tolerance = 1e-9

func buildSeries(t *testing.T, bx, by, bz []series.Value) *series.Series {
	t.Helper()
	n := len(bx)
	s := series.New(n)
	timeCol := make([]series.Value, n)
	absCol := make([]series.Value, n)
	for i := range timeCol {
		timeCol[i] = series.Num(float64(i) * 0.1)
		absCol[i] = series.Num(50)
	}
	for name, col := range map[string][]series.Value{
		ColTime: timeCol, ColBx: bx, ColBy: by, ColBz: bz, ColAbsoluteField: absCol,
	} {
		if err := s.AddColumn(name, col); err != nil {
			t.Fatalf("AddColumn(%s) failed: %v", name, err)
		}
	}
	return s
}

func TestDeriveAngles(t *testing.T) {
	tests := []struct {
		name       string
		bx, by, bz float64
		wantH      float64
		wantDip    float64
		wantDecl   float64
	}{
		{"north pointing field", 20, 0, 40, 20, math.Atan2(40, 20) * 180 / math.Pi, 0},
		{"east pointing field", 0, 30, 0, 30, 0, 90},
		{"west pointing field", 0, -30, 0, 30, 0, -90},
		{"south pointing field", -10, 0, 0, 10, 0, 180},
		{"vertical field uses atan2 zero convention", 0, 0, 45, 0, 90, 0},
		{"upward field has negative dip", 10, 0, -10, 10, -45, 0},
		{"northeast declination", 10, 10, 0, math.Hypot(10, 10), 0, 45},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := buildSeries(t,
				[]series.Value{series.Num(tt.bx)},
				[]series.Value{series.Num(tt.by)},
				[]series.Value{series.Num(tt.bz)},
			)
			out, err := DeriveAngles(s)
			if err != nil {
				t.Fatalf("DeriveAngles failed: %v", err)
			}

			check := func(col string, want float64) {
				vals, err := out.Column(col)
				if err != nil {
					t.Fatalf("missing column %s: %v", col, err)
				}
				if !vals[0].Valid {
					t.Fatalf("%s is missing, want %v", col, want)
				}
				if math.Abs(vals[0].V-want) > tolerance {
					t.Errorf("%s = %v, want %v", col, vals[0].V, want)
				}
			}
			check(ColHorizontal, tt.wantH)
			check(ColDip, tt.wantDip)
			check(ColDeclination, tt.wantDecl)
		})
	}
}

func TestDeriveAnglesProperties(t *testing.T) {
	// A spread of field vectors across quadrants.
	bx := []float64{20, -15, 0, 33.3, -2, 5}
	by := []float64{5, 25, -12, 0, -40, 5}
	bz := []float64{40, -10, 30, 55, 0, -20}

	vx := make([]series.Value, len(bx))
	vy := make([]series.Value, len(bx))
	vz := make([]series.Value, len(bx))
	for i := range bx {
		vx[i], vy[i], vz[i] = series.Num(bx[i]), series.Num(by[i]), series.Num(bz[i])
	}

	out, err := DeriveAngles(buildSeries(t, vx, vy, vz))
	if err != nil {
		t.Fatalf("DeriveAngles failed: %v", err)
	}

	h, _ := out.Column(ColHorizontal)
	dip, _ := out.Column(ColDip)
	decl, _ := out.Column(ColDeclination)

	for i := range bx {
		if h[i].V < 0 {
			t.Errorf("sample %d: h = %v, want >= 0", i, h[i].V)
		}
		if want := math.Hypot(bx[i], by[i]); math.Abs(h[i].V-want) > tolerance {
			t.Errorf("sample %d: h = %v, want %v", i, h[i].V, want)
		}
		if h[i].V > 0 {
			if dip[i].V < -90 || dip[i].V > 90 {
				t.Errorf("sample %d: dip = %v, want in [-90, 90]", i, dip[i].V)
			}
			wantTan := bz[i] / h[i].V
			if got := math.Tan(dip[i].V * math.Pi / 180); math.Abs(got-wantTan) > 1e-6 {
				t.Errorf("sample %d: tan(dip) = %v, want %v", i, got, wantTan)
			}
		}
		if decl[i].V <= -180 || decl[i].V > 180 {
			t.Errorf("sample %d: declination = %v, want in (-180, 180]", i, decl[i].V)
		}
	}
}

func TestDeriveAnglesMissingPropagation(t *testing.T) {
	s := buildSeries(t,
		[]series.Value{series.Num(20), series.Missing(), series.Num(20)},
		[]series.Value{series.Num(0), series.Num(5), series.Num(0)},
		[]series.Value{series.Num(40), series.Num(40), series.Missing()},
	)

	out, err := DeriveAngles(s)
	if err != nil {
		t.Fatalf("DeriveAngles failed: %v", err)
	}

	h, _ := out.Column(ColHorizontal)
	dip, _ := out.Column(ColDip)
	decl, _ := out.Column(ColDeclination)

	// Sample 0 is complete.
	if !h[0].Valid || !dip[0].Valid || !decl[0].Valid {
		t.Error("sample 0: expected all derived values valid")
	}
	// Sample 1 has missing bx: everything depending on it is missing.
	if h[1].Valid || dip[1].Valid || decl[1].Valid {
		t.Error("sample 1: expected derived values missing when bx is missing")
	}
	// Sample 2 has missing bz: h and declination survive, dip does not.
	if !h[2].Valid || !decl[2].Valid {
		t.Error("sample 2: h and declination should not depend on bz")
	}
	if dip[2].Valid {
		t.Error("sample 2: dip should be missing when bz is missing")
	}
}

func TestDeriveAnglesIdempotent(t *testing.T) {
	s := buildSeries(t,
		[]series.Value{series.Num(20), series.Num(-5)},
		[]series.Value{series.Num(10), series.Num(15)},
		[]series.Value{series.Num(40), series.Num(-30)},
	)

	once, err := DeriveAngles(s)
	if err != nil {
		t.Fatalf("first DeriveAngles failed: %v", err)
	}
	twice, err := DeriveAngles(once)
	if err != nil {
		t.Fatalf("second DeriveAngles failed: %v", err)
	}

	for _, col := range []string{ColHorizontal, ColDip, ColDeclination} {
		a, _ := once.Column(col)
		b, _ := twice.Column(col)
		for i := range a {
			if a[i] != b[i] {
				t.Errorf("%s[%d] changed on rerun: %v != %v", col, i, a[i], b[i])
			}
		}
	}
}

func TestDeriveAnglesDoesNotMutateInput(t *testing.T) {
	s := buildSeries(t,
		[]series.Value{series.Num(20)},
		[]series.Value{series.Num(0)},
		[]series.Value{series.Num(40)},
	)

	if _, err := DeriveAngles(s); err != nil {
		t.Fatalf("DeriveAngles failed: %v", err)
	}
	for _, col := range []string{ColHorizontal, ColDip, ColDeclination} {
		if s.HasColumn(col) {
			t.Errorf("input series gained column %s", col)
		}
	}
}

func TestDeriveAnglesErrors(t *testing.T) {
	t.Run("empty series", func(t *testing.T) {
		if _, err := DeriveAngles(series.New(0)); err == nil {
			t.Error("expected error for empty series")
		}
	})

	t.Run("missing raw column", func(t *testing.T) {
		s := series.New(1)
		if err := s.AddColumn(ColBx, []series.Value{series.Num(1)}); err != nil {
			t.Fatal(err)
		}
		if _, err := DeriveAngles(s); err == nil {
			t.Error("expected error when by/bz columns are absent")
		}
	})
}
