package smooth

import "testing"

func TestNewPlanWindowSelection(t *testing.T) {
	tests := []struct {
		name        string
		n           int
		wantWindow  int
		wantEnabled bool
	}{
		{"short series disables smoothing", 8, 0, false},
		{"threshold length disables smoothing", 10, 0, false},
		{"just above threshold forces minimum window", 11, 5, true},
		{"odd candidate used directly", 52, 13, true},
		{"even candidate bumped to odd", 50, 13, true},
		{"hundred samples", 100, 25, true},
		{"two hundred samples", 200, 51, true},
		{"no upper cap on long series", 1000, 251, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan := NewPlan(tt.n, DefaultParams())
			if plan.Enabled != tt.wantEnabled {
				t.Errorf("NewPlan(%d).Enabled = %v, want %v", tt.n, plan.Enabled, tt.wantEnabled)
			}
			if plan.WindowLength != tt.wantWindow {
				t.Errorf("NewPlan(%d).WindowLength = %d, want %d", tt.n, plan.WindowLength, tt.wantWindow)
			}
			if plan.Enabled && plan.WindowLength%2 == 0 {
				t.Errorf("NewPlan(%d) selected even window %d", tt.n, plan.WindowLength)
			}
		})
	}
}

func TestNewPlanCustomParams(t *testing.T) {
	// Raising MinSamples pushes the enable threshold up.
	p := Params{MinSamples: 100}
	if plan := NewPlan(60, p); plan.Enabled {
		t.Errorf("NewPlan(60, MinSamples=100) enabled, want disabled")
	}

	// A larger MinWindow can exceed the series length; the plan records
	// it anyway and the filter rejects it later.
	p = Params{MinWindow: 13}
	plan := NewPlan(11, p)
	if !plan.Enabled || plan.WindowLength != 13 {
		t.Errorf("NewPlan(11, MinWindow=13) = %+v, want enabled window 13", plan)
	}
}

func TestDefaultParams(t *testing.T) {
	p := DefaultParams()
	if p.PolyOrder != 2 || p.MinWindow != 5 || p.MinSamples != 10 {
		t.Errorf("DefaultParams() = %+v, want {2 5 10}", p)
	}

	// Zero-valued Params fall back to the same defaults.
	var zero Params
	if got, want := NewPlan(100, zero), NewPlan(100, p); got != want {
		t.Errorf("zero params plan %+v differs from default plan %+v", got, want)
	}
}
