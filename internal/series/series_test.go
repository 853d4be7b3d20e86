package series

import (
	"math"
	"testing"
)

func TestValueFloat64RoundTrip(t *testing.T) {
	tests := []struct {
		name    string
		value   Value
		wantNaN bool
	}{
		{"valid value", Num(12.5), false},
		{"valid zero", Num(0), false},
		{"missing value", Missing(), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := tt.value.Float64()
			if math.IsNaN(f) != tt.wantNaN {
				t.Errorf("Float64() = %v, wantNaN %v", f, tt.wantNaN)
			}
			back := FromFloat64(f)
			if back != tt.value {
				t.Errorf("FromFloat64(Float64()) = %+v, want %+v", back, tt.value)
			}
		})
	}
}

func TestAddColumn(t *testing.T) {
	s := New(3)

	if err := s.AddColumn("a", []Value{Num(1), Num(2), Num(3)}); err != nil {
		t.Fatalf("AddColumn failed: %v", err)
	}
	if !s.HasColumn("a") {
		t.Error("expected column a to be present")
	}

	// Length mismatch is rejected
	if err := s.AddColumn("b", []Value{Num(1)}); err == nil {
		t.Error("expected error for length mismatch")
	}

	// Duplicate name is rejected
	if err := s.AddColumn("a", []Value{Num(4), Num(5), Num(6)}); err == nil {
		t.Error("expected error for duplicate column")
	}

	// Unknown column lookup is an error
	if _, err := s.Column("missing"); err == nil {
		t.Error("expected error for unknown column")
	}
}

func TestAddColumnCopiesInput(t *testing.T) {
	s := New(2)
	in := []Value{Num(1), Num(2)}
	if err := s.AddColumn("a", in); err != nil {
		t.Fatalf("AddColumn failed: %v", err)
	}

	in[0] = Num(99)

	col, err := s.Column("a")
	if err != nil {
		t.Fatalf("Column failed: %v", err)
	}
	if col[0].V != 1 {
		t.Errorf("column shares backing store with caller: got %v", col[0].V)
	}
}

func TestCloneIsIndependent(t *testing.T) {
	s := New(2)
	if err := s.AddColumn("a", []Value{Num(1), Num(2)}); err != nil {
		t.Fatalf("AddColumn failed: %v", err)
	}

	clone := s.Clone()
	if err := clone.AddColumn("b", []Value{Num(3), Num(4)}); err != nil {
		t.Fatalf("AddColumn on clone failed: %v", err)
	}

	if s.HasColumn("b") {
		t.Error("adding to clone leaked into original")
	}
	if got := clone.ColumnNames(); len(got) != 2 {
		t.Errorf("clone columns = %v, want 2 entries", got)
	}
}

func TestFloat64sMapsMissingToNaN(t *testing.T) {
	s := New(3)
	if err := s.AddColumn("a", []Value{Num(1), Missing(), Num(3)}); err != nil {
		t.Fatalf("AddColumn failed: %v", err)
	}

	fs, err := s.Float64s("a")
	if err != nil {
		t.Fatalf("Float64s failed: %v", err)
	}
	if fs[0] != 1 || !math.IsNaN(fs[1]) || fs[2] != 3 {
		t.Errorf("Float64s = %v, want [1 NaN 3]", fs)
	}

	valid, err := s.ValidFloat64s("a")
	if err != nil {
		t.Fatalf("ValidFloat64s failed: %v", err)
	}
	if len(valid) != 2 || valid[0] != 1 || valid[1] != 3 {
		t.Errorf("ValidFloat64s = %v, want [1 3]", valid)
	}
}
