// Package series provides a column-oriented table for magnetometer
// logging sessions. Columns are named float64 vectors with explicit
// missing-value semantics: a cell that failed numeric parsing is carried
// as an invalid Value rather than a sentinel, and every kernel that
// consumes a column decides how invalid cells propagate.
package series

import (
	"fmt"
	"math"
)

// Value is a float64 cell that may be missing. A zero Value is missing,
// not numeric zero.
type Value struct {
	V     float64
	Valid bool
}

// Num returns a valid Value holding v.
func Num(v float64) Value {
	return Value{V: v, Valid: true}
}

// Missing returns an invalid Value.
func Missing() Value {
	return Value{}
}

// Float64 returns the cell as a float64, with NaN standing in for a
// missing cell. NaN is only a view for numeric kernels; the table itself
// never stores it as a sentinel.
func (v Value) Float64() float64 {
	if !v.Valid {
		return math.NaN()
	}
	return v.V
}

// FromFloat64 converts a kernel output back to a Value, mapping NaN to
// missing.
func FromFloat64(f float64) Value {
	if math.IsNaN(f) {
		return Missing()
	}
	return Num(f)
}

// Series is an ordered collection of equal-length named columns. Stages
// of the processing pipeline take a Series and return an augmented
// clone; a Series is never mutated by a stage that received it.
type Series struct {
	n       int
	order   []string
	columns map[string][]Value
}

// New creates a Series with n rows and no columns.
func New(n int) *Series {
	return &Series{
		n:       n,
		columns: make(map[string][]Value),
	}
}

// Len returns the number of rows.
func (s *Series) Len() int {
	return s.n
}

// ColumnNames returns the column names in insertion order.
func (s *Series) ColumnNames() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// HasColumn reports whether the named column is present.
func (s *Series) HasColumn(name string) bool {
	_, ok := s.columns[name]
	return ok
}

// Column returns the named column. The returned slice is the backing
// store; callers must not modify it.
func (s *Series) Column(name string) ([]Value, error) {
	col, ok := s.columns[name]
	if !ok {
		return nil, fmt.Errorf("series: no column %q (have %v)", name, s.order)
	}
	return col, nil
}

// AddColumn appends a new column. The column length must match the row
// count and the name must not already be present.
func (s *Series) AddColumn(name string, values []Value) error {
	if _, ok := s.columns[name]; ok {
		return fmt.Errorf("series: column %q already exists", name)
	}
	if len(values) != s.n {
		return fmt.Errorf("series: column %q has %d values, table has %d rows", name, len(values), s.n)
	}
	col := make([]Value, s.n)
	copy(col, values)
	s.columns[name] = col
	s.order = append(s.order, name)
	return nil
}

// Clone returns a deep copy of the Series.
func (s *Series) Clone() *Series {
	out := New(s.n)
	for _, name := range s.order {
		col := make([]Value, s.n)
		copy(col, s.columns[name])
		out.columns[name] = col
		out.order = append(out.order, name)
	}
	return out
}

// Float64s returns the named column as a []float64 with missing cells
// mapped to NaN. The slice is freshly allocated.
func (s *Series) Float64s(name string) ([]float64, error) {
	col, err := s.Column(name)
	if err != nil {
		return nil, err
	}
	out := make([]float64, len(col))
	for i, v := range col {
		out[i] = v.Float64()
	}
	return out, nil
}

// ValidFloat64s returns the valid cells of the named column, dropping
// missing ones. Used by summary statistics, which describe only the
// observed values.
func (s *Series) ValidFloat64s(name string) ([]float64, error) {
	col, err := s.Column(name)
	if err != nil {
		return nil, err
	}
	out := make([]float64, 0, len(col))
	for _, v := range col {
		if v.Valid {
			out = append(out, v.V)
		}
	}
	return out, nil
}
