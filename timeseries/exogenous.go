package timeseries

import (
	"fmt"
)

// ExogenousSet holds named regressor columns aligned to a series index.
// At fit time every column must match the series length; at predict time
// a set covering the out-of-sample horizon is supplied by the caller.
type ExogenousSet struct {
	Names   []string
	Columns map[string][]float64
}

// NewExogenousSet creates an empty exogenous set.
func NewExogenousSet() *ExogenousSet {
	return &ExogenousSet{Columns: make(map[string][]float64)}
}

// Add appends a named regressor column. Adding a name twice replaces the
// previous column but keeps its position.
func (e *ExogenousSet) Add(name string, values []float64) *ExogenousSet {
	if _, ok := e.Columns[name]; !ok {
		e.Names = append(e.Names, name)
	}
	e.Columns[name] = values
	return e
}

// Len returns the number of rows, taken from the first column.
func (e *ExogenousSet) Len() int {
	if e == nil || len(e.Names) == 0 {
		return 0
	}
	return len(e.Columns[e.Names[0]])
}

// NumColumns returns the number of regressor columns.
func (e *ExogenousSet) NumColumns() int {
	if e == nil {
		return 0
	}
	return len(e.Names)
}

// Validate checks that every column is present and has exactly n rows.
func (e *ExogenousSet) Validate(n int) error {
	if e == nil {
		return nil
	}
	for _, name := range e.Names {
		col, ok := e.Columns[name]
		if !ok {
			return fmt.Errorf("exogenous column %q is declared but missing", name)
		}
		if len(col) != n {
			return fmt.Errorf("exogenous column %q has %d rows, want %d", name, len(col), n)
		}
	}
	return nil
}

// Row returns row i across all columns, in declaration order.
func (e *ExogenousSet) Row(i int) []float64 {
	row := make([]float64, len(e.Names))
	for j, name := range e.Names {
		row[j] = e.Columns[name][i]
	}
	return row
}

// Slice returns rows [start, end) of every column as a new set.
func (e *ExogenousSet) Slice(start, end int) *ExogenousSet {
	if e == nil {
		return nil
	}
	out := NewExogenousSet()
	for _, name := range e.Names {
		col := e.Columns[name]
		if start < 0 {
			start = 0
		}
		if end > len(col) {
			end = len(col)
		}
		if start >= end {
			out.Add(name, []float64{})
			continue
		}
		values := make([]float64, end-start)
		copy(values, col[start:end])
		out.Add(name, values)
	}
	return out
}

// Select returns a new set restricted to the given column names,
// preserving the requested order.
func (e *ExogenousSet) Select(names []string) (*ExogenousSet, error) {
	out := NewExogenousSet()
	for _, name := range names {
		col, ok := e.Columns[name]
		if !ok {
			return nil, fmt.Errorf("exogenous column %q not found", name)
		}
		out.Add(name, col)
	}
	return out, nil
}
