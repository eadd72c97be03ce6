// Package frame implements an ordered, named-column table held in memory.
// Rows are appended during extraction and columns are appended during
// transformation; neither is ever removed.
//
// Cell values are one of string, float64, int64 or nil.
package frame

import (
	"errors"
	"fmt"
	"slices"
)

var (
	ErrColumnExists  = errors.New("column already exists")
	ErrColumnMissing = errors.New("column does not exist")
	ErrRowWidth      = errors.New("row width does not match column count")
	ErrValueType     = errors.New("unsupported value type")
)

type Frame struct {
	columns []string
	rows    [][]any
}

// New creates an empty frame with the given columns. Column names must be
// unique.
func New(columns ...string) (*Frame, error) {
	f := &Frame{}
	for _, c := range columns {
		if f.Index(c) >= 0 {
			return nil, fmt.Errorf("%w: %q", ErrColumnExists, c)
		}
		f.columns = append(f.columns, c)
	}
	return f, nil
}

func (f *Frame) Columns() []string {
	return slices.Clone(f.columns)
}

func (f *Frame) Len() int {
	return len(f.rows)
}

// Index returns the position of the column `name` or -1.
func (f *Frame) Index(name string) int {
	return slices.Index(f.columns, name)
}

func checkValue(v any) error {
	switch v.(type) {
	case string, float64, int64, nil:
		return nil
	default:
		return fmt.Errorf("%w: %T", ErrValueType, v)
	}
}

// Append adds one row, `values` must be given in column order.
func (f *Frame) Append(values ...any) error {
	if len(values) != len(f.columns) {
		return fmt.Errorf("%w: got %d values for %d columns", ErrRowWidth, len(values), len(f.columns))
	}
	for _, v := range values {
		if err := checkValue(v); err != nil {
			return err
		}
	}
	f.rows = append(f.rows, slices.Clone(values))
	return nil
}

// Row returns a copy of row i.
func (f *Frame) Row(i int) []any {
	return slices.Clone(f.rows[i])
}

// Value returns the cell at row i in column `name`.
func (f *Frame) Value(i int, name string) (any, error) {
	idx := f.Index(name)
	if idx < 0 {
		return nil, fmt.Errorf("%w: %q", ErrColumnMissing, name)
	}
	return f.rows[i][idx], nil
}

// Float returns the cell at row i in column `name` as a float64, int64
// cells are converted.
func (f *Frame) Float(i int, name string) (float64, error) {
	v, err := f.Value(i, name)
	if err != nil {
		return 0, err
	}
	switch n := v.(type) {
	case float64:
		return n, nil
	case int64:
		return float64(n), nil
	default:
		return 0, fmt.Errorf("row %d column %q: %w: expected a number, got %T", i, name, ErrValueType, v)
	}
}

// Column returns a copy of every value in column `name`.
func (f *Frame) Column(name string) ([]any, error) {
	idx := f.Index(name)
	if idx < 0 {
		return nil, fmt.Errorf("%w: %q", ErrColumnMissing, name)
	}
	out := make([]any, len(f.rows))
	for i, row := range f.rows {
		out[i] = row[idx]
	}
	return out, nil
}

// AddColumn appends a column whose value for each row is computed by
// `compute`. Nothing is modified if `compute` fails for any row.
func (f *Frame) AddColumn(name string, compute func(i int) (any, error)) error {
	if f.Index(name) >= 0 {
		return fmt.Errorf("%w: %q", ErrColumnExists, name)
	}

	values := make([]any, len(f.rows))
	for i := range f.rows {
		v, err := compute(i)
		if err != nil {
			return fmt.Errorf("compute %q for row %d: %w", name, i, err)
		}
		if err := checkValue(v); err != nil {
			return err
		}
		values[i] = v
	}

	f.columns = append(f.columns, name)
	for i := range f.rows {
		f.rows[i] = append(f.rows[i], values[i])
	}
	return nil
}

type Kind int

const (
	KindNull Kind = iota
	KindText
	KindReal
	KindInteger
	// KindMixed is reported for a column holding more than one non-null kind.
	KindMixed
)

func kindOf(v any) Kind {
	switch v.(type) {
	case string:
		return KindText
	case float64:
		return KindReal
	case int64:
		return KindInteger
	default:
		return KindNull
	}
}

// Kind reports the kind shared by every non-null value of column `name`.
func (f *Frame) Kind(name string) (Kind, error) {
	idx := f.Index(name)
	if idx < 0 {
		return KindNull, fmt.Errorf("%w: %q", ErrColumnMissing, name)
	}
	kind := KindNull
	for _, row := range f.rows {
		k := kindOf(row[idx])
		if k == KindNull || k == kind {
			continue
		}
		if kind != KindNull {
			return KindMixed, nil
		}
		kind = k
	}
	return kind, nil
}
