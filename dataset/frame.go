// Package dataset provides the in-memory feature table consumed by the
// preprocessing layer.
//
// A [Frame] is an ordered collection of named columns. Each [Column] holds
// either numeric values or categorical labels, with any cell possibly
// missing. Row order is meaningful: rows are aligned with the treatment and
// outcome vectors held by the caller. Column order is significant for output
// schema purposes.
//
// Column types are decided once, at construction, and carried as an explicit
// [Kind] tag. Downstream fit/transform code reads the tag instead of
// re-inferring types from raw values.
package dataset

import (
	"github.com/causalflow/causalgo/pkg/errors"
)

// Frame is a rectangular table of named columns.
type Frame struct {
	cols  []Column
	index map[string]int
	rows  int
}

// New creates a Frame from the given columns. Column names must be unique
// and all columns must have the same length.
func New(cols ...Column) (*Frame, error) {
	if len(cols) == 0 {
		return nil, errors.NewModelError("dataset.New", "no columns", errors.ErrEmptyData)
	}

	rows := cols[0].Len()
	index := make(map[string]int, len(cols))
	for i := range cols {
		name := cols[i].Name()
		if name == "" {
			return nil, errors.NewValidationError("columns", "column name must not be empty", i)
		}
		if _, dup := index[name]; dup {
			return nil, errors.NewModelError("dataset.New", "duplicate column name "+name, errors.ErrDuplicateColumn)
		}
		if cols[i].Len() != rows {
			return nil, errors.NewDimensionError("dataset.New", rows, cols[i].Len(), 0)
		}
		index[name] = i
	}

	owned := make([]Column, len(cols))
	for i := range cols {
		owned[i] = cols[i].clone()
	}
	return &Frame{cols: owned, index: index, rows: rows}, nil
}

// NumRows returns the number of rows.
func (f *Frame) NumRows() int { return f.rows }

// NumCols returns the number of columns.
func (f *Frame) NumCols() int { return len(f.cols) }

// ColumnNames returns the column names in order.
func (f *Frame) ColumnNames() []string {
	names := make([]string, len(f.cols))
	for i := range f.cols {
		names[i] = f.cols[i].Name()
	}
	return names
}

// Column returns the column with the given name.
func (f *Frame) Column(name string) (*Column, bool) {
	i, ok := f.index[name]
	if !ok {
		return nil, false
	}
	return &f.cols[i], true
}

// ColumnAt returns the column at position i.
func (f *Frame) ColumnAt(i int) *Column { return &f.cols[i] }

// Clone returns a deep copy of the frame.
func (f *Frame) Clone() *Frame {
	cols := make([]Column, len(f.cols))
	for i := range f.cols {
		cols[i] = f.cols[i].clone()
	}
	index := make(map[string]int, len(f.index))
	for k, v := range f.index {
		index[k] = v
	}
	return &Frame{cols: cols, index: index, rows: f.rows}
}

// Select returns a new frame restricted to the given rows, in the given
// order. Row indices must be in range.
func (f *Frame) Select(rows []int) (*Frame, error) {
	for _, r := range rows {
		if r < 0 || r >= f.rows {
			return nil, errors.NewValidationError("rows", "row index out of range", r)
		}
	}
	cols := make([]Column, len(f.cols))
	for i := range f.cols {
		cols[i] = f.cols[i].selectRows(rows)
	}
	index := make(map[string]int, len(f.index))
	for k, v := range f.index {
		index[k] = v
	}
	return &Frame{cols: cols, index: index, rows: len(rows)}, nil
}
