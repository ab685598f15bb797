package dataset

import (
	"math"
	"testing"
)

func TestNewFrame(t *testing.T) {
	f, err := New(
		NewNumericColumn("x1", []float64{1, 2, 3}),
		NewCategoricalColumn("cat", []string{"A", "B", "A"}, nil),
	)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if f.NumRows() != 3 || f.NumCols() != 2 {
		t.Errorf("got %dx%d, want 3x2", f.NumRows(), f.NumCols())
	}

	names := f.ColumnNames()
	if names[0] != "x1" || names[1] != "cat" {
		t.Errorf("unexpected column order: %v", names)
	}

	col, ok := f.Column("cat")
	if !ok {
		t.Fatal("column cat not found")
	}
	if col.Kind() != Categorical {
		t.Errorf("Kind = %v, want Categorical", col.Kind())
	}
}

func TestNewFrameErrors(t *testing.T) {
	tests := []struct {
		name string
		cols []Column
	}{
		{
			name: "no columns",
			cols: nil,
		},
		{
			name: "duplicate names",
			cols: []Column{
				NewNumericColumn("x", []float64{1}),
				NewNumericColumn("x", []float64{2}),
			},
		},
		{
			name: "ragged lengths",
			cols: []Column{
				NewNumericColumn("a", []float64{1, 2}),
				NewNumericColumn("b", []float64{1}),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(tt.cols...); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestMissingCells(t *testing.T) {
	f, err := New(
		NewNumericColumn("x1", []float64{1, math.NaN(), 3}),
		NewCategoricalColumn("cat", []string{"A", "", "B"}, []bool{false, true, false}),
	)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	num, _ := f.Column("x1")
	if num.IsMissing(0) || !num.IsMissing(1) {
		t.Error("numeric missing mask wrong")
	}
	if num.ObservedCount() != 2 || num.MissingCount() != 1 {
		t.Errorf("observed=%d missing=%d", num.ObservedCount(), num.MissingCount())
	}

	cat, _ := f.Column("cat")
	if cat.IsMissing(0) || !cat.IsMissing(1) {
		t.Error("categorical missing mask wrong")
	}

	// SetLabel clears the missing flag.
	cat.SetLabel(1, "A")
	if cat.IsMissing(1) {
		t.Error("SetLabel should clear missing flag")
	}
	if cat.Label(1) != "A" {
		t.Errorf("Label(1) = %q, want A", cat.Label(1))
	}
}

func TestSelect(t *testing.T) {
	f, err := New(
		NewNumericColumn("x", []float64{10, 20, 30, 40}),
		NewCategoricalColumn("c", []string{"A", "B", "C", "D"}, []bool{false, true, false, false}),
	)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	sub, err := f.Select([]int{0, 2})
	if err != nil {
		t.Fatalf("Select returned error: %v", err)
	}
	if sub.NumRows() != 2 {
		t.Fatalf("NumRows = %d, want 2", sub.NumRows())
	}
	x, _ := sub.Column("x")
	if x.Float(0) != 10 || x.Float(1) != 30 {
		t.Errorf("selected values wrong: %v %v", x.Float(0), x.Float(1))
	}
	c, _ := sub.Column("c")
	if c.IsMissing(0) || c.IsMissing(1) {
		t.Error("selected rows should be observed")
	}

	if _, err := f.Select([]int{5}); err == nil {
		t.Error("out-of-range select should fail")
	}
}

func TestCloneIsDeep(t *testing.T) {
	f, _ := New(NewNumericColumn("x", []float64{1, 2}))
	g := f.Clone()

	gc, _ := g.Column("x")
	gc.SetFloat(0, 99)

	fc, _ := f.Column("x")
	if fc.Float(0) != 1 {
		t.Error("Clone should not share storage")
	}
}
