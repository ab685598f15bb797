package preprocessing

import (
	"testing"
)

func TestAlignColumns(t *testing.T) {
	tbl := newEncodedTable(2)
	tbl.addColumn("b", []float64{3, 4})
	tbl.addColumn("a", []float64{1, 2})
	tbl.addColumn("extra", []float64{9, 9})

	aligned, synthesized := alignColumns([]string{"a", "b", "c"}, tbl)

	if len(aligned.names) != 3 {
		t.Fatalf("got %d columns, want 3", len(aligned.names))
	}
	for i, want := range []string{"a", "b", "c"} {
		if aligned.names[i] != want {
			t.Errorf("names[%d] = %s, want %s", i, aligned.names[i], want)
		}
	}

	a, _ := aligned.column("a")
	if a[0] != 1 || a[1] != 2 {
		t.Errorf("column a reordered incorrectly: %v", a)
	}
	c, _ := aligned.column("c")
	if c[0] != 0 || c[1] != 0 {
		t.Errorf("missing column should be zero-filled: %v", c)
	}
	if _, ok := aligned.column("extra"); ok {
		t.Error("columns outside the target schema must be dropped")
	}

	if len(synthesized) != 1 || synthesized[0] != "c" {
		t.Errorf("synthesized = %v, want [c]", synthesized)
	}
}

func TestEncodedTableToDense(t *testing.T) {
	tbl := newEncodedTable(3)
	tbl.addColumn("x", []float64{1, 2, 3})
	tbl.addColumn("y", []float64{4, 5, 6})

	X := tbl.toDense()
	r, c := X.Dims()
	if r != 3 || c != 2 {
		t.Fatalf("dims = %dx%d, want 3x2", r, c)
	}
	if X.At(1, 0) != 2 || X.At(2, 1) != 6 {
		t.Error("dense layout is wrong")
	}
}
