package preprocessing

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"

	"github.com/causalflow/causalgo/dataset"
	"github.com/causalflow/causalgo/pkg/errors"
)

func TestIterativeImputerFillsGaps(t *testing.T) {
	// x2 = 6 - x1 on the observed cells, so the conditional regressions
	// should recover the gaps close to x1[2]=3 and x2[1]=4.
	X := mat.NewDense(5, 2, []float64{
		1, 5,
		2, math.NaN(),
		math.NaN(), 3,
		4, 2,
		5, 1,
	})

	imp := NewIterativeImputer(42)
	out, err := imp.FitTransform(X, []string{"x1", "x2"})
	if err != nil {
		t.Fatalf("FitTransform: %v", err)
	}

	if math.Abs(out.At(2, 0)-3.0) > 0.5 {
		t.Errorf("x1[2] = %v, want ~3.0", out.At(2, 0))
	}
	if math.Abs(out.At(1, 1)-4.0) > 0.5 {
		t.Errorf("x2[1] = %v, want ~4.0", out.At(1, 1))
	}

	// Observed cells are untouched.
	if out.At(0, 0) != 1 || out.At(4, 1) != 1 {
		t.Error("observed cells must not change")
	}
}

func TestIterativeImputerReproducibleSeed(t *testing.T) {
	build := func() *mat.Dense {
		return mat.NewDense(5, 3, []float64{
			1, 5, 2,
			2, math.NaN(), 4,
			math.NaN(), 3, 6,
			4, 2, math.NaN(),
			5, 1, 10,
		})
	}
	names := []string{"a", "b", "c"}

	impA := NewIterativeImputer(7)
	outA, err := impA.FitTransform(build(), names)
	if err != nil {
		t.Fatalf("FitTransform: %v", err)
	}

	impB := NewIterativeImputer(7)
	outB, err := impB.FitTransform(build(), names)
	if err != nil {
		t.Fatalf("FitTransform: %v", err)
	}

	if !mat.Equal(outA, outB) {
		t.Error("same seed and data should give identical imputations")
	}
}

func TestIterativeImputerRoundTrip(t *testing.T) {
	X := mat.NewDense(4, 2, []float64{
		1, 2,
		math.NaN(), 4,
		3, math.NaN(),
		4, 8,
	})

	imp := NewIterativeImputer(0)
	fitOut, err := imp.FitTransform(mat.DenseCopyOf(X), []string{"a", "b"})
	if err != nil {
		t.Fatalf("FitTransform: %v", err)
	}
	trOut, err := imp.Transform(mat.DenseCopyOf(X))
	if err != nil {
		t.Fatalf("Transform: %v", err)
	}
	if !mat.Equal(fitOut, trOut) {
		t.Errorf("round-trip mismatch:\nfit:\n%v\ntransform:\n%v",
			mat.Formatted(fitOut), mat.Formatted(trOut))
	}
}

func TestIterativeImputerNotFitted(t *testing.T) {
	imp := NewIterativeImputer(0)
	_, err := imp.Transform(mat.NewDense(1, 1, []float64{1}))
	if err == nil {
		t.Fatal("expected not-fitted error")
	}
	var nfe *errors.NotFittedError
	if !errors.As(err, &nfe) {
		t.Fatalf("expected NotFittedError, got %v", err)
	}
}

func TestIterativeImputerDimensionMismatch(t *testing.T) {
	imp := NewIterativeImputer(0)
	if _, err := imp.FitTransform(mat.NewDense(2, 2, []float64{1, 2, 3, 4}), []string{"a", "b"}); err != nil {
		t.Fatalf("FitTransform: %v", err)
	}
	_, err := imp.Transform(mat.NewDense(2, 3, nil))
	if err == nil {
		t.Fatal("expected dimension error")
	}
	var de *errors.DimensionError
	if !errors.As(err, &de) {
		t.Fatalf("expected DimensionError, got %v", err)
	}
}

func TestIterativeProcessorEndToEnd(t *testing.T) {
	train := mustFrame(t,
		dataset.NewNumericColumn("x1", []float64{1, 2, math.NaN(), 4, 5}),
		dataset.NewNumericColumn("x2", []float64{5, math.NaN(), 3, 2, 1}),
		dataset.NewCategoricalColumn("cat", []string{"A", "B", "A", "", "B"},
			[]bool{false, false, false, true, false}),
	)

	proc := NewIterativeTableProcessor(42)
	X, err := proc.FitTransform(train)
	if err != nil {
		t.Fatalf("FitTransform: %v", err)
	}

	want := []string{"x1", "x2", "cat_A", "cat_B"}
	if !schemaEqual(proc.FeatureNamesOut(), want) {
		t.Fatalf("FeatureNamesOut = %v, want %v", proc.FeatureNamesOut(), want)
	}
	if hasNaN(X) {
		t.Fatal("fit output contains NaN")
	}

	// Round-trip on the training table reproduces the fit output exactly.
	X2, err := proc.Transform(train)
	if err != nil {
		t.Fatalf("Transform: %v", err)
	}
	if !mat.Equal(X, X2) {
		t.Error("transform after fit on identical input should match")
	}

	// New batch with gaps and an unseen category keeps schema width.
	batch := mustFrame(t,
		dataset.NewNumericColumn("x1", []float64{math.NaN()}),
		dataset.NewNumericColumn("x2", []float64{3}),
		dataset.NewCategoricalColumn("cat", []string{"C"}, nil),
	)
	XB, err := proc.Transform(batch)
	if err != nil {
		t.Fatalf("Transform(batch): %v", err)
	}
	r, c := XB.Dims()
	if r != 1 || c != len(want) {
		t.Fatalf("dims = %dx%d, want 1x%d", r, c, len(want))
	}
	if hasNaN(XB) {
		t.Error("batch output contains NaN; iterative model should fill gaps")
	}
	if XB.At(0, 2) != 0 || XB.At(0, 3) != 0 {
		t.Error("unseen category must not set indicator columns")
	}
}

func TestIterativeProcessorReproducible(t *testing.T) {
	build := func() *dataset.Frame {
		return mustFrame(t,
			dataset.NewNumericColumn("x1", []float64{1, 2, math.NaN(), 4, 5}),
			dataset.NewNumericColumn("x2", []float64{5, math.NaN(), 3, 2, 1}),
		)
	}

	pa := NewIterativeTableProcessor(42)
	XA, err := pa.FitTransform(build())
	if err != nil {
		t.Fatalf("FitTransform: %v", err)
	}
	pb := NewIterativeTableProcessor(42)
	XB, err := pb.FitTransform(build())
	if err != nil {
		t.Fatalf("FitTransform: %v", err)
	}
	if !mat.Equal(XA, XB) {
		t.Error("same seed should reproduce identical matrices")
	}
}
