package errors

import (
	"strings"
	"testing"
)

func TestNotFittedError(t *testing.T) {
	err := NewNotFittedError("TableProcessor", "Transform")
	if err == nil {
		t.Fatal("expected error, got nil")
	}

	var nfe *NotFittedError
	if !As(err, &nfe) {
		t.Fatalf("expected NotFittedError, got %T", err)
	}
	if nfe.ModelName != "TableProcessor" {
		t.Errorf("ModelName = %q, want %q", nfe.ModelName, "TableProcessor")
	}
	if !strings.Contains(err.Error(), "not fitted yet") {
		t.Errorf("unexpected message: %s", err.Error())
	}
}

func TestUndefinedStatisticError(t *testing.T) {
	err := NewUndefinedStatisticError("TableProcessor.FitTransform", "x1", "mean")

	var use *UndefinedStatisticError
	if !As(err, &use) {
		t.Fatalf("expected UndefinedStatisticError, got %T", err)
	}
	if use.Column != "x1" || use.Statistic != "mean" {
		t.Errorf("got column=%q statistic=%q", use.Column, use.Statistic)
	}
	if !strings.Contains(err.Error(), "no observed values") {
		t.Errorf("unexpected message: %s", err.Error())
	}
}

func TestDimensionError(t *testing.T) {
	tests := []struct {
		name string
		axis int
		want string
	}{
		{name: "row axis", axis: 0, want: "rows"},
		{name: "feature axis", axis: 1, want: "features"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewDimensionError("TableProcessor.Transform", 3, 5, tt.axis)
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("message %q does not mention %q", err.Error(), tt.want)
			}
		})
	}
}

func TestValueError(t *testing.T) {
	err := NewValueError("CreateModel", "Unknown method: magic")
	if !strings.Contains(err.Error(), "Unknown method") {
		t.Errorf("unexpected message: %s", err.Error())
	}
}

func TestModelErrorUnwrap(t *testing.T) {
	err := NewModelError("TableProcessor.FitTransform", "empty data", ErrEmptyData)
	if !Is(err, ErrEmptyData) {
		t.Error("ModelError should unwrap to ErrEmptyData")
	}
}

func TestWarningHandler(t *testing.T) {
	var captured []error
	SetWarningHandler(func(w error) {
		captured = append(captured, w)
	})
	defer SetWarningHandler(nil)

	w := NewSchemaDriftWarning("TableProcessor.Transform", []string{"age"}, nil)
	Warn(w)

	if len(captured) != 1 {
		t.Fatalf("expected 1 warning, got %d", len(captured))
	}
	var sdw *SchemaDriftWarning
	if !As(captured[0], &sdw) {
		t.Fatalf("expected SchemaDriftWarning, got %T", captured[0])
	}
	if len(sdw.Missing) != 1 || sdw.Missing[0] != "age" {
		t.Errorf("unexpected missing columns: %v", sdw.Missing)
	}
}

func TestConvergenceWarningMessage(t *testing.T) {
	w := NewConvergenceWarning("IterativeImputer", 10, "")
	if !strings.Contains(w.Error(), "failed to converge after 10 iterations") {
		t.Errorf("unexpected message: %s", w.Error())
	}
}

func TestRowsDroppedWarning(t *testing.T) {
	w := NewRowsDroppedWarning("CreateModel", 2, 5, "missing treatment/outcome")
	if !strings.Contains(w.Error(), "dropping 2 of 5 rows") {
		t.Errorf("unexpected message: %s", w.Error())
	}
}
