package causal

import (
	"log/slog"
	"math"

	"github.com/causalflow/causalgo/dataset"
	"github.com/causalflow/causalgo/pkg/errors"
	mllog "github.com/causalflow/causalgo/pkg/log"
	"github.com/causalflow/causalgo/preprocessing"
)

// Options configures CreateModel.
type Options struct {
	// Method selects the engine's estimation algorithm
	// (default: MethodForest).
	Method string

	// Strategy selects missing-value imputation for the feature table
	// (default: preprocessing.StrategySimple).
	Strategy preprocessing.Strategy

	// RandomState seeds the iterative imputation model.
	RandomState int64
}

// Model pairs a fitted engine model with the preprocessor that produced its
// training matrix. Later feature tables are run through the same recorded
// fit-time schema before reaching the engine.
type Model struct {
	effect EffectModel
	proc   *preprocessing.TableProcessor
}

// CreateModel fits a causal model over a raw feature table.
//
// Rows whose treatment or outcome value is missing (NaN) are dropped before
// fitting, with a RowsDroppedWarning reporting the count. The remaining rows
// are fed through a TableProcessor (fit exactly once here) and the resulting
// matrix, vectors, method name and output feature names are handed to the
// engine.
func CreateModel(engine Engine, features *dataset.Frame, treatment, outcome []float64, opts Options) (*Model, error) {
	if engine == nil {
		return nil, errors.NewValidationError("engine", "engine must not be nil", nil)
	}
	if features == nil || features.NumRows() == 0 {
		return nil, errors.NewModelError("causal.CreateModel", "empty feature table", errors.ErrEmptyData)
	}

	method := opts.Method
	if method == "" {
		method = MethodForest
	}
	if method != MethodForest && method != MethodLinear {
		return nil, errors.NewValueError("causal.CreateModel", "Unknown method: "+method)
	}

	rows := features.NumRows()
	if len(treatment) != rows {
		return nil, errors.NewDimensionError("causal.CreateModel", rows, len(treatment), 0)
	}
	if len(outcome) != rows {
		return nil, errors.NewDimensionError("causal.CreateModel", rows, len(outcome), 0)
	}

	// Align rows: keep only those with an observed treatment and outcome.
	keep := make([]int, 0, rows)
	for i := 0; i < rows; i++ {
		if !math.IsNaN(treatment[i]) && !math.IsNaN(outcome[i]) {
			keep = append(keep, i)
		}
	}
	if len(keep) == 0 {
		return nil, errors.NewModelError("causal.CreateModel",
			"no rows with observed treatment and outcome", errors.ErrEmptyData)
	}
	if dropped := rows - len(keep); dropped > 0 {
		errors.Warn(errors.NewRowsDroppedWarning("causal.CreateModel", dropped, rows,
			"missing treatment/outcome"))
	}

	kept := features
	t := treatment
	y := outcome
	if len(keep) != rows {
		var err error
		kept, err = features.Select(keep)
		if err != nil {
			return nil, err
		}
		t = selectVector(treatment, keep)
		y = selectVector(outcome, keep)
	}

	proc := preprocessing.NewTableProcessor(preprocessing.Config{
		Strategy:    opts.Strategy,
		RandomState: opts.RandomState,
	})
	x, err := proc.FitTransform(kept)
	if err != nil {
		return nil, err
	}

	slog.Debug("fitting causal model",
		slog.String(mllog.ComponentKey, "causal"),
		slog.String(mllog.OperationKey, mllog.OperationFit),
		slog.String(mllog.MethodKey, method),
		slog.Int(mllog.SamplesKey, kept.NumRows()),
		slog.Int(mllog.DroppedRowsKey, rows-len(keep)),
		slog.Int(mllog.OutputColumnsKey, len(proc.FeatureNamesOut())),
		slog.Int64(mllog.RandomSeedKey, opts.RandomState),
	)

	effect, err := engine.CreateModel(x, t, y, method, proc.FeatureNamesOut())
	if err != nil {
		slog.Error("engine rejected model",
			mllog.ErrAttr(err),
			slog.String(mllog.ComponentKey, "causal"),
			slog.String(mllog.MethodKey, method),
		)
		return nil, errors.Wrap(err, "causal.CreateModel: engine rejected model")
	}
	return &Model{effect: effect, proc: proc}, nil
}

// EstimateEffects preprocesses a new feature table with the recorded
// fit-time schema and asks the engine for effect estimates.
func (m *Model) EstimateEffects(features *dataset.Frame) (*InferenceResult, error) {
	x, err := m.proc.Transform(features)
	if err != nil {
		return nil, err
	}
	return m.effect.EstimateEffects(x)
}

// Validate runs the engine's robustness checks on the fitted model.
func (m *Model) Validate(nFolds int, timeSeries bool) (*ValidationReport, error) {
	if nFolds <= 0 {
		return nil, errors.NewValidationError("nFolds", "must be positive", nFolds)
	}
	return m.effect.Validate(nFolds, timeSeries)
}

// Visualize produces an engine visualization payload.
func (m *Model) Visualize(plotType string) (*VisualPayload, error) {
	return m.effect.Visualize(plotType)
}

// FeatureNamesOut exposes the preprocessor's output schema so downstream
// reports can label features meaningfully.
func (m *Model) FeatureNamesOut() []string {
	return m.proc.FeatureNamesOut()
}

func selectVector(v []float64, rows []int) []float64 {
	out := make([]float64, len(rows))
	for i, r := range rows {
		out[i] = v[r]
	}
	return out
}
