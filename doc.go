// Package causalgo prepares tabular data for causal-effect estimation and
// orchestrates a native estimation engine over the result.
//
// CausalGo turns raw feature tables with missing values and categorical
// columns into fully numeric matrices with a stable column schema, so the
// same fitted preprocessing can be replayed on later batches before they
// reach the estimator.
//
// # Features
//
// - Stateful preprocessing: fit once, transform any number of batches
// - Simple (mean/mode) and iterative (chained regressions) imputation
// - Deterministic one-hot encoding with <column>_<value> names
// - Fixed output schema: later batches are realigned, never reshaped
// - Robust error handling with stack traces and structured warnings
//
// # Installation
//
// Install CausalGo using go get:
//
//	go get github.com/causalflow/causalgo
//
// # Quick Start
//
// Fit a processor on a training table and reuse it on new data:
//
//	package main
//
//	import (
//	    "fmt"
//	    "log"
//
//	    "github.com/causalflow/causalgo/dataset"
//	    "github.com/causalflow/causalgo/preprocessing"
//	)
//
//	func main() {
//	    train, err := dataset.New(
//	        dataset.NewNumericColumn("age", []float64{34, 41, 29}),
//	        dataset.NewCategoricalColumn("region", []string{"east", "west", "east"}, nil),
//	    )
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//
//	    proc := preprocessing.NewSimpleTableProcessor()
//	    X, err := proc.FitTransform(train)
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//
//	    fmt.Println("columns:", proc.FeatureNamesOut())
//	    fmt.Println("matrix:", X)
//	}
//
// # Packages
//
// The library is organized into several packages:
//
//   - dataset: typed column-oriented feature tables with missing-value masks
//   - preprocessing: TableProcessor, imputation and one-hot encoding
//   - causal: engine contract and model-creation orchestration
//   - core/model: estimator state and transformer interfaces
//   - core/parallel: CPU-parallel helpers for matrix assembly
//   - pkg/errors: error types and the warning hook
//   - pkg/log: structured JSON logging with stacktrace extraction
package causalgo
