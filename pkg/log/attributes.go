// Package log defines standard attribute keys for preprocessing and
// causal-estimation operations.
//
// Using these standard keys enables consistent log analysis and debugging of
// the fit/transform lifecycle. The keys follow a hierarchical naming
// convention (e.g., "ml.operation", "data.samples") to enable structured log
// filtering.
package log

// Model and Operation Context
// These attributes identify the component and operation being performed.
const (
	// ModelNameKey identifies the type of component emitting the log.
	// Examples: "TableProcessor", "IterativeImputer", "CausalModel"
	ModelNameKey = "model.name"

	// OperationKey specifies the operation being performed.
	// Standard values: "fit", "transform", "fit_transform", "estimate_effects"
	OperationKey = "ml.operation"

	// ComponentKey identifies which package is performing the operation.
	// Examples: "preprocessing", "causal", "dataset"
	ComponentKey = "ml.component"

	// PhaseKey indicates the phase of the model lifecycle.
	// Examples: "preprocessing", "training", "inference"
	PhaseKey = "ml.phase"
)

// Data Shape and Characteristics
const (
	// SamplesKey indicates the number of samples (rows) being processed.
	SamplesKey = "data.samples"

	// FeaturesKey indicates the number of features (columns) being processed.
	FeaturesKey = "data.features"

	// DroppedRowsKey indicates the number of rows excluded before fitting,
	// e.g. rows with a missing treatment or outcome value.
	DroppedRowsKey = "data.dropped_rows"

	// MissingCellsKey indicates the number of missing cells encountered.
	MissingCellsKey = "data.missing_cells"

	// CategoricalColumnsKey indicates the number of categorical columns
	// detected at fit time.
	CategoricalColumnsKey = "data.categorical_columns"

	// OutputColumnsKey indicates the width of the encoded output matrix.
	OutputColumnsKey = "data.output_columns"
)

// Performance and Configuration
const (
	// DurationMsKey records the execution time of an operation in milliseconds.
	DurationMsKey = "perf.duration_ms"

	// IterationKey records the current round of an iterative process,
	// e.g. the MICE imputation loop.
	IterationKey = "training.iteration"

	// RandomSeedKey records the random seed for reproducibility.
	RandomSeedKey = "config.random_seed"

	// MethodKey records the estimation method requested from the engine.
	// Examples: "forest", "linear"
	MethodKey = "config.method"
)

// Error and Warning Context
const (
	// ErrorCodeKey provides a structured error code for programmatic handling.
	// Examples: "NOT_FITTED", "UNDEFINED_STATISTIC", "SCHEMA_DRIFT"
	ErrorCodeKey = "error.code"

	// ErrorTypeKey categorizes the type of error encountered.
	ErrorTypeKey = "error.type"
)

// Standard attribute value constants for common operations.
const (
	OperationFit             = "fit"
	OperationTransform       = "transform"
	OperationFitTransform    = "fit_transform"
	OperationEstimateEffects = "estimate_effects"

	PhasePreprocessing = "preprocessing"
	PhaseTraining      = "training"
	PhaseInference     = "inference"

	ErrorNotFitted          = "NOT_FITTED"
	ErrorDimensionMismatch  = "DIMENSION_MISMATCH"
	ErrorEmptyData          = "EMPTY_DATA"
	ErrorUndefinedStatistic = "UNDEFINED_STATISTIC"
	ErrorSchemaDrift        = "SCHEMA_DRIFT"
	ErrorSingularMatrix     = "SINGULAR_MATRIX"
)
