// Standard attribute keys for structured log records. Keys follow a
// hierarchical "group.name" convention so records can be filtered by prefix.

package log

// Model and operation context.
const (
	// ModelNameKey identifies the estimator type, e.g. "MDA" or "StackedMDA".
	ModelNameKey = "model.name"

	// OperationKey specifies the operation being performed ("fit", "transform", ...).
	OperationKey = "ml.operation"

	// ComponentKey identifies the package or component emitting the record.
	ComponentKey = "ml.component"

	// PhaseKey indicates the lifecycle phase ("training", "inference").
	PhaseKey = "ml.phase"
)

// Data shape. Matrices are feature × document, so samples are documents.
const (
	SamplesKey    = "data.samples"
	FeaturesKey   = "data.features"
	ReducedDimKey = "data.reduced_dim"
	NonZeroKey    = "data.nnz"
)

// Performance.
const (
	DurationMsKey = "perf.duration_ms"
	LossKey       = "metrics.loss"
)

// Hyperparameters.
const (
	RegularizationKey = "hyperparams.regularization"
	NoiseMeanKey      = "hyperparams.noise_mean"
	HighDimKey        = "mda.high_dimensional"
	LayerKey          = "mda.layer"
)

// mDA training progress.
const (
	// CheckpointKey carries the name of the training checkpoint that was reached.
	CheckpointKey = "mda.checkpoint"

	// RankKey records the numerical rank of the regularized scatter system.
	RankKey = "mda.rank"
)

// Error context.
const (
	ErrorCodeKey  = "error.code"
	StacktraceKey = "error.stacktrace"
)

// Standard attribute values.
const (
	OperationFit          = "fit"
	OperationTransform    = "transform"
	OperationFitTransform = "fit_transform"

	PhaseTraining  = "training"
	PhaseInference = "inference"

	ErrorNotFitted         = "NOT_FITTED"
	ErrorDimensionMismatch = "DIMENSION_MISMATCH"
	ErrorInvalidInput      = "INVALID_INPUT"
	ErrorRankDeficient     = "RANK_DEFICIENT"
)
