package model

import "gonum.org/v1/gonum/mat"

// Transformer learns a representation without labels. Inputs are
// features×documents matrices and outputs keep the document axis.
type Transformer interface {
	Fit(X mat.Matrix) error
	Transform(X mat.Matrix) (mat.Matrix, error)
	FitTransform(X mat.Matrix) (mat.Matrix, error)
}

// SKLearnCompatible exposes hyperparameters as a plain map.
type SKLearnCompatible interface {
	// GetParams returns the hyperparameters. deep is accepted for parity with
	// composite estimators and may be ignored.
	GetParams(deep bool) map[string]interface{}

	// SetParams updates the hyperparameters present in params. Unknown keys
	// are ignored.
	SetParams(params map[string]interface{}) error

	// Clone returns an untrained estimator with the same hyperparameters.
	Clone() SKLearnCompatible
}

// WeightExporter moves trained weights in and out of a ModelWeights snapshot.
type WeightExporter interface {
	ExportWeights() (*ModelWeights, error)
	ImportWeights(weights *ModelWeights) error
}
