// Package mda provides marginalized denoising autoencoders for Go, aimed at
// bag-of-words document representations in backend pipelines.
//
// mDA learns a denoising linear map in closed form: instead of sampling
// corrupted copies of the input and running gradient descent, it solves a
// single regularized least-squares system built from the expected scatter
// matrix under per-feature dropout noise.
//
// # Installation
//
//	go get github.com/YuminosukeSato/mda
//
// # Quick Start
//
//	package main
//
//	import (
//	    "fmt"
//	    "log"
//
//	    "github.com/YuminosukeSato/mda/preprocessing"
//	    "github.com/YuminosukeSato/mda/sklearn/mda"
//	)
//
//	func main() {
//	    docs := []string{"the cat sat", "the dog sat", "a cat and a dog"}
//
//	    // term × document count matrix
//	    X, err := preprocessing.NewCountVectorizer().FitTransform(docs)
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//
//	    d, _ := X.Dims()
//	    m := mda.NewMDA(mda.UniformNoise(d, 0.5), 1e-2)
//	    hidden, err := m.FitTransform(X)
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    fmt.Println(hidden.Dims())
//	}
//
// # Packages
//
//   - sklearn/mda: MDA and StackedMDA estimators
//   - preprocessing: CountVectorizer producing sparse term × document input
//   - metrics: reconstruction metrics (MSE, RMSE, MAE, R²) over matrices
//   - core/model: fitted-state tracking, transformer contract, weight snapshots
//   - core/parallel: parallel processing utilities
//   - pkg/errors: typed errors, warnings and panic recovery
//   - pkg/log: structured logging on zerolog and log/slog
//   - pkg/viz: heat maps of learned weights
//
// # Sparse input
//
// Sparse matrices come from github.com/james-bowman/sparse. Any of its
// formats can be passed to Fit and Transform; CountVectorizer returns a
// *sparse.CSC.
//
// # High-dimensional mode
//
// When the vocabulary is too large for the dense scatter matrix to be a
// practical regression target, construct the estimator with
// mda.WithHighDimensional(true) and pass a reduced representation
// (reduced_dim × documents) to FitReduced. The output is then linear.
//
// # Logging
//
// Training progress is reported at debug level through pkg/log. Call
// log.SetupZerolog(os.Stderr, log.LevelDebug) to see it, or pass
// mda.WithObserver to receive the checkpoints directly.
package mda
