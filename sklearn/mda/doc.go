// Package mda implements the marginalized denoising autoencoder (mDA).
//
// mDA learns a linear map W that reconstructs its input from corrupted copies
// of itself, in expectation, without ever sampling a corrupted copy. Every
// feature i is dropped with probability noise[i]; a constant bias feature is
// appended to the input and is never dropped or regularized. The weights are
// the minimum-norm least-squares solution of
//
//	(E[X̃X̃ᵀ] + λI) Wᵀ = E[XX̃ᵀ]ᵀ
//
// Inputs are feature×document matrices: rows are features, columns are
// documents. Both dense gonum matrices and the formats of
// github.com/james-bowman/sparse are accepted; the scatter matrix is always
// dense.
//
// In high-dimensional mode the regression target is a caller-supplied reduced
// representation R (reduced_dim×documents) instead of the input itself, and
// the hidden representation is returned linear. Otherwise it is squashed with
// tanh.
//
// Basic usage:
//
//	m := mda.NewMDA(mda.UniformNoise(3, 0.1), 1e-3)
//	hidden, err := m.FitTransform(X)
//	if err != nil {
//	    return err
//	}
//	next, err := m.Transform(Xnew)
//
// An MDA is not safe for concurrent use when one of the calls is a Fit.
// Concurrent Transform calls on a trained model are safe.
package mda
