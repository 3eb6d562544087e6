package mda

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/mda/core/model"
	"github.com/YuminosukeSato/mda/pkg/errors"
	"github.com/YuminosukeSato/mda/pkg/log"
)

var _ model.Transformer = (*StackedMDA)(nil)

// StackedMDA chains mDA layers: each layer is trained on the hidden output of
// the one before it. The representation of a stack is the vertical
// concatenation of every layer's output.
type StackedMDA struct {
	layers []*MDA
	logger log.Logger
}

// NewStackedMDA creates nLayers layers sharing noise, lambda and opts.
// High-dimensional mode is switched off on every layer, since each layer must
// reproduce the feature space of its input.
func NewStackedMDA(nLayers int, noise []float64, lambda float64, opts ...Option) *StackedMDA {
	layerOpts := append(append([]Option(nil), opts...), WithHighDimensional(false))
	layers := make([]*MDA, nLayers)
	for i := range layers {
		layers[i] = NewMDA(noise, lambda, layerOpts...)
	}
	s := &StackedMDA{layers: layers}
	if nLayers > 0 {
		s.logger = layers[0].logger
	} else {
		s.logger = log.GetLoggerWithName("mda")
	}
	return s
}

// Layers returns the layers in training order.
func (s *StackedMDA) Layers() []*MDA {
	return append([]*MDA(nil), s.layers...)
}

// Fit trains every layer in turn.
func (s *StackedMDA) Fit(X mat.Matrix) error {
	_, err := s.FitTransform(X)
	return err
}

// FitTransform trains every layer and returns the stacked representation,
// an (nLayers·D)×N matrix.
func (s *StackedMDA) FitTransform(X mat.Matrix) (mat.Matrix, error) {
	if len(s.layers) == 0 {
		return nil, errors.NewValidationError("n_layers", "must be at least 1", 0)
	}

	outputs := make([]mat.Matrix, len(s.layers))
	h := X
	for i, layer := range s.layers {
		out, err := layer.FitTransform(h)
		if err != nil {
			return nil, errors.Wrapf(err, "StackedMDA.FitTransform: layer %d", i)
		}
		s.logger.Debug("Layer fitted",
			log.ModelNameKey, "StackedMDA",
			log.LayerKey, i,
		)
		outputs[i] = out
		h = out
	}
	return vstack(outputs), nil
}

// Transform replays every trained layer on X.
func (s *StackedMDA) Transform(X mat.Matrix) (mat.Matrix, error) {
	if len(s.layers) == 0 || !s.layers[len(s.layers)-1].IsFitted() {
		return nil, errors.NewNotFittedError("StackedMDA", "Transform")
	}

	outputs := make([]mat.Matrix, len(s.layers))
	h := X
	for i, layer := range s.layers {
		out, err := layer.Transform(h)
		if err != nil {
			return nil, errors.Wrapf(err, "StackedMDA.Transform: layer %d", i)
		}
		outputs[i] = out
		h = out
	}
	return vstack(outputs), nil
}

func (s *StackedMDA) String() string {
	return fmt.Sprintf("StackedMDA(n_layers=%d)", len(s.layers))
}

// vstack concatenates matrices with equal column counts top to bottom.
func vstack(ms []mat.Matrix) *mat.Dense {
	rows := 0
	_, cols := ms[0].Dims()
	for _, m := range ms {
		r, _ := m.Dims()
		rows += r
	}

	out := mat.NewDense(rows, cols, nil)
	offset := 0
	for _, m := range ms {
		r, _ := m.Dims()
		out.Slice(offset, offset+r, 0, cols).(*mat.Dense).Copy(m)
		offset += r
	}
	return out
}
