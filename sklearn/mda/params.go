package mda

import (
	"fmt"
	"math"

	"github.com/YuminosukeSato/mda/core/model"
	"github.com/YuminosukeSato/mda/pkg/errors"
)

// GetParams はモデルのハイパーパラメータを取得
func (m *MDA) GetParams(deep bool) map[string]interface{} {
	return map[string]interface{}{
		"noise":            append([]float64(nil), m.noise...),
		"lambda":           m.lambda,
		"high_dimensional": m.highDim,
		"rcond":            m.rcond,
		"fitted":           m.state.IsFitted(),
		"model_type":       modelType,
		"version":          version,
	}
}

// SetParams はハイパーパラメータを設定
// JSONから復元した値（[]interface{} の noise 等）も受け付ける
// 値を一つでも拒否した場合、モデルは変更されない
func (m *MDA) SetParams(params map[string]interface{}) error {
	noise := m.noise
	if v, ok := params["noise"]; ok {
		parsed, err := toFloatSlice(v)
		if err != nil {
			return err
		}
		noise = parsed
	}
	lambda := m.lambda
	if v, ok := params["lambda"].(float64); ok {
		if !finiteNonNegative(v) {
			return errors.NewValidationError("lambda", "must be a finite non-negative number", v)
		}
		lambda = v
	}
	rcond := m.rcond
	if v, ok := params["rcond"].(float64); ok {
		if !finiteNonNegative(v) {
			return errors.NewValidationError("rcond", "must be a finite non-negative number", v)
		}
		rcond = v
	}

	m.noise, m.lambda, m.rcond = noise, lambda, rcond
	if v, ok := params["high_dimensional"].(bool); ok {
		m.highDim = v
	}
	return nil
}

func finiteNonNegative(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v >= 0
}

func toFloatSlice(v interface{}) ([]float64, error) {
	switch vals := v.(type) {
	case []float64:
		return append([]float64(nil), vals...), nil
	case []interface{}:
		out := make([]float64, len(vals))
		for i, x := range vals {
			f, ok := x.(float64)
			if !ok {
				return nil, errors.NewValidationError("noise", "entries must be numbers", x)
			}
			out[i] = f
		}
		return out, nil
	default:
		return nil, errors.NewValidationError("noise", "must be a list of numbers", v)
	}
}

// Clone は同じパラメータを持つ未学習のモデルを作成
func (m *MDA) Clone() model.SKLearnCompatible {
	return NewMDA(m.noise, m.lambda,
		WithHighDimensional(m.highDim),
		WithRcond(m.rcond),
		WithObserver(m.observer),
		WithLogger(m.logger),
	)
}

// ExportWeights は学習済みの重みをチェックサム付きでエクスポート
func (m *MDA) ExportWeights() (*model.ModelWeights, error) {
	if err := m.state.RequireFitted(modelType, "ExportWeights"); err != nil {
		return nil, err
	}
	mw := model.NewModelWeights(modelType, version, m.weights, m.GetParams(true))
	mw.Metadata["rank"] = m.rank
	return mw, nil
}

// ImportWeights は重みとハイパーパラメータを復元し、学習済み状態にする
func (m *MDA) ImportWeights(weights *model.ModelWeights) error {
	if weights == nil {
		return errors.NewValidationError("weights", "cannot be nil", nil)
	}
	if weights.ModelType != modelType {
		return errors.NewValueError("MDA.ImportWeights",
			fmt.Sprintf("model type mismatch: expected %s, got %s", modelType, weights.ModelType))
	}
	if err := weights.Validate(); err != nil {
		return errors.Wrap(err, "MDA.ImportWeights")
	}
	if err := checkSnapshotShape(weights); err != nil {
		return err
	}
	if err := m.SetParams(weights.Hyperparameters); err != nil {
		return err
	}

	m.weights = weights.Dense()
	m.rank = 0
	switch r := weights.Metadata["rank"].(type) {
	case int:
		m.rank = r
	case float64:
		m.rank = int(r)
	}
	m.state.SetFitted(weights.Cols-1, weights.Rows)
	return nil
}

// checkSnapshotShape verifies that the weight matrix agrees with the stored
// noise vector: one column per feature plus the bias, and outside
// high-dimensional mode one row per feature.
func checkSnapshotShape(weights *model.ModelWeights) error {
	v, ok := weights.Hyperparameters["noise"]
	if !ok {
		return errors.NewValidationError("noise", "missing from weights snapshot", nil)
	}
	noise, err := toFloatSlice(v)
	if err != nil {
		return err
	}
	if weights.Cols != len(noise)+1 {
		return errors.NewDimensionError("MDA.ImportWeights", len(noise)+1, weights.Cols, 0)
	}
	if highDim, _ := weights.Hyperparameters["high_dimensional"].(bool); !highDim && weights.Rows != len(noise) {
		return errors.NewDimensionError("MDA.ImportWeights", len(noise), weights.Rows, 0)
	}
	return nil
}

func (m *MDA) String() string {
	if !m.state.IsFitted() {
		return fmt.Sprintf("MDA(n_features=%d, lambda=%g, high_dimensional=%t)",
			len(m.noise), m.lambda, m.highDim)
	}
	in, out := m.state.Dims()
	return fmt.Sprintf("MDA(n_features=%d, output_dim=%d, lambda=%g, high_dimensional=%t, fitted=true)",
		in, out, m.lambda, m.highDim)
}
