package model

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/mda/pkg/errors"
)

func TestStateManager(t *testing.T) {
	s := NewStateManager()
	assert.False(t, s.IsFitted())

	err := s.RequireFitted("MDA", "Transform")
	var notFitted *errors.NotFittedError
	require.True(t, errors.As(err, &notFitted))
	assert.Equal(t, "Transform", notFitted.Method)

	s.SetFitted(3, 3)
	assert.True(t, s.IsFitted())
	assert.NoError(t, s.RequireFitted("MDA", "Transform"))
	f, o := s.Dims()
	assert.Equal(t, 3, f)
	assert.Equal(t, 3, o)

	s.Reset()
	assert.False(t, s.IsFitted())
}

func testWeights() *ModelWeights {
	w := mat.NewDense(2, 3, []float64{1, 2, 3, 4, 5, 6})
	return NewModelWeights("MDA", "1.0.0", w, map[string]interface{}{
		"lambda":           0.1,
		"high_dimensional": false,
		"noise":            []float64{0.1, 0.2},
	})
}

func TestModelWeights(t *testing.T) {
	mw := testWeights()
	require.NoError(t, mw.Validate())
	assert.Equal(t, []float64{1, 2, 3, 4, 5, 6}, mw.Coefficients)
	assert.True(t, mat.Equal(mat.NewDense(2, 3, []float64{1, 2, 3, 4, 5, 6}), mw.Dense()))

	t.Run("json round trip keeps checksum valid", func(t *testing.T) {
		data, err := mw.ToJSON()
		require.NoError(t, err)

		var loaded ModelWeights
		require.NoError(t, loaded.FromJSON(data))
		assert.NoError(t, loaded.Validate())
		assert.Equal(t, mw.Coefficients, loaded.Coefficients)
	})

	t.Run("tampered coefficients fail validation", func(t *testing.T) {
		clone := mw.Clone()
		clone.Coefficients[0] = 42
		assert.True(t, errors.Is(clone.Validate(), errors.ErrChecksumMismatch))
		assert.Equal(t, 1.0, mw.Coefficients[0])
	})

	t.Run("shape mismatch", func(t *testing.T) {
		clone := mw.Clone()
		clone.Rows = 3
		var vErr *errors.ValidationError
		require.True(t, errors.As(clone.Validate(), &vErr))
		assert.Equal(t, "coefficients", vErr.ParamName)
	})

	t.Run("unfitted snapshot", func(t *testing.T) {
		clone := mw.Clone()
		clone.IsFitted = false
		var vErr *errors.ValidationError
		require.True(t, errors.As(clone.Validate(), &vErr))
		assert.Equal(t, "is_fitted", vErr.ParamName)
	})
}

func TestSaveLoadWeights(t *testing.T) {
	mw := testWeights()
	path := filepath.Join(t.TempDir(), "mda.gob")

	require.NoError(t, SaveWeights(mw, path))

	loaded, err := LoadWeights(path)
	require.NoError(t, err)
	assert.Equal(t, mw.Coefficients, loaded.Coefficients)
	assert.Equal(t, mw.Rows, loaded.Rows)
	assert.Equal(t, 0.1, loaded.Hyperparameters["lambda"])

	_, err = LoadWeights(filepath.Join(t.TempDir(), "missing.gob"))
	assert.Error(t, err)
}
