package errors

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestNewModelError(t *testing.T) {
	tests := []struct {
		name    string
		op      string
		kind    string
		err     error
		wantMsg string
	}{
		{
			name:    "with original error",
			op:      "Fit",
			kind:    "invalid input",
			err:     fmt.Errorf("test error"),
			wantMsg: "mda: Fit: invalid input: test error",
		},
		{
			name:    "without original error",
			op:      "Transform",
			kind:    "not fitted",
			err:     nil,
			wantMsg: "mda: Transform: not fitted",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewModelError(tt.op, tt.kind, tt.err)
			assert.Equal(t, tt.wantMsg, err.Error())

			// スタックトレースの存在確認
			formatted := fmt.Sprintf("%+v", err)
			assert.True(t, strings.Contains(formatted, "errors_test.go"))

			var modelErr *ModelError
			assert.True(t, As(err, &modelErr))
		})
	}
}

func TestNewDimensionError(t *testing.T) {
	tests := []struct {
		axis int
		want string
	}{
		{0, "mda: MDA.Fit: dimension mismatch on axis 0 (features). Expected 3, got 4"},
		{1, "mda: MDA.Fit: dimension mismatch on axis 1 (documents). Expected 3, got 4"},
	}

	for _, tt := range tests {
		err := NewDimensionError("MDA.Fit", 3, 4, tt.axis)
		assert.Equal(t, tt.want, err.Error())

		var dimErr *DimensionError
		require.True(t, As(err, &dimErr))
		assert.Equal(t, 4, dimErr.Got)
	}
}

func TestNewNotFittedError(t *testing.T) {
	err := NewNotFittedError("MDA", "Transform")

	want := "mda: MDA: this model is not fitted yet. Call Fit() before using Transform()"
	assert.Equal(t, want, err.Error())

	var notFittedErr *NotFittedError
	assert.True(t, As(err, &notFittedErr))
}

func TestNewValidationError(t *testing.T) {
	err := NewValidationError("lambda", "must be non-negative", -1.0)

	assert.Equal(t, "mda: validation failed for parameter 'lambda': must be non-negative (got: -1)", err.Error())

	var valErr *ValidationError
	require.True(t, As(err, &valErr))
	assert.Equal(t, "lambda", valErr.ParamName)
}

func TestRankWarning(t *testing.T) {
	w := NewRankWarning("MDA.Fit", 2, 4)
	assert.Equal(t, "MDA.Fit: least-squares system is rank deficient (rank 2 of 4); returning minimum-norm solution", w.Error())

	var got []error
	SetWarningHandler(func(w error) { got = append(got, w) })
	defer SetWarningHandler(func(w error) {})

	Warn(w)
	require.Len(t, got, 1)

	var rankWarn *RankWarning
	assert.True(t, As(got[0], &rankWarn))
}

func TestWrapAndIs(t *testing.T) {
	wrapped := Wrapf(ErrEmptyData, "in %s: %d documents", "Fit", 0)

	assert.True(t, Is(wrapped, ErrEmptyData))
	assert.Contains(t, wrapped.Error(), "in Fit: 0 documents")
}

func TestCheckMatrix(t *testing.T) {
	m := mat.NewDense(2, 2, []float64{1, 2, 3, 4})
	assert.NoError(t, CheckMatrix("solve", m))

	m.Set(1, 0, math.NaN())
	err := CheckMatrix("solve", m)
	require.Error(t, err)

	var numErr *NumericalInstabilityError
	require.True(t, As(err, &numErr))
	assert.Equal(t, "solve", numErr.Operation)
	assert.Len(t, numErr.Values, 1)

	assert.Error(t, CheckScalar("noise", math.Inf(1)))
	assert.NoError(t, CheckScalar("noise", 0.5))
}

func TestMarshalZerologObject(t *testing.T) {
	tests := []struct {
		name string
		obj  zerolog.LogObjectMarshaler
		want map[string]interface{}
	}{
		{
			name: "dimension",
			obj:  &DimensionError{Op: "MDA.Fit", Expected: 3, Got: 2, Axis: 0},
			want: map[string]interface{}{"type": "DimensionError", "axis_name": "features", "got": 2.0},
		},
		{
			name: "value",
			obj:  &ValueError{Op: "MDA.ReconstructionError", Message: "undefined"},
			want: map[string]interface{}{"type": "ValueError", "message": "undefined"},
		},
		{
			name: "model with cause",
			obj:  &ModelError{Op: "solve", Kind: "svd failed", Err: fmt.Errorf("no convergence")},
			want: map[string]interface{}{"type": "ModelError", "cause": "no convergence"},
		},
		{
			name: "numerical",
			obj:  &NumericalInstabilityError{Operation: "solve", Values: []float64{math.NaN(), math.Inf(1)}},
			want: map[string]interface{}{"type": "NumericalInstabilityError", "count": 2.0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			zl := zerolog.New(&buf)
			zl.Warn().EmbedObject(tt.obj).Msg("")

			var got map[string]interface{}
			require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
			for k, v := range tt.want {
				assert.Equal(t, v, got[k], k)
			}
		})
	}
}

func TestNumericalInstabilityErrorTruncates(t *testing.T) {
	err := &NumericalInstabilityError{Operation: "solve", Values: []float64{1, 2, 3, 4, 5, 6, 7}}
	assert.Equal(t, "mda: numerical instability detected in solve. Values: [1, 2, 3, 4, 5, ...]", err.Error())
}
