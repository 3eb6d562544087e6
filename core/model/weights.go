package model

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/mda/pkg/errors"
)

// ModelWeights はモデルの重み行列を表す構造体（シリアライゼーション用）
// Coefficients は行優先で Rows×Cols 個の値を持つ
type ModelWeights struct {
	// ModelType はモデルの種類（MDA, StackedMDA等）
	ModelType string `json:"model_type"`

	// Version はモデルのバージョン（互換性チェック用）
	Version string `json:"version"`

	// Rows, Cols は重み行列の形状
	Rows int `json:"rows"`
	Cols int `json:"cols"`

	// Coefficients は重み係数
	Coefficients []float64 `json:"coefficients"`

	// Hyperparameters はモデルのハイパーパラメータ
	Hyperparameters map[string]interface{} `json:"hyperparameters"`

	// Metadata は追加のメタデータ（チェックサム等）
	Metadata map[string]interface{} `json:"metadata,omitempty"`

	// IsFitted はモデルが学習済みかどうか
	IsFitted bool `json:"is_fitted"`
}

// NewModelWeights は重み行列からModelWeightsを作成し、チェックサムを付与する
func NewModelWeights(modelType, version string, w mat.Matrix, hyperparameters map[string]interface{}) *ModelWeights {
	r, c := w.Dims()
	coef := make([]float64, 0, r*c)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			coef = append(coef, w.At(i, j))
		}
	}
	mw := &ModelWeights{
		ModelType:       modelType,
		Version:         version,
		Rows:            r,
		Cols:            c,
		Coefficients:    coef,
		Hyperparameters: hyperparameters,
		Metadata:        map[string]interface{}{},
		IsFitted:        true,
	}
	mw.Metadata["checksum"] = mw.Checksum()
	return mw
}

// Checksum は係数のSHA-256ハッシュを16進文字列で返す
func (mw *ModelWeights) Checksum() string {
	data, _ := json.Marshal(mw.Coefficients)
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}

// Dense は係数を Rows×Cols の行列として返す（コピー）
func (mw *ModelWeights) Dense() *mat.Dense {
	data := make([]float64, len(mw.Coefficients))
	copy(data, mw.Coefficients)
	return mat.NewDense(mw.Rows, mw.Cols, data)
}

// ToJSON はModelWeightsをJSON形式にシリアライズ
func (mw *ModelWeights) ToJSON() ([]byte, error) {
	return json.MarshalIndent(mw, "", "  ")
}

// FromJSON はJSON形式からModelWeightsをデシリアライズ
func (mw *ModelWeights) FromJSON(data []byte) error {
	return json.Unmarshal(data, mw)
}

// Validate reports the first problem that would make the snapshot unusable.
// A checksum that no longer matches the coefficients yields an error wrapping
// errors.ErrChecksumMismatch.
func (mw *ModelWeights) Validate() error {
	switch {
	case mw.ModelType == "":
		return errors.NewValidationError("model_type", "is required", mw.ModelType)
	case mw.Version == "":
		return errors.NewValidationError("version", "is required", mw.Version)
	case !mw.IsFitted:
		return errors.NewValidationError("is_fitted", "snapshot holds no trained weights", mw.IsFitted)
	case mw.Rows <= 0 || mw.Cols <= 0:
		return errors.NewValidationError("shape", "rows and cols must be positive",
			fmt.Sprintf("%dx%d", mw.Rows, mw.Cols))
	case len(mw.Coefficients) != mw.Rows*mw.Cols:
		return errors.NewValidationError("coefficients",
			fmt.Sprintf("expected %d values for shape %dx%d", mw.Rows*mw.Cols, mw.Rows, mw.Cols),
			len(mw.Coefficients))
	}

	if checksum, ok := mw.Metadata["checksum"].(string); ok && checksum != mw.Checksum() {
		return errors.Wrapf(errors.ErrChecksumMismatch, "%s weights", mw.ModelType)
	}
	return nil
}

// Clone はModelWeightsのディープコピーを作成
func (mw *ModelWeights) Clone() *ModelWeights {
	clone := &ModelWeights{
		ModelType:       mw.ModelType,
		Version:         mw.Version,
		Rows:            mw.Rows,
		Cols:            mw.Cols,
		IsFitted:        mw.IsFitted,
		Coefficients:    make([]float64, len(mw.Coefficients)),
		Hyperparameters: make(map[string]interface{}, len(mw.Hyperparameters)),
		Metadata:        make(map[string]interface{}, len(mw.Metadata)),
	}

	copy(clone.Coefficients, mw.Coefficients)

	for k, v := range mw.Hyperparameters {
		clone.Hyperparameters[k] = v
	}

	for k, v := range mw.Metadata {
		clone.Metadata[k] = v
	}

	return clone
}
