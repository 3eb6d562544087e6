// Package metrics measures how well a representation reconstructs its input.
// All functions compare two matrices of identical shape element by element.
package metrics

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/YuminosukeSato/mda/pkg/errors"
)

// residual は yTrue - yPred を連続したメモリに計算する
func residual(op string, yTrue, yPred mat.Matrix) (*mat.Dense, error) {
	rTrue, cTrue := yTrue.Dims()
	rPred, cPred := yPred.Dims()

	if rTrue == 0 || cTrue == 0 {
		return nil, errors.NewValueError(op, "empty matrix")
	}
	if rTrue != rPred {
		return nil, errors.NewDimensionError(op, rTrue, rPred, 0)
	}
	if cTrue != cPred {
		return nil, errors.NewDimensionError(op, cTrue, cPred, 1)
	}

	diff := mat.NewDense(rTrue, cTrue, nil)
	diff.Sub(yTrue, yPred)
	return diff, nil
}

// MSEMatrix は全要素の平均二乗誤差を計算する
func MSEMatrix(yTrue, yPred mat.Matrix) (float64, error) {
	diff, err := residual("MSEMatrix", yTrue, yPred)
	if err != nil {
		return 0, err
	}
	r, c := diff.Dims()
	frob := mat.Norm(diff, 2)
	return frob * frob / float64(r*c), nil
}

// RMSEMatrix は平方根平均二乗誤差を計算する
func RMSEMatrix(yTrue, yPred mat.Matrix) (float64, error) {
	mse, err := MSEMatrix(yTrue, yPred)
	if err != nil {
		return 0, err
	}
	return math.Sqrt(mse), nil
}

// MAEMatrix は全要素の平均絶対誤差を計算する
func MAEMatrix(yTrue, yPred mat.Matrix) (float64, error) {
	diff, err := residual("MAEMatrix", yTrue, yPred)
	if err != nil {
		return 0, err
	}
	data := diff.RawMatrix().Data
	return floats.Norm(data, 1) / float64(len(data)), nil
}

// R2Matrix は全要素を一つの標本とみなした決定係数を計算する
func R2Matrix(yTrue, yPred mat.Matrix) (float64, error) {
	diff, err := residual("R2Matrix", yTrue, yPred)
	if err != nil {
		return 0, err
	}
	values := mat.DenseCopyOf(yTrue).RawMatrix().Data
	mean := stat.Mean(values, nil)

	var tss float64
	for _, v := range values {
		tss += (v - mean) * (v - mean)
	}
	if tss == 0 {
		return 0, errors.NewValueError("R2Matrix", "total sum of squares is zero (no variance in yTrue)")
	}

	rss := floats.Dot(diff.RawMatrix().Data, diff.RawMatrix().Data)
	return 1 - rss/tss, nil
}
