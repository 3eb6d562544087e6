package errors

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// maxReportedValues bounds how many offending values an instability error keeps.
const maxReportedValues = 10

func nonFinite(v float64) bool {
	return math.IsNaN(v) || math.IsInf(v, 0)
}

// CheckScalar returns a NumericalInstabilityError if v is NaN or ±Inf.
func CheckScalar(operation string, v float64) error {
	if nonFinite(v) {
		return NewNumericalInstabilityError(operation, []float64{v})
	}
	return nil
}

// CheckMatrix returns a NumericalInstabilityError listing the first non-finite
// entries of m in row-major order.
func CheckMatrix(operation string, m mat.Matrix) error {
	r, c := m.Dims()
	var bad []float64
	for i := 0; i < r && len(bad) < maxReportedValues; i++ {
		for j := 0; j < c && len(bad) < maxReportedValues; j++ {
			if v := m.At(i, j); nonFinite(v) {
				bad = append(bad, v)
			}
		}
	}
	if len(bad) > 0 {
		return NewNumericalInstabilityError(operation, bad)
	}
	return nil
}
