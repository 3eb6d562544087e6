package mda

import (
	"math"

	"github.com/james-bowman/sparse"
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/mda/core/parallel"
	"github.com/YuminosukeSato/mda/pkg/errors"
)

// appendBias returns [x; 1ᵀ]. Sparse input comes back as a *sparse.CSC with
// the bias row stored explicitly; dense input comes back as a *mat.Dense.
func appendBias(x mat.Matrix) mat.Matrix {
	r, c := x.Dims()
	if tc, ok := x.(sparse.TypeConverter); ok {
		csc := tc.ToCSC()
		indptr := make([]int, c+1)
		ind := make([]int, 0, csc.NNZ()+c)
		data := make([]float64, 0, csc.NNZ()+c)
		for j := 0; j < c; j++ {
			csc.DoColNonZero(j, func(i, _ int, v float64) {
				ind = append(ind, i)
				data = append(data, v)
			})
			ind = append(ind, r)
			data = append(data, 1)
			indptr[j+1] = len(ind)
		}
		return sparse.NewCSC(r+1, c, indptr, ind, data)
	}

	out := mat.NewDense(r+1, c, nil)
	out.Slice(0, r, 0, c).(*mat.Dense).Copy(x)
	bias := out.RawRowView(r)
	for j := range bias {
		bias[j] = 1
	}
	return out
}

// isSparse reports whether m is one of the sparse package's formats.
func isSparse(m mat.Matrix) bool {
	_, ok := m.(sparse.TypeConverter)
	return ok
}

// mul returns a·b as a dense matrix. Products with a sparse operand go
// through sparse.CSR.Mul; both panic with mat.ErrShape on a size mismatch.
func mul(a, b mat.Matrix) *mat.Dense {
	if isSparse(a) || isSparse(b) {
		var c sparse.CSR
		c.Mul(a, b)
		return c.ToDense()
	}
	var d mat.Dense
	d.Mul(a, b)
	return &d
}

// scatter returns S = xb·xbᵀ as a dense symmetric matrix.
func scatter(xb mat.Matrix) *mat.Dense {
	if tc, ok := xb.(sparse.TypeConverter); ok {
		// the transpose of a CSC is a CSR over the same arrays
		csc := tc.ToCSC()
		var s sparse.CSR
		s.Mul(csc.ToCSR(), csc.T())
		return s.ToDense()
	}
	var sym mat.SymDense
	sym.SymOuterK(1, xb)
	return mat.DenseCopyOf(&sym)
}

// survival returns the probability that each feature of the biased input
// survives corruption. The bias feature always survives.
func survival(noise []float64) []float64 {
	c := make([]float64, len(noise)+1)
	for i, p := range noise {
		c[i] = 1 - p
	}
	c[len(noise)] = 1
	return c
}

// expectedScatter returns Q = S ⊙ (c·cᵀ) with the diagonal scaled by c[i]
// only, since a feature is always corrupted together with itself.
func expectedScatter(s *mat.Dense, c []float64) *mat.Dense {
	n, _ := s.Dims()
	q := mat.NewDense(n, n, nil)
	q.Apply(func(i, j int, v float64) float64 {
		return v * c[i] * c[j]
	}, s)
	for i := 0; i < n; i++ {
		q.Set(i, i, c[i]*s.At(i, i))
	}
	return q
}

// regressionTarget returns P, the expected cross scatter between the target
// and the corrupted input. With reduced set it is (R·Xᵀ) ⊙ cᵀ, otherwise it
// is the feature rows of S scaled column-wise by c.
func regressionTarget(s *mat.Dense, xb, reduced mat.Matrix, c []float64) *mat.Dense {
	var p *mat.Dense
	if reduced != nil {
		p = mul(reduced, xb.T())
	} else {
		n, _ := s.Dims()
		p = mat.DenseCopyOf(s.Slice(0, n-1, 0, n))
	}
	rows, _ := p.Dims()
	for i := 0; i < rows; i++ {
		row := p.RawRowView(i)
		for j := range row {
			row[j] *= c[j]
		}
	}
	return p
}

// ridge returns λI of size n with the bias entry left unregularized.
func ridge(n int, lambda float64) *mat.DiagDense {
	diag := make([]float64, n)
	for i := 0; i < n-1; i++ {
		diag[i] = lambda
	}
	return mat.NewDiagDense(n, diag)
}

// solveLeastSquares returns the minimum-norm solution X of a·X = b and the
// numerical rank of a. Singular values below rcond·σmax are treated as zero.
func solveLeastSquares(a, b mat.Matrix, rcond float64) (*mat.Dense, int, error) {
	n, _ := a.Dims()
	_, k := b.Dims()

	var svd mat.SVD
	if ok := svd.Factorize(a, mat.SVDThin); !ok {
		return nil, 0, errors.NewModelError("solveLeastSquares", "svd",
			errors.New("singular value decomposition did not converge"))
	}

	rank := svd.Rank(rcond)
	if rank == 0 {
		return mat.NewDense(n, k, nil), 0, nil
	}

	var x mat.Dense
	svd.SolveTo(&x, b, rank)
	return &x, rank, nil
}

// defaultRcond mirrors the LAPACK least-squares cutoff: machine epsilon times
// the system size.
func defaultRcond(n int) float64 {
	const eps = 0x1p-52
	return eps * float64(n)
}

// minParallelRows is the hidden dimension above which tanh is applied to
// row ranges concurrently.
const minParallelRows = 64

// project computes W·xb and squashes it with tanh unless linear is set.
func project(w *mat.Dense, xb mat.Matrix, linear bool) *mat.Dense {
	h := mul(w, xb)
	if linear {
		return h
	}
	raw := h.RawMatrix()
	parallel.ParallelizeWithThreshold(raw.Rows, minParallelRows, func(start, end int) {
		for i := start; i < end; i++ {
			row := raw.Data[i*raw.Stride : i*raw.Stride+raw.Cols]
			for j, v := range row {
				row[j] = math.Tanh(v)
			}
		}
	})
	return h
}
