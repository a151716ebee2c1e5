/*package mat contains routines for executing operations on small dense
matrices. Operations are split into easy to use methods which allocate their
outputs and slightly less easy to use *At methods which write into caller
managed memory.

Pretty much everything only works on square matrices because lattice bases,
metric tensors, and centering transforms are all 3x3.
*/
package mat

import (
	"math"
)

// Matrix represents a row-major matrix of float64 values.
type Matrix struct {
	Vals          []float64
	Width, Height int
}

// LUFactors contains data fields neccessary for a number of matrix operations.
// Exporting this type allows calling routines to prevent recomputing the same
// decomposition many times.
type LUFactors struct {
	lu    Matrix
	pivot []int
	d     float64
}

// NewMatrix creates a matrix with the specified values and dimensions.
func NewMatrix(vals []float64, width, height int) *Matrix {
	if width <= 0 {
		panic("width must be positive.")
	} else if height <= 0 {
		panic("height must be positive.")
	} else if width*height != len(vals) {
		panic("height * width must equal len(vals).")
	}

	return &Matrix{Vals: vals, Width: width, Height: height}
}

// FromRows creates a 3x3 matrix whose rows are the given triples.
func FromRows(rows [3][3]float64) *Matrix {
	vals := make([]float64, 9)
	for i := 0; i < 3; i++ {
		copy(vals[3*i:3*i+3], rows[i][:])
	}
	return NewMatrix(vals, 3, 3)
}

// Rows returns the rows of a 3x3 matrix.
func (m *Matrix) Rows() [3][3]float64 {
	if m.Width != 3 || m.Height != 3 {
		panic("Rows requires a 3x3 matrix.")
	}

	var rows [3][3]float64
	for i := 0; i < 3; i++ {
		copy(rows[i][:], m.Vals[3*i:3*i+3])
	}
	return rows
}

// Transpose returns the transpose of a matrix.
func (m *Matrix) Transpose() *Matrix {
	out := NewMatrix(make([]float64, len(m.Vals)), m.Height, m.Width)
	for i := 0; i < m.Height; i++ {
		for j := 0; j < m.Width; j++ {
			out.Vals[j*m.Height+i] = m.Vals[i*m.Width+j]
		}
	}
	return out
}

// Mult multiplies two matrices together.
func (m1 *Matrix) Mult(m2 *Matrix) *Matrix {
	h, w := m1.Height, m2.Width
	out := NewMatrix(make([]float64, h*w), w, h)
	return m1.MultAt(m2, out)
}

// MultAt multiplies two matrices together and writes the result to the
// specified matrix. out may not alias m1 or m2.
func (m1 *Matrix) MultAt(m2, out *Matrix) *Matrix {
	if m1.Width != m2.Height {
		panic("Multiplication of incompatible matrix sizes.")
	} else if out.Height != m1.Height || out.Width != m2.Width {
		panic("out matrix has the wrong dimensions.")
	}

	for i := range out.Vals {
		out.Vals[i] = 0
	}
	for i := 0; i < m1.Height; i++ {
		off := i * m1.Width
		for j := 0; j < m2.Width; j++ {
			outIdx := i*out.Width + j
			for k := 0; k < m1.Width; k++ {
				out.Vals[outIdx] += m1.Vals[off+k] * m2.Vals[k*m2.Width+j]
			}
		}
	}

	return out
}

// Invert computes the inverse of a matrix. Check Determinant first if m
// might be singular.
func (m *Matrix) Invert() *Matrix {
	lu := m.LU()
	inv := NewMatrix(make([]float64, len(m.Vals)), m.Width, m.Height)
	return lu.InvertAt(inv)
}

// Determinant computes the determinant of a matrix.
func (m *Matrix) Determinant() float64 {
	return m.LU().Determinant()
}

// SolveVector solves the equation m * xs = bs for xs.
func (m *Matrix) SolveVector(bs []float64) []float64 {
	xs := make([]float64, len(bs))
	return m.LU().SolveVector(bs, xs)
}

// NewLUFactors creates an LUFactors instance of the requested dimensions.
func NewLUFactors(n int) *LUFactors {
	luf := new(LUFactors)

	luf.lu.Vals, luf.lu.Width, luf.lu.Height = make([]float64, n*n), n, n
	luf.pivot = make([]int, n)
	luf.d = 1

	return luf
}

// LU returns the LU decomposition of a matrix.
func (m *Matrix) LU() *LUFactors {
	if m.Width != m.Height {
		panic("m is non-square.")
	}

	lu := NewLUFactors(m.Width)
	m.LUFactorsAt(lu)
	return lu
}

// LUFactorsAt stores the LU decomposition of a matrix at the specified
// location. Partial pivoting is used; the row interchange performed at step k
// is recorded in pivot[k].
func (m *Matrix) LUFactorsAt(luf *LUFactors) {
	if luf.lu.Width != m.Width || luf.lu.Height != m.Height {
		panic("luf has different dimenstions than m.")
	}

	n := m.Width
	lu := luf.lu.Vals
	copy(lu, m.Vals)
	luf.d = 1

	for k := 0; k < n; k++ {
		maxRow := findMaxRow(n, lu, k)
		luf.pivot[k] = maxRow
		if k != maxRow {
			swapRows(k, maxRow, n, lu)
			luf.d = -luf.d
		}

		kOffset := k * n
		if lu[kOffset+k] == 0 {
			// Singular. Later divisions by this pivot are skipped and the
			// determinant comes out as zero.
			continue
		}

		for i := k + 1; i < n; i++ {
			iOffset := i * n
			lu[iOffset+k] /= lu[kOffset+k]
			tmp := lu[iOffset+k]
			for j := k + 1; j < n; j++ {
				lu[iOffset+j] -= tmp * lu[kOffset+j]
			}
		}
	}
}

// Finds the index of the row containing the maximum value in the column,
// ignoring rows which have already been used as pivots.
func findMaxRow(n int, m []float64, col int) int {
	max, maxRow := -1.0, col
	for i := col; i < n; i++ {
		val := math.Abs(m[i*n+col])
		if val > max {
			max = val
			maxRow = i
		}
	}
	return maxRow
}

func swapRows(i1, i2, n int, lu []float64) {
	i1Offset, i2Offset := n*i1, n*i2
	for j := 0; j < n; j++ {
		lu[i1Offset+j], lu[i2Offset+j] = lu[i2Offset+j], lu[i1Offset+j]
	}
}

// SolveVector solves M * xs = bs for xs.
//
// bs and xs may point to the same physical memory.
func (luf *LUFactors) SolveVector(bs, xs []float64) []float64 {
	n := luf.lu.Width
	if n != len(bs) {
		panic("len(b) != luf.Width")
	} else if n != len(xs) {
		panic("len(x) != luf.Width")
	}

	copy(xs, bs)
	for k := 0; k < n; k++ {
		p := luf.pivot[k]
		xs[k], xs[p] = xs[p], xs[k]
	}

	lu := luf.lu.Vals
	forwardSubst(n, lu, xs)
	backSubst(n, lu, xs)
	return xs
}

// Solves L * y = b in place. L has an implicit unit diagonal.
func forwardSubst(n int, lu, ys []float64) {
	for i := 1; i < n; i++ {
		iOffset := i * n
		sum := ys[i]
		for j := 0; j < i; j++ {
			sum -= lu[iOffset+j] * ys[j]
		}
		ys[i] = sum
	}
}

// Solves U * x = y in place.
// x_i = (y_i - sum_j=i+1^N-1 (beta_ij x_j)) / beta_ii
func backSubst(n int, lu, xs []float64) {
	for i := n - 1; i >= 0; i-- {
		sum := xs[i]
		iOffset := n * i
		for j := i + 1; j < n; j++ {
			sum -= lu[iOffset+j] * xs[j]
		}
		xs[i] = sum / lu[iOffset+i]
	}
}

// InvertAt writes the inverse of the factored matrix to out.
func (luf *LUFactors) InvertAt(out *Matrix) *Matrix {
	n := luf.lu.Width
	if out.Width != out.Height {
		panic("out matrix is non-square.")
	} else if n != out.Width {
		panic("out matrix different size than m matrix.")
	}

	col := make([]float64, n)
	for j := 0; j < n; j++ {
		for i := range col {
			col[i] = 0
		}
		col[j] = 1
		luf.SolveVector(col, col)
		for i := 0; i < n; i++ {
			out.Vals[i*n+j] = col[i]
		}
	}

	return out
}

// Determinant returns the determinant of the factored matrix.
func (luf *LUFactors) Determinant() float64 {
	d := luf.d
	lu := luf.lu.Vals
	n := luf.lu.Width

	for i := 0; i < n; i++ {
		d *= lu[i*n+i]
	}
	return d
}
