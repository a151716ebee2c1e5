/*package geom contains routines for computing geometric quantities in
reciprocal space: vectors, half-spaces, and the bounded convex polyhedra
formed by intersecting them.
*/
package geom

import (
	"fmt"
	"math"
)

// Vec is a three dimensional vector. Vectors are values; no method modifies
// its receiver.
type Vec [3]float64

// Add adds two vectors together.
func (v1 Vec) Add(v2 Vec) Vec {
	return Vec{v1[0] + v2[0], v1[1] + v2[1], v1[2] + v2[2]}
}

// Sub computes v1 - v2.
func (v1 Vec) Sub(v2 Vec) Vec {
	return Vec{v1[0] - v2[0], v1[1] - v2[1], v1[2] - v2[2]}
}

// Scale multiplies all components of a vector by a constant.
func (v Vec) Scale(k float64) Vec {
	return Vec{v[0] * k, v[1] * k, v[2] * k}
}

// Dot computes the dot product of two vectors.
func (v1 Vec) Dot(v2 Vec) float64 {
	return v1[0]*v2[0] + v1[1]*v2[1] + v1[2]*v2[2]
}

// Cross computes the cross product of two vectors.
func (v1 Vec) Cross(v2 Vec) Vec {
	return Vec{
		v1[1]*v2[2] - v1[2]*v2[1],
		v1[2]*v2[0] - v1[0]*v2[2],
		v1[0]*v2[1] - v1[1]*v2[0],
	}
}

// Norm computes the Euclidean norm of a vector.
func (v Vec) Norm() float64 {
	return math.Sqrt(v.Dot(v))
}

// Unit returns v scaled to unit length. The zero vector is returned unchanged.
func (v Vec) Unit() Vec {
	n := v.Norm()
	if n == 0 {
		return v
	}
	return v.Scale(1 / n)
}

// Dist returns the distance between two points.
func (v1 Vec) Dist(v2 Vec) float64 {
	return v1.Sub(v2).Norm()
}

// IsFinite returns true if no component is NaN or infinite.
func (v Vec) IsFinite() bool {
	for i := 0; i < 3; i++ {
		if math.IsNaN(v[i]) || math.IsInf(v[i], 0) {
			return false
		}
	}
	return true
}

func (v Vec) String() string {
	return fmt.Sprintf("[%.4g %.4g %.4g]", v[0], v[1], v[2])
}

// TripleProduct computes v1 . (v2 x v3), the signed volume of the
// parallelepiped spanned by the three vectors.
func TripleProduct(v1, v2, v3 Vec) float64 {
	return v1.Dot(v2.Cross(v3))
}

// MulRows computes m x rows where m is a 3x3 coefficient matrix and rows
// are the rows of the right hand matrix. Row i of the result is
// sum_j m[i][j] * rows[j].
func MulRows(m [3][3]float64, rows [3]Vec) [3]Vec {
	var out [3]Vec
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			out[i] = out[i].Add(rows[j].Scale(m[i][j]))
		}
	}
	return out
}
