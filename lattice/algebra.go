package lattice

import (
	"math"

	"github.com/phil-mansfield/xtal/geom"
)

// Scalar computes the scalar product v1^T g v2 of two vectors given by their
// components in the basis of l.
func Scalar(v1, v2 geom.Vec, l Lattice) float64 {
	sum := 0.0
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			sum += v1[i] * l.metric[i][j] * v2[j]
		}
	}
	return sum
}

// Vector computes the vector product of two vectors given by their
// components in the basis of l. The component-wise cross product is mapped
// through the metric tensor and divided by 2 pi, as MillerFromFractional does.
func Vector(v1, v2 geom.Vec, l Lattice) geom.Vec {
	return MillerFromFractional(v1.Cross(v2), l)
}

// Magnitude computes the length of a vector given by its components in the
// basis of l.
func Magnitude(v geom.Vec, l Lattice) (float64, error) {
	s := Scalar(v, v, l)
	if s < 0 || math.IsNaN(s) {
		return 0, &DegenerateVectorError{v, s}
	}
	return math.Sqrt(s), nil
}

// Angle computes the angle in degrees between two vectors given by their
// components in the basis of l. The result is in [0, 180].
func Angle(v1, v2 geom.Vec, l Lattice) (float64, error) {
	m1, err := Magnitude(v1, l)
	if err != nil {
		return 0, err
	}
	m2, err := Magnitude(v2, l)
	if err != nil {
		return 0, err
	}
	if m1 == 0 || m2 == 0 {
		return 0, &ParallelOrZeroVectorError{v1, v2}
	}

	return rad2deg(safeAcos(Scalar(v1, v2, l) / (m1 * m2))), nil
}

// MillerIndices converts a Cartesian vector, in the frame of
// BasisVectors(l), into its components along the reciprocal basis of l:
// h_i = (a_i . v) / 2 pi.
func MillerIndices(v geom.Vec, l Lattice) geom.Vec {
	basis := BasisVectors(l)
	return geom.Vec{
		basis[0].Dot(v) / (2 * math.Pi),
		basis[1].Dot(v) / (2 * math.Pi),
		basis[2].Dot(v) / (2 * math.Pi),
	}
}

// MillerFromFractional converts fractional coordinates of l into components
// along the reciprocal basis: h = g x / 2 pi. It agrees with MillerIndices
// applied to Cartesian(x, l).
func MillerFromFractional(x geom.Vec, l Lattice) geom.Vec {
	g := l.metric
	h := geom.Vec{}
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			h[i] += g[i][j] * x[j]
		}
		h[i] /= 2 * math.Pi
	}
	return h
}

// DSpacing computes the spacing between the lattice planes with Miller
// indices hkl. recip must be the reciprocal lattice.
func DSpacing(hkl geom.Vec, recip Lattice) (float64, error) {
	m, err := Magnitude(hkl, recip)
	if err != nil {
		return 0, err
	}
	if m == 0 {
		return 0, &ParallelOrZeroVectorError{hkl, hkl}
	}
	return 2 * math.Pi / m, nil
}
