package lattice

import (
	"math"

	"github.com/phil-mansfield/xtal/geom"
	"github.com/phil-mansfield/xtal/math/mat"
)

// Reciprocal computes the reciprocal lattice of l:
//
//	a* = 2 pi b c sin(alpha) / V                                 (cyclic)
//	alpha* = acos[(cos(beta) cos(gamma) - cos(alpha)) /
//	              (sin(beta) sin(gamma))]                         (cyclic)
//
// The result is a new value; l is unchanged.
func Reciprocal(l Lattice) Lattice {
	sa, sb, sc := math.Sin(l.alpha), math.Sin(l.beta), math.Sin(l.gamma)
	ca, cb, cc := math.Cos(l.alpha), math.Cos(l.beta), math.Cos(l.gamma)
	v := l.volume

	aStar := 2 * math.Pi * l.b * l.c * sa / v
	bStar := 2 * math.Pi * l.a * l.c * sb / v
	cStar := 2 * math.Pi * l.a * l.b * sc / v

	alphaStar := safeAcos((cb*cc - ca) / (sb * sc))
	betaStar := safeAcos((ca*cc - cb) / (sa * sc))
	gammaStar := safeAcos((ca*cb - cc) / (sa * sb))

	return newLattice(aStar, bStar, cStar, alphaStar, betaStar, gammaStar)
}

// safeAcos clamps rounding error which pushes |x| slightly above 1.
func safeAcos(x float64) float64 {
	if x > 1 {
		x = 1
	} else if x < -1 {
		x = -1
	}
	return math.Acos(x)
}

// BasisVectors returns Cartesian basis vectors for l: a lies along x, b lies
// in the xy plane, and c completes a right-handed frame. The Gram matrix of
// the result equals l.Metric().
func BasisVectors(l Lattice) [3]geom.Vec {
	ca, cb, cc := math.Cos(l.alpha), math.Cos(l.beta), math.Cos(l.gamma)
	sc := math.Sin(l.gamma)

	va := geom.Vec{l.a, 0, 0}
	vb := geom.Vec{l.b * cc, l.b * sc, 0}

	cx := l.c * cb
	cy := l.c * (ca - cb*cc) / sc
	cz2 := l.c*l.c - cx*cx - cy*cy
	if cz2 < 0 {
		cz2 = 0
	}
	vc := geom.Vec{cx, cy, math.Sqrt(cz2)}

	return [3]geom.Vec{va, vb, vc}
}

// DualBasis returns the Cartesian reciprocal basis in the same frame as
// BasisVectors(l), so that BasisVectors(l)[i] . DualBasis(l)[j] is 2 pi if
// i == j and zero otherwise.
//
// The rows of the result are 2 pi G^-1 B, where B holds the direct basis as
// rows and G = B B^T is its Gram matrix. This equals 2 pi (B^-1)^T.
func DualBasis(l Lattice) [3]geom.Vec {
	basis := BasisVectors(l)
	b := mat.FromRows([3][3]float64{basis[0], basis[1], basis[2]})

	gram := b.Mult(b.Transpose())
	inv := gram.Invert().Mult(b).Rows()

	var out [3]geom.Vec
	for i := 0; i < 3; i++ {
		out[i] = geom.Vec(inv[i]).Scale(2 * math.Pi)
	}
	return out
}

// Cartesian converts fractional coordinates of l into a Cartesian vector in
// the frame of BasisVectors(l).
func Cartesian(x geom.Vec, l Lattice) geom.Vec {
	basis := BasisVectors(l)
	out := geom.Vec{}
	for i := 0; i < 3; i++ {
		out = out.Add(basis[i].Scale(x[i]))
	}
	return out
}
