/*package lattice represents crystal unit cells and the vector algebra of
their bases.

Lattices are immutable values. The metric tensor and cell volume are computed
once by New and never change. Reciprocal lattices follow the crystallographic
convention which includes the factor of 2 pi, so a . a* = 2 pi, and
Reciprocal(Reciprocal(l)) == l.
*/
package lattice

import (
	"fmt"
	"math"

	"github.com/phil-mansfield/xtal/math/mat"
)

// minRadicand is the smallest accepted value of V^2 / (abc)^2. Cells below
// it are flat to within rounding error.
const minRadicand = 1e-10

// Lattice is a unit cell described by its edge lengths and inter-axial
// angles. The zero value is not a valid lattice; use New.
type Lattice struct {
	a, b, c            float64
	alpha, beta, gamma float64 // radians

	metric [3][3]float64
	volume float64
}

// New creates a lattice from edge lengths and angles given in degrees. alpha
// is the angle between b and c, beta between a and c, and gamma between a
// and b.
func New(a, b, c, alpha, beta, gamma float64) (Lattice, error) {
	lengths := []struct {
		name string
		val  float64
	}{{"a", a}, {"b", b}, {"c", c}}
	for _, p := range lengths {
		if math.IsNaN(p.val) || math.IsInf(p.val, 0) {
			return Lattice{}, &InvalidLatticeError{p.name, p.val, "not a finite number"}
		} else if p.val <= 0 {
			return Lattice{}, &InvalidLatticeError{p.name, p.val, "must be positive"}
		}
	}

	angles := []struct {
		name string
		val  float64
	}{{"alpha", alpha}, {"beta", beta}, {"gamma", gamma}}
	for _, p := range angles {
		if math.IsNaN(p.val) || math.IsInf(p.val, 0) {
			return Lattice{}, &InvalidLatticeError{p.name, p.val, "not a finite number"}
		} else if p.val <= 0 || p.val >= 180 {
			return Lattice{}, &InvalidLatticeError{
				p.name, p.val, "must be in the range (0, 180) degrees",
			}
		}
	}

	l := newLattice(a, b, c, deg2rad(alpha), deg2rad(beta), deg2rad(gamma))

	if r := l.radicand(); r < minRadicand {
		return Lattice{}, &InvalidLatticeError{
			Param: "cell",
			Value: r,
			Reason: fmt.Sprintf(
				"angles (%g, %g, %g) do not form a cell with positive volume",
				alpha, beta, gamma,
			),
		}
	}
	if !positiveDefinite(l.metric) {
		return Lattice{}, &InvalidLatticeError{
			Param: "cell", Reason: "metric tensor is not positive-definite",
		}
	}

	return l, nil
}

// MustNew is like New but panics on invalid parameters. It is intended for
// lattices fixed at compile time.
func MustNew(a, b, c, alpha, beta, gamma float64) Lattice {
	l, err := New(a, b, c, alpha, beta, gamma)
	if err != nil {
		panic(err.Error())
	}
	return l
}

// newLattice computes derived quantities without validation. Angles are in
// radians.
func newLattice(a, b, c, alpha, beta, gamma float64) Lattice {
	l := Lattice{a: a, b: b, c: c, alpha: alpha, beta: beta, gamma: gamma}
	l.metric = metricTensor(a, b, c, alpha, beta, gamma)
	if r := l.radicand(); r > 0 {
		l.volume = a * b * c * math.Sqrt(r)
	} else {
		l.volume = math.NaN()
	}
	return l
}

func metricTensor(a, b, c, alpha, beta, gamma float64) [3][3]float64 {
	var g [3][3]float64

	g[0][0] = a * a
	g[0][1] = a * b * math.Cos(gamma)
	g[0][2] = a * c * math.Cos(beta)
	g[1][0] = g[0][1]
	g[1][1] = b * b
	g[1][2] = b * c * math.Cos(alpha)
	g[2][0] = g[0][2]
	g[2][1] = g[1][2]
	g[2][2] = c * c

	return g
}

// Sylvester's criterion: every leading principal minor is positive.
func positiveDefinite(g [3][3]float64) bool {
	if g[0][0] <= 0 {
		return false
	}
	if g[0][0]*g[1][1]-g[0][1]*g[1][0] <= 0 {
		return false
	}
	return mat.FromRows(g).Determinant() > 0
}

func (l Lattice) radicand() float64 {
	ca, cb, cc := math.Cos(l.alpha), math.Cos(l.beta), math.Cos(l.gamma)
	return 1 - ca*ca - cb*cb - cc*cc + 2*ca*cb*cc
}

// Metric returns the metric tensor (the Gram matrix of the basis vectors).
func (l Lattice) Metric() [3][3]float64 { return l.metric }

// Volume returns the volume of the unit cell.
func (l Lattice) Volume() float64 { return l.volume }

// Lengths returns a, b, and c.
func (l Lattice) Lengths() [3]float64 { return [3]float64{l.a, l.b, l.c} }

// Angles returns alpha, beta, and gamma in degrees.
func (l Lattice) Angles() [3]float64 {
	return [3]float64{rad2deg(l.alpha), rad2deg(l.beta), rad2deg(l.gamma)}
}

// Radians returns alpha, beta, and gamma in radians.
func (l Lattice) Radians() [3]float64 {
	return [3]float64{l.alpha, l.beta, l.gamma}
}

func (l Lattice) String() string {
	ang := l.Angles()
	return fmt.Sprintf(
		"a = %.4f, b = %.4f, c = %.4f\nalpha = %.3f, beta = %.3f, gamma = %.3f",
		l.a, l.b, l.c, ang[0], ang[1], ang[2],
	)
}

func deg2rad(x float64) float64 { return x * math.Pi / 180 }
func rad2deg(x float64) float64 { return x * 180 / math.Pi }
