package lattice

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/phil-mansfield/xtal/geom"
)

const eps = 1e-9

var validCells = []struct {
	name                       string
	a, b, c, alpha, beta, gamma float64
}{
	{"cubic", 4.05, 4.05, 4.05, 90, 90, 90},
	{"hexagonal", 4.127, 4.127, 5.451, 90, 90, 120},
	{"tetragonal", 3.9, 3.9, 12.5, 90, 90, 90},
	{"orthorhombic", 5.4, 5.5, 7.7, 90, 90, 90},
	{"monoclinic", 5.1, 8.9, 5.3, 90, 103.2, 90},
	{"rhombohedral", 5.43, 5.43, 5.43, 55.3, 55.3, 55.3},
	{"triclinic", 6.2, 7.4, 8.1, 72.5, 101.3, 84.9},
	{"acute triclinic", 3.0, 4.0, 5.0, 60, 70, 80},
}

func TestReciprocalRoundTrip(t *testing.T) {
	for _, cell := range validCells {
		t.Run(cell.name, func(t *testing.T) {
			l, err := New(cell.a, cell.b, cell.c, cell.alpha, cell.beta, cell.gamma)
			require.NoError(t, err)

			rr := Reciprocal(Reciprocal(l))
			for i := 0; i < 3; i++ {
				assert.InDelta(t, l.Lengths()[i], rr.Lengths()[i], eps)
				assert.InDelta(t, l.Angles()[i], rr.Angles()[i], 1e-7)
			}
		})
	}
}

func TestVolumeAndMetric(t *testing.T) {
	for _, cell := range validCells {
		t.Run(cell.name, func(t *testing.T) {
			l, err := New(cell.a, cell.b, cell.c, cell.alpha, cell.beta, cell.gamma)
			require.NoError(t, err)
			assert.Greater(t, l.Volume(), 0.0)

			g := l.Metric()
			data := make([]float64, 0, 9)
			for i := 0; i < 3; i++ {
				for j := 0; j < 3; j++ {
					assert.Equal(t, g[i][j], g[j][i], "g[%d][%d]", i, j)
					data = append(data, g[i][j])
				}
			}

			var chol mat.Cholesky
			assert.True(t, chol.Factorize(mat.NewSymDense(3, data)),
				"metric tensor is not positive-definite")
			assert.InDelta(t, l.Volume()*l.Volume(), chol.Det(), 1e-6*chol.Det())

			r := Reciprocal(l)
			assert.InDelta(t, math.Pow(2*math.Pi, 3)/l.Volume(), r.Volume(),
				1e-9*r.Volume())
		})
	}
}

func TestMetricIndexConvention(t *testing.T) {
	l := MustNew(2, 3, 5, 80, 70, 60)
	g := l.Metric()
	assert.InDelta(t, 4, g[0][0], eps)
	assert.InDelta(t, 2*3*math.Cos(60*math.Pi/180), g[0][1], eps)
	assert.InDelta(t, 2*5*math.Cos(70*math.Pi/180), g[0][2], eps)
	assert.InDelta(t, 3*5*math.Cos(80*math.Pi/180), g[1][2], eps)
}

func TestBasisVectors(t *testing.T) {
	for _, cell := range validCells {
		t.Run(cell.name, func(t *testing.T) {
			l := MustNew(cell.a, cell.b, cell.c, cell.alpha, cell.beta, cell.gamma)
			basis := BasisVectors(l)
			g := l.Metric()
			for i := 0; i < 3; i++ {
				for j := 0; j < 3; j++ {
					assert.InDelta(t, g[i][j], basis[i].Dot(basis[j]), 1e-9)
				}
			}
			assert.InDelta(t, l.Volume(),
				geom.TripleProduct(basis[0], basis[1], basis[2]), 1e-9)

			dual := DualBasis(l)
			for i := 0; i < 3; i++ {
				for j := 0; j < 3; j++ {
					want := 0.0
					if i == j {
						want = 2 * math.Pi
					}
					assert.InDelta(t, want, basis[i].Dot(dual[j]), 1e-9)
				}
			}

			// The dual basis has the shape of the reciprocal lattice.
			rg := Reciprocal(l).Metric()
			for i := 0; i < 3; i++ {
				for j := 0; j < 3; j++ {
					assert.InDelta(t, rg[i][j], dual[i].Dot(dual[j]), 1e-9)
				}
			}
		})
	}
}

func TestCubicScenario(t *testing.T) {
	l := MustNew(4.05, 4.05, 4.05, 90, 90, 90)
	r := Reciprocal(l)
	for _, x := range r.Lengths() {
		assert.InDelta(t, 2*math.Pi/4.05, x, eps)
		assert.InDelta(t, 1.5514, x, 1e-4)
	}

	angle, err := Angle(geom.Vec{1, 0, 0}, geom.Vec{0, 1, 0}, r)
	require.NoError(t, err)
	assert.InDelta(t, 90, angle, eps)

	d, err := DSpacing(geom.Vec{1, 1, 1}, r)
	require.NoError(t, err)
	assert.InDelta(t, 4.05/math.Sqrt(3), d, eps)
}

func TestHexagonalScenario(t *testing.T) {
	l := MustNew(4.127, 4.127, 5.451, 90, 90, 120)
	r := Reciprocal(l)
	assert.InDelta(t, 60, r.Angles()[2], 1e-9)

	angle, err := Angle(geom.Vec{1, 0, 0}, geom.Vec{0, 1, 0}, r)
	require.NoError(t, err)
	assert.InDelta(t, 60, angle, 1e-9)

	angle, err = Angle(geom.Vec{1, 0, 0}, geom.Vec{-1, 2, 0}, r)
	require.NoError(t, err)
	assert.InDelta(t, 90, angle, 1e-9)
}

func TestAngleBounds(t *testing.T) {
	gen := rand.New(rand.NewSource(1))
	for _, cell := range validCells {
		l := MustNew(cell.a, cell.b, cell.c, cell.alpha, cell.beta, cell.gamma)
		for i := 0; i < 200; i++ {
			v1 := geom.Vec{gen.NormFloat64(), gen.NormFloat64(), gen.NormFloat64()}
			v2 := geom.Vec{gen.NormFloat64(), gen.NormFloat64(), gen.NormFloat64()}
			angle, err := Angle(v1, v2, l)
			require.NoError(t, err)
			assert.True(t, angle >= 0 && angle <= 180, "%s: %g", cell.name, angle)
		}

		angle, err := Angle(geom.Vec{1, 2, 3}, geom.Vec{-2, -4, -6}, l)
		require.NoError(t, err)
		assert.InDelta(t, 180, angle, 1e-5)
	}
}

func TestMillerIndices(t *testing.T) {
	for _, cell := range validCells {
		l := MustNew(cell.a, cell.b, cell.c, cell.alpha, cell.beta, cell.gamma)
		x := geom.Vec{0.25, -1.5, 2}

		h1 := MillerIndices(Cartesian(x, l), l)
		h2 := MillerFromFractional(x, l)
		for i := 0; i < 3; i++ {
			assert.InDelta(t, h2[i], h1[i], 1e-9, cell.name)
		}

		// A reciprocal lattice vector recovers its own Miller indices.
		dual := DualBasis(l)
		hkl := geom.Vec{1, -2, 3}
		q := dual[0].Scale(hkl[0]).Add(dual[1].Scale(hkl[1])).Add(dual[2].Scale(hkl[2]))
		got := MillerIndices(q, l)
		for i := 0; i < 3; i++ {
			assert.InDelta(t, hkl[i], got[i], 1e-9, cell.name)
		}
	}
}

func TestVectorProduct(t *testing.T) {
	l := MustNew(2*math.Pi, 2*math.Pi, 2*math.Pi, 90, 90, 90)
	got := Vector(geom.Vec{1, 0, 0}, geom.Vec{0, 1, 0}, l)
	assert.InDelta(t, 0, got[0], eps)
	assert.InDelta(t, 0, got[1], eps)
	assert.InDelta(t, 2*math.Pi, got[2], eps)
}

func TestNewErrors(t *testing.T) {
	table := []struct {
		name                       string
		a, b, c, alpha, beta, gamma float64
		param                      string
	}{
		{"zero length", 0, 1, 1, 90, 90, 90, "a"},
		{"negative length", 1, -1, 1, 90, 90, 90, "b"},
		{"NaN length", 1, 1, math.NaN(), 90, 90, 90, "c"},
		{"zero angle", 1, 1, 1, 0, 90, 90, "alpha"},
		{"straight angle", 1, 1, 1, 90, 180, 90, "beta"},
		{"reflex angle", 1, 1, 1, 90, 90, 200, "gamma"},
		{"flat cell", 1, 1, 1, 120, 120, 120, "cell"},
		{"impossible cell", 1, 1, 1, 170, 170, 170, "cell"},
		{"triangle inequality", 1, 1, 1, 30, 30, 90, "cell"},
	}

	for _, test := range table {
		t.Run(test.name, func(t *testing.T) {
			_, err := New(test.a, test.b, test.c, test.alpha, test.beta, test.gamma)
			var ile *InvalidLatticeError
			require.True(t, errors.As(err, &ile), "got %v", err)
			assert.Equal(t, test.param, ile.Param)
		})
	}

	assert.Panics(t, func() { MustNew(1, 1, 1, 120, 120, 120) })
}

func TestDegenerateVectors(t *testing.T) {
	l := MustNew(1, 1, 1, 90, 90, 90)
	_, err := Angle(geom.Vec{}, geom.Vec{1, 0, 0}, l)
	var pz *ParallelOrZeroVectorError
	assert.True(t, errors.As(err, &pz))

	_, err = DSpacing(geom.Vec{}, Reciprocal(l))
	assert.True(t, errors.As(err, &pz))

	// An inconsistent tensor which New would never produce.
	bad := newLattice(1, 1, 1, deg2rad(170), deg2rad(170), deg2rad(170))
	_, err = Magnitude(geom.Vec{1, 1, 1}, bad)
	var dv *DegenerateVectorError
	assert.True(t, errors.As(err, &dv))
	assert.True(t, math.IsNaN(bad.Volume()))
}

func TestString(t *testing.T) {
	l := MustNew(4.05, 4.05, 4.05, 90, 90, 90)
	assert.Equal(t,
		"a = 4.0500, b = 4.0500, c = 4.0500\n"+
			"alpha = 90.000, beta = 90.000, gamma = 90.000",
		l.String())
}
