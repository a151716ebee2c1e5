package brillouin

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phil-mansfield/xtal/centering"
	"github.com/phil-mansfield/xtal/geom"
	"github.com/phil-mansfield/xtal/lattice"
)

func TestZoneShapes(t *testing.T) {
	table := []struct {
		name                    string
		l                       lattice.Lattice
		sym                     centering.Symbol
		vertices, edges, facets int
		points                  float64 // lattice points per conventional cell
	}{
		{"simple cubic", lattice.MustNew(4.05, 4.05, 4.05, 90, 90, 90),
			centering.P, 8, 12, 6, 1},
		{"face-centered cubic", lattice.MustNew(4.05, 4.05, 4.05, 90, 90, 90),
			centering.Fc, 24, 36, 14, 4},
		{"body-centered cubic", lattice.MustNew(3.3, 3.3, 3.3, 90, 90, 90),
			centering.Ic, 14, 24, 12, 2},
		{"hexagonal", lattice.MustNew(4.127, 4.127, 5.451, 90, 90, 120),
			centering.P, 12, 18, 8, 1},
		{"orthorhombic", lattice.MustNew(5.4, 5.5, 7.7, 90, 90, 90),
			centering.P, 8, 12, 6, 1},
	}

	for _, test := range table {
		t.Run(test.name, func(t *testing.T) {
			z, err := FromLattice(test.l, test.sym)
			require.NoError(t, err)
			assert.Len(t, z.Vertices(), test.vertices)
			assert.Len(t, z.Edges(), test.edges)
			assert.Len(t, z.Facets(), test.facets)

			recip := lattice.Reciprocal(test.l)
			assert.InDelta(t, recip.Volume()*test.points, z.Volume(),
				1e-6*z.Volume())
		})
	}
}

func TestZoneIsBounded(t *testing.T) {
	cells := []struct {
		l   lattice.Lattice
		sym centering.Symbol
	}{
		{lattice.MustNew(4.05, 4.05, 4.05, 90, 90, 90), centering.Fc},
		{lattice.MustNew(3.3, 3.3, 3.3, 90, 90, 90), centering.Ic},
		{lattice.MustNew(5.4, 5.5, 7.7, 90, 90, 90), centering.F},
		{lattice.MustNew(3.9, 3.9, 12.5, 90, 90, 90), centering.I},
		{lattice.MustNew(5.1, 8.9, 5.3, 90, 103.2, 90), centering.C},
		{lattice.MustNew(5.4, 5.5, 7.7, 90, 90, 90), centering.A},
		{lattice.MustNew(4.76, 4.76, 12.99, 90, 90, 120), centering.R},
		{lattice.MustNew(6.2, 7.4, 8.1, 72.5, 101.3, 84.9), centering.P},
		{lattice.MustNew(5.43, 5.43, 5.43, 55.3, 55.3, 55.3), centering.P},
	}

	for _, cell := range cells {
		z, err := FromLattice(cell.l, cell.sym)
		require.NoError(t, err, "%s\n%v", cell.sym, cell.l)

		for _, e := range z.Edges() {
			assert.False(t, math.IsInf(e.TMin, 0) || math.IsNaN(e.TMin))
			assert.False(t, math.IsInf(e.TMax, 0) || math.IsNaN(e.TMax))
			assert.Less(t, e.TMin, e.TMax)
		}

		// The origin is strictly inside every facet plane.
		for _, f := range z.Facets() {
			assert.Greater(t, f.Plane.Distance(), 0.0)
			assert.Less(t, f.Plane.Residual(geom.Vec{}), 0.0)
		}

		// Every vertex is at least as close to the origin as to any other
		// lattice point, and equidistant from the origin and at least
		// three of them.
		points := latticePoints(z.ReducedBasis(), 2)
		for _, v := range z.Vertices() {
			assert.True(t, z.Contains(v, 1e-9))

			tol := 1e-6 * v.Norm()
			equidistant := 0
			for _, p := range points {
				d := v.Dist(p)
				assert.LessOrEqual(t, v.Norm(), d+tol, "%s vertex %v", cell.sym, v)
				if math.Abs(v.Norm()-d) <= tol {
					equidistant++
				}
			}
			assert.GreaterOrEqual(t, equidistant, 3, "%s vertex %v", cell.sym, v)
		}

		// Zone is centrosymmetric.
		for _, v := range z.Vertices() {
			assert.True(t, z.Contains(v.Scale(-1), 1e-9))
		}
	}
}

// latticePoints returns every non-zero combination of basis with integer
// coefficients in [-n, n].
func latticePoints(basis [3]geom.Vec, n int) []geom.Vec {
	out := []geom.Vec{}
	for i := -n; i <= n; i++ {
		for j := -n; j <= n; j++ {
			for k := -n; k <= n; k++ {
				if i == 0 && j == 0 && k == 0 {
					continue
				}
				p := basis[0].Scale(float64(i)).
					Add(basis[1].Scale(float64(j))).
					Add(basis[2].Scale(float64(k)))
				out = append(out, p)
			}
		}
	}
	return out
}

func TestSpaceGroup225(t *testing.T) {
	sym, err := centering.For(225)
	require.NoError(t, err)
	require.Equal(t, centering.Fc, sym)

	l := lattice.MustNew(4.05, 4.05, 4.05, 90, 90, 90)
	z, err := FromLattice(l, sym)
	require.NoError(t, err)

	// The truncated octahedron has square faces at 2pi/a and hexagonal
	// faces at sqrt(3) pi/a.
	aStar := 2 * math.Pi / 4.05
	squares, hexagons := 0, 0
	for _, f := range z.Facets() {
		switch len(f.Vertices) {
		case 4:
			squares++
			assert.InDelta(t, aStar, f.Plane.Distance(), 1e-9)
		case 6:
			hexagons++
			assert.InDelta(t, aStar*math.Sqrt(3)/2, f.Plane.Distance(), 1e-9)
		}
	}
	assert.Equal(t, 6, squares)
	assert.Equal(t, 8, hexagons)

	// The uncentered zone of the same cell is a cube.
	cube, err := FromLattice(l, centering.P)
	require.NoError(t, err)
	assert.Len(t, cube.Vertices(), 8)
}

func TestReductionPreservesZone(t *testing.T) {
	cubic := [3]geom.Vec{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}
	skewed := [3]geom.Vec{
		{1, 0, 0},
		cubic[1].Add(cubic[0].Scale(5)),
		cubic[2].Add(cubic[1].Scale(3)).Sub(cubic[0].Scale(4)),
	}

	z, err := Build(skewed)
	require.NoError(t, err)
	assert.Len(t, z.Vertices(), 8)
	assert.InDelta(t, 1, z.Volume(), 1e-9)
	for _, b := range z.ReducedBasis() {
		assert.InDelta(t, 1, b.Norm(), 1e-12)
	}
	assert.Equal(t, skewed, z.Basis())
}

func TestSmallShellIsCaught(t *testing.T) {
	skewed := [3]geom.Vec{{1, 0, 0}, {3, 1, 0}, {0, 0, 1}}
	_, err := Build(skewed, Shell(1), Reduce(false))
	var upe *UnboundedPolyhedronError
	require.True(t, errors.As(err, &upe), "got %v", err)
	assert.Equal(t, 1, upe.Shell)

	z, err := Build(skewed, Shell(1))
	require.NoError(t, err)
	assert.InDelta(t, 1, z.Volume(), 1e-9)
}

func TestBuildErrors(t *testing.T) {
	flat := [3]geom.Vec{{1, 0, 0}, {0, 1, 0}, {1, 1, 0}}
	_, err := Build(flat)
	var dle *lattice.DegenerateLatticeError
	assert.True(t, errors.As(err, &dle))

	_, err = Build([3]geom.Vec{})
	assert.True(t, errors.As(err, &dle))

	_, err = Build([3]geom.Vec{{math.NaN(), 0, 0}, {0, 1, 0}, {0, 0, 1}})
	assert.True(t, errors.As(err, &dle))

	unit := [3]geom.Vec{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}
	_, err = Build(unit, Shell(0))
	assert.Error(t, err)
	_, err = Build(unit, Tolerance(-1))
	assert.Error(t, err)

	_, err = FromLattice(lattice.MustNew(1, 1, 1, 90, 90, 90), "Q")
	var se *centering.SymbolError
	assert.True(t, errors.As(err, &se))
}

func TestSegments(t *testing.T) {
	z, err := Build([3]geom.Vec{{2, 0, 0}, {0, 2, 0}, {0, 0, 2}})
	require.NoError(t, err)

	segs := z.Segments()
	require.Len(t, segs, 12)
	for _, s := range segs {
		assert.InDelta(t, 2, s[0].Dist(s[1]), 1e-9)
		for _, p := range s {
			for i := 0; i < 3; i++ {
				assert.InDelta(t, 1, math.Abs(p[i]), 1e-9)
			}
		}
	}
	assert.Len(t, z.Triangles(), 12)
}

func BenchmarkBuildFCC(b *testing.B) {
	l := lattice.MustNew(4.05, 4.05, 4.05, 90, 90, 90)
	for i := 0; i < b.N; i++ {
		if _, err := FromLattice(l, centering.Fc); err != nil {
			b.Fatal(err.Error())
		}
	}
}
