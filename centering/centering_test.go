package centering

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/phil-mansfield/xtal/geom"
	"github.com/phil-mansfield/xtal/lattice"
)

func TestFor(t *testing.T) {
	table := []struct {
		group int
		sym   Symbol
	}{
		{1, P}, {2, P}, {5, C}, {12, C}, {22, F}, {38, A}, {41, A},
		{62, P}, {64, C}, {71, I}, {139, I}, {143, P}, {146, R}, {166, R},
		{167, R}, {194, P}, {196, Fc}, {197, Ic}, {221, P}, {225, Fc},
		{227, Fc}, {229, Ic}, {230, Ic},
	}
	for _, test := range table {
		sym, err := For(test.group)
		require.NoError(t, err)
		assert.Equal(t, test.sym, sym, "space group %d", test.group)
	}

	for _, n := range []int{0, -1, 231} {
		_, err := For(n)
		var sge *SpaceGroupError
		assert.True(t, errors.As(err, &sge), "space group %d", n)
	}
}

func TestTableCounts(t *testing.T) {
	counts := map[Symbol]int{}
	for n := 1; n <= 230; n++ {
		sym, err := For(n)
		require.NoError(t, err)
		counts[sym]++
	}
	assert.Equal(t, map[Symbol]int{
		P: 149, A: 4, C: 16, F: 5, I: 28, R: 7, Fc: 11, Ic: 10,
	}, counts)
}

func TestApplyPrimitiveIsIdentity(t *testing.T) {
	gen := rand.New(rand.NewSource(7))
	for i := 0; i < 20; i++ {
		var basis [3]geom.Vec
		for r := range basis {
			for c := range basis[r] {
				basis[r][c] = gen.NormFloat64()
			}
		}
		out, err := Apply(P, basis)
		require.NoError(t, err)
		assert.Equal(t, basis, out)
	}
}

// The transformed reciprocal basis must be dual to the primitive direct cell.
func TestTransformsAreDualToPrimitives(t *testing.T) {
	for _, sym := range Symbols {
		tr, err := Transform(sym)
		require.NoError(t, err)
		prim, err := PrimitiveDirect(sym)
		require.NoError(t, err)

		T := mat.NewDense(3, 3, flatten(tr))
		Pm := mat.NewDense(3, 3, flatten(prim))
		var prod mat.Dense
		prod.Mul(T, Pm.T())
		assert.True(t, mat.EqualApprox(&prod, eye(), 1e-12), "%s: T P^T != I", sym)
	}
}

func TestLatticePointsPerCell(t *testing.T) {
	want := map[Symbol]float64{P: 1, A: 2, C: 2, I: 2, Ic: 2, F: 4, Fc: 4, R: 3}
	for sym, n := range want {
		tr, err := Transform(sym)
		require.NoError(t, err)
		det := mat.Det(mat.NewDense(3, 3, flatten(tr)))
		assert.InDelta(t, n, math.Abs(det), 1e-12, string(sym))
	}
}

func TestApplyOnLattice(t *testing.T) {
	cells := map[Symbol]lattice.Lattice{
		Fc: lattice.MustNew(4.05, 4.05, 4.05, 90, 90, 90),
		Ic: lattice.MustNew(3.3, 3.3, 3.3, 90, 90, 90),
		R:  lattice.MustNew(4.76, 4.76, 12.99, 90, 90, 120),
		C:  lattice.MustNew(5.1, 8.9, 5.3, 90, 103.2, 90),
		A:  lattice.MustNew(5.4, 5.5, 7.7, 90, 90, 90),
		I:  lattice.MustNew(3.9, 3.9, 12.5, 90, 90, 90),
	}

	for sym, l := range cells {
		prim, err := PrimitiveDirect(sym)
		require.NoError(t, err)
		direct := geom.MulRows(prim, lattice.BasisVectors(l))

		recip, err := Apply(sym, lattice.DualBasis(l))
		require.NoError(t, err)

		for i := 0; i < 3; i++ {
			for j := 0; j < 3; j++ {
				want := 0.0
				if i == j {
					want = 2 * math.Pi
				}
				assert.InDelta(t, want, direct[i].Dot(recip[j]), 1e-9,
					"%s: a_%d . b_%d", sym, i, j)
			}
		}
	}
}

// Decimal-truncated thirds (0.666, 0.333) leave a relative error of about
// 1e-3 in the rhombohedral duality relation.
func TestTruncatedRhombohedralThirds(t *testing.T) {
	truncated := [3][3]float64{
		{0.666, 0.333, 0.333}, {-0.333, 0.333, 0.333}, {-0.333, -0.666, 0.333},
	}
	tr, err := Transform(R)
	require.NoError(t, err)

	T := mat.NewDense(3, 3, flatten(tr))
	var prod mat.Dense
	prod.Mul(T, mat.NewDense(3, 3, flatten(truncated)).T())
	assert.False(t, mat.EqualApprox(&prod, eye(), 1e-4))
	assert.True(t, mat.EqualApprox(&prod, eye(), 1e-2))
}

func TestParseSymbol(t *testing.T) {
	for _, s := range []string{"P", "A", "C", "F", "I", "R", "Fc", "Ic"} {
		sym, err := ParseSymbol(s)
		require.NoError(t, err)
		assert.Equal(t, Symbol(s), sym)
	}

	sym, err := ParseSymbol(" f ")
	require.NoError(t, err)
	assert.Equal(t, F, sym)
	assert.False(t, sym.Cubic())
	assert.True(t, Fc.Cubic())

	for _, s := range []string{"", "X", "FCC", "B"} {
		_, err := ParseSymbol(s)
		var se *SymbolError
		assert.True(t, errors.As(err, &se), s)
	}

	_, err = Apply("Q", [3]geom.Vec{})
	assert.Error(t, err)
}

func flatten(m [3][3]float64) []float64 {
	out := make([]float64, 0, 9)
	for i := 0; i < 3; i++ {
		out = append(out, m[i][:]...)
	}
	return out
}

func eye() *mat.Dense {
	return mat.NewDense(3, 3, []float64{1, 0, 0, 0, 1, 0, 0, 0, 1})
}
