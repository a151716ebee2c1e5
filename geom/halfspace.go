package geom

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/phil-mansfield/xtal/math/mat"
)

var (
	// ErrOriginOutside is returned when the origin is not strictly inside
	// every half-space.
	ErrOriginOutside = errors.New("geom: origin is not strictly inside the half-spaces")
)

// UnboundedError is returned by Intersect when the half-spaces do not enclose
// a bounded region around the origin.
type UnboundedError struct {
	Reason string
}

func (e *UnboundedError) Error() string {
	return "geom: half-space intersection is unbounded: " + e.Reason
}

// HalfSpace is the set {x : x . Normal <= Offset}.
type HalfSpace struct {
	Normal Vec
	Offset float64
}

// Bisector returns the half-space bounded by the perpendicular bisector plane
// between the origin and p which contains the origin.
func Bisector(p Vec) HalfSpace {
	return HalfSpace{Normal: p, Offset: p.Dot(p) / 2}
}

// Distance returns the distance from the origin to the boundary plane.
func (h HalfSpace) Distance() float64 {
	return h.Offset / h.Normal.Norm()
}

// Residual returns the signed distance of x outside the boundary plane.
// Points inside the half-space have negative residuals.
func (h HalfSpace) Residual(x Vec) float64 {
	return (x.Dot(h.Normal) - h.Offset) / h.Normal.Norm()
}

// Contains returns true if x is inside the half-space or within tol of its
// boundary.
func (h HalfSpace) Contains(x Vec, tol float64) bool {
	return h.Residual(x) <= tol
}

// Intersect computes the bounded convex polyhedron formed by intersecting the
// given half-spaces. The origin must be strictly inside every half-space.
// tol is an absolute distance tolerance used to decide whether a point lies
// on a plane and should be small compared to the size of the polyhedron.
//
// Vertices are found by solving every non-degenerate triple of boundary
// planes and keeping the feasible solutions. Two vertices which share two
// non-parallel active planes bound an edge. Planes touched by fewer than
// three vertices are redundant and do not appear as facets.
func Intersect(hs []HalfSpace, tol float64) (*Polyhedron, error) {
	if tol <= 0 {
		return nil, fmt.Errorf("geom: tolerance must be positive, got %g", tol)
	}
	for i := range hs {
		if hs[i].Normal.Norm() == 0 || !hs[i].Normal.IsFinite() {
			return nil, fmt.Errorf("geom: half-space %d has a degenerate normal", i)
		}
	}

	// Check nearby planes first so infeasible candidates are rejected quickly.
	order := make([]int, len(hs))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		return hs[order[i]].Distance() < hs[order[j]].Distance()
	})

	for i := range hs {
		if hs[i].Offset <= tol*hs[i].Normal.Norm() {
			return nil, ErrOriginOutside
		}
	}

	p := &Polyhedron{hs: hs, tol: tol}
	lu := mat.NewLUFactors(3)
	m := mat.NewMatrix(make([]float64, 9), 3, 3)
	bs, xs := make([]float64, 3), make([]float64, 3)

	n := len(hs)
	for i := 0; i < n; i++ {
		ni := hs[i].Normal.Unit()
		for j := i + 1; j < n; j++ {
			nj := hs[j].Normal.Unit()
			if ni.Cross(nj).Norm() < 1e-12 {
				continue
			}
			for k := j + 1; k < n; k++ {
				nk := hs[k].Normal.Unit()
				if math.Abs(TripleProduct(ni, nj, nk)) < 1e-10 {
					continue
				}

				copy(m.Vals[0:3], hs[i].Normal[:])
				copy(m.Vals[3:6], hs[j].Normal[:])
				copy(m.Vals[6:9], hs[k].Normal[:])
				bs[0], bs[1], bs[2] = hs[i].Offset, hs[j].Offset, hs[k].Offset
				m.LUFactorsAt(lu)
				lu.SolveVector(bs, xs)

				x := Vec{xs[0], xs[1], xs[2]}
				if !x.IsFinite() || !feasible(hs, order, x, tol) {
					continue
				}
				p.addVertex(x)
			}
		}
	}

	if len(p.vertices) == 0 {
		return nil, &UnboundedError{"no vertices"}
	}

	p.findActive()
	p.findEdges()
	p.findFacets()

	if err := p.checkBounded(); err != nil {
		return nil, err
	}
	return p, nil
}

func feasible(hs []HalfSpace, order []int, x Vec, tol float64) bool {
	for _, i := range order {
		if !hs[i].Contains(x, tol) {
			return false
		}
	}
	return true
}
