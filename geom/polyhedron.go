package geom

import (
	"math"
	"sort"
)

// Polyhedron is a bounded convex polyhedron produced by Intersect. It is
// never modified after construction; accessors return copies.
type Polyhedron struct {
	hs  []HalfSpace
	tol float64

	vertices []Vec
	active   [][]int // indices into hs of the planes through each vertex
	edges    []Edge
	facets   []Facet
}

// Edge is a bounded segment of the line Anchor + t * Direction with t in
// [TMin, TMax]. Direction is a unit vector and Anchor is the point on the
// line closest to the origin.
type Edge struct {
	Direction, Anchor Vec
	TMin, TMax        float64

	// Vertices are the indices of the start and end points in
	// Polyhedron.Vertices().
	Vertices [2]int
	// Planes are the indices of the two half-spaces whose boundaries meet
	// along the edge.
	Planes [2]int
}

// At returns the point at parameter t along the edge's line.
func (e Edge) At(t float64) Vec {
	return e.Anchor.Add(e.Direction.Scale(t))
}

// Start returns the point at TMin.
func (e Edge) Start() Vec { return e.At(e.TMin) }

// End returns the point at TMax.
func (e Edge) End() Vec { return e.At(e.TMax) }

// Length returns the length of the edge.
func (e Edge) Length() float64 { return e.TMax - e.TMin }

// Facet is a face of the polyhedron. Vertices index into
// Polyhedron.Vertices() and are ordered counterclockwise when viewed from
// outside.
type Facet struct {
	Plane    HalfSpace
	Index    int // index of Plane in the input to Intersect
	Vertices []int
}

// Vertices returns the unique vertices of the polyhedron.
func (p *Polyhedron) Vertices() []Vec {
	return append([]Vec{}, p.vertices...)
}

// Edges returns the bounded edges of the polyhedron.
func (p *Polyhedron) Edges() []Edge {
	return append([]Edge{}, p.edges...)
}

// Facets returns the facets of the polyhedron.
func (p *Polyhedron) Facets() []Facet {
	out := make([]Facet, len(p.facets))
	for i, f := range p.facets {
		out[i] = f
		out[i].Vertices = append([]int{}, f.Vertices...)
	}
	return out
}

// Contains returns true if x is inside the polyhedron or within tol of its
// surface.
func (p *Polyhedron) Contains(x Vec, tol float64) bool {
	for _, f := range p.facets {
		if !f.Plane.Contains(x, tol) {
			return false
		}
	}
	return true
}

// Volume computes the volume of the polyhedron by summing the pyramids
// between the origin and every facet. The origin must be inside.
func (p *Polyhedron) Volume() float64 {
	vol := 0.0
	for _, f := range p.facets {
		vol += f.Plane.Distance() * p.facetArea(f) / 3
	}
	return vol
}

func (p *Polyhedron) facetArea(f Facet) float64 {
	v0 := p.vertices[f.Vertices[0]]
	sum := Vec{}
	for i := 1; i+1 < len(f.Vertices); i++ {
		d1 := p.vertices[f.Vertices[i]].Sub(v0)
		d2 := p.vertices[f.Vertices[i+1]].Sub(v0)
		sum = sum.Add(d1.Cross(d2))
	}
	return sum.Norm() / 2
}

// Triangles fans every facet into triangles with outward-facing winding.
func (p *Polyhedron) Triangles() [][3]Vec {
	tris := [][3]Vec{}
	for _, f := range p.facets {
		v0 := p.vertices[f.Vertices[0]]
		for i := 1; i+1 < len(f.Vertices); i++ {
			tris = append(tris, [3]Vec{
				v0, p.vertices[f.Vertices[i]], p.vertices[f.Vertices[i+1]],
			})
		}
	}
	return tris
}

func (p *Polyhedron) addVertex(x Vec) {
	for _, v := range p.vertices {
		if v.Dist(x) <= p.tol {
			return
		}
	}
	p.vertices = append(p.vertices, x)
}

func (p *Polyhedron) findActive() {
	p.active = make([][]int, len(p.vertices))
	for i, v := range p.vertices {
		for j := range p.hs {
			if math.Abs(p.hs[j].Residual(v)) <= p.tol {
				p.active[i] = append(p.active[i], j)
			}
		}
	}
}

// sharedLine returns the first pair of non-parallel planes active at both
// vertices.
func (p *Polyhedron) sharedLine(a, b int) (int, int, bool) {
	shared := []int{}
	for _, i := range p.active[a] {
		for _, j := range p.active[b] {
			if i == j {
				shared = append(shared, i)
			}
		}
	}

	for x := 0; x < len(shared); x++ {
		for y := x + 1; y < len(shared); y++ {
			n1 := p.hs[shared[x]].Normal.Unit()
			n2 := p.hs[shared[y]].Normal.Unit()
			if n1.Cross(n2).Norm() > 1e-9 {
				return shared[x], shared[y], true
			}
		}
	}
	return 0, 0, false
}

func (p *Polyhedron) findEdges() {
	for a := range p.vertices {
		for b := a + 1; b < len(p.vertices); b++ {
			i, j, ok := p.sharedLine(a, b)
			if !ok {
				continue
			}

			dir := p.hs[i].Normal.Cross(p.hs[j].Normal).Unit()
			va, vb := p.vertices[a], p.vertices[b]
			ta, tb := va.Dot(dir), vb.Dot(dir)
			if ta > tb {
				dir = dir.Scale(-1)
				ta, tb = -ta, -tb
			}

			p.edges = append(p.edges, Edge{
				Direction: dir,
				Anchor:    va.Sub(dir.Scale(ta)),
				TMin:      ta,
				TMax:      tb,
				Vertices:  [2]int{a, b},
				Planes:    [2]int{i, j},
			})
		}
	}
}

func (p *Polyhedron) findFacets() {
	onPlane := make([][]int, len(p.hs))
	for v, planes := range p.active {
		for _, i := range planes {
			onPlane[i] = append(onPlane[i], v)
		}
	}

	for i, vs := range onPlane {
		if len(vs) < 3 {
			continue
		}
		p.facets = append(p.facets, Facet{
			Plane:    p.hs[i],
			Index:    i,
			Vertices: p.orderLoop(p.hs[i].Normal, vs),
		})
	}
}

// orderLoop sorts the vertices of a facet counterclockwise around its
// outward normal.
func (p *Polyhedron) orderLoop(normal Vec, vs []int) []int {
	c := Vec{}
	for _, v := range vs {
		c = c.Add(p.vertices[v])
	}
	c = c.Scale(1 / float64(len(vs)))

	e1 := p.vertices[vs[0]].Sub(c).Unit()
	e2 := normal.Unit().Cross(e1)

	angles := make(map[int]float64, len(vs))
	for _, v := range vs {
		d := p.vertices[v].Sub(c)
		angles[v] = math.Atan2(d.Dot(e2), d.Dot(e1))
	}

	out := append([]int{}, vs...)
	sort.Slice(out, func(i, j int) bool { return angles[out[i]] < angles[out[j]] })
	return out
}

// checkBounded verifies that every direction leaving a vertex along an
// intersection of two of its planes ends at another vertex. A direction which
// stays feasible without reaching a second vertex is a ray.
func (p *Polyhedron) checkBounded() error {
	if len(p.vertices) < 4 {
		return &UnboundedError{"fewer than four vertices"}
	}
	if len(p.facets) < 4 {
		return &UnboundedError{"fewer than four facets"}
	}
	for v, planes := range p.active {
		for x := 0; x < len(planes); x++ {
			for y := x + 1; y < len(planes); y++ {
				d := p.hs[planes[x]].Normal.Cross(p.hs[planes[y]].Normal)
				if d.Norm() < 1e-12 {
					continue
				}
				d = d.Unit()
				for _, s := range []float64{+1, -1} {
					dir := d.Scale(s)
					if !p.leavesAlong(v, dir) {
						continue
					}
					if !p.hasEdgeAlong(v, dir) {
						return &UnboundedError{"vertex " + p.vertices[v].String() +
							" has a ray along " + dir.String()}
					}
				}
			}
		}
	}

	for _, e := range p.edges {
		if math.IsInf(e.TMin, 0) || math.IsInf(e.TMax, 0) ||
			math.IsNaN(e.TMin) || math.IsNaN(e.TMax) {
			return &UnboundedError{"edge with non-finite bounds"}
		}
	}
	return nil
}

// leavesAlong returns true if moving away from vertex v along dir keeps every
// plane active at v satisfied.
func (p *Polyhedron) leavesAlong(v int, dir Vec) bool {
	for _, i := range p.active[v] {
		n := p.hs[i].Normal.Unit()
		if n.Dot(dir) > 1e-9 {
			return false
		}
	}
	return true
}

func (p *Polyhedron) hasEdgeAlong(v int, dir Vec) bool {
	for _, e := range p.edges {
		var other int
		switch v {
		case e.Vertices[0]:
			other = e.Vertices[1]
		case e.Vertices[1]:
			other = e.Vertices[0]
		default:
			continue
		}
		d := p.vertices[other].Sub(p.vertices[v]).Unit()
		if d.Dot(dir) > 1-1e-9 {
			return true
		}
	}
	return false
}
