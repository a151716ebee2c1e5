/*package brillouin constructs the first Brillouin zone of a reciprocal
lattice: the Wigner-Seitz cell of the lattice around the origin.

The zone is the intersection of the half-spaces {x : x . P <= |P|^2 / 2} for
every lattice point P in a shell of neighbors around the origin. Bases are
reduced before the shell is generated so that a small shell always contains
every point whose bisector plane is a facet of the zone.
*/
package brillouin

import (
	"errors"
	"fmt"
	"math"

	"github.com/phil-mansfield/xtal/centering"
	"github.com/phil-mansfield/xtal/geom"
	"github.com/phil-mansfield/xtal/lattice"
)

const (
	// DefaultShell is the default half-width of the cube of neighbor
	// indices.
	DefaultShell = 2
	// DefaultTolerance is the default distance tolerance, relative to the
	// longest basis vector.
	DefaultTolerance = 1e-9
	// volumeTolerance is the allowed relative difference between the zone
	// volume and the primitive cell volume.
	volumeTolerance = 1e-6
)

// UnboundedPolyhedronError is returned when the neighbor shell does not
// bound the zone or misses some of its facets. It indicates a bug or a shell
// which is far too small and should never be retried.
type UnboundedPolyhedronError struct {
	Shell  int
	Reason string
	Err    error
}

func (e *UnboundedPolyhedronError) Error() string {
	return fmt.Sprintf("brillouin: zone is not bounded by a shell of %d: %s",
		e.Shell, e.Reason)
}

func (e *UnboundedPolyhedronError) Unwrap() error { return e.Err }

type config struct {
	shell  int
	tol    float64
	reduce bool
}

// Option configures Build.
type Option func(*config)

// Shell sets the half-width of the cube of neighbor indices. The default is
// DefaultShell.
func Shell(n int) Option { return func(c *config) { c.shell = n } }

// Tolerance sets the distance tolerance relative to the longest basis
// vector.
func Tolerance(rel float64) Option { return func(c *config) { c.tol = rel } }

// Reduce toggles basis reduction before neighbor generation. It is on by
// default.
func Reduce(on bool) Option { return func(c *config) { c.reduce = on } }

// Zone is a Brillouin zone. It is immutable.
type Zone struct {
	basis, reduced [3]geom.Vec
	volume         float64
	poly           *geom.Polyhedron
}

// Build constructs the Brillouin zone of the lattice generated by the rows
// of basis, which should be a primitive reciprocal basis.
func Build(basis [3]geom.Vec, opts ...Option) (*Zone, error) {
	c := config{shell: DefaultShell, tol: DefaultTolerance, reduce: true}
	for _, opt := range opts {
		opt(&c)
	}
	if c.shell < 1 {
		return nil, fmt.Errorf("brillouin: shell must be at least 1, got %d", c.shell)
	} else if c.tol <= 0 {
		return nil, fmt.Errorf("brillouin: tolerance must be positive, got %g", c.tol)
	}

	scale := 0.0
	for _, b := range basis {
		if !b.IsFinite() {
			return nil, &lattice.DegenerateLatticeError{Volume: math.NaN()}
		}
		scale = math.Max(scale, b.Norm())
	}
	vol := geom.TripleProduct(basis[0], basis[1], basis[2])
	if scale == 0 || math.Abs(vol) <= 1e-12*scale*scale*scale {
		return nil, &lattice.DegenerateLatticeError{Volume: vol}
	}

	z := &Zone{basis: basis, reduced: basis, volume: math.Abs(vol)}
	if c.reduce {
		z.reduced = reduceBasis(basis)
	}

	hs := bisectors(z.reduced, c.shell)
	poly, err := geom.Intersect(hs, c.tol*scale)
	if err != nil {
		var ue *geom.UnboundedError
		if errors.As(err, &ue) {
			return nil, &UnboundedPolyhedronError{c.shell, ue.Reason, err}
		}
		return nil, err
	}

	if v := poly.Volume(); math.Abs(v-z.volume) > volumeTolerance*z.volume {
		return nil, &UnboundedPolyhedronError{
			Shell: c.shell,
			Reason: fmt.Sprintf("zone volume %g differs from cell volume %g",
				v, z.volume),
		}
	}

	z.poly = poly
	return z, nil
}

// FromLattice builds the Brillouin zone of the direct lattice l with the
// given centering. The centering transform is applied to the reciprocal
// basis before the zone is constructed.
func FromLattice(
	l lattice.Lattice, sym centering.Symbol, opts ...Option,
) (*Zone, error) {
	basis := lattice.BasisVectors(lattice.Reciprocal(l))
	centered, err := centering.Apply(sym, basis)
	if err != nil {
		return nil, err
	}
	return Build(centered, opts...)
}

// bisectors returns the bisector half-spaces of every lattice point in the
// cube of indices [-n, n]^3 which can touch the zone. Every point of the zone
// is within half the summed basis lengths of the origin, so points further
// than the summed lengths are skipped.
func bisectors(basis [3]geom.Vec, n int) []geom.HalfSpace {
	rMax := basis[0].Norm() + basis[1].Norm() + basis[2].Norm()

	hs := []geom.HalfSpace{}
	for i := -n; i <= n; i++ {
		for j := -n; j <= n; j++ {
			for k := -n; k <= n; k++ {
				if i == 0 && j == 0 && k == 0 {
					continue
				}
				p := basis[0].Scale(float64(i)).
					Add(basis[1].Scale(float64(j))).
					Add(basis[2].Scale(float64(k)))
				if p.Norm() > rMax*(1+1e-9) {
					continue
				}
				hs = append(hs, geom.Bisector(p))
			}
		}
	}
	return hs
}

// Basis returns the basis the zone was built from.
func (z *Zone) Basis() [3]geom.Vec { return z.basis }

// ReducedBasis returns the reduced basis used to generate neighbors. It
// spans the same lattice as Basis.
func (z *Zone) ReducedBasis() [3]geom.Vec { return z.reduced }

// Vertices returns the unique vertices of the zone.
func (z *Zone) Vertices() []geom.Vec { return z.poly.Vertices() }

// Edges returns the bounded edges of the zone.
func (z *Zone) Edges() []geom.Edge { return z.poly.Edges() }

// Facets returns the faces of the zone.
func (z *Zone) Facets() []geom.Facet { return z.poly.Facets() }

// Triangles returns the faces of the zone split into outward-facing
// triangles.
func (z *Zone) Triangles() [][3]geom.Vec { return z.poly.Triangles() }

// Volume returns the volume of the zone, which equals the volume of the
// primitive reciprocal cell.
func (z *Zone) Volume() float64 { return z.poly.Volume() }

// Contains returns true if x is in the zone or within tol of its surface.
func (z *Zone) Contains(x geom.Vec, tol float64) bool {
	return z.poly.Contains(x, tol)
}

// Segments returns the start and end point of every edge.
func (z *Zone) Segments() [][2]geom.Vec {
	edges := z.poly.Edges()
	out := make([][2]geom.Vec, len(edges))
	for i, e := range edges {
		out[i] = [2]geom.Vec{e.Start(), e.End()}
	}
	return out
}
