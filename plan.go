/*package xtal plans scattering experiments on single crystals. Plan takes
the unit cell of a crystal and the geometry of a spectrometer and returns
everything needed to draw the crystal's first Brillouin zone and the paths
that theta scans trace out in its scattering plane.

The numerical work is done by the subpackages lattice, centering, brillouin
and diffract. Plan only assembles their results.
*/
package xtal

import (
	"fmt"

	"gonum.org/v1/gonum/floats/scalar"

	"github.com/phil-mansfield/xtal/brillouin"
	"github.com/phil-mansfield/xtal/centering"
	"github.com/phil-mansfield/xtal/diffract"
	"github.com/phil-mansfield/xtal/geom"
	"github.com/phil-mansfield/xtal/lattice"
)

// AnglePlaces is the number of decimal places Result.Angle is rounded to.
const AnglePlaces = 3

// Request describes a crystal and a spectrometer.
type Request struct {
	A, B, C            float64 // Angstroms
	Alpha, Beta, Gamma float64 // degrees

	// SpaceGroup selects the centering of the zone. If it is zero,
	// Centering is used instead, and if that is empty the lattice is
	// treated as primitive.
	SpaceGroup int
	Centering  centering.Symbol

	// U and V are the reciprocal lattice vectors whose angle is reported.
	U, V geom.Vec
	// W and R span the scattering plane of the theta cuts.
	W, R geom.Vec

	Radiation diffract.Radiation
	TwoTheta  []float64 // degrees

	// Shell is the neighbor shell used to build the zone. Zero means
	// brillouin.DefaultShell.
	Shell int
}

// Result is everything Plan computes for a Request. It contains only plain
// values and can be handed straight to an encoder.
type Result struct {
	Lattice    string
	Reciprocal string
	// Angle is the angle between U and V in the reciprocal lattice, in
	// degrees.
	Angle     float64
	Centering centering.Symbol

	Vertices [][3]float64
	Edges    [][2][3]float64
	Volume   float64

	ThetaCut *diffract.ThetaCutPlot

	LatticeVectors    [3][3]float64
	ReciprocalVectors [3][3]float64
}

// Plan computes the Result for req. Plan has no side effects and may be
// called concurrently.
func Plan(req Request) (*Result, error) {
	l, err := lattice.New(req.A, req.B, req.C, req.Alpha, req.Beta, req.Gamma)
	if err != nil {
		return nil, err
	}
	recip := lattice.Reciprocal(l)

	sym, err := req.symbol()
	if err != nil {
		return nil, err
	}

	angle, err := lattice.Angle(req.U, req.V, recip)
	if err != nil {
		return nil, fmt.Errorf("angle between U and V: %w", err)
	}

	var opts []brillouin.Option
	if req.Shell != 0 {
		opts = append(opts, brillouin.Shell(req.Shell))
	}
	zone, err := brillouin.FromLattice(l, sym, opts...)
	if err != nil {
		return nil, fmt.Errorf("Brillouin zone: %w", err)
	}

	plot, err := diffract.NewThetaCutPlot(req.W, req.R, l, req.Radiation, req.TwoTheta)
	if err != nil {
		return nil, fmt.Errorf("theta cut: %w", err)
	}

	res := &Result{
		Lattice:           l.String(),
		Reciprocal:        recip.String(),
		Angle:             scalar.Round(angle, AnglePlaces),
		Centering:         sym,
		Volume:            zone.Volume(),
		ThetaCut:          plot,
		LatticeVectors:    toArrays(lattice.BasisVectors(l)),
		ReciprocalVectors: toArrays(lattice.BasisVectors(recip)),
	}

	for _, v := range zone.Vertices() {
		res.Vertices = append(res.Vertices, [3]float64(v))
	}
	for _, seg := range zone.Segments() {
		res.Edges = append(res.Edges, [2][3]float64{seg[0], seg[1]})
	}

	return res, nil
}

func (req *Request) symbol() (centering.Symbol, error) {
	switch {
	case req.SpaceGroup != 0:
		return centering.For(req.SpaceGroup)
	case req.Centering != "":
		return centering.ParseSymbol(string(req.Centering))
	default:
		return centering.P, nil
	}
}

func toArrays(vs [3]geom.Vec) [3][3]float64 {
	return [3][3]float64{vs[0], vs[1], vs[2]}
}
