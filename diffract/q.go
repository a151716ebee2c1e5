package diffract

import (
	"fmt"
	"math"

	"github.com/phil-mansfield/xtal/geom"
	"github.com/phil-mansfield/xtal/lattice"
)

// planeTol is the relative size below which the part of v perpendicular to u
// is treated as zero.
const planeTol = 1e-10

// DegenerateScatteringPlaneError is returned when the two vectors that should
// span a scattering plane are parallel or one of them is zero.
type DegenerateScatteringPlaneError struct {
	U, V geom.Vec
}

func (e *DegenerateScatteringPlaneError) Error() string {
	return fmt.Sprintf(
		"diffract: %v and %v do not span a scattering plane", e.U, e.V,
	)
}

// Frame is an orthonormal basis of a scattering plane. X and Y are given in
// Miller indices and are orthonormal under the reciprocal metric tensor.
type Frame struct {
	U, V       geom.Vec
	X, Y       geom.Vec
	ModU, ModV float64
	recip      lattice.Lattice
}

// NewFrame orthonormalizes the scattering plane spanned by the reciprocal
// lattice vectors u and v. X points along u and Y is the part of v
// perpendicular to u.
func NewFrame(recip lattice.Lattice, u, v geom.Vec) (*Frame, error) {
	modU, err := lattice.Magnitude(u, recip)
	if err != nil {
		return nil, err
	}
	modV, err := lattice.Magnitude(v, recip)
	if err != nil {
		return nil, err
	}
	if modU == 0 || modV == 0 {
		return nil, &DegenerateScatteringPlaneError{u, v}
	}

	x := u.Scale(1 / modU)
	y := v.Sub(x.Scale(lattice.Scalar(v, x, recip)))
	modY, err := lattice.Magnitude(y, recip)
	if err != nil {
		return nil, err
	}
	if modY <= planeTol*modV {
		return nil, &DegenerateScatteringPlaneError{u, v}
	}

	return &Frame{
		U: u, V: v, X: x, Y: y.Scale(1 / modY),
		ModU: modU, ModV: modV, recip: recip,
	}, nil
}

// Reciprocal returns the reciprocal lattice the frame was built in.
func (f *Frame) Reciprocal() lattice.Lattice { return f.recip }

// Q is a momentum transfer vector for a single spectrometer setting.
type Q struct {
	// Mod is |Q| in inverse Angstroms.
	Mod float64
	// Alpha is the angle between Q and X in degrees.
	Alpha float64
	// Vec is Q in Miller indices of the reciprocal lattice.
	Vec geom.Vec
	// X and Y are the orthonormal frame Q was decomposed in.
	X, Y geom.Vec
}

// ModQ returns the magnitude of the elastic momentum transfer at the
// scattering angle twoTheta for wavelength lambda.
func ModQ(lambda, twoTheta float64) float64 {
	return 4 * math.Pi / lambda * math.Sin(twoTheta*math.Pi/360)
}

// Alpha returns the angle between Q and the u axis for a scattering angle of
// twoTheta and a sample angle of theta, where theta = 0 when u lies along
// the incident beam.
func Alpha(twoTheta, theta float64) float64 {
	return (180-twoTheta)/2 + theta
}

// At returns the elastic momentum transfer for the spectrometer setting
// (twoTheta, theta) at wavelength lambda.
func (f *Frame) At(lambda, twoTheta, theta float64) Q {
	modQ := ModQ(lambda, twoTheta)
	alpha := Alpha(twoTheta, theta)
	rad := alpha * math.Pi / 180

	qx := f.X.Scale(modQ * math.Cos(rad))
	qy := f.Y.Scale(modQ * math.Sin(rad))
	return Q{Mod: modQ, Alpha: alpha, Vec: qx.Add(qy), X: f.X, Y: f.Y}
}

// ComputeQ returns the elastic momentum transfer of a crystal with direct
// lattice l which is mounted with the reciprocal lattice vectors u and v in
// the scattering plane.
func ComputeQ(
	l lattice.Lattice, twoTheta, theta float64, r Radiation, u, v geom.Vec,
) (Q, error) {
	lambda, err := r.Lambda()
	if err != nil {
		return Q{}, err
	}
	f, err := NewFrame(lattice.Reciprocal(l), u, v)
	if err != nil {
		return Q{}, err
	}
	return f.At(lambda, twoTheta, theta), nil
}
