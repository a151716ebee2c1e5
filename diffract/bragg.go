package diffract

import (
	"fmt"
	"math"

	"github.com/phil-mansfield/xtal/geom"
	"github.com/phil-mansfield/xtal/lattice"
)

const (
	// NeutronEnergy converts neutron wavelength to energy:
	// E [meV] = (NeutronEnergy / lambda [A])^2.
	NeutronEnergy = 9.044
	// NeutronVelocity converts neutron wave number to speed:
	// v [m/s] = NeutronVelocity * k [1/A].
	NeutronVelocity = 629.62
	// NeutronK2 converts neutron wave number to energy:
	// E [meV] = NeutronK2 * k^2 [1/A^2].
	NeutronK2 = 2.072
)

// UnreachableError is returned when a requested scattering condition cannot
// be satisfied. Arg is the argument of the inverse trigonometric function
// that fell outside of its domain.
type UnreachableError struct {
	What string
	Arg  float64
}

func (e *UnreachableError) Error() string {
	return fmt.Sprintf("diffract: %s is unreachable (%g is out of range)", e.What, e.Arg)
}

// BraggAngle returns the scattering angle 2 theta in degrees at which the
// reflection hkl appears for wavelength lambda. recip is the reciprocal
// lattice.
func BraggAngle(lambda float64, hkl geom.Vec, recip lattice.Lattice) (float64, error) {
	if !(lambda > 0) || math.IsInf(lambda, 0) {
		return 0, &RadiationError{Wavelength(lambda)}
	}
	d, err := lattice.DSpacing(hkl, recip)
	if err != nil {
		return 0, err
	}
	return braggAngle(lambda, d, hkl)
}

func braggAngle(lambda, d float64, hkl geom.Vec) (float64, error) {
	arg := lambda / (2 * d)
	if math.Abs(arg) >= 1 {
		return 0, &UnreachableError{fmt.Sprintf("reflection %v", hkl), arg}
	}
	return 360 / math.Pi * math.Asin(arg), nil
}

// TOFParams are the properties of the neutrons that are Bragg scattered by a
// reflection at a fixed scattering angle.
type TOFParams struct {
	D          float64 // Angstroms
	Wavelength float64 // Angstroms
	Energy     float64 // meV
	Velocity   float64 // m/s
}

// TOF returns the neutron wavelength, energy and velocity which satisfy the
// Bragg condition for the reflection hkl at the scattering angle twoTheta.
func TOF(hkl geom.Vec, twoTheta float64, recip lattice.Lattice) (TOFParams, error) {
	d, err := lattice.DSpacing(hkl, recip)
	if err != nil {
		return TOFParams{}, err
	}

	lambda := 2 * d * math.Sin(twoTheta*math.Pi/360)
	if !(lambda > 0) {
		return TOFParams{}, &UnreachableError{
			fmt.Sprintf("reflection %v at 2θ = %g", hkl, twoTheta), lambda,
		}
	}

	k := 2 * math.Pi / lambda
	return TOFParams{
		D:          d,
		Wavelength: lambda,
		Energy:     math.Pow(NeutronEnergy/lambda, 2),
		Velocity:   NeutronVelocity * k,
	}, nil
}
