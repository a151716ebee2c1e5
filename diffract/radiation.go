/*package diffract computes scattering geometry for a crystal mounted on a
two-axis spectrometer: momentum transfer vectors in a scattering plane,
theta-cut traces, Bragg angles, time-of-flight parameters and the
kinematically accessible region of an inelastic measurement.

Angles passed to and returned from this package are in degrees, lengths are
in Angstroms and momenta are in inverse Angstroms.
*/
package diffract

import (
	"fmt"
	"math"
)

// HC converts between beam energy and wavelength: lambda [A] = HC / E.
const HC = 12.398

// Unit is the unit that a Radiation value is given in.
type Unit int

const (
	Angstrom Unit = iota
	ElectronVolt
)

func (u Unit) String() string {
	switch u {
	case Angstrom:
		return "A"
	case ElectronVolt:
		return "eV"
	}
	return fmt.Sprintf("Unit(%d)", int(u))
}

// Radiation is an incident beam, described either by its wavelength or by
// its energy.
type Radiation struct {
	Value float64
	Unit  Unit
}

// RadiationError is returned when a Radiation does not describe a physical
// beam.
type RadiationError struct {
	Radiation Radiation
}

func (e *RadiationError) Error() string {
	return fmt.Sprintf(
		"diffract: radiation of %g %s is not positive and finite",
		e.Radiation.Value, e.Radiation.Unit,
	)
}

// Wavelength returns a beam with wavelength lambda.
func Wavelength(lambda float64) Radiation {
	return Radiation{lambda, Angstrom}
}

// Energy returns a beam with energy eV.
func Energy(eV float64) Radiation {
	return Radiation{eV, ElectronVolt}
}

// Lambda returns the wavelength of the beam.
func (r Radiation) Lambda() (float64, error) {
	if !(r.Value > 0) || math.IsInf(r.Value, 0) {
		return 0, &RadiationError{r}
	}

	switch r.Unit {
	case Angstrom:
		return r.Value, nil
	case ElectronVolt:
		return HC / r.Value, nil
	}
	return 0, &RadiationError{r}
}

func (r Radiation) String() string {
	return fmt.Sprintf("%g %s", r.Value, r.Unit)
}
