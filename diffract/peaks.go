package diffract

import (
	"math"

	"github.com/phil-mansfield/xtal/geom"
	"github.com/phil-mansfield/xtal/lattice"
)

// Harmonics is the number of wavelength harmonics (lambda, lambda/2, ...)
// reported for each peak.
const Harmonics = 3

// AluminumReflections are the allowed reflections of an FCC lattice (all
// indices even or all odd) out to [6 0 0], the standard list for aluminum
// calibration samples.
var AluminumReflections = []geom.Vec{
	{1, 1, 1}, {2, 0, 0}, {2, 2, 0}, {3, 1, 1}, {2, 2, 2},
	{4, 0, 0}, {3, 3, 1}, {4, 2, 0}, {4, 2, 2}, {5, 1, 1},
	{3, 3, 3}, {4, 4, 0}, {5, 3, 1}, {4, 4, 2}, {6, 0, 0},
}

// Peak is one row of a peak table.
type Peak struct {
	HKL geom.Vec
	Q   float64 // |Q| in inverse Angstroms
	D   float64 // d-spacing in Angstroms
	// TwoTheta[n] is the Bragg angle at lambda/(n+1) in degrees, or NaN if
	// the reflection cannot be reached.
	TwoTheta [Harmonics]float64
}

// PeakTable lists |Q|, d and the Bragg angles of the given reflections for
// a crystal with direct lattice l at wavelength lambda and its harmonics.
func PeakTable(
	l lattice.Lattice, lambda float64, reflections []geom.Vec,
) ([]Peak, error) {
	if !(lambda > 0) || math.IsInf(lambda, 0) {
		return nil, &RadiationError{Wavelength(lambda)}
	}
	recip := lattice.Reciprocal(l)

	peaks := make([]Peak, len(reflections))
	for i, hkl := range reflections {
		d, err := lattice.DSpacing(hkl, recip)
		if err != nil {
			return nil, err
		}
		p := Peak{HKL: hkl, Q: 2 * math.Pi / d, D: d}
		for n := range p.TwoTheta {
			tt, err := braggAngle(lambda/float64(n+1), d, hkl)
			if err != nil {
				tt = math.NaN()
			}
			p.TwoTheta[n] = tt
		}
		peaks[i] = p
	}
	return peaks, nil
}
