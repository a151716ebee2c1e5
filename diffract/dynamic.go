package diffract

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// Mode states which neutron energy a spectrometer holds fixed.
type Mode string

const (
	FixedEi Mode = "Ei"
	FixedEf Mode = "Ef"
)

// OmegaSamples is the number of energy transfers sampled by DynamicRange.
const OmegaSamples = 100

// ModeError is returned for a Mode other than FixedEi and FixedEf.
type ModeError struct {
	Mode Mode
}

func (e *ModeError) Error() string {
	return fmt.Sprintf("diffract: fixed-energy mode '%s' is not 'Ei' or 'Ef'", e.Mode)
}

// ParseMode parses "Ei" or "Ef".
func ParseMode(s string) (Mode, error) {
	switch m := Mode(s); m {
	case FixedEi, FixedEf:
		return m, nil
	default:
		return "", &ModeError{m}
	}
}

// waveNumbers returns the incident and final wave numbers for the fixed
// energy e and energy transfer omega. If the final energy would be negative,
// kf is NaN.
func waveNumbers(mode Mode, e, omega float64) (ki, kf float64, err error) {
	switch mode {
	case FixedEf:
		return math.Sqrt((omega + e) / NeutronK2), math.Sqrt(e / NeutronK2), nil
	case FixedEi:
		return math.Sqrt(e / NeutronK2), math.Sqrt((e - omega) / NeutronK2), nil
	}
	return 0, 0, &ModeError{mode}
}

// Range is the kinematically accessible region of an inelastic measurement:
// Q[i][j] is |Q| at scattering angle Thetas[i] and energy transfer
// Omega[j]. Points which cannot be reached are NaN.
type Range struct {
	Thetas []float64 // degrees
	Omega  []float64 // meV
	Q      [][]float64
}

// DynamicRange computes |Q| as a function of energy transfer along lines of
// constant scattering angle. Omega runs from 0 to eMax and the scattering
// angles run from thetaMin up to, but not including, thetaMax in steps of
// step.
func DynamicRange(
	mode Mode, e, eMax, thetaMin, thetaMax, step float64,
) (*Range, error) {
	if _, err := ParseMode(string(mode)); err != nil {
		return nil, err
	}
	if !(e > 0) || !(eMax > 0) || math.IsInf(e, 0) || math.IsInf(eMax, 0) {
		return nil, fmt.Errorf(
			"diffract: energies E = %g and Emax = %g must be positive", e, eMax,
		)
	}
	if !(step > 0) || !(thetaMax > thetaMin) {
		return nil, fmt.Errorf(
			"diffract: angle range [%g, %g) with step %g is empty",
			thetaMin, thetaMax, step,
		)
	}

	r := &Range{Omega: floats.Span(make([]float64, OmegaSamples), 0, eMax)}
	for th := thetaMin; th < thetaMax; th = thetaMin + float64(len(r.Thetas))*step {
		r.Thetas = append(r.Thetas, th)
	}

	r.Q = make([][]float64, len(r.Thetas))
	for i, th := range r.Thetas {
		cos := math.Cos(th * math.Pi / 180)
		row := make([]float64, len(r.Omega))
		for j, omega := range r.Omega {
			ki, kf, _ := waveNumbers(mode, e, omega)
			row[j] = math.Sqrt(ki*ki + kf*kf - 2*ki*kf*cos)
		}
		r.Q[i] = row
	}
	return r, nil
}

// SpecTwoTheta returns the scattering angle in degrees at which momentum
// transfer q is measured with energy transfer eT, given the fixed energy e.
func SpecTwoTheta(mode Mode, e, eT, q float64) (float64, error) {
	ki, kf, err := waveNumbers(mode, e, eT)
	if err != nil {
		return 0, err
	}
	arg := -(q*q - ki*ki - kf*kf) / (2 * ki * kf)
	if math.IsNaN(arg) || math.Abs(arg) > 1 {
		return 0, &UnreachableError{
			fmt.Sprintf("|Q| = %g at energy transfer %g meV", q, eT), arg,
		}
	}
	return math.Acos(arg) * 180 / math.Pi, nil
}
