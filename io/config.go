package io

import (
	"fmt"
	"math"
	"strings"

	"gopkg.in/gcfg.v1"

	"github.com/phil-mansfield/xtal"
	"github.com/phil-mansfield/xtal/centering"
	"github.com/phil-mansfield/xtal/diffract"
	"github.com/phil-mansfield/xtal/geom"
)

const (
	ExamplePlanFile = `[Plan]

#######################
# Required Parameters #
#######################

# Unit cell lengths in Angstroms and angles in degrees.
A = 4.05
B = 4.05
C = 4.05
Alpha = 90
Beta  = 90
Gamma = 90

# The incident beam. Set exactly one of Wavelength (Angstroms) or Energy. The
# two are related by Wavelength = 12.398 / Energy.
Wavelength = 1.0
# Energy = 12.398

# Two reciprocal lattice vectors, given as Miller indices. The angle between
# them is reported in the output summary.
U = 1 0 0
V = 0 1 0

# Scattering angles which theta cuts are computed for. List as many as you
# want, one per line.
TwoTheta = 30
TwoTheta = 60
TwoTheta = 90

#######################
# Optional Parameters #
#######################

# The centering of the lattice is used to find the primitive reciprocal cell
# before the Brillouin zone is built. SpaceGroup is an International Tables
# number in [1, 230]. Alternatively, give the centering directly as one of
# [ P | A | C | F | I | R | Fc | Ic ]. If neither is set, the lattice is
# primitive.
# SpaceGroup = 225
# Centering = Fc

# The scattering plane of the theta cuts. Default is the (H 0 L) plane.
# W = 1 0 0
# R = 0 0 1

# Number of neighbor shells searched for Brillouin zone faces. The default
# is enough for any reduced cell.
# Shell = 2

# Output files. Output receives a text summary of the plan and is standard
# output if unset. ThetaCutScript is a standalone matplotlib script,
# ThetaCutPlot is an image rendered through pyplot, ZoneSTL is the zone as a
# triangle mesh and ZoneFile is the zone in binary form.
# Output = plan.txt
# ThetaCutScript = theta_cut.py
# ThetaCutPlot = theta_cut.png
# ZoneSTL = zone.stl
# ZoneFile = zone.bz

# Output files which are useful for profiling and debugging.
# ProfileFile = prof.out
# LogFile = log.out`

	ExamplePeaksFile = `[Peaks]

#######################
# Required Parameters #
#######################

A = 4.0498
B = 4.0498
C = 4.0498
Alpha = 90
Beta  = 90
Gamma = 90

# Set exactly one of Wavelength (Angstroms) or Energy.
Wavelength = 1.0
# Energy = 12.398

#######################
# Optional Parameters #
#######################

# A whitespace-separated text file with one reflection (H K L) per line. If
# unset, the allowed FCC reflections out to [6 0 0] are used.
# Reflections = path/to/reflections.txt

# Output = peaks.txt
# ProfileFile = prof.out
# LogFile = log.out`
)

type SharedConfig struct {
	// Required
	A, B, C            float64
	Alpha, Beta, Gamma float64
	Wavelength, Energy float64

	// Optional
	Output, LogFile, ProfileFile string
}

func (con *SharedConfig) ValidA() bool { return validLength(con.A) }
func (con *SharedConfig) ValidB() bool { return validLength(con.B) }
func (con *SharedConfig) ValidC() bool { return validLength(con.C) }

func (con *SharedConfig) ValidAlpha() bool { return validAngle(con.Alpha) }
func (con *SharedConfig) ValidBeta() bool  { return validAngle(con.Beta) }
func (con *SharedConfig) ValidGamma() bool { return validAngle(con.Gamma) }

// ValidRadiation returns true if exactly one of Wavelength and Energy is set
// to a positive value.
func (con *SharedConfig) ValidRadiation() bool {
	return (con.Wavelength > 0) != (con.Energy > 0) &&
		con.Wavelength >= 0 && con.Energy >= 0 &&
		!math.IsInf(con.Wavelength, 0) && !math.IsInf(con.Energy, 0)
}

func (con *SharedConfig) ValidOutput() bool {
	return con.Output != ""
}
func (con *SharedConfig) ValidLogFile() bool {
	return con.LogFile != ""
}
func (con *SharedConfig) ValidProfileFile() bool {
	return con.ProfileFile != ""
}

// Radiation returns the incident beam. It should only be called if
// ValidRadiation is true.
func (con *SharedConfig) Radiation() diffract.Radiation {
	if con.Energy > 0 {
		return diffract.Energy(con.Energy)
	}
	return diffract.Wavelength(con.Wavelength)
}

func (con *SharedConfig) check(section string) error {
	switch {
	case !con.ValidA():
		return fmt.Errorf("[%s] A must be positive, but is %g.", section, con.A)
	case !con.ValidB():
		return fmt.Errorf("[%s] B must be positive, but is %g.", section, con.B)
	case !con.ValidC():
		return fmt.Errorf("[%s] C must be positive, but is %g.", section, con.C)
	case !con.ValidAlpha():
		return fmt.Errorf(
			"[%s] Alpha must be in range (0, 180), but is %g.", section, con.Alpha,
		)
	case !con.ValidBeta():
		return fmt.Errorf(
			"[%s] Beta must be in range (0, 180), but is %g.", section, con.Beta,
		)
	case !con.ValidGamma():
		return fmt.Errorf(
			"[%s] Gamma must be in range (0, 180), but is %g.", section, con.Gamma,
		)
	case !con.ValidRadiation():
		return fmt.Errorf(
			"[%s] Exactly one of Wavelength and Energy must be set to a "+
				"positive value, but Wavelength = %g and Energy = %g.",
			section, con.Wavelength, con.Energy,
		)
	}
	return nil
}

func validLength(x float64) bool { return x > 0 && !math.IsInf(x, 0) }
func validAngle(x float64) bool  { return x > 0 && x < 180 }

type PlanConfig struct {
	SharedConfig

	// Required
	U, V     string
	TwoTheta []float64

	// Optional
	SpaceGroup int
	Centering  string
	W, R       string
	Shell      int

	ThetaCutScript, ThetaCutPlot string
	ZoneSTL, ZoneFile            string
}

type PlanWrapper struct {
	Plan PlanConfig
}

func DefaultPlanWrapper() *PlanWrapper {
	con := PlanConfig{}
	con.W = "1 0 0"
	con.R = "0 0 1"
	con.Shell = 2
	return &PlanWrapper{con}
}

func (con *PlanConfig) ValidU() bool { return validVec(con.U) }
func (con *PlanConfig) ValidV() bool { return validVec(con.V) }
func (con *PlanConfig) ValidW() bool { return validVec(con.W) }
func (con *PlanConfig) ValidR() bool { return validVec(con.R) }

func (con *PlanConfig) ValidTwoTheta() bool {
	if len(con.TwoTheta) == 0 {
		return false
	}
	for _, tt := range con.TwoTheta {
		if !(tt > 0 && tt < 180) {
			return false
		}
	}
	return true
}

func (con *PlanConfig) ValidSpaceGroup() bool {
	return con.SpaceGroup >= 1 && con.SpaceGroup <= 230
}

func (con *PlanConfig) ValidCentering() bool {
	_, err := centering.ParseSymbol(con.Centering)
	return err == nil
}

func (con *PlanConfig) ValidShell() bool {
	return con.Shell > 0
}

func (con *PlanConfig) ValidThetaCutScript() bool {
	return con.ThetaCutScript != ""
}
func (con *PlanConfig) ValidThetaCutPlot() bool {
	return con.ThetaCutPlot != ""
}
func (con *PlanConfig) ValidZoneSTL() bool {
	return con.ZoneSTL != ""
}
func (con *PlanConfig) ValidZoneFile() bool {
	return con.ZoneFile != ""
}

// CheckInit returns an error describing the first invalid parameter in con.
// Optional parameters are only checked if they have been set.
func (con *PlanConfig) CheckInit() error {
	if err := con.check("Plan"); err != nil {
		return err
	}

	vecs := []struct {
		name, val string
	}{{"U", con.U}, {"V", con.V}, {"W", con.W}, {"R", con.R}}
	for _, v := range vecs {
		if !validVec(v.val) {
			return fmt.Errorf(
				"[Plan] %s must be three numbers, like '1 0 0', but is '%s'.",
				v.name, v.val,
			)
		}
	}

	switch {
	case !con.ValidTwoTheta():
		return fmt.Errorf(
			"[Plan] TwoTheta must be set at least once and every value must " +
				"be in range (0, 180).",
		)
	case con.SpaceGroup != 0 && !con.ValidSpaceGroup():
		return fmt.Errorf(
			"[Plan] SpaceGroup must be in range [1, 230], but is %d.",
			con.SpaceGroup,
		)
	case con.Centering != "" && !con.ValidCentering():
		return fmt.Errorf(
			"[Plan] Centering must be one of [ %s ], but is '%s'.",
			strings.Join(symbolNames(), " | "), con.Centering,
		)
	case con.SpaceGroup != 0 && con.Centering != "":
		return fmt.Errorf("[Plan] Only one of SpaceGroup and Centering may be set.")
	case !con.ValidShell():
		return fmt.Errorf("[Plan] Shell must be positive, but is %d.", con.Shell)
	}

	return nil
}

// Request converts con into a request for xtal.Plan. CheckInit must have
// succeeded first.
func (con *PlanConfig) Request() (xtal.Request, error) {
	req := xtal.Request{
		A: con.A, B: con.B, C: con.C,
		Alpha: con.Alpha, Beta: con.Beta, Gamma: con.Gamma,
		SpaceGroup: con.SpaceGroup,
		Centering:  centering.Symbol(strings.TrimSpace(con.Centering)),
		Radiation:  con.Radiation(),
		TwoTheta:   append([]float64{}, con.TwoTheta...),
		Shell:      con.Shell,
	}

	dst := []*geom.Vec{&req.U, &req.V, &req.W, &req.R}
	src := []string{con.U, con.V, con.W, con.R}
	for i := range dst {
		v, err := ParseVec(src[i])
		if err != nil {
			return xtal.Request{}, err
		}
		*dst[i] = v
	}

	return req, nil
}

type PeaksConfig struct {
	SharedConfig

	// Optional
	Reflections string
}

type PeaksWrapper struct {
	Peaks PeaksConfig
}

func DefaultPeaksWrapper() *PeaksWrapper {
	return &PeaksWrapper{PeaksConfig{}}
}

func (con *PeaksConfig) ValidReflections() bool {
	return con.Reflections != ""
}

func (con *PeaksConfig) CheckInit() error {
	return con.check("Peaks")
}

// ReadPlanConfig reads a [Plan] config file and checks it.
func ReadPlanConfig(fname string) (*PlanConfig, error) {
	wrap := DefaultPlanWrapper()
	if err := gcfg.ReadFileInto(wrap, fname); err != nil {
		return nil, err
	}
	if err := wrap.Plan.CheckInit(); err != nil {
		return nil, err
	}
	return &wrap.Plan, nil
}

// ReadPeaksConfig reads a [Peaks] config file and checks it.
func ReadPeaksConfig(fname string) (*PeaksConfig, error) {
	wrap := DefaultPeaksWrapper()
	if err := gcfg.ReadFileInto(wrap, fname); err != nil {
		return nil, err
	}
	if err := wrap.Peaks.CheckInit(); err != nil {
		return nil, err
	}
	return &wrap.Peaks, nil
}

func symbolNames() []string {
	names := make([]string, len(centering.Symbols))
	for i, sym := range centering.Symbols {
		names[i] = string(sym)
	}
	return names
}
