package io

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/phil-mansfield/xtal"
	"github.com/phil-mansfield/xtal/diffract"
)

// WriteSummary writes a human-readable description of a plan to w.
func WriteSummary(w io.Writer, req *xtal.Request, res *xtal.Result) error {
	b := &strings.Builder{}

	fmt.Fprintf(b, "# Lattice\n%s\n\n", res.Lattice)
	fmt.Fprintf(b, "# Reciprocal lattice\n%s\n\n", res.Reciprocal)
	fmt.Fprintf(b, "# Centering: %s\n", res.Centering)
	fmt.Fprintf(b, "# Angle between %s and %s: %.3f degrees\n\n",
		vecString(req.U), vecString(req.V), res.Angle)

	fmt.Fprintln(b, "# Lattice vectors (Angstroms)")
	for _, v := range res.LatticeVectors {
		fmt.Fprintf(b, "%10.5f %10.5f %10.5f\n", v[0], v[1], v[2])
	}
	fmt.Fprintln(b, "# Reciprocal lattice vectors (1/Angstroms)")
	for _, v := range res.ReciprocalVectors {
		fmt.Fprintf(b, "%10.5f %10.5f %10.5f\n", v[0], v[1], v[2])
	}

	fmt.Fprintf(b, "\n# Brillouin zone: %d vertices, %d edges, volume %.5g\n",
		len(res.Vertices), len(res.Edges), res.Volume)
	for _, v := range res.Vertices {
		fmt.Fprintf(b, "%10.5f %10.5f %10.5f\n", v[0], v[1], v[2])
	}

	if res.ThetaCut != nil {
		fmt.Fprintf(b, "\n# %s: x = %s, y = %s\n",
			res.ThetaCut.Title, res.ThetaCut.XLabel, res.ThetaCut.YLabel)
		for _, tr := range res.ThetaCut.Traces {
			fmt.Fprintf(b, "# %s: %d points\n", tr.Name, len(tr.X))
			for i := range tr.X {
				fmt.Fprintf(b, "%10.5f %10.5f\n", tr.X[i], tr.Y[i])
			}
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// WritePeaks writes a peak table to w.
func WritePeaks(w io.Writer, lambda float64, peaks []diffract.Peak) error {
	b := &strings.Builder{}

	fmt.Fprintf(b, "# Wavelength %.2f Angstroms (%.2f meV neutrons)\n",
		lambda, math.Pow(diffract.NeutronEnergy/lambda, 2))
	fmt.Fprintf(b, "# %4s %4s %4s %10s %10s %10s %12s %12s\n",
		"H", "K", "L", "Q(1/A)", "d(A)", "2theta", "2theta(l/2)", "2theta(l/3)")
	for _, p := range peaks {
		fmt.Fprintf(b, "  %4g %4g %4g %10.3f %10.3f %10.2f %12.2f %12.2f\n",
			p.HKL[0], p.HKL[1], p.HKL[2], p.Q, p.D,
			p.TwoTheta[0], p.TwoTheta[1], p.TwoTheta[2])
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func vecString(v [3]float64) string {
	return fmt.Sprintf("[%g %g %g]", v[0], v[1], v[2])
}
