package diffract

import (
	"fmt"
	"math"

	"github.com/phil-mansfield/xtal/geom"
	"github.com/phil-mansfield/xtal/lattice"
)

const (
	// ThetaStep is the spacing of the sample angle grid of a theta cut.
	ThetaStep = 5.0
	// MinTwoTheta is the largest scattering angle with an empty theta cut.
	MinTwoTheta = 2 * ThetaStep
)

// Point is one sample of a theta cut, in units of |u| and |v|.
type Point struct {
	Theta, X, Y float64
}

// Trace is the path traced out in the scattering plane by sweeping the
// sample angle at a fixed scattering angle. A Trace holds only its inputs:
// Points recomputes the path on every call.
type Trace struct {
	TwoTheta float64
	lambda   float64
	frame    *Frame
}

// Name returns the legend label of the trace.
func (t Trace) Name() string {
	return fmt.Sprintf("2θ = %g", t.TwoTheta)
}

// Thetas returns the sample angles of the trace: ThetaStep, 2*ThetaStep, ...
// up to and including TwoTheta - ThetaStep. If TwoTheta <= MinTwoTheta the
// grid is empty.
func (t Trace) Thetas() []float64 {
	return thetaGrid(t.TwoTheta)
}

func thetaGrid(twoTheta float64) []float64 {
	if !(twoTheta > MinTwoTheta) {
		return nil
	}
	n := int(math.Floor((twoTheta-ThetaStep)/ThetaStep + 1e-9))
	out := make([]float64, n)
	for i := range out {
		out[i] = ThetaStep * float64(i+1)
	}
	return out
}

// Len returns the number of points in the trace.
func (t Trace) Len() int { return len(t.Thetas()) }

// Points computes the points of the trace. The projections of Q onto the
// frame are divided by |u| and |v| so that the coordinates are in
// reciprocal lattice units along u and v.
func (t Trace) Points() []Point {
	thetas := t.Thetas()
	out := make([]Point, len(thetas))
	for i, th := range thetas {
		q := t.frame.At(t.lambda, t.TwoTheta, th)
		recip := t.frame.recip
		out[i] = Point{
			Theta: th,
			X:     lattice.Scalar(q.Vec, t.frame.X, recip) / t.frame.ModU,
			Y:     lattice.Scalar(q.Vec, t.frame.Y, recip) / t.frame.ModV,
		}
	}
	return out
}

// XY returns the coordinates of Points as two slices.
func (t Trace) XY() (xs, ys []float64) {
	ps := t.Points()
	xs, ys = make([]float64, len(ps)), make([]float64, len(ps))
	for i := range ps {
		xs[i], ys[i] = ps[i].X, ps[i].Y
	}
	return xs, ys
}

// ThetaCut returns one trace per scattering angle in twoThetas for a crystal
// with direct lattice l and scattering plane spanned by u and v.
func ThetaCut(
	u, v geom.Vec, l lattice.Lattice, r Radiation, twoThetas []float64,
) ([]Trace, error) {
	lambda, err := r.Lambda()
	if err != nil {
		return nil, err
	}
	frame, err := NewFrame(lattice.Reciprocal(l), u, v)
	if err != nil {
		return nil, err
	}

	traces := make([]Trace, len(twoThetas))
	for i, tt := range twoThetas {
		if math.IsNaN(tt) || math.IsInf(tt, 0) {
			return nil, fmt.Errorf("diffract: two-theta %g is not finite", tt)
		}
		traces[i] = Trace{TwoTheta: tt, lambda: lambda, frame: frame}
	}
	return traces, nil
}

// NamedTrace is a trace which has been evaluated for plotting.
type NamedTrace struct {
	Name string
	X, Y []float64
}

// ThetaCutPlot is a set of theta cuts with the labels and ranges needed to
// draw them.
type ThetaCutPlot struct {
	Title          string
	XLabel, YLabel string
	XRange, YRange [2]float64
	Traces         []NamedTrace
}

// NewThetaCutPlot evaluates the theta cuts of ThetaCut and labels them.
func NewThetaCutPlot(
	u, v geom.Vec, l lattice.Lattice, r Radiation, twoThetas []float64,
) (*ThetaCutPlot, error) {
	traces, err := ThetaCut(u, v, l, r, twoThetas)
	if err != nil {
		return nil, err
	}

	plot := &ThetaCutPlot{
		Title:  "Theta Cuts for Lattice",
		XLabel: AxisLabel(u),
		YLabel: AxisLabel(v),
		XRange: [2]float64{-0.35, 0.35},
		YRange: [2]float64{0, 0.25},
		Traces: make([]NamedTrace, len(traces)),
	}
	for i, t := range traces {
		xs, ys := t.XY()
		plot.Traces[i] = NamedTrace{Name: t.Name(), X: xs, Y: ys}
	}
	return plot, nil
}

// AxisLabel labels a plot axis which runs along the reciprocal lattice
// vector v, e.g. "[1 0 0] (r.l.u.)".
func AxisLabel(v geom.Vec) string {
	return fmt.Sprintf("[%g %g %g] (r.l.u.)", v[0], v[1], v[2])
}
