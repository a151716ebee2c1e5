package lattice

import (
	"fmt"

	"github.com/phil-mansfield/xtal/geom"
)

// InvalidLatticeError is returned when cell parameters do not describe a
// physical unit cell. Param names the offending parameter ("a", "alpha", ...)
// or is "cell" when the parameters are individually valid but the cell has
// no volume.
type InvalidLatticeError struct {
	Param  string
	Value  float64
	Reason string
}

func (e *InvalidLatticeError) Error() string {
	if e.Param == "cell" {
		return "lattice: invalid cell: " + e.Reason
	}
	return fmt.Sprintf("lattice: invalid %s = %g: %s", e.Param, e.Value, e.Reason)
}

// DegenerateLatticeError is returned when a set of basis vectors spans zero
// (or negative) volume.
type DegenerateLatticeError struct {
	Volume float64
}

func (e *DegenerateLatticeError) Error() string {
	return fmt.Sprintf("lattice: degenerate basis with volume %g", e.Volume)
}

// DegenerateVectorError is returned when the squared magnitude of a vector
// under a metric tensor is negative, which means the tensor is inconsistent.
type DegenerateVectorError struct {
	V           geom.Vec
	SquaredNorm float64
}

func (e *DegenerateVectorError) Error() string {
	return fmt.Sprintf(
		"lattice: vector %v has negative squared magnitude %g", e.V, e.SquaredNorm,
	)
}

// ParallelOrZeroVectorError is returned when an angle is requested between
// vectors where at least one has zero magnitude.
type ParallelOrZeroVectorError struct {
	V1, V2 geom.Vec
}

func (e *ParallelOrZeroVectorError) Error() string {
	return fmt.Sprintf("lattice: no angle between %v and %v: zero magnitude", e.V1, e.V2)
}
