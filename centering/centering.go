/*package centering maps space groups to Bravais centering types and applies
the corresponding change of basis to reciprocal lattice bases.

Applying a centering to the reciprocal basis of a conventional cell gives the
reciprocal basis of the primitive cell, which is what the Brillouin zone is
built from.
*/
package centering

import (
	"fmt"
	"strings"

	"github.com/phil-mansfield/xtal/geom"
)

// Symbol is a Bravais centering type. Fc and Ic are the face- and
// body-centered cubic variants of F and I.
type Symbol string

const (
	P  Symbol = "P"
	A  Symbol = "A"
	C  Symbol = "C"
	F  Symbol = "F"
	I  Symbol = "I"
	R  Symbol = "R"
	Fc Symbol = "Fc"
	Ic Symbol = "Ic"
)

// Symbols lists every supported centering.
var Symbols = []Symbol{P, A, C, F, I, R, Fc, Ic}

// SpaceGroupError is returned for space group numbers outside [1, 230].
type SpaceGroupError struct {
	Number int
}

func (e *SpaceGroupError) Error() string {
	return fmt.Sprintf("centering: space group %d is not in [1, 230]", e.Number)
}

// SymbolError is returned for unknown centering symbols.
type SymbolError struct {
	Symbol string
}

func (e *SymbolError) Error() string {
	return fmt.Sprintf("centering: unknown centering symbol '%s'", e.Symbol)
}

// ParseSymbol converts a string to a Symbol. Matching is exact for the cubic
// variants ("Fc", "Ic") and case-insensitive for single letters.
func ParseSymbol(s string) (Symbol, error) {
	s = strings.TrimSpace(s)
	for _, sym := range Symbols {
		if string(sym) == s {
			return sym, nil
		}
	}
	if len(s) == 1 {
		up := Symbol(strings.ToUpper(s))
		if _, ok := transforms[up]; ok {
			return up, nil
		}
	}
	return "", &SymbolError{s}
}

// Cubic returns true for the cubic variants Fc and Ic.
func (s Symbol) Cubic() bool { return s == Fc || s == Ic }

// For returns the centering of the given space group.
func For(spaceGroup int) (Symbol, error) {
	if spaceGroup < 1 || spaceGroup > 230 {
		return "", &SpaceGroupError{spaceGroup}
	}
	return spaceGroups[spaceGroup], nil
}

// Transform returns the matrix which maps conventional reciprocal basis
// vectors (as rows) to primitive reciprocal basis vectors.
func Transform(s Symbol) ([3][3]float64, error) {
	m, ok := transforms[s]
	if !ok {
		return [3][3]float64{}, &SymbolError{string(s)}
	}
	return m, nil
}

// PrimitiveDirect returns the matrix whose rows are the primitive direct
// lattice vectors in units of the conventional cell vectors.
func PrimitiveDirect(s Symbol) ([3][3]float64, error) {
	m, ok := primitives[s]
	if !ok {
		return [3][3]float64{}, &SymbolError{string(s)}
	}
	return m, nil
}

// Apply returns Transform(s) x basis, where the rows of basis are the
// reciprocal basis vectors of the conventional cell. P returns basis
// unchanged.
func Apply(s Symbol, basis [3]geom.Vec) ([3]geom.Vec, error) {
	if s == P {
		return basis, nil
	}
	m, err := Transform(s)
	if err != nil {
		return basis, err
	}
	return geom.MulRows(m, basis), nil
}
