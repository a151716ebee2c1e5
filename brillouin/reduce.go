package brillouin

import (
	"math"
	"sort"

	"github.com/phil-mansfield/xtal/geom"
)

const maxReductionSteps = 1000

// reduceBasis shortens a basis until no basis vector can be made shorter by
// adding integer multiples of the others or a signed sum of the other two.
// Every step is unimodular, so the lattice is unchanged. The result is sorted
// from shortest to longest.
func reduceBasis(basis [3]geom.Vec) [3]geom.Vec {
	b := basis
	for step := 0; step < maxReductionSteps; step++ {
		sortByLength(&b)
		if !reduceStep(&b) {
			break
		}
	}
	sortByLength(&b)
	return b
}

// reduceStep performs one pass of reductions and reports whether any vector
// got shorter.
func reduceStep(b *[3]geom.Vec) bool {
	changed := false
	for j := 0; j < 3; j++ {
		for i := 0; i < 3; i++ {
			if i == j {
				continue
			}
			mu := math.Round(b[j].Dot(b[i]) / b[i].Dot(b[i]))
			if mu == 0 {
				continue
			}
			next := b[j].Sub(b[i].Scale(mu))
			if shorter(next, b[j]) {
				b[j] = next
				changed = true
			}
		}
	}

	for k := 0; k < 3; k++ {
		i, j := (k+1)%3, (k+2)%3
		for _, si := range []float64{+1, -1} {
			for _, sj := range []float64{+1, -1} {
				next := b[k].Add(b[i].Scale(si)).Add(b[j].Scale(sj))
				if shorter(next, b[k]) {
					b[k] = next
					changed = true
				}
			}
		}
	}
	return changed
}

func shorter(v1, v2 geom.Vec) bool {
	return v1.Dot(v1) < v2.Dot(v2)*(1-1e-12)
}

func sortByLength(b *[3]geom.Vec) {
	s := b[:]
	sort.SliceStable(s, func(i, j int) bool { return s[i].Dot(s[i]) < s[j].Dot(s[j]) })
}
