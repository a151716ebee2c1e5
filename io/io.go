/*package io handles the files that the xtal driver reads and writes: config
files, reflection lists, plan summaries, theta cut plots and Brillouin zone
meshes.
*/
package io

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/phil-mansfield/table"

	"github.com/phil-mansfield/xtal/geom"
)

// ParseVec parses three whitespace-separated numbers, e.g. "1 0 0". Commas
// and surrounding brackets are also accepted: "[1, 0, 0]".
func ParseVec(s string) (geom.Vec, error) {
	clean := strings.Trim(strings.TrimSpace(s), "[]()")
	fields := strings.Fields(strings.Replace(clean, ",", " ", -1))
	if len(fields) != 3 {
		return geom.Vec{}, fmt.Errorf(
			"'%s' must contain exactly three numbers, but has %d.", s, len(fields),
		)
	}

	v := geom.Vec{}
	for i, f := range fields {
		x, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return geom.Vec{}, fmt.Errorf("Could not parse '%s': %s", s, err.Error())
		}
		v[i] = x
	}
	return v, nil
}

func validVec(s string) bool {
	_, err := ParseVec(s)
	return err == nil
}

// ReadReflections reads Miller indices from the first three columns of a
// text file.
func ReadReflections(fname string) ([]geom.Vec, error) {
	cols, err := table.ReadTable(fname, []int{0, 1, 2}, nil)
	if err != nil {
		return nil, err
	}

	hs, ks, ls := cols[0], cols[1], cols[2]
	hkls := make([]geom.Vec, len(hs))
	for i := range hkls {
		hkls[i] = geom.Vec{hs[i], ks[i], ls[i]}
	}

	if len(hkls) == 0 {
		return nil, fmt.Errorf("Reflection file %s is empty.", fname)
	}
	return hkls, nil
}
