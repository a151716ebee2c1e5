package io

import (
	"fmt"

	"github.com/deadsy/sdfx/render"
	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/phil-mansfield/xtal/geom"
)

// ZoneMesh converts outward-wound triangles into an sdfx mesh.
func ZoneMesh(tris [][3]geom.Vec) []*sdf.Triangle3 {
	mesh := make([]*sdf.Triangle3, len(tris))
	for i, tri := range tris {
		t := &sdf.Triangle3{}
		for j := range tri {
			t[j] = v3.Vec{X: tri[j][0], Y: tri[j][1], Z: tri[j][2]}
		}
		mesh[i] = t
	}
	return mesh
}

// WriteZoneSTL writes the triangles of a Brillouin zone to an STL file.
func WriteZoneSTL(fname string, tris [][3]geom.Vec) error {
	if len(tris) == 0 {
		return fmt.Errorf("No triangles to write to %s.", fname)
	}
	return render.SaveSTL(fname, ZoneMesh(tris))
}
