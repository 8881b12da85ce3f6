package spatialmath

import (
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
)

// boxFaces lists, per face, the axes spanned by the face grid (u, v), the axis it is
// offset along (w), the grid direction signs and which dimension sign places it.
var boxFaces = [6]struct {
	u, v, w    int
	uDir, vDir float64
	wSign      float64
}{
	{2, 1, 0, -1, -1, 1},  // +X
	{2, 1, 0, 1, -1, -1},  // -X
	{0, 2, 1, 1, 1, 1},    // +Y
	{0, 2, 1, 1, -1, -1},  // -Y
	{0, 1, 2, 1, -1, 1},   // +Z
	{0, 1, 2, -1, -1, -1}, // -Z
}

// NewSubdividedBox builds an axis aligned box mesh centered on the origin. Each face is a
// grid whose resolution along X, Y and Z is given by the segment counts. Faces do not
// share vertices, so every vertex carries its face's normal.
func NewSubdividedBox(dims r3.Vector, widthSegments, heightSegments, depthSegments int) (*Mesh, error) {
	if dims.X < 0 || dims.Y < 0 || dims.Z < 0 {
		return nil, errors.Errorf("box dimensions must be non-negative, got %v", dims)
	}
	if widthSegments < 1 || heightSegments < 1 || depthSegments < 1 {
		return nil, errors.Errorf("box segment counts must be positive, got (%d, %d, %d)",
			widthSegments, heightSegments, depthSegments)
	}
	segments := [3]int{widthSegments, heightSegments, depthSegments}
	size := [3]float64{dims.X, dims.Y, dims.Z}

	m := &Mesh{}
	for _, f := range boxFaces {
		gridX, gridY := segments[f.u], segments[f.v]
		width, height := size[f.u], size[f.v]
		depthHalf := f.wSign * size[f.w] / 2
		segW, segH := width/float64(gridX), height/float64(gridY)

		var normal r3.Vector
		setComponent(&normal, f.w, f.wSign)

		base := len(m.Positions)
		for iy := 0; iy <= gridY; iy++ {
			y := float64(iy)*segH - height/2
			for ix := 0; ix <= gridX; ix++ {
				x := float64(ix)*segW - width/2
				var p r3.Vector
				setComponent(&p, f.u, x*f.uDir)
				setComponent(&p, f.v, y*f.vDir)
				setComponent(&p, f.w, depthHalf)
				m.Positions = append(m.Positions, p)
				m.Normals = append(m.Normals, normal)
			}
		}
		row := gridX + 1
		for iy := 0; iy < gridY; iy++ {
			for ix := 0; ix < gridX; ix++ {
				a := base + ix + row*iy
				b := base + ix + row*(iy+1)
				c := base + (ix + 1) + row*(iy+1)
				d := base + (ix + 1) + row*iy
				m.Indices = append(m.Indices, a, b, d, b, c, d)
			}
		}
	}
	return m, nil
}
