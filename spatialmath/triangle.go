package spatialmath

import (
	"github.com/golang/geo/r3"
)

// Triangle is three points with a cached unit normal following the right hand rule on p0, p1, p2.
type Triangle struct {
	p0 r3.Vector
	p1 r3.Vector
	p2 r3.Vector

	normal r3.Vector
}

// NewTriangle builds a Triangle.
func NewTriangle(p0, p1, p2 r3.Vector) *Triangle {
	return &Triangle{
		p0:     p0,
		p1:     p1,
		p2:     p2,
		normal: PlaneNormal(p0, p1, p2),
	}
}

// Points returns the three corners in order.
func (t *Triangle) Points() []r3.Vector {
	return []r3.Vector{t.p0, t.p1, t.p2}
}

// Normal returns the unit normal, or the zero vector for a degenerate triangle.
func (t *Triangle) Normal() r3.Vector {
	return t.normal
}

// Area returns the triangle's area.
func (t *Triangle) Area() float64 {
	return t.p1.Sub(t.p0).Cross(t.p2.Sub(t.p0)).Norm() / 2
}

// PlaneNormal returns the unit normal of the plane through p0, p1, p2, or the zero vector
// when the points are collinear.
func PlaneNormal(p0, p1, p2 r3.Vector) r3.Vector {
	return faceNormal(p0, p1, p2).Normalize()
}

// faceNormal is the unnormalized (p2 - p1) x (p0 - p1), whose length is twice the area.
func faceNormal(p0, p1, p2 r3.Vector) r3.Vector {
	return p2.Sub(p1).Cross(p0.Sub(p1))
}
