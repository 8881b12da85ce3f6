package spatialmath

import (
	"math"
	"testing"

	"github.com/golang/geo/r3"
	"go.viam.com/test"
)

func TestNewSubdividedBox(t *testing.T) {
	m, err := NewSubdividedBox(r3.Vector{X: 1, Y: 1, Z: 1}, 8, 8, 1)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, m.CheckValid(), test.ShouldBeNil)
	// two 9x9 caps and four 9x2 sides
	test.That(t, len(m.Positions), test.ShouldEqual, 2*81+4*18)
	test.That(t, m.NumTriangles(), test.ShouldEqual, 2*128+4*16)

	for _, p := range m.Positions {
		test.That(t, math.Abs(p.X), test.ShouldBeLessThanOrEqualTo, 0.5)
		test.That(t, math.Abs(p.Y), test.ShouldBeLessThanOrEqualTo, 0.5)
		test.That(t, math.Abs(p.Z), test.ShouldAlmostEqual, 0.5)
	}

	// every face winds outward
	for _, tri := range m.Triangles() {
		pts := tri.Points()
		centroid := pts[0].Add(pts[1]).Add(pts[2]).Mul(1. / 3)
		test.That(t, tri.Normal().Dot(centroid), test.ShouldBeGreaterThan, 0)
		test.That(t, tri.Area(), test.ShouldBeGreaterThan, 0)
	}
}

func TestNewSubdividedBoxErrors(t *testing.T) {
	_, err := NewSubdividedBox(r3.Vector{X: -1, Y: 1, Z: 1}, 1, 1, 1)
	test.That(t, err, test.ShouldNotBeNil)
	_, err = NewSubdividedBox(r3.Vector{X: 1, Y: 1, Z: 1}, 0, 1, 1)
	test.That(t, err, test.ShouldNotBeNil)
}
