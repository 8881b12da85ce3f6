package spatialmath

import (
	"testing"

	"github.com/golang/geo/r3"
	"go.viam.com/test"
)

func TestRayAt(t *testing.T) {
	r := NewRay(r3.Vector{X: 1}, r3.Vector{Z: 10})
	test.That(t, R3VectorAlmostEqual(r.At(4), r3.Vector{X: 1, Z: 4}, 1e-12), test.ShouldBeTrue)
}

func TestRayIntersectPlane(t *testing.T) {
	r := NewRay(r3.Vector{}, r3.Vector{X: 1, Y: 0, Z: 1})
	pt, ok := r.IntersectPlane(r3.Vector{Z: 2}, r3.Vector{Z: 1})
	test.That(t, ok, test.ShouldBeTrue)
	test.That(t, R3VectorAlmostEqual(pt, r3.Vector{X: 2, Z: 2}, 1e-12), test.ShouldBeTrue)

	// plane behind the origin
	_, ok = r.IntersectPlane(r3.Vector{Z: -2}, r3.Vector{Z: 1})
	test.That(t, ok, test.ShouldBeFalse)

	// parallel
	_, ok = NewRay(r3.Vector{}, r3.Vector{X: 1}).IntersectPlane(r3.Vector{Z: 2}, r3.Vector{Z: 1})
	test.That(t, ok, test.ShouldBeFalse)
}

func TestRayIntersectPlaneLine(t *testing.T) {
	r := NewRay(r3.Vector{Z: 1}, r3.Vector{X: 1, Y: 0, Z: 1})
	pt, ok := r.IntersectPlaneLine(r3.Vector{Z: 3}, r3.Vector{Z: 1})
	test.That(t, ok, test.ShouldBeTrue)
	test.That(t, R3VectorAlmostEqual(pt, r3.Vector{X: 2, Z: 3}, 1e-12), test.ShouldBeTrue)

	// a plane behind the origin is reached by walking back along the line
	pt, ok = r.IntersectPlaneLine(r3.Vector{Z: 0.5}, r3.Vector{Z: 1})
	test.That(t, ok, test.ShouldBeTrue)
	test.That(t, R3VectorAlmostEqual(pt, r3.Vector{X: -0.5, Z: 0.5}, 1e-12), test.ShouldBeTrue)
	_, ok = r.IntersectPlane(r3.Vector{Z: 0.5}, r3.Vector{Z: 1})
	test.That(t, ok, test.ShouldBeFalse)

	_, ok = NewRay(r3.Vector{}, r3.Vector{X: 1}).IntersectPlaneLine(r3.Vector{Z: 2}, r3.Vector{Z: 1})
	test.That(t, ok, test.ShouldBeFalse)
}

func TestRayDistanceToPoint(t *testing.T) {
	r := NewRay(r3.Vector{}, r3.Vector{Z: 3})
	test.That(t, r.DistanceToPoint(r3.Vector{X: 3, Y: 4, Z: 7}), test.ShouldAlmostEqual, 5)
	test.That(t, r.DistanceToPoint(r3.Vector{Z: -7}), test.ShouldAlmostEqual, 0)
}
