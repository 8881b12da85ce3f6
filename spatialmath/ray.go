package spatialmath

import (
	"math"

	"github.com/golang/geo/r3"
)

// Ray is a half line. Direction is a point to aim at from Origin and is not necessarily unit length.
type Ray struct {
	Origin    r3.Vector `json:"origin"`
	Direction r3.Vector `json:"direction"`
}

// NewRay returns a ray from origin along direction.
func NewRay(origin, direction r3.Vector) Ray {
	return Ray{Origin: origin, Direction: direction}
}

// At returns the point reached after travelling distance along the normalized direction.
func (r Ray) At(distance float64) r3.Vector {
	return r.Origin.Add(Normalize(r.Direction).Mul(distance))
}

// IntersectPlane returns where the ray meets the plane through planePt with normal planeNormal.
// It reports false when the ray is parallel to the plane or the plane lies behind the origin.
func (r Ray) IntersectPlane(planePt, planeNormal r3.Vector) (r3.Vector, bool) {
	t, ok := r.planeParameter(planePt, planeNormal)
	if !ok || t < 0 {
		return r3.Vector{}, false
	}
	return r.Origin.Add(r.Direction.Mul(t)), true
}

// IntersectPlaneLine is IntersectPlane for the infinite line carrying the ray, so a plane
// behind the origin is still hit. It reports false only when the line is parallel to the plane.
func (r Ray) IntersectPlaneLine(planePt, planeNormal r3.Vector) (r3.Vector, bool) {
	t, ok := r.planeParameter(planePt, planeNormal)
	if !ok {
		return r3.Vector{}, false
	}
	return r.Origin.Add(r.Direction.Mul(t)), true
}

func (r Ray) planeParameter(planePt, planeNormal r3.Vector) (float64, bool) {
	denom := planeNormal.Dot(r.Direction)
	if math.Abs(denom) < floatEpsilon*floatEpsilon {
		return 0, false
	}
	return planeNormal.Dot(planePt.Sub(r.Origin)) / denom, true
}

// DistanceToPoint returns the perpendicular distance from pt to the infinite line carrying the ray.
func (r Ray) DistanceToPoint(pt r3.Vector) float64 {
	dir := Normalize(r.Direction)
	return pt.Sub(r.Origin).Cross(dir).Norm()
}
