// Package spatialmath defines the vector, rotation, ray and mesh primitives used by the camera models.
//
// Vectors are github.com/golang/geo/r3 values. Dot, Cross, Add, Sub, Mul (scale) and Norm
// (length) are the r3.Vector methods; this package adds what r3 lacks.
package spatialmath

import (
	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/num/quat"

	"go.viam.com/cahvore/utils"
)

const floatEpsilon = 1e-6

// Normalize returns v scaled to unit length. v must have a non-zero length.
func Normalize(v r3.Vector) r3.Vector {
	return v.Mul(1 / v.Norm())
}

// Lerp linearly interpolates from a (t = 0) to b (t = 1).
func Lerp(a, b r3.Vector, t float64) r3.Vector {
	return a.Add(b.Sub(a).Mul(t))
}

// ApplyQuaternion rotates v by the unit quaternion q.
func ApplyQuaternion(v r3.Vector, q quat.Number) r3.Vector {
	p := quat.Number{Imag: v.X, Jmag: v.Y, Kmag: v.Z}
	r := quat.Mul(quat.Mul(q, p), quat.Conj(q))
	return r3.Vector{X: r.Imag, Y: r.Jmag, Z: r.Kmag}
}

// ApplyAxisAngle rotates v by theta radians about axis, right handed.
// axis must have a non-zero length.
func ApplyAxisAngle(v, axis r3.Vector, theta float64) r3.Vector {
	aa := &R4AA{Theta: theta, RX: axis.X, RY: axis.Y, RZ: axis.Z}
	return ApplyQuaternion(v, aa.ToQuat())
}

// R3VectorAlmostEqual compares two r3.Vector objects and returns if all the elementwise differences are within epsilon.
func R3VectorAlmostEqual(a, b r3.Vector, epsilon float64) bool {
	return utils.Float64AlmostEqual(a.X, b.X, epsilon) &&
		utils.Float64AlmostEqual(a.Y, b.Y, epsilon) &&
		utils.Float64AlmostEqual(a.Z, b.Z, epsilon)
}

func setComponent(v *r3.Vector, i int, val float64) {
	switch i {
	case 0:
		v.X = val
	case 1:
		v.Y = val
	default:
		v.Z = val
	}
}
