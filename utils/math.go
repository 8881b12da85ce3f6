// Package utils contains small numeric and concurrency helpers shared across packages.
package utils

import (
	"math"

	"gonum.org/v1/gonum/floats/scalar"
)

// Square is faster than math.Pow(n, 2).
func Square(n float64) float64 {
	return n * n
}

// Float64AlmostEqual reports whether a and b are within tol of each other.
func Float64AlmostEqual(a, b, tol float64) bool {
	return scalar.EqualWithinAbs(a, b, tol)
}

// IsFinite is false for NaN and both infinities.
func IsFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
