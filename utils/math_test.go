package utils

import (
	"math"
	"testing"

	"go.viam.com/test"
)

func TestFloatHelpers(t *testing.T) {
	test.That(t, Square(-3), test.ShouldEqual, 9.)
	test.That(t, Float64AlmostEqual(1, 1+1e-12, 1e-9), test.ShouldBeTrue)
	test.That(t, Float64AlmostEqual(1, 1.1, 1e-9), test.ShouldBeFalse)
	test.That(t, IsFinite(1), test.ShouldBeTrue)
	test.That(t, IsFinite(math.NaN()), test.ShouldBeFalse)
	test.That(t, IsFinite(math.Inf(-1)), test.ShouldBeFalse)
}
