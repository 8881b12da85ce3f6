package transform

import (
	"context"
	"testing"

	"github.com/golang/geo/r2"
	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"go.viam.com/test"

	"go.viam.com/cahvore/logging"
)

func TestProjectPixels(t *testing.T) {
	logger, logs := logging.NewObservedTestLogger(t)
	p := pinholeParams()
	p.Linearity = -0.5
	cam := newTestCAHVORE(t, p)

	pixels := []r2.Point{{X: 500, Y: 500}, {X: 600, Y: 500}, {X: 3500, Y: 500}, {X: 500, Y: 400}}
	results, err := ProjectPixels(context.Background(), cam, pixels, logger)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, results, test.ShouldHaveLength, len(pixels))

	for i, r := range results {
		test.That(t, r.Pixel, test.ShouldResemble, pixels[i])
		expected, expectedErr := cam.ProjectRay(pixels[i])
		test.That(t, r.Ray, test.ShouldResemble, expected)
		test.That(t, r.Err == nil, test.ShouldEqual, expectedErr == nil)
	}
	test.That(t, errors.Is(results[2].Err, ErrDegenerateCamera), test.ShouldBeTrue)

	combined := PixelErrors(results)
	test.That(t, combined, test.ShouldNotBeNil)
	test.That(t, multierr.Errors(combined), test.ShouldHaveLength, 1)
	test.That(t, combined.Error(), test.ShouldContainSubstring, "pixel (3500, 500)")
	test.That(t, errors.Is(combined, ErrDegenerateCamera), test.ShouldBeTrue)

	test.That(t, logs.FilterMessage("skipping pixel").Len(), test.ShouldEqual, 1)
	warnings := logs.FilterMessage("some pixels could not be projected").All()
	test.That(t, warnings, test.ShouldHaveLength, 1)
	test.That(t, warnings[0].ContextMap()["failed"], test.ShouldEqual, int64(1))
}

func TestProjectPixelsAllGood(t *testing.T) {
	logger, logs := logging.NewObservedTestLogger(t)
	cam := newTestCAHVORE(t, distortedParams())

	pixels := make([]r2.Point, 0, 100)
	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			pixels = append(pixels, r2.Point{X: float64(x) * 100, Y: float64(y) * 100})
		}
	}
	results, err := ProjectPixels(context.Background(), cam, pixels, logger)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, PixelErrors(results), test.ShouldBeNil)
	test.That(t, logs.Len(), test.ShouldEqual, 0)

	results, err = ProjectPixels(context.Background(), cam, nil, logger)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, results, test.ShouldBeEmpty)
}

func TestProjectPixelsCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	cam := newTestCAHVORE(t, pinholeParams())
	_, err := ProjectPixels(ctx, cam, []r2.Point{{X: 1, Y: 2}, {X: 3, Y: 4}}, logging.NewTestLogger(t))
	test.That(t, errors.Is(err, context.Canceled), test.ShouldBeTrue)
}
