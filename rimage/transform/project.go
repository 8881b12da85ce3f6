package transform

import (
	"context"

	"github.com/golang/geo/r2"
	"github.com/pkg/errors"
	"go.uber.org/atomic"
	"go.uber.org/multierr"

	"go.viam.com/cahvore/logging"
	"go.viam.com/cahvore/spatialmath"
	"go.viam.com/cahvore/utils"
)

// ProjectedPixel is the outcome of projecting one pixel. Err is set when the pixel could not
// be projected, in which case Ray is the zero value.
type ProjectedPixel struct {
	Pixel r2.Point
	Ray   spatialmath.Ray
	Err   error
}

// ProjectPixels projects every pixel through model concurrently and returns the results in
// input order. A pixel that fails to project is recorded and logged but does not stop the
// others; only context cancellation fails the whole call.
func ProjectPixels(
	ctx context.Context,
	model CameraModel,
	pixels []r2.Point,
	logger logging.Logger,
) ([]ProjectedPixel, error) {
	results := make([]ProjectedPixel, len(pixels))
	failed := atomic.NewInt64(0)

	err := utils.GroupWorkParallel(ctx, len(pixels), func(ctx context.Context, groupNum, from, to int) error {
		for i := from; i < to; i++ {
			if err := ctx.Err(); err != nil {
				return err
			}
			ray, err := model.ProjectRay(pixels[i])
			results[i] = ProjectedPixel{Pixel: pixels[i], Ray: ray, Err: err}
			if err != nil {
				failed.Inc()
				logger.Debugw("skipping pixel", "sample", pixels[i].X, "line", pixels[i].Y, "error", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if n := failed.Load(); n > 0 {
		logger.Warnw("some pixels could not be projected", "failed", n, "total", len(pixels))
	}
	return results, nil
}

// PixelErrors combines the failures in results into one error, or nil when every pixel projected.
func PixelErrors(results []ProjectedPixel) error {
	var errs error
	for _, r := range results {
		if r.Err != nil {
			errs = multierr.Append(errs, errors.Wrapf(r.Err, "pixel (%g, %g)", r.Pixel.X, r.Pixel.Y))
		}
	}
	return errs
}
