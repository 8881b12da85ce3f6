package cli

import (
	"strconv"
	"strings"

	"github.com/golang/geo/r2"
	"github.com/golang/geo/r3"
	"github.com/montanaflynn/stats"
	"github.com/pkg/errors"
	"github.com/samber/lo"
	"github.com/urfave/cli/v2"

	"go.viam.com/cahvore/rimage/transform"
	"go.viam.com/cahvore/spatialmath"
)

type projectedPixelJSON struct {
	Sample    float64    `json:"sample"`
	Line      float64    `json:"line"`
	Origin    *r3.Vector `json:"origin,omitempty"`
	Direction *r3.Vector `json:"direction,omitempty"`
	Error     string     `json:"error,omitempty"`
}

// ProjectAction prints the ray seen by every pixel given as an argument.
func ProjectAction(c *cli.Context) error {
	ac, err := newAppContext(c)
	if err != nil {
		return err
	}
	model, _, err := ac.model(c.String(generalFlagCamera))
	if err != nil {
		return err
	}
	pixels, err := parsePixels(c.Args().Slice())
	if err != nil {
		return err
	}
	results, err := transform.ProjectPixels(c.Context, model, pixels, ac.logger)
	if err != nil {
		return err
	}
	return printJSON(c, lo.Map(results, func(r transform.ProjectedPixel, _ int) projectedPixelJSON {
		out := projectedPixelJSON{Sample: r.Pixel.X, Line: r.Pixel.Y}
		if r.Err != nil {
			out.Error = r.Err.Error()
			return out
		}
		out.Origin = &r.Ray.Origin
		out.Direction = &r.Ray.Direction
		return out
	}))
}

type triangulationJSON struct {
	Point        r3.Vector `json:"point"`
	Residuals    []float64 `json:"residuals"`
	MeanResidual float64   `json:"mean_residual"`
	MaxResidual  float64   `json:"max_residual"`
}

// TriangulateAction prints the point closest to the rays of CAMERA:SAMPLE,LINE observations.
func TriangulateAction(c *cli.Context) error {
	ac, err := newAppContext(c)
	if err != nil {
		return err
	}
	rays := make([]spatialmath.Ray, 0, c.Args().Len())
	for _, arg := range c.Args().Slice() {
		name, pixel, ok := strings.Cut(arg, ":")
		if !ok {
			return errors.Errorf("expected CAMERA:SAMPLE,LINE, got %q", arg)
		}
		px, err := parsePixel(pixel)
		if err != nil {
			return err
		}
		model, _, err := ac.model(name)
		if err != nil {
			return err
		}
		ray, err := model.ProjectRay(px)
		if err != nil {
			return errors.Wrapf(err, "camera %q", name)
		}
		rays = append(rays, ray)
	}
	point, residuals, err := spatialmath.TriangulateRays(rays)
	if err != nil {
		return err
	}
	mean, err := stats.Mean(residuals)
	if err != nil {
		return err
	}
	maxResidual, err := stats.Max(residuals)
	if err != nil {
		return err
	}
	ac.logger.Debugw("triangulated", "point", point, "rays", len(rays), "mean_residual", mean)
	return printJSON(c, triangulationJSON{
		Point:        point,
		Residuals:    residuals,
		MeanResidual: mean,
		MaxResidual:  maxResidual,
	})
}

func parsePixels(args []string) ([]r2.Point, error) {
	if len(args) == 0 {
		return nil, errors.New("no pixels given")
	}
	pixels := make([]r2.Point, 0, len(args))
	for _, arg := range args {
		px, err := parsePixel(arg)
		if err != nil {
			return nil, err
		}
		pixels = append(pixels, px)
	}
	return pixels, nil
}

func parsePixel(s string) (r2.Point, error) {
	sample, line, ok := strings.Cut(s, ",")
	if !ok {
		return r2.Point{}, errors.Errorf("expected SAMPLE,LINE, got %q", s)
	}
	x, err := strconv.ParseFloat(strings.TrimSpace(sample), 64)
	if err != nil {
		return r2.Point{}, errors.Wrapf(err, "bad sample in %q", s)
	}
	y, err := strconv.ParseFloat(strings.TrimSpace(line), 64)
	if err != nil {
		return r2.Point{}, errors.Wrapf(err, "bad line in %q", s)
	}
	return r2.Point{X: x, Y: y}, nil
}
