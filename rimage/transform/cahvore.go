package transform

import (
	"image"
	"math"

	"github.com/golang/geo/r2"
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"

	"go.viam.com/cahvore/referenceframe"
	"go.viam.com/cahvore/spatialmath"
	"go.viam.com/cahvore/utils"
)

const (
	// epsilon bounds the denominators that make the model singular.
	epsilon = 1e-15
	// largeEpsilon is both the small angle cutoff and the Newton step tolerance.
	largeEpsilon = 1e-8
	// maxNewtonIterations caps the radial distortion root find.
	maxNewtonIterations = 100
)

// CAHVOREParameters are the seven model vectors and the linearity term. Linearity 1 is the
// perspective family, 0 the fisheye family, and other values warp between or beyond them.
// R and E hold polynomial coefficients rather than directions.
type CAHVOREParameters struct {
	C         r3.Vector `json:"c"`
	A         r3.Vector `json:"a"`
	H         r3.Vector `json:"h"`
	V         r3.Vector `json:"v"`
	O         r3.Vector `json:"o"`
	R         r3.Vector `json:"r"`
	E         r3.Vector `json:"e"`
	Linearity float64   `json:"linearity"`
}

// CheckValid checks that every parameter is a finite number.
func (p *CAHVOREParameters) CheckValid() error {
	vectors := []struct {
		name string
		v    r3.Vector
	}{{"C", p.C}, {"A", p.A}, {"H", p.H}, {"V", p.V}, {"O", p.O}, {"R", p.R}, {"E", p.E}}
	for _, nv := range vectors {
		if !utils.IsFinite(nv.v.X) || !utils.IsFinite(nv.v.Y) || !utils.IsFinite(nv.v.Z) {
			return errors.Errorf("CAHVORE parameter %s has a non-finite component: %v", nv.name, nv.v)
		}
	}
	if !utils.IsFinite(p.Linearity) {
		return errors.Errorf("CAHVORE linearity is not finite: %v", p.Linearity)
	}
	return nil
}

// Convert returns the parameters with the direction and position vectors expressed in frame.
func (p *CAHVOREParameters) Convert(frame referenceframe.CoordinateFrame) CAHVOREParameters {
	out := *p
	out.C = frame.Convert(p.C)
	out.A = frame.Convert(p.A)
	out.H = frame.Convert(p.H)
	out.V = frame.Convert(p.V)
	out.O = frame.Convert(p.O)
	return out
}

// CAHVORE is the CAHVORE camera model. Its parameters are fixed at construction, so it is
// safe for concurrent use and its frustum cache never needs invalidating.
type CAHVORE struct {
	params  CAHVOREParameters
	frustum FrustumOptions
	cache   frustumCache
}

// NewCAHVORE builds a CAHVORE camera model with the default frustum options.
func NewCAHVORE(params CAHVOREParameters) (*CAHVORE, error) {
	return NewCAHVOREWithFrustumOptions(params, DefaultFrustumOptions())
}

// NewCAHVOREWithFrustumOptions builds a CAHVORE camera model whose frustum meshes use opts.
func NewCAHVOREWithFrustumOptions(params CAHVOREParameters, opts FrustumOptions) (*CAHVORE, error) {
	if err := params.CheckValid(); err != nil {
		return nil, err
	}
	if err := opts.CheckValid(); err != nil {
		return nil, err
	}
	return &CAHVORE{params: params, frustum: opts}, nil
}

// NewCAHVOREInFrame converts params into frame before building the model.
func NewCAHVOREInFrame(
	params CAHVOREParameters,
	frame referenceframe.CoordinateFrame,
	opts FrustumOptions,
) (*CAHVORE, error) {
	return NewCAHVOREWithFrustumOptions(params.Convert(frame), opts)
}

// ModelType returns CAHVOREModelType.
func (c *CAHVORE) ModelType() CameraModelType {
	return CAHVOREModelType
}

// Parameters returns a copy of the model parameters.
func (c *CAHVORE) Parameters() CAHVOREParameters {
	return c.params
}

// FrustumOptions returns the options used to build frustum meshes.
func (c *CAHVORE) FrustumOptions() FrustumOptions {
	return c.frustum
}

// Center returns C.
func (c *CAHVORE) Center() r3.Vector {
	return c.params.C
}

// Axis returns A.
func (c *CAHVORE) Axis() r3.Vector {
	return c.params.A
}

// ForwardVector returns the ray through px.
func (c *CAHVORE) ForwardVector(px r2.Point) (spatialmath.Ray, error) {
	return c.ProjectRay(px)
}

// ProjectRay maps an image pixel to the ray it sees. The returned direction is unit length
// except on the small angle path, where it is O as given.
func (c *CAHVORE) ProjectRay(px r2.Point) (spatialmath.Ray, error) {
	p := &c.params

	// Undistorted ray through the projective plane.
	u := p.V.Sub(p.A.Mul(px.Y))
	v := p.H.Sub(p.A.Mul(px.X))
	w := u.Cross(v)
	avh := p.A.Dot(p.V.Cross(p.H))
	if math.Abs(avh) < epsilon {
		return spatialmath.Ray{}, NewDegenerateCameraError("A.(V x H) = %g is singular at pixel %v", avh, px)
	}
	rp := w.Mul(1 / avh)

	zetap := rp.Dot(p.O)
	if math.Abs(zetap) < epsilon {
		return spatialmath.Ray{}, NewDegenerateCameraError("ray at pixel %v is orthogonal to the optical axis", px)
	}
	lambdap := rp.Sub(p.O.Mul(zetap))
	chip := lambdap.Norm() / zetap

	// Distortion and pupil shift are negligible this close to the axis.
	if chip < largeEpsilon {
		return spatialmath.NewRay(p.C, p.O), nil
	}

	chi, err := solveChi(p.R, chip)
	if err != nil {
		return spatialmath.Ray{}, errors.Wrapf(err, "pixel %v", px)
	}
	theta := incidenceAngle(chi, p.Linearity)
	if math.IsNaN(theta) {
		return spatialmath.Ray{}, NewDegenerateCameraError(
			"linearity %g has no incidence angle for chi %g at pixel %v", p.Linearity, chi, px)
	}

	sinTheta := math.Sin(theta)
	if math.Abs(sinTheta) < epsilon {
		return spatialmath.Ray{}, NewDegenerateCameraError("incidence angle %g at pixel %v has no sine", theta, px)
	}
	theta2 := theta * theta
	shift := (theta/sinTheta - 1) * (p.E.X + p.E.Y*theta2 + p.E.Z*theta2*theta2)

	origin := p.C.Add(p.O.Mul(shift))
	direction := spatialmath.Normalize(lambdap).Mul(sinTheta).Add(p.O.Mul(math.Cos(theta)))
	return spatialmath.NewRay(origin, direction), nil
}

// solveChi finds chi with (1+R.X)*chi + R.Y*chi^3 + R.Z*chi^5 = chip by Newton's method,
// starting from chi = chip. Exceeding the iteration cap is an error rather than a best
// effort answer.
func solveChi(r r3.Vector, chip float64) (float64, error) {
	chi := chip
	dchi := 1.0
	for n := 1; ; n++ {
		if n > maxNewtonIterations {
			return 0, NewConvergenceError("no root for chip %g after %d iterations (last step %g)",
				chip, maxNewtonIterations, dchi)
		}
		chi2 := utils.Square(chi)
		chi3 := chi2 * chi
		chi4 := utils.Square(chi2)
		chi5 := chi4 * chi
		if math.Abs(dchi) < largeEpsilon {
			break
		}
		f := (1+r.X)*chi + r.Y*chi3 + r.Z*chi5 - chip
		df := 1 + r.X + 3*r.Y*chi2 + 5*r.Z*chi4
		dchi = f / df
		if math.IsNaN(dchi) || math.IsInf(dchi, 0) {
			return 0, NewConvergenceError("newton step for chip %g is not finite", chip)
		}
		chi -= dchi
	}
	return chi, nil
}

// incidenceAngle maps chi to the angle between the ray and the optical axis.
func incidenceAngle(chi, linearity float64) float64 {
	switch {
	case linearity < -epsilon:
		return math.Asin(linearity*chi) / linearity
	case linearity > epsilon:
		return math.Atan(linearity*chi) / linearity
	default:
		return chi
	}
}

// FrustumMesh returns the display frustum for an image of the given size. Meshes are built
// once per size and variant and then shared.
func (c *CAHVORE) FrustumMesh(size image.Point, variant FrustumVariant) (*MeshGroup, error) {
	material, err := variant.material()
	if err != nil {
		return nil, err
	}
	if size.X <= 0 || size.Y <= 0 {
		return nil, errors.Errorf("image size must be positive, got %v", size)
	}
	return c.cache.get(frustumKey{size: size, variant: variant}, func() (*MeshGroup, error) {
		return buildFrustum(c, c.params, c.frustum, size, variant, material)
	})
}
