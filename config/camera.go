package config

import (
	"image"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"go.viam.com/utils"

	"go.viam.com/cahvore/referenceframe"
	"go.viam.com/cahvore/rimage/transform"
)

// Linearity selectors as they appear in calibration files.
const (
	LinearityPerspective = 1
	LinearityFisheye     = 2
	LinearityGeneral     = 3
)

// Vector is a 3-vector as written in a calibration file.
type Vector struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// R3 returns v as an r3.Vector.
func (v *Vector) R3() r3.Vector {
	if v == nil {
		return r3.Vector{}
	}
	return r3.Vector{X: v.X, Y: v.Y, Z: v.Z}
}

// CAHVOREConfig is one CAHVORE camera solution. R and E may be left out for CAHV and CAHVOR
// solutions; O defaults to A when left out.
type CAHVOREConfig struct {
	C *Vector `json:"C"`
	A *Vector `json:"A"`
	H *Vector `json:"H"`
	V *Vector `json:"V"`
	O *Vector `json:"O,omitempty"`
	R *Vector `json:"R,omitempty"`
	E *Vector `json:"E,omitempty"`

	// T selects the linearity family; P carries the value when T is LinearityGeneral.
	T int     `json:"T,omitempty"`
	P float64 `json:"P,omitempty"`
	// LinearityValue, when set, is used as is and T and P are ignored.
	LinearityValue *float64 `json:"linearity,omitempty"`
}

// Validate ensures all parts of the config are valid.
func (cfg *CAHVOREConfig) Validate(path string) error {
	for _, field := range []struct {
		name string
		v    *Vector
	}{{"C", cfg.C}, {"A", cfg.A}, {"H", cfg.H}, {"V", cfg.V}} {
		if field.v == nil {
			return utils.NewConfigValidationFieldRequiredError(path, field.name)
		}
	}
	if cfg.LinearityValue == nil && cfg.T == 0 {
		return utils.NewConfigValidationFieldRequiredError(path, "T")
	}
	if _, err := cfg.Linearity(); err != nil {
		return utils.NewConfigValidationError(path, err)
	}
	params, err := cfg.Parameters()
	if err != nil {
		return utils.NewConfigValidationError(path, err)
	}
	if err := params.CheckValid(); err != nil {
		return utils.NewConfigValidationError(path, err)
	}
	return nil
}

// Linearity resolves the linearity term from either the explicit value or the T/P selector.
func (cfg *CAHVOREConfig) Linearity() (float64, error) {
	if cfg.LinearityValue != nil {
		return *cfg.LinearityValue, nil
	}
	switch cfg.T {
	case LinearityPerspective:
		return 1, nil
	case LinearityFisheye:
		return 0, nil
	case LinearityGeneral:
		return cfg.P, nil
	default:
		return 0, errors.Errorf("unsupported linearity selector T=%d", cfg.T)
	}
}

// Parameters converts the config into engine parameters.
func (cfg *CAHVOREConfig) Parameters() (transform.CAHVOREParameters, error) {
	linearity, err := cfg.Linearity()
	if err != nil {
		return transform.CAHVOREParameters{}, err
	}
	p := transform.CAHVOREParameters{
		C:         cfg.C.R3(),
		A:         cfg.A.R3(),
		H:         cfg.H.R3(),
		V:         cfg.V.R3(),
		O:         cfg.A.R3(),
		R:         cfg.R.R3(),
		E:         cfg.E.R3(),
		Linearity: linearity,
	}
	if cfg.O != nil {
		p.O = cfg.O.R3()
	}
	return p, nil
}

// CameraConfig describes one camera and its calibration solutions.
type CameraConfig struct {
	Name        string         `json:"name"`
	Frame       string         `json:"frame,omitempty"`
	ImageWidth  int            `json:"image_width_px"`
	ImageHeight int            `json:"image_height_px"`
	Initial     *CAHVOREConfig `json:"initial,omitempty"`
	Final       *CAHVOREConfig `json:"final,omitempty"`
}

// Validate ensures all parts of the config are valid.
func (cfg *CameraConfig) Validate(path string) error {
	if cfg.Name == "" {
		return utils.NewConfigValidationFieldRequiredError(path, "name")
	}
	if cfg.ImageWidth <= 0 {
		return utils.NewConfigValidationFieldRequiredError(path, "image_width_px")
	}
	if cfg.ImageHeight <= 0 {
		return utils.NewConfigValidationFieldRequiredError(path, "image_height_px")
	}
	if cfg.Initial == nil && cfg.Final == nil {
		return utils.NewConfigValidationError(path, errors.New("at least one of initial or final must be set"))
	}
	if cfg.Initial != nil {
		if err := cfg.Initial.Validate(path + ".initial"); err != nil {
			return err
		}
	}
	if cfg.Final != nil {
		if err := cfg.Final.Validate(path + ".final"); err != nil {
			return err
		}
	}
	return nil
}

// ImageSize returns the image dimensions in pixels.
func (cfg *CameraConfig) ImageSize() image.Point {
	return image.Point{X: cfg.ImageWidth, Y: cfg.ImageHeight}
}

// Solution returns the calibration solution for the given variant.
func (cfg *CameraConfig) Solution(variant transform.FrustumVariant) (*CAHVOREConfig, error) {
	var solution *CAHVOREConfig
	switch variant {
	case transform.FrustumInitial:
		solution = cfg.Initial
	case transform.FrustumFinal:
		solution = cfg.Final
	default:
		return nil, errors.Wrapf(transform.ErrUnsupportedVariant, "variant %d", int(variant))
	}
	if solution == nil {
		return nil, errors.Errorf("camera %q has no %s solution", cfg.Name, variant)
	}
	return solution, nil
}

// Model builds the camera engine for the given variant, converted out of the camera's frame.
func (cfg *CameraConfig) Model(variant transform.FrustumVariant, frustum transform.FrustumOptions) (*transform.CAHVORE, error) {
	solution, err := cfg.Solution(variant)
	if err != nil {
		return nil, err
	}
	params, err := solution.Parameters()
	if err != nil {
		return nil, errors.Wrapf(err, "camera %q", cfg.Name)
	}
	return transform.NewCAHVOREInFrame(params, referenceframe.NewCoordinateFrame(cfg.Frame), frustum)
}
