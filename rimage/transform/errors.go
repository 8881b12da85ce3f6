package transform

import "github.com/pkg/errors"

var (
	// ErrDegenerateCamera is returned when a camera's parameters are singular for the queried
	// pixel. Retrying will not help; the calibration itself is bad.
	ErrDegenerateCamera = errors.New("degenerate camera model")

	// ErrConvergence is returned when the radial distortion root find does not converge.
	ErrConvergence = errors.New("camera model did not converge")

	// ErrUnsupportedVariant is returned for an unknown frustum display variant.
	ErrUnsupportedVariant = errors.New("unsupported frustum variant")

	// ErrUnsupportedCameraModel is returned by camera models for operations they do not implement.
	ErrUnsupportedCameraModel = errors.New("unsupported camera model")
)

// NewDegenerateCameraError wraps ErrDegenerateCamera with the reason.
func NewDegenerateCameraError(format string, args ...interface{}) error {
	return errors.Wrapf(ErrDegenerateCamera, format, args...)
}

// NewConvergenceError wraps ErrConvergence with the reason.
func NewConvergenceError(format string, args ...interface{}) error {
	return errors.Wrapf(ErrConvergence, format, args...)
}
