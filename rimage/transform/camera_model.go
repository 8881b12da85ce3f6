// Package transform holds the camera models that map image pixels to rays in world space.
package transform

import (
	"image"

	"github.com/golang/geo/r2"
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"

	"go.viam.com/cahvore/spatialmath"
)

// CameraModelType is the name of a camera model.
type CameraModelType string

// CAHVOREModelType is the Center, Axis, Horizontal, Vertical, Optical axis, Radial
// distortion, Entrance pupil model.
const CAHVOREModelType = CameraModelType("cahvore")

// CameraModel maps image pixels (X = sample, Y = line) to rays in world space.
type CameraModel interface {
	ModelType() CameraModelType
	// Center is the nominal camera center.
	Center() r3.Vector
	// Axis is the camera pointing axis.
	Axis() r3.Vector
	ProjectRay(px r2.Point) (spatialmath.Ray, error)
	// ForwardVector is the ray through px, normally the image center. It is the same
	// computation as ProjectRay under a name that states intent.
	ForwardVector(px r2.Point) (spatialmath.Ray, error)
	// FrustumMesh approximates the field of view for display. The returned group may be
	// shared between callers and must not be modified.
	FrustumMesh(size image.Point, variant FrustumVariant) (*MeshGroup, error)
}

// UnimplementedCameraModel can be embedded by camera models that only support part of
// CameraModel. Every error returning operation fails with ErrUnsupportedCameraModel; Center
// and Axis return the zero vector.
type UnimplementedCameraModel struct{}

// ModelType returns an empty type.
func (UnimplementedCameraModel) ModelType() CameraModelType {
	return ""
}

// Center returns the zero vector.
func (UnimplementedCameraModel) Center() r3.Vector {
	return r3.Vector{}
}

// Axis returns the zero vector.
func (UnimplementedCameraModel) Axis() r3.Vector {
	return r3.Vector{}
}

// ProjectRay is not implemented.
func (UnimplementedCameraModel) ProjectRay(r2.Point) (spatialmath.Ray, error) {
	return spatialmath.Ray{}, errors.Wrap(ErrUnsupportedCameraModel, "ProjectRay not implemented")
}

// ForwardVector is not implemented.
func (UnimplementedCameraModel) ForwardVector(r2.Point) (spatialmath.Ray, error) {
	return spatialmath.Ray{}, errors.Wrap(ErrUnsupportedCameraModel, "ForwardVector not implemented")
}

// FrustumMesh is not implemented.
func (UnimplementedCameraModel) FrustumMesh(image.Point, FrustumVariant) (*MeshGroup, error) {
	return nil, errors.Wrap(ErrUnsupportedCameraModel, "FrustumMesh not implemented")
}

// NewCameraModel returns a CameraModel given a model type and its parameters.
func NewCameraModel(modelType CameraModelType, parameters interface{}) (CameraModel, error) {
	switch modelType {
	case CAHVOREModelType:
		switch p := parameters.(type) {
		case CAHVOREParameters:
			return NewCAHVORE(p)
		case *CAHVOREParameters:
			if p == nil {
				return nil, errors.New("CAHVORE parameters not provided")
			}
			return NewCAHVORE(*p)
		default:
			return nil, errors.Errorf("expected CAHVORE parameters, got %T", parameters)
		}
	default:
		return nil, errors.Wrapf(ErrUnsupportedCameraModel, "do not know how to build %q camera model", modelType)
	}
}
