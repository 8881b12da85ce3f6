// Package referenceframe converts raw camera and track positions into the coordinate frame
// the camera models work in.
package referenceframe

import (
	"math"
	"strings"

	"github.com/golang/geo/r3"

	"go.viam.com/cahvore/spatialmath"
)

// SiteFrameName identifies the rover site frame, which is rotated 90 degrees about X
// relative to the display frame.
const SiteFrameName = "SITE_FRAME"

// CoordinateFrame is a named, stateless transform applied once to raw positions.
type CoordinateFrame interface {
	Name() string
	Convert(v r3.Vector) r3.Vector
}

// NewCoordinateFrame returns the frame registered under name. Frame names come from input
// file metadata and are advisory, so an unknown name resolves to the identity frame.
func NewCoordinateFrame(name string) CoordinateFrame {
	if strings.EqualFold(name, SiteFrameName) {
		return NewSiteFrame()
	}
	return NewIdentityFrame(name)
}

// NewSiteFrame returns the site frame.
func NewSiteFrame() CoordinateFrame {
	return NewRotationFrame(SiteFrameName, &spatialmath.R4AA{Theta: math.Pi / 2, RX: 1})
}

type identityFrame struct {
	name string
}

// NewIdentityFrame returns a frame that leaves vectors unchanged.
func NewIdentityFrame(name string) CoordinateFrame {
	return &identityFrame{name: name}
}

func (f *identityFrame) Name() string {
	return f.name
}

func (f *identityFrame) Convert(v r3.Vector) r3.Vector {
	return v
}

type rotationFrame struct {
	name     string
	rotation spatialmath.R4AA
}

// NewRotationFrame returns a frame that rotates vectors by a fixed axis angle.
// The axis must have non-zero length.
func NewRotationFrame(name string, rotation *spatialmath.R4AA) CoordinateFrame {
	r := *rotation
	r.Normalize()
	return &rotationFrame{name: name, rotation: r}
}

func (f *rotationFrame) Name() string {
	return f.name
}

func (f *rotationFrame) Convert(v r3.Vector) r3.Vector {
	// ToQuat normalizes in place; work on a copy so concurrent converts never write shared state.
	r := f.rotation
	return r.Rotate(v)
}
