package transform

import (
	"encoding/json"
	"image"
	"strings"
	"sync"

	"github.com/golang/geo/r2"
	"github.com/golang/geo/r3"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/pkg/errors"

	"go.viam.com/cahvore/spatialmath"
)

// FrustumVariant selects which calibration solution a frustum is drawn for.
type FrustumVariant int

const (
	// FrustumInitial is the pre-adjustment camera solution.
	FrustumInitial FrustumVariant = iota
	// FrustumFinal is the post-adjustment camera solution.
	FrustumFinal
)

func (v FrustumVariant) String() string {
	switch v {
	case FrustumInitial:
		return "initial"
	case FrustumFinal:
		return "final"
	}
	return "unknown"
}

// MarshalJSON encodes the variant by name.
func (v FrustumVariant) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.String())
}

// ParseFrustumVariant parses "initial" or "final", case insensitively.
func ParseFrustumVariant(s string) (FrustumVariant, error) {
	switch strings.ToLower(s) {
	case "initial":
		return FrustumInitial, nil
	case "final":
		return FrustumFinal, nil
	}
	return 0, errors.Wrapf(ErrUnsupportedVariant, "%q", s)
}

// Material is how a frustum is drawn.
type Material struct {
	Name    string
	Color   colorful.Color
	Opacity float64
}

// MarshalJSON encodes the color as a hex string.
func (m Material) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Name    string  `json:"name"`
		Color   string  `json:"color"`
		Opacity float64 `json:"opacity"`
	}{m.Name, m.Color.Hex(), m.Opacity})
}

var (
	initialMaterial = Material{Name: "initial", Color: colorful.Color{R: 1, G: 0.55, B: 0}, Opacity: 0.25}
	finalMaterial   = Material{Name: "final", Color: colorful.Color{R: 0, G: 0.75, B: 1}, Opacity: 0.25}
)

func (v FrustumVariant) material() (Material, error) {
	switch v {
	case FrustumInitial:
		return initialMaterial, nil
	case FrustumFinal:
		return finalMaterial, nil
	}
	return Material{}, errors.Wrapf(ErrUnsupportedVariant, "variant %d", int(v))
}

// FrustumOptions controls frustum mesh construction.
type FrustumOptions struct {
	// Grid resolution of the near and far caps.
	WidthSegments  int `json:"width_segments"`
	HeightSegments int `json:"height_segments"`
	// Distances along each pixel ray at which the near and far caps are placed.
	Near float64 `json:"near"`
	Far  float64 `json:"far"`
	// PlanarProjectionFactor blends every vertex from its position along the distorted ray
	// (0) to where that ray meets the plane orthogonal to the camera axis (1).
	PlanarProjectionFactor float64 `json:"planar_projection_factor"`
}

// DefaultFrustumOptions returns an 8x8 grid between 0.01 and 4 with no planar blending.
func DefaultFrustumOptions() FrustumOptions {
	return FrustumOptions{
		WidthSegments:  8,
		HeightSegments: 8,
		Near:           0.01,
		Far:            4.0,
	}
}

// CheckValid checks if the fields for FrustumOptions have valid inputs.
func (o *FrustumOptions) CheckValid() error {
	if o.WidthSegments < 1 || o.HeightSegments < 1 {
		return errors.Errorf("frustum segments must be positive, got %dx%d", o.WidthSegments, o.HeightSegments)
	}
	if o.Near <= 0 || o.Far <= o.Near {
		return errors.Errorf("frustum distances must satisfy 0 < near < far, got near=%g far=%g", o.Near, o.Far)
	}
	if o.PlanarProjectionFactor < 0 || o.PlanarProjectionFactor > 1 {
		return errors.Errorf("planar projection factor must be within [0, 1], got %g", o.PlanarProjectionFactor)
	}
	return nil
}

// MeshGroup is a frustum mesh with its wireframe overlay and material.
type MeshGroup struct {
	Variant   FrustumVariant        `json:"variant"`
	Mesh      *spatialmath.Mesh     `json:"mesh"`
	Wireframe []spatialmath.Segment `json:"-"`
	Material  Material              `json:"material"`
}

// MarshalJSON encodes the wireframe as flat xyz pairs alongside the mesh.
func (g *MeshGroup) MarshalJSON() ([]byte, error) {
	type plain MeshGroup
	wire := make([]float64, 0, 6*len(g.Wireframe))
	for _, s := range g.Wireframe {
		wire = append(wire, s.Start.X, s.Start.Y, s.Start.Z, s.End.X, s.End.Y, s.End.Z)
	}
	return json.Marshal(struct {
		*plain
		Wireframe []float64 `json:"wireframe"`
	}{(*plain)(g), wire})
}

// buildFrustum deforms a unit box spanning [0, 1] in X and Y into the camera's field of
// view. Each vertex's X and Y pick a pixel; the -Z cap is pushed out along that pixel's ray
// to opts.Near and the +Z cap to opts.Far.
func buildFrustum(
	model CameraModel,
	params CAHVOREParameters,
	opts FrustumOptions,
	size image.Point,
	variant FrustumVariant,
	material Material,
) (*MeshGroup, error) {
	mesh, err := spatialmath.NewSubdividedBox(r3.Vector{X: 1, Y: 1, Z: 1}, opts.WidthSegments, opts.HeightSegments, 1)
	if err != nil {
		return nil, err
	}
	mesh.Translate(r3.Vector{X: 0.5, Y: 0.5})

	if params.A.Norm() == 0 {
		return nil, NewDegenerateCameraError("camera axis is zero")
	}
	axis := spatialmath.Normalize(params.A)

	for i, p := range mesh.Positions {
		px := r2.Point{X: p.X * float64(size.X), Y: p.Y * float64(size.Y)}
		ray, err := model.ProjectRay(px)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to build %s frustum", variant)
		}
		distance := opts.Far
		if p.Z < 0 {
			distance = opts.Near
		}
		deformed := ray.At(distance)
		// The pupil shift can move the ray origin past the near plane, so intersect the
		// carrying line rather than the half line.
		planar, ok := ray.IntersectPlaneLine(params.C.Add(axis.Mul(distance)), axis)
		if !ok {
			planar = deformed
		}
		mesh.Positions[i] = spatialmath.Lerp(deformed, planar, opts.PlanarProjectionFactor)
	}
	mesh.ComputeVertexNormals()

	return &MeshGroup{
		Variant:   variant,
		Mesh:      mesh,
		Wireframe: spatialmath.SharpEdges(mesh, spatialmath.DefaultSharpEdgeAngle),
		Material:  material,
	}, nil
}

type frustumKey struct {
	size    image.Point
	variant FrustumVariant
}

type frustumEntry struct {
	once  sync.Once
	group *MeshGroup
	err   error
}

// frustumCache builds each key at most once, even under concurrent first access.
type frustumCache struct {
	mu      sync.Mutex
	entries map[frustumKey]*frustumEntry
}

func (fc *frustumCache) get(key frustumKey, build func() (*MeshGroup, error)) (*MeshGroup, error) {
	fc.mu.Lock()
	if fc.entries == nil {
		fc.entries = map[frustumKey]*frustumEntry{}
	}
	entry, ok := fc.entries[key]
	if !ok {
		entry = &frustumEntry{}
		fc.entries[key] = entry
	}
	fc.mu.Unlock()

	entry.once.Do(func() {
		entry.group, entry.err = build()
	})
	return entry.group, entry.err
}
