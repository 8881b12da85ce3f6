package cli

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/golang/geo/r3"
	"go.viam.com/test"

	"go.viam.com/cahvore/spatialmath"
)

const testConfig = "../config/data/cameras.json"

func run(t *testing.T, args ...string) (*bytes.Buffer, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	err := NewApp(&out, &errOut).Run(append([]string{"cahvore"}, args...))
	return &out, err
}

func TestProjectAction(t *testing.T) {
	out, err := run(t, "--config", testConfig, "project", "--camera", "NAVCAM_LEFT", "--variant", "initial",
		"500,500", "600, 500")
	test.That(t, err, test.ShouldBeNil)

	var results []projectedPixelJSON
	test.That(t, json.Unmarshal(out.Bytes(), &results), test.ShouldBeNil)
	test.That(t, results, test.ShouldHaveLength, 2)
	test.That(t, results[0].Sample, test.ShouldEqual, 500.0)
	test.That(t, results[0].Error, test.ShouldBeEmpty)
	// the site frame looks down -Y
	test.That(t, spatialmath.R3VectorAlmostEqual(*results[0].Direction, r3.Vector{Y: -1}, 1e-9), test.ShouldBeTrue)
	test.That(t, results[1].Sample, test.ShouldEqual, 600.0)
	test.That(t, results[1].Direction.X, test.ShouldBeGreaterThan, 0)

	_, err = run(t, "--config", testConfig, "project", "--camera", "NAVCAM_LEFT", "500")
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "SAMPLE,LINE")

	_, err = run(t, "--config", testConfig, "project", "--camera", "NAVCAM_LEFT")
	test.That(t, err, test.ShouldNotBeNil)

	_, err = run(t, "--config", testConfig, "project", "--camera", "MASTCAM", "1,1")
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "no camera named")

	_, err = run(t, "--config", testConfig, "project", "--camera", "NAVCAM_LEFT", "--variant", "adjusted", "1,1")
	test.That(t, err, test.ShouldNotBeNil)

	_, err = run(t, "project", "--camera", "NAVCAM_LEFT", "1,1")
	test.That(t, err, test.ShouldNotBeNil)
}

func TestFrustumAction(t *testing.T) {
	out, err := run(t, "--config", testConfig, "frustum", "--camera", "HAZCAM_FRONT", "--variant", "initial")
	test.That(t, err, test.ShouldBeNil)

	var group struct {
		Variant string `json:"variant"`
		Mesh    struct {
			Positions []float64 `json:"positions"`
		} `json:"mesh"`
	}
	test.That(t, json.Unmarshal(out.Bytes(), &group), test.ShouldBeNil)
	test.That(t, group.Variant, test.ShouldEqual, "initial")
	// 4x4 caps with one depth segment
	test.That(t, group.Mesh.Positions, test.ShouldHaveLength, 3*(2*25+4*10))

	_, err = run(t, "--config", testConfig, "frustum", "--camera", "HAZCAM_FRONT")
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "no final solution")
}

func TestTriangulateAction(t *testing.T) {
	out, err := run(t, "--config", testConfig, "triangulate", "--variant", "initial",
		"NAVCAM_LEFT:500,500", "HAZCAM_FRONT:512,384")
	test.That(t, err, test.ShouldBeNil)

	var result triangulationJSON
	test.That(t, json.Unmarshal(out.Bytes(), &result), test.ShouldBeNil)
	test.That(t, spatialmath.R3VectorAlmostEqual(result.Point, r3.Vector{}, 1e-9), test.ShouldBeTrue)
	test.That(t, result.Residuals, test.ShouldHaveLength, 2)
	test.That(t, result.MaxResidual, test.ShouldBeLessThan, 1e-9)
	test.That(t, result.MeanResidual, test.ShouldBeLessThanOrEqualTo, result.MaxResidual)

	_, err = run(t, "--config", testConfig, "triangulate", "--variant", "initial", "NAVCAM_LEFT:500,500")
	test.That(t, err, test.ShouldNotBeNil)

	_, err = run(t, "--config", testConfig, "triangulate", "500,500", "1,1")
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "CAMERA:SAMPLE,LINE")
}

func TestCamerasAction(t *testing.T) {
	out, err := run(t, "--config", testConfig, "cameras")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, out.String(), test.ShouldContainSubstring, "NAVCAM_LEFT")
	test.That(t, out.String(), test.ShouldContainSubstring, "SITE_FRAME")
	test.That(t, out.String(), test.ShouldContainSubstring, "1024x768")
	test.That(t, out.String(), test.ShouldContainSubstring, "initial, final")

	_, err = run(t, "cameras")
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "--config is required")
}

func TestSchemaAction(t *testing.T) {
	out, err := run(t, "schema")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, out.String(), test.ShouldContainSubstring, "image_width_px")
	test.That(t, out.String(), test.ShouldContainSubstring, "planar_projection_factor")
}
