package cli

import (
	"github.com/urfave/cli/v2"
)

// FrustumAction prints the frustum mesh of a camera for its configured image size.
func FrustumAction(c *cli.Context) error {
	ac, err := newAppContext(c)
	if err != nil {
		return err
	}
	model, cam, err := ac.model(c.String(generalFlagCamera))
	if err != nil {
		return err
	}
	group, err := model.FrustumMesh(cam.ImageSize(), ac.variant)
	if err != nil {
		return err
	}
	ac.logger.Debugw("built frustum",
		"camera", cam.Name,
		"vertices", len(group.Mesh.Positions),
		"triangles", group.Mesh.NumTriangles(),
		"edges", len(group.Wireframe))
	return printJSON(c, group)
}
