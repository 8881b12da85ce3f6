// Package cli contains the cahvore command line tool.
package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	"go.viam.com/cahvore/config"
	"go.viam.com/cahvore/logging"
	"go.viam.com/cahvore/rimage/transform"
)

const (
	generalFlagConfig  = "config"
	generalFlagDebug   = "debug"
	generalFlagCamera  = "camera"
	generalFlagVariant = "variant"
)

var cameraFlags = []cli.Flag{
	&cli.StringFlag{
		Name:     generalFlagCamera,
		Usage:    "name of the camera in the config",
		Required: true,
	},
	&cli.StringFlag{
		Name:  generalFlagVariant,
		Usage: "calibration solution to use: initial or final",
		Value: transform.FrustumFinal.String(),
	},
}

// NewApp returns the cahvore app writing results to out and diagnostics to errOut.
func NewApp(out, errOut io.Writer) *cli.App {
	return &cli.App{
		Name:            "cahvore",
		Usage:           "project pixels and draw frustums for CAHVORE calibrated cameras",
		HideHelpCommand: true,
		Writer:          out,
		ErrWriter:       errOut,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    generalFlagConfig,
				Aliases: []string{"c"},
				Usage:   "load cameras from `FILE`",
			},
			&cli.BoolFlag{
				Name:    generalFlagDebug,
				Aliases: []string{"vvv"},
				Usage:   "enable debug logging",
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "cameras",
				Usage:  "list the cameras in the config",
				Action: CamerasAction,
			},
			{
				Name:   "schema",
				Usage:  "print the JSON schema of the config file",
				Action: SchemaAction,
			},
			{
				Name:      "project",
				Usage:     "project pixels into rays",
				ArgsUsage: "SAMPLE,LINE...",
				Flags:     cameraFlags,
				Action:    ProjectAction,
			},
			{
				Name:   "frustum",
				Usage:  "print a camera's frustum mesh as JSON",
				Flags:  cameraFlags,
				Action: FrustumAction,
			},
			{
				Name:      "triangulate",
				Usage:     "intersect the rays of matching pixels seen by several cameras",
				ArgsUsage: "CAMERA:SAMPLE,LINE...",
				Flags:     cameraFlags[1:],
				Action:    TriangulateAction,
			},
		},
	}
}

// appContext holds what every command needs once the global flags are read.
type appContext struct {
	cfg     *config.Config
	logger  logging.Logger
	variant transform.FrustumVariant
}

func newAppContext(c *cli.Context) (*appContext, error) {
	logger := logging.NewLogger("cahvore")
	if c.Bool(generalFlagDebug) {
		logger = logging.NewDebugLogger("cahvore")
	}
	if !c.IsSet(generalFlagConfig) {
		return nil, errors.Errorf("--%s is required", generalFlagConfig)
	}
	cfg, err := config.Read(c.String(generalFlagConfig), logger)
	if err != nil {
		return nil, err
	}
	ac := &appContext{cfg: cfg, logger: logger, variant: transform.FrustumFinal}
	if name := c.String(generalFlagVariant); name != "" {
		if ac.variant, err = transform.ParseFrustumVariant(name); err != nil {
			return nil, err
		}
	}
	return ac, nil
}

// CamerasAction prints a table of the configured cameras.
func CamerasAction(c *cli.Context) error {
	ac, err := newAppContext(c)
	if err != nil {
		return err
	}
	printf(c.App.Writer, "%s", ac.cfg.String())
	return nil
}

// SchemaAction prints the JSON schema of the config file.
func SchemaAction(c *cli.Context) error {
	return printJSON(c, config.Schema())
}

func (ac *appContext) model(name string) (*transform.CAHVORE, *config.CameraConfig, error) {
	cam, err := ac.cfg.FindCamera(name)
	if err != nil {
		return nil, nil, err
	}
	model, err := cam.Model(ac.variant, ac.cfg.Frustum.Options())
	if err != nil {
		return nil, nil, err
	}
	ac.logger.Debugw("loaded camera", "camera", name, "variant", ac.variant, "frame", cam.Frame)
	return model, cam, nil
}

// printf prints a message with a newline.
func printf(w io.Writer, format string, a ...interface{}) {
	//nolint:errcheck
	fmt.Fprintf(w, format+"\n", a...)
}

func printJSON(c *cli.Context, v interface{}) error {
	enc := json.NewEncoder(c.App.Writer)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
