// Package config defines the camera calibration file read by the cahvore tool.
package config

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/invopop/jsonschema"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/pkg/errors"
	"github.com/samber/lo"
	"github.com/yosuke-furukawa/json5/encoding/json5"
	"go.uber.org/multierr"
	"go.viam.com/utils"

	"go.viam.com/cahvore/logging"
	"go.viam.com/cahvore/rimage/transform"
)

// Config describes a set of calibrated cameras and how their frustums are drawn.
type Config struct {
	Cameras []CameraConfig `json:"cameras"`
	Frustum FrustumConfig  `json:"frustum"`
}

// Validate ensures all parts of the config are valid. Every camera is checked and all
// failures are reported together.
func (cfg *Config) Validate(path string) error {
	var errs error
	seen := make(map[string]bool, len(cfg.Cameras))
	for idx := range cfg.Cameras {
		camPath := fmt.Sprintf("%s.%d", joinPath(path, "cameras"), idx)
		cam := &cfg.Cameras[idx]
		if err := cam.Validate(camPath); err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		if seen[cam.Name] {
			errs = multierr.Append(errs, utils.NewConfigValidationError(camPath, errors.Errorf("camera name %q is not unique", cam.Name)))
		}
		seen[cam.Name] = true
	}
	return multierr.Append(errs, cfg.Frustum.Validate(joinPath(path, "frustum")))
}

// FindCamera returns the camera with the given name.
func (cfg *Config) FindCamera(name string) (*CameraConfig, error) {
	cam, ok := lo.Find(cfg.Cameras, func(c CameraConfig) bool { return c.Name == name })
	if !ok {
		return nil, errors.Errorf("no camera named %q, have %v", name, cfg.CameraNames())
	}
	return &cam, nil
}

// CameraNames returns the names of every configured camera in file order.
func (cfg *Config) CameraNames() []string {
	return lo.Map(cfg.Cameras, func(c CameraConfig, _ int) string { return c.Name })
}

// String prints out a table of each camera, with columns of name, frame, image size and
// the calibration solutions present.
func (cfg *Config) String() string {
	t := table.NewWriter()
	t.AppendHeader(table.Row{"#", "Name", "Frame", "Image", "Solutions"})
	for i, cam := range cfg.Cameras {
		frame := cam.Frame
		if frame == "" {
			frame = "-"
		}
		solutions := lo.Compact([]string{
			lo.Ternary(cam.Initial != nil, transform.FrustumInitial.String(), ""),
			lo.Ternary(cam.Final != nil, transform.FrustumFinal.String(), ""),
		})
		t.AppendRow(table.Row{
			i + 1,
			cam.Name,
			frame,
			fmt.Sprintf("%dx%d", cam.ImageWidth, cam.ImageHeight),
			strings.Join(solutions, ", "),
		})
	}
	return t.Render()
}

// Schema returns the JSON schema of the config file.
func Schema() *jsonschema.Schema {
	return jsonschema.Reflect(&Config{})
}

// FrustumConfig overrides the default frustum options. Zero fields keep their default.
type FrustumConfig struct {
	WidthSegments          int     `json:"width_segments,omitempty"`
	HeightSegments         int     `json:"height_segments,omitempty"`
	Near                   float64 `json:"near,omitempty"`
	Far                    float64 `json:"far,omitempty"`
	PlanarProjectionFactor float64 `json:"planar_projection_factor,omitempty"`
}

// Validate ensures all parts of the config are valid.
func (cfg *FrustumConfig) Validate(path string) error {
	opts := cfg.Options()
	if err := opts.CheckValid(); err != nil {
		return utils.NewConfigValidationError(path, err)
	}
	return nil
}

// Options returns the frustum options with defaults filled in.
func (cfg *FrustumConfig) Options() transform.FrustumOptions {
	opts := transform.DefaultFrustumOptions()
	if cfg.WidthSegments != 0 {
		opts.WidthSegments = cfg.WidthSegments
	}
	if cfg.HeightSegments != 0 {
		opts.HeightSegments = cfg.HeightSegments
	}
	if cfg.Near != 0 {
		opts.Near = cfg.Near
	}
	if cfg.Far != 0 {
		opts.Far = cfg.Far
	}
	opts.PlanarProjectionFactor = cfg.PlanarProjectionFactor
	return opts
}

// FromReader reads and validates a config from the given reader. The config is JSON5, so
// comments and trailing commas are allowed.
func FromReader(r io.Reader) (*Config, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read Config")
	}
	var cfg Config
	if err := json5.Unmarshal(data, &cfg); err != nil {
		return nil, errors.Wrap(err, "failed to decode Config from json")
	}
	if err := cfg.Validate(""); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Read reads and validates the config file at filePath.
func Read(filePath string, logger logging.Logger) (*Config, error) {
	//nolint:gosec
	f, err := os.Open(filePath)
	if err != nil {
		return nil, err
	}
	defer utils.UncheckedErrorFunc(f.Close)

	cfg, err := FromReader(f)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read config %q", filePath)
	}
	logger.Debugw("loaded cameras", "path", filePath, "cameras", cfg.CameraNames())
	return cfg, nil
}

func joinPath(path, field string) string {
	if path == "" {
		return field
	}
	return path + "." + field
}
