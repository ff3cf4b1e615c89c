// Package config defines the structures to configure a contour extraction run.
package config

import (
	"github.com/pkg/errors"
	"go.viam.com/utils"

	"go.viam.com/contour3d/logging"
	"go.viam.com/contour3d/vision/contour"
)

// A Config describes the configuration of a run: where the capture comes from, how the
// pipeline is tuned and where its artifacts go.
type Config struct {
	Capture  *CaptureConfig       `json:"capture,omitempty"`
	Pipeline contour.Config       `json:"pipeline"`
	Output   contour.OutputConfig `json:"output"`
	LogLevel *logging.Level       `json:"log_level,omitempty"`

	ConfigFilePath string `json:"-"`
}

// Default returns a config with the default pipeline and outputs and no capture.
func Default() *Config {
	return &Config{
		Pipeline: contour.DefaultConfig(),
		Output:   contour.DefaultOutputConfig(),
	}
}

// Ensure ensures all parts of the config are valid.
func (c *Config) Ensure() error {
	if c.Capture != nil {
		if err := c.Capture.Validate("capture"); err != nil {
			return err
		}
	}
	if err := c.Pipeline.Validate("pipeline"); err != nil {
		return err
	}
	return c.Output.Validate("output")
}

// CaptureConfig locates a capture dumped by the camera driver: a raw XYZ position grid and a
// texture, either raw RGBA or any image format.
type CaptureConfig struct {
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	PointsFile  string `json:"points_file"`
	TextureFile string `json:"texture_file"`
}

// Validate ensures all parts of the config are valid.
func (c *CaptureConfig) Validate(path string) error {
	if c.Width <= 0 || c.Height <= 0 {
		return utils.NewConfigValidationError(path,
			errors.Errorf("width and height must be positive, got %dx%d", c.Width, c.Height))
	}
	if c.PointsFile == "" {
		return utils.NewConfigValidationFieldRequiredError(path, "points_file")
	}
	if c.TextureFile == "" {
		return utils.NewConfigValidationFieldRequiredError(path, "texture_file")
	}
	return nil
}
