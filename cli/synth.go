package cli

import (
	"encoding/json"
	"io"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	"go.viam.com/contour3d/config"
	"go.viam.com/contour3d/rimage"
	"go.viam.com/contour3d/utils"
	"go.viam.com/contour3d/vision/contour"
)

// Names of the files written by 'synth'.
const (
	synthPointsFile  = "capture.xyz"
	synthTextureFile = "capture.rgba"
	synthPreviewFile = "capture.png"
	synthConfigFile  = "capture.json"
)

// SynthAction is the corresponding Action for 'synth'. It writes a capture of a flat plane
// with a dark square in the middle, a preview of its texture and a config to extract it.
func SynthAction(c *cli.Context) error {
	width, height := c.Int(captureFlagWidth), c.Int(captureFlagHeight)
	side := c.Int(synthFlagSide)
	if width <= 0 || height <= 0 {
		return errors.Errorf("capture dimensions must be positive, got %dx%d", width, height)
	}
	if side < 0 || side > utils.MinInt(width, height) {
		return errors.Errorf("square side must be between 0 and %d, got %d", utils.MinInt(width, height), side)
	}

	scene := contour.NewSquareScene(width, height, side, float32(c.Float64(synthFlagDepth)))
	scene.PixelPitch = float32(c.Float64(synthFlagPitch))
	positions, colors := scene.Buffers()
	_, texture, err := contour.AssembleGrids(width, height, positions, colors)
	if err != nil {
		return err
	}

	dir := c.Path(synthFlagOut)
	if err := utils.EnsureDir(dir); err != nil {
		return err
	}
	if err := utils.CreateFileFunc(filepath.Join(dir, synthPointsFile), func(w io.Writer) error {
		return rimage.WriteRawXYZ(w, positions)
	}); err != nil {
		return err
	}
	if err := utils.CreateFileFunc(filepath.Join(dir, synthTextureFile), func(w io.Writer) error {
		return rimage.WriteRawRGBA(w, texture)
	}); err != nil {
		return err
	}
	if err := rimage.WriteImageToFile(filepath.Join(dir, synthPreviewFile), texture); err != nil {
		return err
	}

	cfg := config.Default()
	cfg.Capture = &config.CaptureConfig{
		Width:       width,
		Height:      height,
		PointsFile:  synthPointsFile,
		TextureFile: synthTextureFile,
	}
	cfg.Output.Dir = "out"
	cfgPath := filepath.Join(dir, synthConfigFile)
	if err := utils.CreateFileFunc(cfgPath, func(w io.Writer) error {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(cfg)
	}); err != nil {
		return err
	}

	printf(c.App.Writer, "wrote synthetic %dx%d capture to %s", width, height, dir)
	printf(c.App.Writer, "extract it with: contour3d --config %s extract", cfgPath)
	return nil
}
