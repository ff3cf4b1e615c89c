package cli

import (
	"image"
	"image/color"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	"go.viam.com/contour3d/config"
	"go.viam.com/contour3d/logging"
	"go.viam.com/contour3d/rimage"
	"go.viam.com/contour3d/vision/contour"
)

// ExtractAction is the corresponding Action for 'extract'.
func ExtractAction(c *cli.Context) error {
	logger, closeLog := newLogger(c)
	defer closeLog()
	cfg, err := extractConfig(c, logger)
	if err != nil {
		return err
	}
	if cfg.LogLevel != nil && !c.Bool(generalFlagDebug) {
		logger.SetLevel(*cfg.LogLevel)
	}

	pm, colors, err := loadCapture(cfg.Capture)
	if err != nil {
		return err
	}
	logger.Debugw("loaded capture", "width", pm.Width(), "height", pm.Height(), "valid", pm.ValidCount())

	res, err := contour.Run(pm, colors, cfg.Pipeline, logger.Sublogger("contour"))
	if errors.Is(err, contour.ErrNoContourFound) {
		warningf(c.App.ErrWriter, "no region found below threshold %d, nothing was written", cfg.Pipeline.Threshold)
		return err
	}
	if err != nil {
		return err
	}

	if err := contour.NewEmitter(cfg.Output, logger.Sublogger("emit")).Emit(res, colors, pm); err != nil {
		return err
	}
	printf(c.App.Writer, "wrote %d boundary points to %s",
		len(res.Points), filepath.Join(cfg.Output.Dir, cfg.Output.PointsFile))
	printf(c.App.Writer, "%s", contour.Summarize(res))
	return nil
}

// extractConfig reads the config file, if any, and applies the flags on top of it.
func extractConfig(c *cli.Context, logger logging.Logger) (*config.Config, error) {
	cfg := config.Default()
	if path := c.String(generalFlagConfig); path != "" {
		var err error
		if cfg, err = config.Read(path, logger); err != nil {
			return nil, err
		}
	}

	if c.IsSet(captureFlagPoints) || c.IsSet(captureFlagTexture) || c.IsSet(captureFlagWidth) || c.IsSet(captureFlagHeight) {
		if cfg.Capture == nil {
			cfg.Capture = &config.CaptureConfig{}
		}
		if c.IsSet(captureFlagPoints) {
			cfg.Capture.PointsFile = c.Path(captureFlagPoints)
		}
		if c.IsSet(captureFlagTexture) {
			cfg.Capture.TextureFile = c.Path(captureFlagTexture)
		}
		if c.IsSet(captureFlagWidth) {
			cfg.Capture.Width = c.Int(captureFlagWidth)
		}
		if c.IsSet(captureFlagHeight) {
			cfg.Capture.Height = c.Int(captureFlagHeight)
		}
	}
	if cfg.Capture == nil {
		return nil, errors.Errorf("no capture given, pass --%s, --%s, --%s and --%s or a config with a capture",
			captureFlagPoints, captureFlagTexture, captureFlagWidth, captureFlagHeight)
	}

	if c.IsSet(extractFlagThreshold) {
		cfg.Pipeline.Threshold = c.Int(extractFlagThreshold)
	}
	if c.IsSet(extractFlagPolarity) {
		cfg.Pipeline.Polarity = contour.Polarity(c.String(extractFlagPolarity))
	}
	if c.IsSet(extractFlagFillFromBorder) {
		cfg.Pipeline.FillFromBorder = c.Bool(extractFlagFillFromBorder)
	}

	if c.IsSet(extractFlagOut) {
		cfg.Output.Dir = c.Path(extractFlagOut)
	}
	if c.IsSet(extractFlagDebugImages) {
		cfg.Output.DebugImages = c.Bool(extractFlagDebugImages)
	}
	if c.IsSet(extractFlagDepthImage) {
		cfg.Output.DepthImageFile = c.String(extractFlagDepthImage)
	}
	if c.IsSet(extractFlagPCD) {
		cfg.Output.PCDFile = c.String(extractFlagPCD)
	}
	if c.IsSet(extractFlagPCDType) {
		cfg.Output.PCDType = c.String(extractFlagPCDType)
	}
	if c.IsSet(extractFlagSummary) {
		cfg.Output.SummaryFile = c.String(extractFlagSummary)
	}
	if c.IsSet(extractFlagCaption) {
		cfg.Output.Caption = c.Bool(extractFlagCaption)
	}
	if c.IsSet(extractFlagProfile) {
		cfg.Output.ProfileFile = c.String(extractFlagProfile)
	}
	if cfg.Output.DebugImages {
		cfg.Pipeline.KeepIntermediates = true
	}

	if err := cfg.Ensure(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// loadCapture reads the position grid and the texture of a capture and assembles them.
func loadCapture(capture *config.CaptureConfig) (*rimage.PointMap, *image.NRGBA, error) {
	samples, err := rimage.ReadRawXYZFile(capture.PointsFile, capture.Width, capture.Height)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "cannot read point map %q", capture.PointsFile)
	}
	texture, err := loadTexture(capture)
	if err != nil {
		return nil, nil, err
	}
	return contour.AssembleGrids(capture.Width, capture.Height, samples, nrgbaPixels(texture))
}

func loadTexture(capture *config.CaptureConfig) (*image.NRGBA, error) {
	if strings.EqualFold(filepath.Ext(capture.TextureFile), ".rgba") {
		img, err := rimage.ReadRawRGBAFile(capture.TextureFile, capture.Width, capture.Height)
		if err != nil {
			return nil, errors.Wrapf(err, "cannot read texture %q", capture.TextureFile)
		}
		return img, nil
	}
	img, err := rimage.NewImageFromFile(capture.TextureFile)
	if err != nil {
		return nil, err
	}
	return imaging.Clone(img), nil
}

// nrgbaPixels flattens img row by row.
func nrgbaPixels(img *image.NRGBA) []color.NRGBA {
	b := img.Bounds()
	pixels := make([]color.NRGBA, 0, b.Dx()*b.Dy())
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			pixels = append(pixels, img.NRGBAAt(x, y))
		}
	}
	return pixels
}
