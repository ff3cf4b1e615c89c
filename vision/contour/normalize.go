package contour

import (
	"image"

	"github.com/pkg/errors"

	"go.viam.com/contour3d/logging"
	"go.viam.com/contour3d/rimage"
)

// seed is where the hole fill starts unless the fill is seeded from the whole border.
var seed = image.Point{0, 0}

// Normalize cleans the binary mask in place so that the target region is a single solid
// foreground blob:
//
//  1. for LightOnDark the mask is inverted so the bright class becomes foreground;
//  2. background holes enclosed by foreground are filled. Background connected to the seed
//     pixel (0,0), or to any background border pixel with FillFromBorder, is kept. If the
//     seed pixel is foreground, the foreground connected to it is cleared instead and a
//     warning is logged: the target is assumed not to touch the corner;
//  3. a morphological closing with the configured element removes remaining small gaps.
func Normalize(mask *image.Gray, cfg Config, logger logging.Logger) error {
	_, err := normalize(mask, cfg, logger)
	return err
}

// normalize returns a copy of the mask as it was before closing.
func normalize(mask *image.Gray, cfg Config, logger logging.Logger) (*image.Gray, error) {
	if cfg.Polarity == LightOnDark {
		rimage.InvertGray(mask)
	}

	if err := fillHoles(mask, cfg.FillFromBorder, logger); err != nil {
		return nil, err
	}
	filled := rimage.CloneGray(mask)

	if cfg.MorphRadius == 0 {
		return filled, nil
	}
	se, err := cfg.structuringElement()
	if err != nil {
		return nil, err
	}
	closed, err := rimage.MorphCloseGray(mask, se, rimage.BorderReplicate, 1)
	if err != nil {
		return nil, err
	}
	copy(mask.Pix, closed.Pix)
	logger.Debugw("closed mask", "shape", se.Shape.String(), "radius", cfg.MorphRadius,
		"foreground", rimage.CountGray(mask, rimage.Foreground))
	return filled, nil
}

func fillHoles(mask *image.Gray, fromBorder bool, logger logging.Logger) error {
	if fromBorder {
		scratch := rimage.CloneGray(mask)
		rimage.FloodFillFromBorder(scratch, rimage.Background, rimage.Foreground)
		rimage.InvertGray(scratch)
		return rimage.OrGray(mask, scratch)
	}

	if mask.GrayAt(seed.X, seed.Y).Y != rimage.Background {
		cleared, err := rimage.FloodFill(mask, seed, rimage.Background)
		if err != nil {
			return errors.Wrap(err, "cannot clear the region at the seed")
		}
		logger.Warnw("seed pixel is foreground, the region touching it was cleared and holes were not filled",
			"x", seed.X, "y", seed.Y, "cleared", cleared)
		return nil
	}

	scratch := rimage.CloneGray(mask)
	if _, err := rimage.FloodFill(scratch, seed, rimage.Foreground); err != nil {
		return errors.Wrap(err, "cannot fill the background at the seed")
	}
	rimage.InvertGray(scratch)
	holes := rimage.CountGray(scratch, rimage.Foreground)
	if err := rimage.OrGray(mask, scratch); err != nil {
		return err
	}
	logger.Debugw("filled holes", "pixels", holes)
	return nil
}
