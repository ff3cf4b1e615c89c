package contour

import (
	"image"

	"go.viam.com/contour3d/rimage"
)

// Binarize separates dark pixels of the color grid from the rest. The colors are reduced to
// luminance, smoothed with a box filter and thresholded: intensities at or below
// cfg.Threshold become foreground (255), everything else background (0).
func Binarize(colors image.Image, cfg Config) (*image.Gray, error) {
	_, mask, err := binarize(colors, cfg)
	return mask, err
}

func binarize(colors image.Image, cfg Config) (gray, mask *image.Gray, err error) {
	gray = rimage.MakeGray(colors)
	smoothed, err := rimage.BoxBlurGray(gray, cfg.SmoothingKernelSize, rimage.BorderReflect101)
	if err != nil {
		return nil, nil, err
	}
	mask = rimage.ThresholdGray(smoothed, uint8(cfg.Threshold), rimage.Foreground, rimage.ThresholdBinaryInv)
	return gray, mask, nil
}
