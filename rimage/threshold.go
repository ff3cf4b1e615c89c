package rimage

import (
	"image"
)

// ThresholdType selects which side of the cutoff becomes foreground.
type ThresholdType int

const (
	// ThresholdBinary maps values above the cutoff to max and the rest to 0.
	ThresholdBinary ThresholdType = iota
	// ThresholdBinaryInv maps values at or below the cutoff to max and the rest to 0.
	ThresholdBinaryInv
)

// ThresholdGray returns a binary copy of img. The cutoff itself belongs to the low side.
func ThresholdGray(img *image.Gray, cutoff, max uint8, kind ThresholdType) *image.Gray {
	b := img.Bounds()
	out := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))
	low, high := uint8(0), max
	if kind == ThresholdBinaryInv {
		low, high = max, 0
	}
	for y := 0; y < b.Dy(); y++ {
		src := img.Pix[img.PixOffset(b.Min.X, b.Min.Y+y):]
		dst := out.Pix[y*out.Stride:]
		for x := 0; x < b.Dx(); x++ {
			if src[x] > cutoff {
				dst[x] = high
			} else {
				dst[x] = low
			}
		}
	}
	return out
}
