package rimage

import (
	"image"
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// MinMaxDepth returns the smallest and largest Z over the valid cells. ok is false when the
// map has no valid cell.
func (pm *PointMap) MinMaxDepth() (min, max float64, ok bool) {
	min = math.Inf(1)
	max = math.Inf(-1)
	for _, v := range pm.data {
		if math.IsNaN(v.X) {
			continue
		}
		ok = true
		if v.Z < min {
			min = v.Z
		}
		if v.Z > max {
			max = v.Z
		}
	}
	return min, max, ok
}

// ToPrettyPicture renders the depth of the map as a false color image. Depths are clamped to
// [hardMin, hardMax] and mapped onto a hue ramp; cells without depth are left transparent.
func (pm *PointMap) ToPrettyPicture(hardMin, hardMax float64) image.Image {
	img := image.NewNRGBA(pm.Bounds())

	min, max, ok := pm.MinMaxDepth()
	if !ok {
		return img
	}
	if min < hardMin {
		min = hardMin
	}
	if max > hardMax {
		max = hardMax
	}

	span := max - min
	for y := 0; y < pm.height; y++ {
		for x := 0; x < pm.width; x++ {
			v := pm.At(x, y)
			if math.IsNaN(v.X) {
				continue
			}

			z := math.Min(math.Max(v.Z, min), max)
			ratio := 0.
			if span > 0 {
				ratio = (z - min) / span
			}

			hue := 30 + (200.0 * ratio)
			r, g, b := colorful.Hsv(hue, 1.0, 1.0).RGB255()
			img.SetNRGBA(x, y, color.NRGBA{r, g, b, 255})
		}
	}

	return img
}
