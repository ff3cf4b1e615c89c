package rimage

import (
	"image"
	"image/draw"

	"github.com/pkg/errors"
)

// Binary mask values.
const (
	Background uint8 = 0
	Foreground uint8 = 255
)

// SameImgSize compares images to see if they're the same size.
func SameImgSize(g1, g2 image.Image) bool {
	if (g1.Bounds().Dx() != g2.Bounds().Dx()) || (g1.Bounds().Dy() != g2.Bounds().Dy()) {
		return false
	}
	return true
}

// MakeGray takes any image and makes it gray (image.Gray) with the standard luminance
// weights; alpha is ignored. The result always starts at the origin.
func MakeGray(pic image.Image) *image.Gray {
	b := pic.Bounds()
	result := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))
	if nrgba, ok := pic.(*image.NRGBA); ok {
		// draw.Draw would premultiply by alpha first; the texture alpha carries no meaning here.
		for y := 0; y < b.Dy(); y++ {
			for x := 0; x < b.Dx(); x++ {
				c := nrgba.NRGBAAt(b.Min.X+x, b.Min.Y+y)
				result.Pix[y*result.Stride+x] = luminance(c.R, c.G, c.B)
			}
		}
		return result
	}
	draw.Draw(result, result.Bounds(), pic, b.Min, draw.Src)
	return result
}

// luminance matches color.GrayModel on opaque colors.
func luminance(r, g, b uint8) uint8 {
	r32, g32, b32 := uint32(r)*0x101, uint32(g)*0x101, uint32(b)*0x101
	y := (19595*r32 + 38470*g32 + 7471*b32 + 1<<15) >> 24
	return uint8(y)
}

// CloneGray returns a deep copy of the given image.
func CloneGray(img *image.Gray) *image.Gray {
	out := image.NewGray(img.Bounds())
	copy(out.Pix, img.Pix)
	return out
}

// InvertGray flips every pixel of img in place (v -> 255-v).
func InvertGray(img *image.Gray) {
	for i, v := range img.Pix {
		img.Pix[i] = 255 - v
	}
}

// OrGray sets every pixel of dst to the maximum of itself and the matching pixel of src.
// On binary masks this is the union of the foregrounds.
func OrGray(dst, src *image.Gray) error {
	if !SameImgSize(dst, src) {
		return errors.Errorf("these images aren't the same size (%d %d) != (%d %d)",
			dst.Bounds().Dx(), dst.Bounds().Dy(), src.Bounds().Dx(), src.Bounds().Dy())
	}
	for i, v := range src.Pix {
		if v > dst.Pix[i] {
			dst.Pix[i] = v
		}
	}
	return nil
}

// CountGray returns how many pixels of img hold value v.
func CountGray(img *image.Gray, v uint8) int {
	n := 0
	for _, p := range img.Pix {
		if p == v {
			n++
		}
	}
	return n
}
