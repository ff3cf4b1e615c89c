package contour

import (
	"image"
	"image/color"

	"go.viam.com/contour3d/rimage"
)

// SyntheticScene describes a flat scene with a dark rectangle on a white surface.
type SyntheticScene struct {
	Width, Height int
	// Target is the dark rectangle in pixel coordinates.
	Target image.Rectangle
	// Depth is the z of the plane every pixel lies on.
	Depth float32
	// PixelPitch scales pixel coordinates into x and y.
	PixelPitch float32
	// Holes are pixels without depth.
	Holes []image.Point
}

// NewSquareScene returns a width x height scene with a centered dark square of the given side.
func NewSquareScene(width, height, side int, depth float32) SyntheticScene {
	x0, y0 := (width-side)/2, (height-side)/2
	return SyntheticScene{
		Width:      width,
		Height:     height,
		Target:     image.Rect(x0, y0, x0+side, y0+side),
		Depth:      depth,
		PixelPitch: 1,
	}
}

// Buffers renders the scene as the flat row-major buffers a camera driver delivers.
func (s SyntheticScene) Buffers() ([]rimage.XYZ, []color.NRGBA) {
	n := s.Width * s.Height
	positions := make([]rimage.XYZ, n)
	colors := make([]color.NRGBA, n)
	white := color.NRGBA{255, 255, 255, 255}
	black := color.NRGBA{0, 0, 0, 255}
	for y := 0; y < s.Height; y++ {
		for x := 0; x < s.Width; x++ {
			i := y*s.Width + x
			positions[i] = rimage.XYZ{
				X: float32(x-s.Width/2) * s.PixelPitch,
				Y: float32(y-s.Height/2) * s.PixelPitch,
				Z: s.Depth,
			}
			if (image.Point{x, y}).In(s.Target) {
				colors[i] = black
			} else {
				colors[i] = white
			}
		}
	}
	for _, h := range s.Holes {
		if h.X >= 0 && h.Y >= 0 && h.X < s.Width && h.Y < s.Height {
			positions[h.Y*s.Width+h.X] = rimage.NewInvalidXYZ()
		}
	}
	return positions, colors
}
