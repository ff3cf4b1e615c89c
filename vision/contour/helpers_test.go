package contour

import (
	"image"

	"go.viam.com/contour3d/rimage"
)

// maskWithRects returns a width x height mask whose foreground is the union of rects.
func maskWithRects(width, height int, rects ...image.Rectangle) *image.Gray {
	mask := image.NewGray(image.Rect(0, 0, width, height))
	for _, r := range rects {
		r = r.Intersect(mask.Rect)
		for y := r.Min.Y; y < r.Max.Y; y++ {
			for x := r.Min.X; x < r.Max.X; x++ {
				mask.Pix[mask.PixOffset(x, y)] = rimage.Foreground
			}
		}
	}
	return mask
}

func setGray(mask *image.Gray, v uint8, pts ...image.Point) {
	for _, p := range pts {
		mask.Pix[mask.PixOffset(p.X, p.Y)] = v
	}
}

// squareScene is a 100x100 flat scene at depth 500 with a centered 40x40 dark square spanning
// pixels 30 through 69.
func squareScene() (*rimage.PointMap, *image.NRGBA, error) {
	positions, colors := NewSquareScene(100, 100, 40, 500).Buffers()
	return AssembleGrids(100, 100, positions, colors)
}
