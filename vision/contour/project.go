package contour

import (
	"image"
	"math"

	"github.com/golang/geo/r3"

	"go.viam.com/contour3d/rimage"
)

// Project maps every contour pixel to its 3D position, in traversal order. Pixels without a
// depth measurement, those whose X component is NaN, are skipped, so the result may be
// shorter than the contour or empty. It is never nil.
func Project(c []image.Point, pm *rimage.PointMap) []r3.Vector {
	points, _ := project(c, pm)
	return points
}

// project also returns the pixel each point came from.
func project(c []image.Point, pm *rimage.PointMap) ([]r3.Vector, []image.Point) {
	points := make([]r3.Vector, 0, len(c))
	pixels := make([]image.Point, 0, len(c))
	for _, p := range c {
		v := pm.At(p.X, p.Y)
		if math.IsNaN(v.X) {
			continue
		}
		points = append(points, v)
		pixels = append(pixels, p)
	}
	return points, pixels
}
