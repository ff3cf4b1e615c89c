package contour

import (
	"image"
	"image/color"

	"go.viam.com/contour3d/rimage"
)

// AssembleGrids turns the flat row-major buffers delivered by the camera driver into a
// position grid and a co-indexed color grid. Cell (r, c) of both grids is flat element
// r*width+c. Missing depth samples are passed through untouched.
func AssembleGrids(width, height int, positions []rimage.XYZ, colors []color.NRGBA) (*rimage.PointMap, *image.NRGBA, error) {
	if width <= 0 || height <= 0 {
		return nil, nil, newDimensionMismatchError("grid dimensions must be positive, got %dx%d", width, height)
	}
	n := width * height
	if len(positions) != n {
		return nil, nil, newDimensionMismatchError("%dx%d grid needs %d positions, got %d", width, height, n, len(positions))
	}
	if len(colors) != len(positions) {
		return nil, nil, newDimensionMismatchError("got %d positions but %d colors", len(positions), len(colors))
	}

	pm, err := rimage.NewPointMap(width, height, positions)
	if err != nil {
		return nil, nil, err
	}

	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for i, c := range colors {
		img.Pix[i*4+0] = c.R
		img.Pix[i*4+1] = c.G
		img.Pix[i*4+2] = c.B
		img.Pix[i*4+3] = c.A
	}
	return pm, img, nil
}

// CheckGrids verifies that an already assembled position grid and color grid line up.
func CheckGrids(pm *rimage.PointMap, colors image.Image) error {
	if pm == nil || colors == nil {
		return newDimensionMismatchError("missing grid")
	}
	b := colors.Bounds()
	if b.Dx() != pm.Width() || b.Dy() != pm.Height() {
		return newDimensionMismatchError("position grid is %dx%d but color grid is %dx%d",
			pm.Width(), pm.Height(), b.Dx(), b.Dy())
	}
	return nil
}
