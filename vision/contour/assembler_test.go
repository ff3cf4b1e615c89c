package contour

import (
	"image"
	"image/color"
	"math"
	"testing"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"go.viam.com/test"

	"go.viam.com/contour3d/rimage"
)

func TestAssembleGrids(t *testing.T) {
	width, height := 4, 3
	positions := make([]rimage.XYZ, width*height)
	colors := make([]color.NRGBA, width*height)
	for i := range positions {
		positions[i] = rimage.XYZ{X: float32(i), Y: float32(2 * i), Z: float32(3 * i)}
		colors[i] = color.NRGBA{uint8(i), uint8(10 + i), uint8(20 + i), uint8(30 + i)}
	}
	positions[5] = rimage.NewInvalidXYZ()

	pm, img, err := AssembleGrids(width, height, positions, colors)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, pm.Width(), test.ShouldEqual, width)
	test.That(t, pm.Height(), test.ShouldEqual, height)
	test.That(t, img.Bounds(), test.ShouldResemble, image.Rect(0, 0, width, height))

	for r := 0; r < height; r++ {
		for c := 0; c < width; c++ {
			i := r*width + c
			test.That(t, img.NRGBAAt(c, r), test.ShouldResemble, colors[i])
			if i == 5 {
				test.That(t, math.IsNaN(pm.At(c, r).X), test.ShouldBeTrue)
				test.That(t, math.IsNaN(pm.At(c, r).Z), test.ShouldBeTrue)
				continue
			}
			test.That(t, pm.At(c, r), test.ShouldResemble, r3.Vector{X: float64(i), Y: float64(2 * i), Z: float64(3 * i)})
		}
	}
}

func TestAssembleGridsDimensionMismatch(t *testing.T) {
	positions := make([]rimage.XYZ, 12)
	colors := make([]color.NRGBA, 12)

	_, _, err := AssembleGrids(4, 3, positions[:11], colors)
	test.That(t, errors.Is(err, ErrDimensionMismatch), test.ShouldBeTrue)

	_, _, err = AssembleGrids(4, 3, positions, colors[:11])
	test.That(t, errors.Is(err, ErrDimensionMismatch), test.ShouldBeTrue)

	_, _, err = AssembleGrids(3, 3, positions, colors)
	test.That(t, errors.Is(err, ErrDimensionMismatch), test.ShouldBeTrue)

	_, _, err = AssembleGrids(0, 3, nil, nil)
	test.That(t, errors.Is(err, ErrDimensionMismatch), test.ShouldBeTrue)

	_, _, err = AssembleGrids(-4, -3, positions, colors)
	test.That(t, errors.Is(err, ErrDimensionMismatch), test.ShouldBeTrue)
}

func TestCheckGrids(t *testing.T) {
	pm, err := rimage.NewPointMap(2, 2, make([]rimage.XYZ, 4))
	test.That(t, err, test.ShouldBeNil)
	test.That(t, CheckGrids(pm, image.NewNRGBA(image.Rect(0, 0, 2, 2))), test.ShouldBeNil)

	err = CheckGrids(pm, image.NewNRGBA(image.Rect(0, 0, 3, 2)))
	test.That(t, errors.Is(err, ErrDimensionMismatch), test.ShouldBeTrue)
	test.That(t, errors.Is(CheckGrids(nil, nil), ErrDimensionMismatch), test.ShouldBeTrue)
}
