package contour

import (
	"image"
	"image/color"
	"testing"

	"github.com/pkg/errors"
	"go.viam.com/test"

	"go.viam.com/contour3d/logging"
	"go.viam.com/contour3d/rimage"
)

func TestRunSquare(t *testing.T) {
	logger := logging.NewTestLogger(t)
	pm, colors, err := squareScene()
	test.That(t, err, test.ShouldBeNil)

	res, err := Run(pm, colors, DefaultConfig(), logger)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, res, test.ShouldNotBeNil)

	// smoothing eats the outermost ring of the 40x40 square, leaving 38x38
	test.That(t, len(res.Contours), test.ShouldEqual, 1)
	test.That(t, res.Selected, test.ShouldEqual, 0)
	test.That(t, len(res.Contour), test.ShouldEqual, 148)
	test.That(t, res.Area, test.ShouldEqual, 37.*37.)
	test.That(t, rimage.BoundingBox(res.Contour), test.ShouldResemble, image.Rect(31, 31, 69, 69))
	test.That(t, res.Contour[0], test.ShouldResemble, image.Pt(31, 31))

	test.That(t, len(res.Points), test.ShouldEqual, len(res.Contour))
	test.That(t, res.PointPixels, test.ShouldResemble, []image.Point(res.Contour))
	for i, p := range res.Points {
		test.That(t, p.Z, test.ShouldEqual, 500.)
		test.That(t, p.X, test.ShouldEqual, float64(res.Contour[i].X-50))
		test.That(t, p.Y, test.ShouldEqual, float64(res.Contour[i].Y-50))
	}
	test.That(t, res.Intermediates, test.ShouldBeNil)
}

func TestRunSkipsMissingDepth(t *testing.T) {
	logger := logging.NewTestLogger(t)
	scene := NewSquareScene(100, 100, 40, 500)
	scene.Holes = []image.Point{{31, 40}, {50, 31}, {50, 50}}
	positions, colorBuf := scene.Buffers()
	pm, colors, err := AssembleGrids(100, 100, positions, colorBuf)
	test.That(t, err, test.ShouldBeNil)

	res, err := Run(pm, colors, DefaultConfig(), logger)
	test.That(t, err, test.ShouldBeNil)
	// (50, 50) is inside the region and not on its boundary
	test.That(t, len(res.Contour), test.ShouldEqual, 148)
	test.That(t, len(res.Points), test.ShouldEqual, 146)
	for _, p := range res.PointPixels {
		test.That(t, p, test.ShouldNotResemble, image.Pt(31, 40))
		test.That(t, p, test.ShouldNotResemble, image.Pt(50, 31))
	}
}

func TestRunKeepsIntermediates(t *testing.T) {
	logger := logging.NewTestLogger(t)
	pm, colors, err := squareScene()
	test.That(t, err, test.ShouldBeNil)

	cfg := DefaultConfig()
	cfg.KeepIntermediates = true
	res, err := Run(pm, colors, cfg, logger)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, res.Intermediates, test.ShouldNotBeNil)
	test.That(t, res.Intermediates.Gray.GrayAt(0, 0).Y, test.ShouldEqual, uint8(255))
	test.That(t, res.Intermediates.Gray.GrayAt(50, 50).Y, test.ShouldEqual, uint8(0))
	test.That(t, rimage.CountGray(res.Intermediates.Threshold, rimage.Foreground), test.ShouldEqual, 38*38)
	test.That(t, res.Intermediates.Filled.Pix, test.ShouldResemble, res.Intermediates.Threshold.Pix)
	test.That(t, res.Intermediates.Closed.Pix, test.ShouldResemble, res.Mask.Pix)

	// intermediates are copies
	res.Mask.Pix[0] = rimage.Foreground
	test.That(t, res.Intermediates.Closed.Pix[0], test.ShouldEqual, rimage.Background)
}

func TestRunNoContour(t *testing.T) {
	logger := logging.NewTestLogger(t)
	for _, c := range []color.NRGBA{
		{255, 255, 255, 255},
		{0, 0, 0, 255},
	} {
		positions, colors := NewSquareScene(30, 20, 0, 100).Buffers()
		for i := range colors {
			colors[i] = c
		}
		pm, img, err := AssembleGrids(30, 20, positions, colors)
		test.That(t, err, test.ShouldBeNil)

		res, err := Run(pm, img, DefaultConfig(), logger)
		test.That(t, errors.Is(err, ErrNoContourFound), test.ShouldBeTrue)
		test.That(t, res, test.ShouldBeNil)
	}
}

func TestRunDimensionMismatch(t *testing.T) {
	logger := logging.NewTestLogger(t)
	pm, _, err := squareScene()
	test.That(t, err, test.ShouldBeNil)

	_, err = Run(pm, image.NewNRGBA(image.Rect(0, 0, 100, 99)), DefaultConfig(), logger)
	test.That(t, errors.Is(err, ErrDimensionMismatch), test.ShouldBeTrue)
}

func TestRunInvalidConfig(t *testing.T) {
	logger := logging.NewTestLogger(t)
	pm, colors, err := squareScene()
	test.That(t, err, test.ShouldBeNil)

	cfg := DefaultConfig()
	cfg.SmoothingKernelSize = 4
	_, err = Run(pm, colors, cfg, logger)
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "smoothing_kernel_size")
}

func TestRunLightOnDark(t *testing.T) {
	logger := logging.NewTestLogger(t)
	positions, colorBuf := NewSquareScene(60, 60, 20, 250).Buffers()
	for i, c := range colorBuf {
		colorBuf[i] = color.NRGBA{255 - c.R, 255 - c.G, 255 - c.B, 255}
	}
	pm, colors, err := AssembleGrids(60, 60, positions, colorBuf)
	test.That(t, err, test.ShouldBeNil)

	cfg := DefaultConfig()
	cfg.Polarity = LightOnDark
	res, err := Run(pm, colors, cfg, logger)
	test.That(t, err, test.ShouldBeNil)
	// the bright square grows by the smoothing ring instead of shrinking
	test.That(t, rimage.BoundingBox(res.Contour), test.ShouldResemble, image.Rect(19, 19, 41, 41))
}
