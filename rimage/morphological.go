package rimage

import (
	"image"
	"math"
	"strings"

	"github.com/pkg/errors"

	"go.viam.com/contour3d/utils"
)

// MorphShape is the shape of a structuring element.
type MorphShape int

const (
	// MorphRect is a filled rectangle.
	MorphRect MorphShape = iota
	// MorphCross is a plus sign through the anchor.
	MorphCross
	// MorphEllipse is the filled ellipse inscribed in the element's rectangle.
	MorphEllipse
)

func (s MorphShape) String() string {
	switch s {
	case MorphRect:
		return "rect"
	case MorphCross:
		return "cross"
	case MorphEllipse:
		return "ellipse"
	default:
		return "unknown"
	}
}

// MorphShapeFromString parses "rect", "cross" or "ellipse".
func MorphShapeFromString(s string) (MorphShape, error) {
	switch strings.ToLower(s) {
	case "rect", "rectangle":
		return MorphRect, nil
	case "cross":
		return MorphCross, nil
	case "ellipse":
		return MorphEllipse, nil
	default:
		return 0, errors.Errorf("unknown structuring element shape %q", s)
	}
}

// StructuringElement is a binary mask used by the morphological operators, applied around
// its anchor.
type StructuringElement struct {
	Shape  MorphShape
	Width  int
	Height int
	Anchor image.Point
	mask   []bool
}

// GetStructuringElement builds an element of the given shape that fits a width x height
// rectangle, anchored at its center.
func GetStructuringElement(shape MorphShape, width, height int) (*StructuringElement, error) {
	if width <= 0 || height <= 0 {
		return nil, errors.Errorf("structuring element dimensions must be positive, got %dx%d", width, height)
	}
	se := &StructuringElement{
		Shape:  shape,
		Width:  width,
		Height: height,
		Anchor: image.Point{width / 2, height / 2},
		mask:   make([]bool, width*height),
	}

	if width == 1 && height == 1 {
		shape = MorphRect
	}
	r, c := height/2, width/2
	var inv2 float64
	if shape == MorphEllipse {
		inv2 = 1. / float64(r*r)
		if r == 0 {
			inv2 = 0
		}
	}
	for i := 0; i < height; i++ {
		j1, j2 := 0, 0
		switch shape {
		case MorphRect:
			j2 = width
		case MorphCross:
			if i == se.Anchor.Y {
				j2 = width
			} else {
				j1, j2 = se.Anchor.X, se.Anchor.X+1
			}
		case MorphEllipse:
			dy := i - r
			if utils.AbsInt(dy) <= r {
				dx := int(math.RoundToEven(float64(c) * math.Sqrt(float64(r*r-dy*dy)*inv2)))
				j1 = utils.MaxInt(c-dx, 0)
				j2 = utils.MinInt(c+dx+1, width)
			}
		default:
			return nil, errors.Errorf("unknown structuring element shape %d", shape)
		}
		for j := j1; j < j2; j++ {
			se.mask[i*width+j] = true
		}
	}
	return se, nil
}

// NewRadiusElement returns the element of the given shape and radius, 2r+1 pixels across.
func NewRadiusElement(shape MorphShape, radius int) (*StructuringElement, error) {
	if radius < 0 {
		return nil, errors.Errorf("structuring element radius must not be negative, got %d", radius)
	}
	return GetStructuringElement(shape, 2*radius+1, 2*radius+1)
}

// At reports whether the element covers column x, row y.
func (se *StructuringElement) At(x, y int) bool {
	return se.mask[y*se.Width+x]
}

// Size returns the element's bounding size.
func (se *StructuringElement) Size() image.Point {
	return image.Point{se.Width, se.Height}
}

func (se *StructuringElement) String() string {
	var sb strings.Builder
	for y := 0; y < se.Height; y++ {
		for x := 0; x < se.Width; x++ {
			if se.At(x, y) {
				sb.WriteByte('1')
			} else {
				sb.WriteByte('0')
			}
		}
		if y < se.Height-1 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

func morphGray(img *image.Gray, se *StructuringElement, border BorderPad, dilate bool) (*image.Gray, error) {
	padded, err := PaddingGray(img, se.Size(), se.Anchor, border)
	if err != nil {
		return nil, err
	}
	originalSize := img.Bounds().Size()
	result := image.NewGray(image.Rect(0, 0, originalSize.X, originalSize.Y))
	for y := 0; y < originalSize.Y; y++ {
		for x := 0; x < originalSize.X; x++ {
			var v uint8
			if !dilate {
				v = 255
			}
			for ky := 0; ky < se.Height; ky++ {
				row := padded.Pix[(y+ky)*padded.Stride+x:]
				for kx := 0; kx < se.Width; kx++ {
					if !se.mask[ky*se.Width+kx] {
						continue
					}
					if dilate {
						v = utils.MaxUint8(v, row[kx])
					} else {
						v = utils.MinUint8(v, row[kx])
					}
				}
			}
			result.Pix[y*result.Stride+x] = v
		}
	}
	return result, nil
}

// DilateGray replaces every pixel with the maximum under the element.
func DilateGray(img *image.Gray, se *StructuringElement, border BorderPad) (*image.Gray, error) {
	return morphGray(img, se, border, true)
}

// ErodeGray replaces every pixel with the minimum under the element.
func ErodeGray(img *image.Gray, se *StructuringElement, border BorderPad) (*image.Gray, error) {
	return morphGray(img, se, border, false)
}

// MorphCloseGray dilates img iterations times and then erodes it as many times, closing
// gaps and notches narrower than the element.
func MorphCloseGray(img *image.Gray, se *StructuringElement, border BorderPad, iterations int) (*image.Gray, error) {
	if iterations < 0 {
		return nil, errors.Errorf("iterations must not be negative, got %d", iterations)
	}
	out := CloneGray(img)
	var err error
	for i := 0; i < iterations; i++ {
		if out, err = DilateGray(out, se, border); err != nil {
			return nil, err
		}
	}
	for i := 0; i < iterations; i++ {
		if out, err = ErodeGray(out, se, border); err != nil {
			return nil, err
		}
	}
	return out, nil
}
