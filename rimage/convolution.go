package rimage

import (
	"image"
	"image/color"

	"github.com/pkg/errors"

	"go.viam.com/contour3d/utils"
)

// BorderPad selects how pixels outside the image are synthesized when a filter window
// overlaps the edge.
type BorderPad int

const (
	// BorderConstant pads with zeros.
	BorderConstant BorderPad = iota
	// BorderReplicate repeats the edge pixel: aaa|abcd|ddd.
	BorderReplicate
	// BorderReflect101 mirrors around the edge pixel without repeating it: cb|abcd|cb.
	BorderReflect101
)

func (b BorderPad) String() string {
	switch b {
	case BorderConstant:
		return "constant"
	case BorderReplicate:
		return "replicate"
	case BorderReflect101:
		return "reflect101"
	default:
		return "unknown"
	}
}

// Kernel is a convolution matrix stored row by row.
type Kernel struct {
	Content [][]float64
	Width   int
	Height  int
}

// NewKernel returns a zero filled kernel of the given size.
func NewKernel(width, height int) (*Kernel, error) {
	if width <= 0 || height <= 0 {
		return nil, errors.Errorf("kernel dimensions must be positive, got %dx%d", width, height)
	}
	content := make([][]float64, height)
	for i := range content {
		content[i] = make([]float64, width)
	}
	return &Kernel{content, width, height}, nil
}

// GetBoxKernel returns a normalized size x size averaging kernel.
func GetBoxKernel(size int) (*Kernel, error) {
	k, err := NewKernel(size, size)
	if err != nil {
		return nil, err
	}
	v := 1. / float64(size*size)
	for y := range k.Content {
		for x := range k.Content[y] {
			k.Content[y][x] = v
		}
	}
	return k, nil
}

// At returns the kernel weight at column x, row y.
func (k *Kernel) At(x, y int) float64 {
	return k.Content[y][x]
}

// Size returns the kernel size as a point.
func (k *Kernel) Size() image.Point {
	return image.Point{k.Width, k.Height}
}

// Center returns the default anchor of the kernel.
func (k *Kernel) Center() image.Point {
	return image.Point{k.Width / 2, k.Height / 2}
}

// borderIndex maps a possibly out of range coordinate i onto [0, n). ok is false when the
// border synthesizes a constant instead.
func borderIndex(i, n int, border BorderPad) (int, bool) {
	if i >= 0 && i < n {
		return i, true
	}
	switch border {
	case BorderReplicate:
		return utils.ClampInt(i, 0, n-1), true
	case BorderReflect101:
		if n == 1 {
			return 0, true
		}
		for i < 0 || i >= n {
			if i < 0 {
				i = -i
			}
			if i >= n {
				i = 2*n - 2 - i
			}
		}
		return i, true
	default:
		return 0, false
	}
}

// PaddingGray returns a copy of img grown so that a kernel of the given size anchored at
// anchor can be applied at every original pixel. The pixel (x, y) of the result holds the
// source pixel (x-anchor.X, y-anchor.Y).
func PaddingGray(img *image.Gray, kernelSize, anchor image.Point, border BorderPad) (*image.Gray, error) {
	if anchor.X < 0 || anchor.Y < 0 || anchor.X >= kernelSize.X || anchor.Y >= kernelSize.Y {
		return nil, errors.Errorf("anchor %v is outside of kernel of size %v", anchor, kernelSize)
	}
	switch border {
	case BorderConstant, BorderReplicate, BorderReflect101:
	default:
		return nil, errors.Errorf("unsupported border type %d", border)
	}
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	padded := image.NewGray(image.Rect(0, 0, w+kernelSize.X-1, h+kernelSize.Y-1))
	for y := 0; y < padded.Rect.Dy(); y++ {
		sy, okY := borderIndex(y-anchor.Y, h, border)
		for x := 0; x < padded.Rect.Dx(); x++ {
			sx, okX := borderIndex(x-anchor.X, w, border)
			if !okX || !okY {
				continue
			}
			padded.Pix[y*padded.Stride+x] = img.Pix[img.PixOffset(b.Min.X+sx, b.Min.Y+sy)]
		}
	}
	return padded, nil
}

// ConvolveGray applies a convolution matrix (Kernel) to a grayscale image.
// Example of usage:
//
//	res, err := ConvolveGray(img, kernel, image.Point{1, 1}, BorderReflect101)
//
// Note: the anchor represents a point inside the area of the kernel. After every step of the convolution the position
// specified by the anchor point gets updated on the result image.
func ConvolveGray(img *image.Gray, kernel *Kernel, anchor image.Point, border BorderPad) (*image.Gray, error) {
	kernelSize := kernel.Size()
	padded, err := PaddingGray(img, kernelSize, anchor, border)
	if err != nil {
		return nil, err
	}
	originalSize := img.Bounds().Size()
	resultImage := image.NewGray(image.Rect(0, 0, originalSize.X, originalSize.Y))
	utils.ParallelForEachPixel(originalSize, func(x int, y int) {
		sum := float64(0)
		for ky := 0; ky < kernelSize.Y; ky++ {
			for kx := 0; kx < kernelSize.X; kx++ {
				pixel := padded.GrayAt(x+kx, y+ky)
				kE := kernel.At(kx, ky)
				sum += float64(pixel.Y) * kE
			}
		}
		sum = utils.ClampF64(sum+0.5, 0, 255)
		resultImage.SetGray(x, y, color.Gray{uint8(sum)})
	})
	return resultImage, nil
}

// BoxBlurGray smooths img with a normalized size x size box filter centered on each pixel.
// Sums are kept in integers and rounded to nearest. It runs on the calling goroutine.
func BoxBlurGray(img *image.Gray, size int, border BorderPad) (*image.Gray, error) {
	if size <= 0 || !utils.IsOdd(size) {
		return nil, errors.Errorf("box filter size must be a positive odd number, got %d", size)
	}
	kernelSize := image.Point{size, size}
	padded, err := PaddingGray(img, kernelSize, image.Point{size / 2, size / 2}, border)
	if err != nil {
		return nil, err
	}
	area := size * size
	originalSize := img.Bounds().Size()
	resultImage := image.NewGray(image.Rect(0, 0, originalSize.X, originalSize.Y))
	for y := 0; y < originalSize.Y; y++ {
		for x := 0; x < originalSize.X; x++ {
			sum := 0
			for ky := 0; ky < size; ky++ {
				row := padded.Pix[(y+ky)*padded.Stride+x:]
				for kx := 0; kx < size; kx++ {
					sum += int(row[kx])
				}
			}
			resultImage.Pix[y*resultImage.Stride+x] = uint8((sum + area/2) / area)
		}
	}
	return resultImage, nil
}
