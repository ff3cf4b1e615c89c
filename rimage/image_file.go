package rimage

import (
	"bufio"
	"encoding/binary"
	"image"
	"image/draw"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/lmittmann/ppm"
	"github.com/pkg/errors"
	"github.com/xfmoulet/qoi"
	"go.viam.com/utils"

	cutils "go.viam.com/contour3d/utils"
)

// JPEGQuality is the quality used when writing .jpg files.
const JPEGQuality = 95

// NewImageFromFile decodes the image at the given path. Any format registered with the
// image package is accepted, including ppm and qoi.
func NewImageFromFile(fn string) (image.Image, error) {
	img, err := imaging.Open(fn)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot decode image %q", fn)
	}
	return img, nil
}

// WriteImageToFile encodes img to the given path, choosing the format from the extension.
func WriteImageToFile(path string, img image.Image) error {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".ppm":
		return cutils.CreateFileFunc(path, func(w io.Writer) error { return ppm.Encode(w, toRGBA(img)) })
	case ".qoi":
		return cutils.CreateFileFunc(path, func(w io.Writer) error { return qoi.Encode(w, img) })
	default:
		return imaging.Save(img, path, imaging.JPEGQuality(JPEGQuality))
	}
}

// toRGBA returns img as an *image.RGBA starting at the origin; the ppm encoder accepts
// nothing else.
func toRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok && rgba.Rect.Min == (image.Point{}) {
		return rgba
	}
	b := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)
	return rgba
}

// ReadRawRGBA reads width*height tightly packed RGBA8 pixels.
func ReadRawRGBA(r io.Reader, width, height int) (*image.NRGBA, error) {
	if width <= 0 || height <= 0 {
		return nil, errors.Errorf("image dimensions must be positive, got %dx%d", width, height)
	}
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	if _, err := io.ReadFull(r, img.Pix); err != nil {
		return nil, errors.Wrapf(err, "expected %d bytes of RGBA data", len(img.Pix))
	}
	return img, nil
}

// ReadRawRGBAFile reads a raw RGBA8 file of the given dimensions.
func ReadRawRGBAFile(fn string, width, height int) (*image.NRGBA, error) {
	//nolint:gosec
	f, err := os.Open(fn)
	if err != nil {
		return nil, err
	}
	defer utils.UncheckedErrorFunc(f.Close)
	return ReadRawRGBA(bufio.NewReader(f), width, height)
}

// ReadRawXYZ reads count little endian float32 triples.
func ReadRawXYZ(r io.Reader, count int) ([]XYZ, error) {
	samples := make([]XYZ, count)
	if err := binary.Read(r, binary.LittleEndian, samples); err != nil {
		return nil, errors.Wrapf(err, "expected %d xyz samples", count)
	}
	return samples, nil
}

// ReadRawXYZFile reads a raw little endian float32 xyz file holding width*height samples.
func ReadRawXYZFile(fn string, width, height int) ([]XYZ, error) {
	if width <= 0 || height <= 0 {
		return nil, errors.Errorf("point map dimensions must be positive, got %dx%d", width, height)
	}
	//nolint:gosec
	f, err := os.Open(fn)
	if err != nil {
		return nil, err
	}
	defer utils.UncheckedErrorFunc(f.Close)
	return ReadRawXYZ(bufio.NewReader(f), width*height)
}

// WriteRawXYZ writes samples as little endian float32 triples.
func WriteRawXYZ(w io.Writer, samples []XYZ) error {
	return binary.Write(w, binary.LittleEndian, samples)
}

// WriteRawRGBA writes the pixels of img as tightly packed RGBA8.
func WriteRawRGBA(w io.Writer, img *image.NRGBA) error {
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		start := img.PixOffset(b.Min.X, y)
		if _, err := w.Write(img.Pix[start : start+4*b.Dx()]); err != nil {
			return err
		}
	}
	return nil
}
