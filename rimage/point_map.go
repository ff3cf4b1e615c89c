package rimage

import (
	"image"
	"math"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
)

// XYZ is a single sample of a render point map as delivered by the camera driver. Pixels
// without a depth measurement carry NaN in every component.
type XYZ struct {
	X, Y, Z float32
}

// NewInvalidXYZ returns the "no depth" sentinel sample.
func NewInvalidXYZ() XYZ {
	nan := float32(math.NaN())
	return XYZ{nan, nan, nan}
}

// Valid reports whether the sample carries a depth measurement.
func (p XYZ) Valid() bool {
	return !math.IsNaN(float64(p.X))
}

// Vector returns the sample as a float64 vector.
func (p XYZ) Vector() r3.Vector {
	return r3.Vector{X: float64(p.X), Y: float64(p.Y), Z: float64(p.Z)}
}

// PointMap is a rectangular grid of 3D surface points co-registered with a color image:
// the cell at (x, y) is the 3D position of the surface seen at pixel (x, y). A PointMap is
// immutable once created.
type PointMap struct {
	width, height int
	data          []r3.Vector
}

// NewPointMap copies the given row-major samples into a new PointMap.
func NewPointMap(width, height int, samples []XYZ) (*PointMap, error) {
	if width <= 0 || height <= 0 {
		return nil, errors.Errorf("point map dimensions must be positive, got %dx%d", width, height)
	}
	if len(samples) != width*height {
		return nil, errors.Errorf("point map of %dx%d needs %d samples, got %d",
			width, height, width*height, len(samples))
	}
	pm := &PointMap{
		width:  width,
		height: height,
		data:   make([]r3.Vector, len(samples)),
	}
	for i, s := range samples {
		pm.data[i] = s.Vector()
	}
	return pm, nil
}

func (pm *PointMap) kxy(x, y int) int {
	return (y * pm.width) + x
}

// Width returns the number of columns.
func (pm *PointMap) Width() int {
	return pm.width
}

// Height returns the number of rows.
func (pm *PointMap) Height() int {
	return pm.height
}

// Bounds returns the pixel rectangle covered by the map.
func (pm *PointMap) Bounds() image.Rectangle {
	return image.Rect(0, 0, pm.width, pm.height)
}

// In reports whether (x, y) lies inside the map.
func (pm *PointMap) In(x, y int) bool {
	return x >= 0 && y >= 0 && x < pm.width && y < pm.height
}

// At returns the 3D point at column x, row y.
func (pm *PointMap) At(x, y int) r3.Vector {
	return pm.data[pm.kxy(x, y)]
}

// Get returns the 3D point at the given pixel.
func (pm *PointMap) Get(p image.Point) r3.Vector {
	return pm.At(p.X, p.Y)
}

// Valid reports whether the pixel at (x, y) carries a depth measurement. Only the X component
// is inspected; the driver marks all three components together.
func (pm *PointMap) Valid(x, y int) bool {
	return !math.IsNaN(pm.At(x, y).X)
}

// ValidCount returns the number of cells carrying a depth measurement.
func (pm *PointMap) ValidCount() int {
	n := 0
	for _, v := range pm.data {
		if !math.IsNaN(v.X) {
			n++
		}
	}
	return n
}
