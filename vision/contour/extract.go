package contour

import (
	"image"

	"go.viam.com/contour3d/rimage"
)

// ExtractContours traces every border of the mask, outer borders and hole borders alike,
// keeping every border pixel.
func ExtractContours(mask *image.Gray) []rimage.Contour {
	contours, _ := rimage.FindContoursGray(mask)
	return contours
}

// SelectLargest returns the index and area of the contour enclosing the largest area. The
// first contour whose area is strictly greater than the best so far wins, so ties keep the
// earlier contour and a list of zero area contours selects index 0.
func SelectLargest(contours []rimage.Contour) (int, float64, error) {
	if len(contours) == 0 {
		return -1, 0, ErrNoContourFound
	}
	best, bestArea := 0, 0.
	for i, c := range contours {
		if area := rimage.ContourArea(c); area > bestArea {
			best, bestArea = i, area
		}
	}
	return best, bestArea, nil
}
