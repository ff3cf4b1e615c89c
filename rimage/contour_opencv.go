//go:build opencv

package rimage

import (
	"image"

	"gocv.io/x/gocv"
)

// FindContoursOpenCV traces the borders of mask with OpenCV in list mode without chain
// approximation. It is only built with the opencv tag and is used to cross-check
// FindContoursGray.
func FindContoursOpenCV(mask *image.Gray) ([]Contour, error) {
	m, err := gocv.ImageGrayToMatGray(mask)
	if err != nil {
		return nil, err
	}
	defer m.Close()

	pv := gocv.FindContours(m, gocv.RetrievalList, gocv.ChainApproxNone)
	defer pv.Close()

	contours := make([]Contour, 0, pv.Size())
	for _, pts := range pv.ToPoints() {
		contours = append(contours, Contour(pts))
	}
	return contours, nil
}
