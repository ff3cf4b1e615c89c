package contour

import (
	"image"

	"github.com/golang/geo/r3"

	"go.viam.com/contour3d/logging"
	"go.viam.com/contour3d/rimage"
)

// Intermediates are copies of the images produced along the way, kept for inspection.
type Intermediates struct {
	// Gray is the luminance of the color grid.
	Gray *image.Gray
	// Threshold is the mask straight out of the binarizer.
	Threshold *image.Gray
	// Filled is the mask after polarity and hole filling, before closing.
	Filled *image.Gray
	// Closed is the final normalized mask.
	Closed *image.Gray
}

// Result is everything a run of the pipeline produced.
type Result struct {
	// Mask is the normalized mask the contours were traced on.
	Mask     *image.Gray
	Contours []rimage.Contour
	// Selected indexes Contours.
	Selected int
	Area     float64
	Contour  rimage.Contour
	// Points are the 3D positions of the selected contour's pixels that have depth.
	Points []r3.Vector
	// PointPixels holds the pixel of each point.
	PointPixels []image.Point

	// Intermediates is only set when Config.KeepIntermediates is.
	Intermediates *Intermediates
}

// Run extracts the boundary of the largest target region from co-registered position and
// color grids. It returns an error wrapping ErrDimensionMismatch if the grids disagree and
// ErrNoContourFound, with a nil Result, if the normalized mask holds no contour.
func Run(pm *rimage.PointMap, colors image.Image, cfg Config, logger logging.Logger) (*Result, error) {
	if err := cfg.Validate("pipeline"); err != nil {
		return nil, err
	}
	if err := CheckGrids(pm, colors); err != nil {
		return nil, err
	}

	gray, mask, err := binarize(colors, cfg)
	if err != nil {
		return nil, err
	}
	var inter *Intermediates
	if cfg.KeepIntermediates {
		inter = &Intermediates{Gray: gray, Threshold: rimage.CloneGray(mask)}
	}
	logger.Debugw("binarized", "threshold", cfg.Threshold, "kernel", cfg.SmoothingKernelSize,
		"foreground", rimage.CountGray(mask, rimage.Foreground))

	filled, err := normalize(mask, cfg, logger.Sublogger("normalize"))
	if err != nil {
		return nil, err
	}
	if inter != nil {
		inter.Filled = filled
		inter.Closed = rimage.CloneGray(mask)
	}

	contours := ExtractContours(mask)
	selected, area, err := SelectLargest(contours)
	if err != nil {
		logger.Infow("no contour in normalized mask", "foreground", rimage.CountGray(mask, rimage.Foreground))
		return nil, err
	}
	c := contours[selected]
	logger.Debugw("selected contour", "contours", len(contours), "index", selected, "area", area, "pixels", len(c))

	points, pixels := project(c, pm)
	if skipped := len(c) - len(points); skipped > 0 {
		logger.Debugw("skipped contour pixels without depth", "skipped", skipped)
	}
	logger.Infow("extracted boundary", "points", len(points), "area", area)

	return &Result{
		Mask:          mask,
		Contours:      contours,
		Selected:      selected,
		Area:          area,
		Contour:       c,
		Points:        points,
		PointPixels:   pixels,
		Intermediates: inter,
	}, nil
}
