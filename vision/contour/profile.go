package contour

import (
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// Size of the saved depth profile plot.
const (
	profileWidth  = 8 * vg.Inch
	profileHeight = 4 * vg.Inch
)

// DepthProfile returns, for each boundary point in order, its distance along the boundary
// from the first point and its depth.
func DepthProfile(points []r3.Vector) plotter.XYs {
	xys := make(plotter.XYs, len(points))
	dist := 0.
	for i, p := range points {
		if i > 0 {
			dist += p.Sub(points[i-1]).Norm()
		}
		xys[i].X = dist
		xys[i].Y = p.Z
	}
	return xys
}

// PlotDepthProfile plots the depth profile of the boundary. It needs at least two points.
func PlotDepthProfile(points []r3.Vector) (*plot.Plot, error) {
	if len(points) < 2 {
		return nil, errors.Errorf("a depth profile needs at least 2 points, got %d", len(points))
	}
	line, err := plotter.NewLine(DepthProfile(points))
	if err != nil {
		return nil, err
	}

	p := plot.New()
	p.Title.Text = "Boundary depth profile"
	p.X.Label.Text = "distance along boundary"
	p.Y.Label.Text = "z"
	p.Add(plotter.NewGrid(), line)
	return p, nil
}
