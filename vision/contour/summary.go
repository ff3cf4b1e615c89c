package contour

import (
	"fmt"
	"math"

	"github.com/golang/geo/r3"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat"

	"go.viam.com/contour3d/rimage"
)

// Summary describes the extracted boundary.
type Summary struct {
	ContourPixels int       `json:"contour_pixels"`
	Points        int       `json:"points"`
	PixelArea     float64   `json:"pixel_area"`
	PixelPerim    float64   `json:"pixel_perimeter"`
	Length        float64   `json:"length"`
	Centroid      r3.Vector `json:"centroid"`
	MeanZ         float64   `json:"mean_z"`
	StdDevZ       float64   `json:"stddev_z"`
	MedianZ       float64   `json:"median_z"`
	MinZ          float64   `json:"min_z"`
	MaxZ          float64   `json:"max_z"`
}

// Summarize computes statistics of the result. The 3D length is that of the closed polyline
// through the boundary points. Depth statistics are zero when there are no points.
func Summarize(res *Result) Summary {
	s := Summary{
		ContourPixels: len(res.Contour),
		Points:        len(res.Points),
		PixelArea:     res.Area,
		PixelPerim:    rimage.ContourPerimeter(res.Contour),
	}
	if len(res.Points) == 0 {
		return s
	}

	s.Length = ClosedLength(res.Points)

	zs := make([]float64, len(res.Points))
	s.MinZ, s.MaxZ = math.Inf(1), math.Inf(-1)
	for i, p := range res.Points {
		s.Centroid = s.Centroid.Add(p)
		zs[i] = p.Z
		s.MinZ = math.Min(s.MinZ, p.Z)
		s.MaxZ = math.Max(s.MaxZ, p.Z)
	}
	s.Centroid = s.Centroid.Mul(1 / float64(len(res.Points)))
	if len(zs) > 1 {
		s.MeanZ, s.StdDevZ = stat.MeanStdDev(zs, nil)
	} else {
		s.MeanZ = zs[0]
	}
	// the input is not empty, Median cannot fail
	s.MedianZ, _ = stats.Median(zs)
	return s
}

// String renders the summary as a table.
func (s Summary) String() string {
	t := table.NewWriter()
	t.AppendHeader(table.Row{"Measure", "Value"})
	t.AppendRows([]table.Row{
		{"Contour pixels", s.ContourPixels},
		{"Boundary points", s.Points},
		{"Pixel area", fmt.Sprintf("%.1f", s.PixelArea)},
		{"Pixel perimeter", fmt.Sprintf("%.1f", s.PixelPerim)},
		{"3D length", fmt.Sprintf("%.3f", s.Length)},
		{"Centroid", fmt.Sprintf("X:%.3f, Y:%.3f, Z:%.3f", s.Centroid.X, s.Centroid.Y, s.Centroid.Z)},
		{"Z mean / stddev", fmt.Sprintf("%.3f / %.3f", s.MeanZ, s.StdDevZ)},
		{"Z median", fmt.Sprintf("%.3f", s.MedianZ)},
		{"Z range", fmt.Sprintf("%.3f .. %.3f", s.MinZ, s.MaxZ)},
	})
	return t.Render()
}

// ClosedLength returns the length of the closed polyline through the points.
func ClosedLength(points []r3.Vector) float64 {
	if len(points) < 2 {
		return 0
	}
	total := 0.
	prev := points[len(points)-1]
	for _, p := range points {
		total += p.Sub(prev).Norm()
		prev = p
	}
	return total
}
