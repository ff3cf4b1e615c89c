package pointcloud

import (
	"math"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
)

// orderedPointCloud stores points in a slice in the order they were set.
type orderedPointCloud struct {
	points []PointAndData
	meta   MetaData
}

// NewOrdered returns an empty ordered PointCloud.
func NewOrdered() PointCloud {
	return NewOrderedWithPrealloc(0)
}

// NewOrderedWithPrealloc returns an empty, preallocated ordered PointCloud.
func NewOrderedWithPrealloc(size int) PointCloud {
	return &orderedPointCloud{
		points: make([]PointAndData, 0, size),
		meta:   NewMetaData(),
	}
}

// NewFromPoints builds an ordered cloud holding the given positions. data is either nil or
// holds one color per point.
func NewFromPoints(pts []r3.Vector, data []Data) (PointCloud, error) {
	if data != nil && len(data) != len(pts) {
		return nil, errors.Errorf("got %d points but %d data entries", len(pts), len(data))
	}
	cloud := NewOrderedWithPrealloc(len(pts))
	for i, p := range pts {
		var d Data
		if data != nil {
			d = data[i]
		}
		if err := cloud.Set(p, d); err != nil {
			return nil, err
		}
	}
	return cloud, nil
}

func (cloud *orderedPointCloud) Size() int {
	return len(cloud.points)
}

func (cloud *orderedPointCloud) MetaData() MetaData {
	return cloud.meta
}

// Set rejects positions that cannot be written out.
func (cloud *orderedPointCloud) Set(p r3.Vector, d Data) error {
	for _, c := range []float64{p.X, p.Y, p.Z} {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return errors.Errorf("point %v is not finite", p)
		}
	}
	cloud.points = append(cloud.points, PointAndData{P: p, D: d})
	cloud.meta.Merge(p, d)
	return nil
}

func (cloud *orderedPointCloud) Iterate(fn func(p r3.Vector, d Data) bool) {
	for _, pd := range cloud.points {
		if !fn(pd.P, pd.D) {
			return
		}
	}
}

// Positions returns the positions of the cloud in order.
func Positions(cloud PointCloud) []r3.Vector {
	out := make([]r3.Vector, 0, cloud.Size())
	cloud.Iterate(func(p r3.Vector, _ Data) bool {
		out = append(out, p)
		return true
	})
	return out
}
