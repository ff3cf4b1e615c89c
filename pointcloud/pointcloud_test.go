package pointcloud

import (
	"bytes"
	"image/color"
	"math"
	"path/filepath"
	"strings"
	"testing"

	"github.com/golang/geo/r3"
	"go.viam.com/test"
)

func TestOrderedCloud(t *testing.T) {
	cloud := NewOrdered()
	test.That(t, cloud.Size(), test.ShouldEqual, 0)

	pts := []r3.Vector{{X: 3, Y: 1, Z: 500}, {X: -1, Y: 2, Z: 480}, {X: 3, Y: 1, Z: 500}}
	for _, p := range pts {
		test.That(t, cloud.Set(p, nil), test.ShouldBeNil)
	}
	test.That(t, cloud.Size(), test.ShouldEqual, 3)
	test.That(t, Positions(cloud), test.ShouldResemble, pts)

	meta := cloud.MetaData()
	test.That(t, meta.HasColor, test.ShouldBeFalse)
	test.That(t, meta.MinX, test.ShouldEqual, -1.)
	test.That(t, meta.MaxX, test.ShouldEqual, 3.)
	test.That(t, meta.MinZ, test.ShouldEqual, 480.)
	test.That(t, meta.MaxZ, test.ShouldEqual, 500.)

	err := cloud.Set(r3.Vector{X: math.NaN()}, nil)
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, cloud.Size(), test.ShouldEqual, 3)

	count := 0
	cloud.Iterate(func(p r3.Vector, d Data) bool {
		count++
		return false
	})
	test.That(t, count, test.ShouldEqual, 1)
}

func TestNewFromPoints(t *testing.T) {
	pts := []r3.Vector{{X: 1, Y: 2, Z: 3}, {X: 4, Y: 5, Z: 6}}
	_, err := NewFromPoints(pts, []Data{nil})
	test.That(t, err, test.ShouldNotBeNil)

	cloud, err := NewFromPoints(pts, []Data{NewColoredData(color.NRGBA{1, 2, 3, 255}), NewBasicData()})
	test.That(t, err, test.ShouldBeNil)
	test.That(t, cloud.MetaData().HasColor, test.ShouldBeTrue)

	cloud, err = NewFromPoints(nil, nil)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, cloud.Size(), test.ShouldEqual, 0)
}

func TestPCDAscii(t *testing.T) {
	cloud, err := NewFromPoints([]r3.Vector{{X: 1.5, Y: -2, Z: 500}, {X: 0, Y: 0.25, Z: 499}}, nil)
	test.That(t, err, test.ShouldBeNil)

	var buf bytes.Buffer
	test.That(t, ToPCD(cloud, &buf, PCDAscii), test.ShouldBeNil)
	test.That(t, buf.String(), test.ShouldEqual, strings.Join([]string{
		"VERSION .7",
		"FIELDS x y z",
		"SIZE 4 4 4",
		"TYPE F F F",
		"COUNT 1 1 1",
		"WIDTH 2",
		"HEIGHT 1",
		"VIEWPOINT 0 0 0 1 0 0 0",
		"POINTS 2",
		"DATA ascii",
		"1.500000 -2.000000 500.000000",
		"0.000000 0.250000 499.000000",
		"",
	}, "\n"))

	back, err := ReadPCD(&buf)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, Positions(back), test.ShouldResemble, Positions(cloud))
}

func TestPCDBinaryWithColor(t *testing.T) {
	red := NewColoredData(color.NRGBA{230, 0, 0, 255})
	cloud, err := NewFromPoints([]r3.Vector{{X: 1, Y: 2, Z: 3}, {X: 4, Y: 5, Z: 6}}, []Data{red, NewBasicData()})
	test.That(t, err, test.ShouldBeNil)

	var buf bytes.Buffer
	test.That(t, ToPCD(cloud, &buf, PCDBinary), test.ShouldBeNil)
	test.That(t, buf.String(), test.ShouldContainSubstring, "FIELDS x y z rgb\n")
	test.That(t, buf.String(), test.ShouldContainSubstring, "DATA binary\n")

	back, err := ReadPCD(&buf)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, back.Size(), test.ShouldEqual, 2)
	test.That(t, Positions(back), test.ShouldResemble, Positions(cloud))
	var colors []color.Color
	back.Iterate(func(_ r3.Vector, d Data) bool {
		colors = append(colors, d.Color())
		return true
	})
	test.That(t, colors[0], test.ShouldResemble, &color.NRGBA{230, 0, 0, 255})
	// uncolored points in a colored cloud are written red
	test.That(t, colors[1], test.ShouldResemble, &color.NRGBA{255, 0, 0, 255})
}

func TestPCDFile(t *testing.T) {
	cloud, err := NewFromPoints([]r3.Vector{{X: 1, Y: 2, Z: 3}}, nil)
	test.That(t, err, test.ShouldBeNil)
	fn := filepath.Join(t.TempDir(), "boundary.pcd")
	test.That(t, WriteToPCDFile(cloud, fn, PCDAscii), test.ShouldBeNil)
	test.That(t, WriteToPCDFile(cloud, filepath.Join(fn, "nope.pcd"), PCDAscii), test.ShouldNotBeNil)
}

func TestReadPCDErrors(t *testing.T) {
	_, err := ReadPCD(strings.NewReader("VERSION .7\nFIELDS x y z normal\n"))
	test.That(t, err, test.ShouldNotBeNil)

	_, err = ReadPCD(strings.NewReader("VERSION .7\nFIELDS x y z\n"))
	test.That(t, err, test.ShouldNotBeNil)

	header := "VERSION .7\nFIELDS x y z\nSIZE 4 4 4\nTYPE F F F\nCOUNT 1 1 1\nWIDTH 2\nHEIGHT 1\n" +
		"VIEWPOINT 0 0 0 1 0 0 0\nPOINTS 2\nDATA ascii\n"
	_, err = ReadPCD(strings.NewReader(header + "1 2 3\n"))
	test.That(t, err, test.ShouldNotBeNil)
	_, err = ReadPCD(strings.NewReader(header + "1 2 3\n4 5\n"))
	test.That(t, err, test.ShouldNotBeNil)

	back, err := ReadPCD(strings.NewReader("# comment\n" + header + "1 2 3\n4 5 6"))
	test.That(t, err, test.ShouldBeNil)
	test.That(t, back.Size(), test.ShouldEqual, 2)

	_, err = PCDTypeFromString("compressed")
	test.That(t, err, test.ShouldNotBeNil)
}
