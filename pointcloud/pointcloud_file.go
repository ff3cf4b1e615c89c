package pointcloud

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"image/color"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"

	"go.viam.com/contour3d/utils"
)

// PCDType is the format of a pcd file.
type PCDType int

const (
	// PCDAscii ascii format for pcd.
	PCDAscii PCDType = iota
	// PCDBinary binary format for pcd.
	PCDBinary
)

// PCDTypeFromString parses "ascii" or "binary".
func PCDTypeFromString(s string) (PCDType, error) {
	switch strings.ToLower(s) {
	case "ascii", "":
		return PCDAscii, nil
	case "binary":
		return PCDBinary, nil
	default:
		return 0, errors.Errorf("unknown pcd data type %q", s)
	}
}

func (t PCDType) String() string {
	if t == PCDBinary {
		return "binary"
	}
	return "ascii"
}

func colorToPCDInt(pt Data) int {
	if pt == nil || !pt.HasColor() {
		return 255 << 16
	}

	r, g, b := pt.RGB255()
	x := 0

	x |= (int(r) << 16)
	x |= (int(g) << 8)
	x |= (int(b) << 0)
	return x
}

func pcdIntToColor(c int) color.NRGBA {
	r := uint8(0xFF & (c >> 16))
	g := uint8(0xFF & (c >> 8))
	b := uint8(0xFF & (c >> 0))
	return color.NRGBA{r, g, b, 255}
}

// ToPCD writes the cloud in the PCD v0.7 format as a single row, in iteration order. Positions
// are written in the units they are stored in.
func ToPCD(cloud PointCloud, out io.Writer, outputType PCDType) error {
	hasColor := cloud.MetaData().HasColor

	header := "VERSION .7\n"
	if hasColor {
		header += "FIELDS x y z rgb\n" +
			"SIZE 4 4 4 4\n" +
			"TYPE F F F I\n" +
			"COUNT 1 1 1 1\n"
	} else {
		header += "FIELDS x y z\n" +
			"SIZE 4 4 4\n" +
			"TYPE F F F\n" +
			"COUNT 1 1 1\n"
	}
	header += fmt.Sprintf("WIDTH %d\n"+
		"HEIGHT %d\n"+
		"VIEWPOINT 0 0 0 1 0 0 0\n"+
		"POINTS %d\n"+
		"DATA %s\n",
		cloud.Size(), 1, cloud.Size(), outputType)
	if _, err := io.WriteString(out, header); err != nil {
		return err
	}
	return writePCDData(cloud, out, outputType, hasColor)
}

func writePCDData(cloud PointCloud, out io.Writer, pcdtype PCDType, hasColor bool) error {
	var err error
	cloud.Iterate(func(pos r3.Vector, d Data) bool {
		switch pcdtype {
		case PCDBinary:
			buf := make([]byte, 12, 16)
			binary.LittleEndian.PutUint32(buf, math.Float32bits(float32(pos.X)))
			binary.LittleEndian.PutUint32(buf[4:], math.Float32bits(float32(pos.Y)))
			binary.LittleEndian.PutUint32(buf[8:], math.Float32bits(float32(pos.Z)))
			if hasColor {
				buf = binary.LittleEndian.AppendUint32(buf, uint32(colorToPCDInt(d)))
			}
			_, err = out.Write(buf)
		default:
			if hasColor {
				_, err = fmt.Fprintf(out, "%f %f %f %d\n", pos.X, pos.Y, pos.Z, colorToPCDInt(d))
			} else {
				_, err = fmt.Fprintf(out, "%f %f %f\n", pos.X, pos.Y, pos.Z)
			}
		}
		return err == nil
	})
	return err
}

// WriteToPCDFile writes the cloud to the named file.
func WriteToPCDFile(cloud PointCloud, fn string, outputType PCDType) error {
	return utils.CreateFileFunc(fn, func(w io.Writer) error {
		return ToPCD(cloud, w, outputType)
	})
}

var pcdHeaderFields = []string{"VERSION", "FIELDS", "SIZE", "TYPE", "COUNT", "WIDTH", "HEIGHT", "VIEWPOINT", "POINTS", "DATA"}

type pcdHeader struct {
	hasColor bool
	points   int
	data     PCDType
}

func readPCDHeader(in *bufio.Reader) (pcdHeader, error) {
	var header pcdHeader
	index := 0
	for index < len(pcdHeaderFields) {
		line, err := in.ReadString('\n')
		if err != nil {
			return header, errors.Wrap(err, "truncated pcd header")
		}
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		name := pcdHeaderFields[index]
		field, value, _ := strings.Cut(line, " ")
		if field != name {
			return header, errors.Errorf("line is supposed to start with %s but is %s", name, line)
		}
		switch name {
		case "VERSION":
			if value != ".7" && value != "0.7" {
				return header, errors.Errorf("unsupported pcd version %s", value)
			}
		case "FIELDS":
			switch value {
			case "x y z":
			case "x y z rgb":
				header.hasColor = true
			default:
				return header, errors.Errorf("unsupported pcd fields %s", value)
			}
		case "POINTS":
			header.points, err = strconv.Atoi(value)
			if err != nil || header.points < 0 {
				return header, errors.Errorf("invalid POINTS field %s", value)
			}
		case "DATA":
			header.data, err = PCDTypeFromString(value)
			if err != nil {
				return header, err
			}
		}
		index++
	}
	return header, nil
}

// ReadPCD reads a cloud written by ToPCD.
func ReadPCD(inRaw io.Reader) (PointCloud, error) {
	in := bufio.NewReader(inRaw)
	header, err := readPCDHeader(in)
	if err != nil {
		return nil, err
	}
	cloud := NewOrderedWithPrealloc(header.points)
	for i := 0; i < header.points; i++ {
		var p r3.Vector
		var d Data
		if header.data == PCDBinary {
			size := 12
			if header.hasColor {
				size = 16
			}
			buf := make([]byte, size)
			if _, err := io.ReadFull(in, buf); err != nil {
				return nil, errors.Wrapf(err, "reading point %d", i)
			}
			p.X = float64(math.Float32frombits(binary.LittleEndian.Uint32(buf)))
			p.Y = float64(math.Float32frombits(binary.LittleEndian.Uint32(buf[4:])))
			p.Z = float64(math.Float32frombits(binary.LittleEndian.Uint32(buf[8:])))
			if header.hasColor {
				d = NewColoredData(pcdIntToColor(int(binary.LittleEndian.Uint32(buf[12:]))))
			}
		} else {
			line, err := in.ReadString('\n')
			if err != nil && !(errors.Is(err, io.EOF) && line != "") {
				return nil, errors.Wrapf(err, "reading point %d", i)
			}
			tokens := strings.Fields(line)
			want := 3
			if header.hasColor {
				want = 4
			}
			if len(tokens) != want {
				return nil, errors.Errorf("point %d has %d fields, expected %d", i, len(tokens), want)
			}
			coords := make([]float64, 3)
			for j := range coords {
				if coords[j], err = strconv.ParseFloat(tokens[j], 64); err != nil {
					return nil, errors.Wrapf(err, "point %d", i)
				}
			}
			p = r3.Vector{X: coords[0], Y: coords[1], Z: coords[2]}
			if header.hasColor {
				c, err := strconv.Atoi(tokens[3])
				if err != nil {
					return nil, errors.Wrapf(err, "point %d", i)
				}
				d = NewColoredData(pcdIntToColor(c))
			}
		}
		if err := cloud.Set(p, d); err != nil {
			return nil, err
		}
	}
	return cloud, nil
}
