package rimage

import (
	"image"
	"math"

	"gonum.org/v1/gonum/mat"

	"go.viam.com/contour3d/utils"
)

// BorderType tells whether a traced border surrounds a foreground component or a hole in one.
type BorderType int

const (
	// Hole is the border of a background region enclosed by foreground.
	Hole BorderType = iota + 1
	// Outer is the outside border of a foreground component.
	Outer
)

func (b BorderType) String() string {
	switch b {
	case Hole:
		return "hole"
	case Outer:
		return "outer"
	default:
		return "unknown"
	}
}

// Node is an entry of the border hierarchy produced by FindContours. Links are indices into
// the hierarchy slice; -1 means none.
type Node struct {
	Parent      int
	FirstChild  int
	NextSibling int
	Border      BorderType
}

func newNode(border BorderType, parent int) Node {
	return Node{Parent: parent, FirstChild: -1, NextSibling: -1, Border: border}
}

// Contour is an ordered closed sequence of pixel positions. The last point is implicitly
// connected back to the first.
type Contour []image.Point

// neighborhood offsets (drow, dcol) in counter-clockwise order starting east.
var neighborhood = [8][2]int{
	{0, 1},   // E
	{-1, 1},  // NE
	{-1, 0},  // N
	{-1, -1}, // NW
	{0, -1},  // W
	{1, -1},  // SW
	{1, 0},   // S
	{1, 1},   // SE
}

func directionTo(r, c, tr, tc int) int {
	dr, dc := tr-r, tc-c
	for d, off := range neighborhood {
		if off[0] == dr && off[1] == dc {
			return d
		}
	}
	panic("pixels are not 8-neighbors")
}

// labelGrid is the working image of the border following: the input mask surrounded by a
// one pixel frame of zeros, holding 0, 1 or a signed border number.
type labelGrid struct {
	rows, cols int
	data       []int
}

func newLabelGrid(nRows, nCols int, isSet func(r, c int) bool) *labelGrid {
	g := &labelGrid{rows: nRows + 2, cols: nCols + 2}
	g.data = make([]int, g.rows*g.cols)
	for r := 0; r < nRows; r++ {
		for c := 0; c < nCols; c++ {
			if isSet(r, c) {
				g.data[(r+1)*g.cols+c+1] = 1
			}
		}
	}
	return g
}

func (g *labelGrid) at(r, c int) int {
	return g.data[r*g.cols+c]
}

func (g *labelGrid) set(r, c, v int) {
	g.data[r*g.cols+c] = v
}

// FindContours traces every border of the binary image with the Suzuki-Abe border following
// algorithm. Any value > 0 is foreground and everything outside the image is background.
// Contours are returned in the order their starting pixel is met in a raster scan, with
// every boundary pixel listed (no chain approximation) under 8-connectivity. The hierarchy
// has one more entry than there are contours: entry 0 is the image frame and entry k+1
// describes contours[k].
func FindContours(binary *mat.Dense) ([]Contour, []Node) {
	nRows, nCols := binary.Dims()
	return suzukiAbe(newLabelGrid(nRows, nCols, func(r, c int) bool {
		return binary.At(r, c) > 0
	}))
}

// FindContoursGray is FindContours on a gray mask; non-zero pixels are foreground.
func FindContoursGray(mask *image.Gray) ([]Contour, []Node) {
	b := mask.Bounds()
	return suzukiAbe(newLabelGrid(b.Dy(), b.Dx(), func(r, c int) bool {
		return mask.Pix[mask.PixOffset(b.Min.X+c, b.Min.Y+r)] != 0
	}))
}

func suzukiAbe(g *labelGrid) ([]Contour, []Node) {
	contours := make([]Contour, 0)
	hierarchy := []Node{newNode(Hole, -1)}
	nbd := 1

	for i := 1; i < g.rows-1; i++ {
		lnbd := 1
		for j := 1; j < g.cols-1; j++ {
			fij := g.at(i, j)
			var border BorderType
			var i2, j2 int
			switch {
			case fij == 1 && g.at(i, j-1) == 0:
				border = Outer
				i2, j2 = i, j-1
			case fij >= 1 && g.at(i, j+1) == 0:
				border = Hole
				i2, j2 = i, j+1
				if fij > 1 {
					lnbd = fij
				}
			default:
				if fij != 0 && fij != 1 {
					lnbd = utils.AbsInt(fij)
				}
				continue
			}
			nbd++

			prev := hierarchy[lnbd-1]
			parent := lnbd - 1
			if prev.Border == border {
				parent = prev.Parent
			}
			addChild(&hierarchy, newNode(border, parent))

			contours = append(contours, followBorder(g, i, j, i2, j2, nbd))

			if v := g.at(i, j); v != 1 {
				lnbd = utils.AbsInt(v)
			}
		}
	}
	return contours, hierarchy
}

func addChild(hierarchy *[]Node, node Node) {
	nodes := *hierarchy
	idx := len(nodes)
	nodes = append(nodes, node)
	if p := node.Parent; p >= 0 {
		if nodes[p].FirstChild == -1 {
			nodes[p].FirstChild = idx
		} else {
			sibling := nodes[p].FirstChild
			for nodes[sibling].NextSibling != -1 {
				sibling = nodes[sibling].NextSibling
			}
			nodes[sibling].NextSibling = idx
		}
	}
	*hierarchy = nodes
}

// followBorder traces the border starting at (i, j), entered from the background pixel
// (i2, j2), labelling it with nbd. Points are returned in image coordinates.
func followBorder(g *labelGrid, i, j, i2, j2, nbd int) Contour {
	toPoint := func(r, c int) image.Point { return image.Point{X: c - 1, Y: r - 1} }

	// look clockwise for the first non-zero neighbor
	start := directionTo(i, j, i2, j2)
	i1, j1 := -1, -1
	for k := 0; k < 8; k++ {
		d := (start - k + 8) % 8
		r, c := i+neighborhood[d][0], j+neighborhood[d][1]
		if g.at(r, c) != 0 {
			i1, j1 = r, c
			break
		}
	}
	if i1 < 0 {
		g.set(i, j, -nbd)
		return Contour{toPoint(i, j)}
	}

	contour := Contour{}
	i2, j2 = i1, j1
	i3, j3 := i, j
	for {
		contour = append(contour, toPoint(i3, j3))

		// counter-clockwise, starting after (i2, j2)
		from := directionTo(i3, j3, i2, j2)
		eastZero := false
		var i4, j4 int
		for k := 1; k <= 8; k++ {
			d := (from + k) % 8
			r, c := i3+neighborhood[d][0], j3+neighborhood[d][1]
			if g.at(r, c) != 0 {
				i4, j4 = r, c
				break
			}
			if d == 0 {
				eastZero = true
			}
		}

		if eastZero {
			g.set(i3, j3, -nbd)
		} else if g.at(i3, j3) == 1 {
			g.set(i3, j3, nbd)
		}

		if i4 == i && j4 == j && i3 == i1 && j3 == j1 {
			return contour
		}
		i2, j2 = i3, j3
		i3, j3 = i4, j4
	}
}

// ContourArea returns the area enclosed by the polygon through the contour points using the
// shoelace formula. The result is always non-negative; contours of fewer than three points
// have zero area.
func ContourArea(c Contour) float64 {
	if len(c) < 3 {
		return 0
	}
	sum := 0.
	prev := c[len(c)-1]
	for _, p := range c {
		sum += float64(prev.X*p.Y - p.X*prev.Y)
		prev = p
	}
	return math.Abs(sum) / 2
}

// ContourPerimeter returns the length of the closed polyline through the contour points.
func ContourPerimeter(c Contour) float64 {
	if len(c) < 2 {
		return 0
	}
	total := 0.
	prev := c[len(c)-1]
	for _, p := range c {
		total += math.Hypot(float64(p.X-prev.X), float64(p.Y-prev.Y))
		prev = p
	}
	return total
}

// BoundingBox returns the smallest rectangle containing every contour point.
func BoundingBox(c Contour) image.Rectangle {
	if len(c) == 0 {
		return image.Rectangle{}
	}
	r := image.Rectangle{Min: c[0], Max: c[0].Add(image.Point{1, 1})}
	for _, p := range c[1:] {
		r = r.Union(image.Rectangle{Min: p, Max: p.Add(image.Point{1, 1})})
	}
	return r
}
