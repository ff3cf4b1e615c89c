package rimage

import (
	"image"
	"image/color"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font/gofont/goregular"
)

var font *truetype.Font

// init sets up the fonts we want to use.
func init() {
	var err error
	font, err = truetype.Parse(goregular.TTF)
	if err != nil {
		panic(err)
	}
}

// Font returns the font we use for drawing.
func Font() *truetype.Font {
	return font
}

// DrawString writes a string to the given context at a particular point.
func DrawString(dc *gg.Context, text string, p image.Point, c color.Color, size float64) {
	dc.SetFontFace(truetype.NewFace(Font(), &truetype.Options{Size: size}))
	dc.SetColor(c)
	dc.DrawStringWrapped(text, float64(p.X), float64(p.Y), 0, 0, float64(dc.Width()), 1, 0)
}

// DrawContour strokes the closed polyline through the centers of the contour's pixels. A
// single point contour is drawn as a dot.
func DrawContour(dc *gg.Context, c Contour, col color.Color, width float64) {
	if len(c) == 0 {
		return
	}
	dc.SetColor(col)
	if len(c) == 1 {
		dc.DrawPoint(float64(c[0].X)+.5, float64(c[0].Y)+.5, width/2)
		dc.Fill()
		return
	}
	dc.SetLineWidth(width)
	dc.SetLineJoin(gg.LineJoinRound)
	dc.MoveTo(float64(c[0].X)+.5, float64(c[0].Y)+.5)
	for _, p := range c[1:] {
		dc.LineTo(float64(p.X)+.5, float64(p.Y)+.5)
	}
	dc.ClosePath()
	dc.Stroke()
}

// AnnotateContour returns a copy of img with the contour overlaid and, when caption is not
// empty, the caption written in the top left corner.
func AnnotateContour(img image.Image, c Contour, col color.Color, width float64, caption string) image.Image {
	dc := gg.NewContextForImage(img)
	DrawContour(dc, c, col, width)
	if caption != "" {
		size := float64(dc.Height()) / 25
		if size < 10 {
			size = 10
		}
		DrawString(dc, caption, image.Point{4, 4}, col, size)
	}
	return dc.Image()
}
