package rimage

import (
	"image"
)

// fillRect paints r on mask with 255, or with the given value.
func fillRect(mask *image.Gray, r image.Rectangle, value ...uint8) {
	v := uint8(255)
	if len(value) > 0 {
		v = value[0]
	}
	r = r.Intersect(mask.Bounds())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			mask.Pix[mask.PixOffset(x, y)] = v
		}
	}
}

func grayFromRows(rows ...string) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, len(rows[0]), len(rows)))
	for y, row := range rows {
		for x, ch := range row {
			if ch == '1' {
				img.Pix[img.PixOffset(x, y)] = 255
			}
		}
	}
	return img
}

func grayToRows(img *image.Gray) []string {
	b := img.Bounds()
	rows := make([]string, 0, b.Dy())
	for y := b.Min.Y; y < b.Max.Y; y++ {
		row := make([]byte, 0, b.Dx())
		for x := b.Min.X; x < b.Max.X; x++ {
			if img.GrayAt(x, y).Y != 0 {
				row = append(row, '1')
			} else {
				row = append(row, '0')
			}
		}
		rows = append(rows, string(row))
	}
	return rows
}
