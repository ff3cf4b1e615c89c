package rimage

import (
	"image"

	"github.com/pkg/errors"
)

// FloodFill paints the 4-connected region of pixels equal to the seed's value with
// newValue, in place, and returns the number of pixels painted. Filling with the value the
// region already has paints nothing.
func FloodFill(img *image.Gray, seed image.Point, newValue uint8) (int, error) {
	if !seed.In(img.Bounds()) {
		return 0, errors.Errorf("flood fill seed %v is outside of image %v", seed, img.Bounds())
	}
	return floodFill(img, []image.Point{seed}, newValue), nil
}

// FloodFillFromBorder flood fills, with newValue, every 4-connected region that touches the
// image border and holds the given value.
func FloodFillFromBorder(img *image.Gray, value, newValue uint8) int {
	b := img.Bounds()
	var seeds []image.Point
	add := func(x, y int) {
		if img.GrayAt(x, y).Y == value {
			seeds = append(seeds, image.Point{x, y})
		}
	}
	for x := b.Min.X; x < b.Max.X; x++ {
		add(x, b.Min.Y)
		if b.Dy() > 1 {
			add(x, b.Max.Y-1)
		}
	}
	for y := b.Min.Y + 1; y < b.Max.Y-1; y++ {
		add(b.Min.X, y)
		if b.Dx() > 1 {
			add(b.Max.X-1, y)
		}
	}
	if len(seeds) == 0 {
		return 0
	}
	return floodFill(img, seeds, newValue)
}

// floodFill runs a scanline fill from every seed. All seeds must hold the same value.
func floodFill(img *image.Gray, seeds []image.Point, newValue uint8) int {
	b := img.Bounds()
	target := img.GrayAt(seeds[0].X, seeds[0].Y).Y
	if target == newValue {
		return 0
	}

	painted := 0
	stack := append([]image.Point(nil), seeds...)
	matches := func(x, y int) bool {
		return img.Pix[img.PixOffset(x, y)] == target
	}
	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !matches(p.X, p.Y) {
			continue
		}

		left, right := p.X, p.X
		for left > b.Min.X && matches(left-1, p.Y) {
			left--
		}
		for right < b.Max.X-1 && matches(right+1, p.Y) {
			right++
		}
		for x := left; x <= right; x++ {
			img.Pix[img.PixOffset(x, p.Y)] = newValue
			painted++
		}

		for _, ny := range []int{p.Y - 1, p.Y + 1} {
			if ny < b.Min.Y || ny >= b.Max.Y {
				continue
			}
			inRun := false
			for x := left; x <= right; x++ {
				if matches(x, ny) {
					if !inRun {
						stack = append(stack, image.Point{x, ny})
						inRun = true
					}
				} else {
					inRun = false
				}
			}
		}
	}
	return painted
}
