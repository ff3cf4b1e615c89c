package rimage

import (
	"image"
	"testing"

	"go.viam.com/test"
)

func TestBorderIndex(t *testing.T) {
	n := 4
	reflect := []int{}
	replicate := []int{}
	for i := -3; i < n+3; i++ {
		v, ok := borderIndex(i, n, BorderReflect101)
		test.That(t, ok, test.ShouldBeTrue)
		reflect = append(reflect, v)
		v, ok = borderIndex(i, n, BorderReplicate)
		test.That(t, ok, test.ShouldBeTrue)
		replicate = append(replicate, v)
	}
	test.That(t, reflect, test.ShouldResemble, []int{3, 2, 1, 0, 1, 2, 3, 2, 1, 0})
	test.That(t, replicate, test.ShouldResemble, []int{0, 0, 0, 0, 1, 2, 3, 3, 3, 3})

	_, ok := borderIndex(-1, n, BorderConstant)
	test.That(t, ok, test.ShouldBeFalse)
	v, ok := borderIndex(-2, 1, BorderReflect101)
	test.That(t, ok, test.ShouldBeTrue)
	test.That(t, v, test.ShouldEqual, 0)
}

func TestPaddingGray(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 3, 1))
	img.Pix = []uint8{10, 20, 30}

	padded, err := PaddingGray(img, image.Point{3, 3}, image.Point{1, 1}, BorderReflect101)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, padded.Bounds(), test.ShouldResemble, image.Rect(0, 0, 5, 3))
	test.That(t, padded.Pix[5:10], test.ShouldResemble, []uint8{20, 10, 20, 30, 20})

	padded, err = PaddingGray(img, image.Point{3, 3}, image.Point{1, 1}, BorderConstant)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, padded.Pix[5:10], test.ShouldResemble, []uint8{0, 10, 20, 30, 0})
	test.That(t, padded.Pix[0:5], test.ShouldResemble, []uint8{0, 0, 0, 0, 0})

	_, err = PaddingGray(img, image.Point{3, 3}, image.Point{3, 1}, BorderConstant)
	test.That(t, err, test.ShouldNotBeNil)
	_, err = PaddingGray(img, image.Point{3, 3}, image.Point{1, 1}, BorderPad(9))
	test.That(t, err, test.ShouldNotBeNil)
}

func TestBoxBlurGray(t *testing.T) {
	flat := image.NewGray(image.Rect(0, 0, 6, 5))
	for i := range flat.Pix {
		flat.Pix[i] = 77
	}
	blurred, err := BoxBlurGray(flat, 3, BorderReflect101)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, blurred.Pix, test.ShouldResemble, flat.Pix)

	spot := image.NewGray(image.Rect(0, 0, 5, 5))
	spot.Pix[spot.PixOffset(2, 2)] = 90
	blurred, err = BoxBlurGray(spot, 3, BorderReflect101)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, blurred.GrayAt(1, 1).Y, test.ShouldEqual, uint8(10))
	test.That(t, blurred.GrayAt(2, 2).Y, test.ShouldEqual, uint8(10))
	test.That(t, blurred.GrayAt(0, 0).Y, test.ShouldEqual, uint8(0))

	corner := image.NewGray(image.Rect(0, 0, 5, 5))
	corner.Pix[0] = 90
	blurred, err = BoxBlurGray(corner, 3, BorderReflect101)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, blurred.GrayAt(0, 0).Y, test.ShouldEqual, uint8(10))
	test.That(t, blurred.GrayAt(1, 1).Y, test.ShouldEqual, uint8(10))
	test.That(t, blurred.GrayAt(2, 2).Y, test.ShouldEqual, uint8(0))

	_, err = BoxBlurGray(flat, 4, BorderReflect101)
	test.That(t, err, test.ShouldNotBeNil)
	_, err = BoxBlurGray(flat, 0, BorderReflect101)
	test.That(t, err, test.ShouldNotBeNil)
}

func TestConvolveGrayBoxMatchesBoxBlur(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 9, 7))
	for i := range img.Pix {
		img.Pix[i] = uint8((i * 37) % 256)
	}
	kernel, err := GetBoxKernel(3)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, kernel.Center(), test.ShouldResemble, image.Point{1, 1})

	convolved, err := ConvolveGray(img, kernel, kernel.Center(), BorderReplicate)
	test.That(t, err, test.ShouldBeNil)
	blurred, err := BoxBlurGray(img, 3, BorderReplicate)
	test.That(t, err, test.ShouldBeNil)
	for i := range convolved.Pix {
		diff := int(convolved.Pix[i]) - int(blurred.Pix[i])
		test.That(t, diff, test.ShouldBeBetweenOrEqual, -1, 1)
	}

	_, err = NewKernel(0, 3)
	test.That(t, err, test.ShouldNotBeNil)
}

func TestBoxBlurGrayAllocations(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 64, 48))
	// the padded copy and the result, nothing per pixel or per row
	allocs := testing.AllocsPerRun(10, func() {
		_, err := BoxBlurGray(img, 3, BorderReflect101)
		if err != nil {
			t.Fatal(err)
		}
	})
	test.That(t, allocs, test.ShouldBeLessThanOrEqualTo, 4.)
}
