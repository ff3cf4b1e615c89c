package utils

import (
	"image"
	"io"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/pkg/errors"
	"go.viam.com/test"
)

func TestParallelForEachPixel(t *testing.T) {
	size := image.Point{37, 11}
	seen := make([]int32, size.X*size.Y)
	var total atomic.Int32
	ParallelForEachPixel(size, func(x, y int) {
		atomic.AddInt32(&seen[y*size.X+x], 1)
		total.Add(1)
	})
	test.That(t, total.Load(), test.ShouldEqual, int32(size.X*size.Y))
	for _, n := range seen {
		test.That(t, n, test.ShouldEqual, int32(1))
	}
}

func TestClamp(t *testing.T) {
	test.That(t, ClampF64(300, 0, 255), test.ShouldEqual, 255.)
	test.That(t, ClampF64(-3, 0, 255), test.ShouldEqual, 0.)
	test.That(t, ClampF64(12.5, 0, 255), test.ShouldEqual, 12.5)
	test.That(t, ClampInt(-1, 0, 9), test.ShouldEqual, 0)
	test.That(t, ClampInt(10, 0, 9), test.ShouldEqual, 9)
	test.That(t, AbsInt(-4), test.ShouldEqual, 4)
	test.That(t, IsOdd(3), test.ShouldBeTrue)
	test.That(t, IsOdd(4), test.ShouldBeFalse)
}

func TestEnsureDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b")
	test.That(t, EnsureDir(dir), test.ShouldBeNil)
	info, err := os.Stat(dir)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, info.IsDir(), test.ShouldBeTrue)

	test.That(t, EnsureDir(""), test.ShouldBeNil)

	f := filepath.Join(dir, "file")
	test.That(t, os.WriteFile(f, []byte("x"), 0o600), test.ShouldBeNil)
	RemoveFileNoError(f)
	_, err = os.Stat(f)
	test.That(t, os.IsNotExist(err), test.ShouldBeTrue)
	RemoveFileNoError(f)
}

func TestCreateFileFunc(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "points.txt")
	err := CreateFileFunc(path, func(w io.Writer) error {
		_, err := io.WriteString(w, "1 2 3;\n")
		return err
	})
	test.That(t, err, test.ShouldBeNil)
	raw, err := os.ReadFile(path)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, string(raw), test.ShouldEqual, "1 2 3;\n")

	failed := filepath.Join(dir, "partial.txt")
	err = CreateFileFunc(failed, func(w io.Writer) error {
		return errors.New("encoder gave up")
	})
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "encoder gave up")
	_, err = os.Stat(failed)
	test.That(t, os.IsNotExist(err), test.ShouldBeTrue)

	err = CreateFileFunc(filepath.Join(dir, "missing", "x.txt"), func(w io.Writer) error { return nil })
	test.That(t, err, test.ShouldNotBeNil)
}
