package testutils

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"go.viam.com/test"
)

// WriteTempFile creates dir/name, fills it with write and returns its path. It fails the test
// on any error.
func WriteTempFile(t *testing.T, dir, name string, write func(w io.Writer) error) string {
	t.Helper()
	path := filepath.Join(dir, name)
	//nolint:gosec
	f, err := os.Create(path)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, write(f), test.ShouldBeNil)
	test.That(t, f.Close(), test.ShouldBeNil)
	return path
}
