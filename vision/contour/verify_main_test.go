package contour

import (
	"testing"

	"go.viam.com/contour3d/testutils"
)

func TestMain(m *testing.M) {
	testutils.VerifyTestMain(m)
}
