package contour

import (
	"testing"

	"go.viam.com/test"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	test.That(t, cfg.Validate("pipeline"), test.ShouldBeNil)
	test.That(t, cfg.Threshold, test.ShouldEqual, 60)
	test.That(t, cfg.SmoothingKernelSize, test.ShouldEqual, 3)
	test.That(t, cfg.MorphRadius, test.ShouldEqual, 2)
	test.That(t, cfg.MorphShape, test.ShouldEqual, "ellipse")
	test.That(t, cfg.Polarity, test.ShouldEqual, DarkOnLight)
	test.That(t, cfg.FillFromBorder, test.ShouldBeFalse)
}

func TestConfigValidate(t *testing.T) {
	for _, tc := range []struct {
		name   string
		modify func(cfg *Config)
		msg    string
	}{
		{"threshold too high", func(cfg *Config) { cfg.Threshold = 256 }, "threshold"},
		{"threshold negative", func(cfg *Config) { cfg.Threshold = -1 }, "threshold"},
		{"even kernel", func(cfg *Config) { cfg.SmoothingKernelSize = 4 }, "smoothing_kernel_size"},
		{"zero kernel", func(cfg *Config) { cfg.SmoothingKernelSize = 0 }, "smoothing_kernel_size"},
		{"missing polarity", func(cfg *Config) { cfg.Polarity = "" }, "polarity"},
		{"bad polarity", func(cfg *Config) { cfg.Polarity = "both" }, "polarity"},
		{"bad shape", func(cfg *Config) { cfg.MorphShape = "disk" }, "morph_shape"},
		{"negative radius", func(cfg *Config) { cfg.MorphRadius = -1 }, "morph_radius"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.modify(&cfg)
			err := cfg.Validate("pipeline")
			test.That(t, err, test.ShouldNotBeNil)
			test.That(t, err.Error(), test.ShouldContainSubstring, tc.msg)
			test.That(t, err.Error(), test.ShouldContainSubstring, "pipeline")
		})
	}

	cfg := DefaultConfig()
	cfg.Polarity = LightOnDark
	cfg.MorphShape = "rect"
	cfg.MorphRadius = 0
	cfg.SmoothingKernelSize = 1
	cfg.Threshold = 255
	test.That(t, cfg.Validate("pipeline"), test.ShouldBeNil)
}

func TestOutputConfigValidate(t *testing.T) {
	cfg := DefaultOutputConfig()
	test.That(t, cfg.Validate("output"), test.ShouldBeNil)
	test.That(t, cfg.highlight().R, test.ShouldEqual, uint8(230))
	test.That(t, cfg.highlight().G, test.ShouldEqual, uint8(0))

	bad := cfg
	bad.PointsFile = ""
	test.That(t, bad.Validate("output"), test.ShouldNotBeNil)

	bad = cfg
	bad.HighlightColor = "red"
	err := bad.Validate("output")
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "highlight_color")

	bad = cfg
	bad.LineWidth = 0
	test.That(t, bad.Validate("output"), test.ShouldNotBeNil)

	bad = cfg
	bad.PCDType = "compressed"
	test.That(t, bad.Validate("output"), test.ShouldNotBeNil)
}
