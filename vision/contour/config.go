package contour

import (
	"fmt"

	"github.com/pkg/errors"
	"go.viam.com/utils"

	"go.viam.com/contour3d/rimage"
)

// Polarity tells which brightness class is the target region.
type Polarity string

const (
	// DarkOnLight selects a dark region on a lighter surface.
	DarkOnLight Polarity = "dark_on_light"
	// LightOnDark selects a light region on a darker surface.
	LightOnDark Polarity = "light_on_dark"
)

// Defaults of the pipeline configuration.
const (
	DefaultThreshold           = 60
	DefaultSmoothingKernelSize = 3
	DefaultMorphRadius         = 2
	DefaultMorphShape          = "ellipse"
)

// Config tunes the binarization and normalization stages. The zero value is not usable; start
// from DefaultConfig.
type Config struct {
	// Threshold is the intensity cutoff (0-255). Intensities at or below it are dark.
	Threshold int `json:"threshold"`
	// SmoothingKernelSize is the side of the box filter applied before thresholding.
	SmoothingKernelSize int      `json:"smoothing_kernel_size"`
	Polarity            Polarity `json:"polarity"`
	// FillFromBorder seeds the hole fill from every background border pixel instead of (0,0).
	FillFromBorder bool   `json:"fill_from_border"`
	MorphShape     string `json:"morph_shape"`
	MorphRadius    int    `json:"morph_radius"`
	// KeepIntermediates keeps copies of every intermediate image on the Result.
	KeepIntermediates bool `json:"keep_intermediates"`
}

// DefaultConfig returns the configuration the pipeline was tuned with.
func DefaultConfig() Config {
	return Config{
		Threshold:           DefaultThreshold,
		SmoothingKernelSize: DefaultSmoothingKernelSize,
		Polarity:            DarkOnLight,
		MorphShape:          DefaultMorphShape,
		MorphRadius:         DefaultMorphRadius,
	}
}

// Validate ensures all parts of the config are valid.
func (cfg *Config) Validate(path string) error {
	if cfg.Threshold < 0 || cfg.Threshold > 255 {
		return utils.NewConfigValidationError(path,
			errors.Errorf("threshold must be between 0 and 255, got %d", cfg.Threshold))
	}
	if cfg.SmoothingKernelSize <= 0 || cfg.SmoothingKernelSize%2 == 0 {
		return utils.NewConfigValidationError(path,
			errors.Errorf("smoothing_kernel_size must be a positive odd number, got %d", cfg.SmoothingKernelSize))
	}
	switch cfg.Polarity {
	case DarkOnLight, LightOnDark:
	case "":
		return utils.NewConfigValidationFieldRequiredError(path, "polarity")
	default:
		return utils.NewConfigValidationError(path,
			errors.Errorf("polarity must be %q or %q, got %q", DarkOnLight, LightOnDark, cfg.Polarity))
	}
	if _, err := rimage.MorphShapeFromString(cfg.MorphShape); err != nil {
		return utils.NewConfigValidationError(fmt.Sprintf("%s.%s", path, "morph_shape"), err)
	}
	if cfg.MorphRadius < 0 {
		return utils.NewConfigValidationError(path,
			errors.Errorf("morph_radius must not be negative, got %d", cfg.MorphRadius))
	}
	return nil
}

func (cfg *Config) structuringElement() (*rimage.StructuringElement, error) {
	shape, err := rimage.MorphShapeFromString(cfg.MorphShape)
	if err != nil {
		return nil, err
	}
	return rimage.NewRadiusElement(shape, cfg.MorphRadius)
}
