package contour

import (
	"encoding/json"
	"fmt"
	"image"
	"image/color"
	"io"
	"math"
	"path/filepath"

	"github.com/golang/geo/r3"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"go.viam.com/utils"

	"go.viam.com/contour3d/logging"
	"go.viam.com/contour3d/pointcloud"
	"go.viam.com/contour3d/rimage"
	cutils "go.viam.com/contour3d/utils"
)

// Artifact names and their default file names.
const (
	ArtifactPoints     = "points"
	ArtifactImage      = "image"
	ArtifactGray       = "gray image"
	ArtifactThreshold  = "threshold image"
	ArtifactFilled     = "inverted threshold image"
	ArtifactClosed     = "closed image"
	ArtifactDepthImage = "depth image"
	ArtifactPCD        = "point cloud"
	ArtifactSummary    = "summary"
	ArtifactProfile    = "depth profile"

	DefaultPointsFile     = "contour_points.txt"
	DefaultImageFile      = "contoured_wound.jpg"
	DefaultGrayFile       = "gray_image.jpg"
	DefaultThresholdFile  = "threshold_image.jpg"
	DefaultFilledFile     = "threshold_image_inverted.jpg"
	DefaultClosedFile     = "morph_closing_image.jpg"
	DefaultHighlightColor = "#e60000"
	DefaultLineWidth      = 2.
)

// OutputConfig says where and how the artifacts of a run are written. File names are relative
// to Dir; an empty optional file name disables that artifact.
type OutputConfig struct {
	Dir        string `json:"dir"`
	PointsFile string `json:"points_file"`
	ImageFile  string `json:"image_file"`
	// DebugImages also writes the gray, threshold, filled and closed images. It needs a
	// result computed with Config.KeepIntermediates.
	DebugImages    bool   `json:"debug_images"`
	DepthImageFile string `json:"depth_image_file,omitempty"`
	PCDFile        string `json:"pcd_file,omitempty"`
	PCDType        string `json:"pcd_type,omitempty"`
	SummaryFile    string `json:"summary_file,omitempty"`
	// ProfileFile gets a plot of depth along the boundary; the format follows the extension.
	ProfileFile    string  `json:"profile_file,omitempty"`
	HighlightColor string  `json:"highlight_color"`
	LineWidth      float64 `json:"line_width"`
	Caption        bool    `json:"caption"`
}

// DefaultOutputConfig writes the points and the annotated image to the working directory.
func DefaultOutputConfig() OutputConfig {
	return OutputConfig{
		Dir:            ".",
		PointsFile:     DefaultPointsFile,
		ImageFile:      DefaultImageFile,
		HighlightColor: DefaultHighlightColor,
		LineWidth:      DefaultLineWidth,
	}
}

// Validate ensures all parts of the config are valid.
func (cfg *OutputConfig) Validate(path string) error {
	if cfg.PointsFile == "" {
		return utils.NewConfigValidationFieldRequiredError(path, "points_file")
	}
	if cfg.ImageFile == "" {
		return utils.NewConfigValidationFieldRequiredError(path, "image_file")
	}
	if _, err := colorful.Hex(cfg.HighlightColor); err != nil {
		return utils.NewConfigValidationError(fmt.Sprintf("%s.%s", path, "highlight_color"),
			errors.Wrapf(err, "invalid color %q", cfg.HighlightColor))
	}
	if cfg.LineWidth <= 0 || math.IsNaN(cfg.LineWidth) {
		return utils.NewConfigValidationError(path, errors.Errorf("line_width must be positive, got %v", cfg.LineWidth))
	}
	if _, err := pointcloud.PCDTypeFromString(cfg.PCDType); err != nil {
		return utils.NewConfigValidationError(fmt.Sprintf("%s.%s", path, "pcd_type"), err)
	}
	return nil
}

func (cfg *OutputConfig) highlight() color.NRGBA {
	c, err := colorful.Hex(cfg.HighlightColor)
	if err != nil {
		c, _ = colorful.Hex(DefaultHighlightColor)
	}
	r, g, b := c.RGB255()
	return color.NRGBA{r, g, b, 255}
}

// An Emitter writes the artifacts of a run.
type Emitter struct {
	cfg    OutputConfig
	logger logging.Logger
}

// NewEmitter returns an Emitter writing according to cfg.
func NewEmitter(cfg OutputConfig, logger logging.Logger) *Emitter {
	return &Emitter{cfg: cfg, logger: logger}
}

// Emit writes every configured artifact of res. colors is the color grid the result was
// computed from and pm, which may be nil, its position grid. Each failing artifact yields an
// *IOFailureError; the others are still attempted and all failures are combined.
func (e *Emitter) Emit(res *Result, colors image.Image, pm *rimage.PointMap) error {
	if err := e.cfg.Validate("output"); err != nil {
		return err
	}
	if err := cutils.EnsureDir(e.cfg.Dir); err != nil {
		return &IOFailureError{Artifact: "output directory", Path: e.cfg.Dir, Err: err}
	}

	var errs error
	try := func(artifact, name string, write func(path string) error) {
		path := e.path(name)
		if err := write(path); err != nil {
			e.logger.Errorw("cannot write artifact", "artifact", artifact, "path", path, "error", err)
			errs = multierr.Append(errs, &IOFailureError{Artifact: artifact, Path: path, Err: err})
			return
		}
		e.logger.Debugw("wrote artifact", "artifact", artifact, "path", path)
	}

	try(ArtifactPoints, e.cfg.PointsFile, func(path string) error {
		return cutils.CreateFileFunc(path, func(w io.Writer) error { return WritePoints(w, res.Points) })
	})
	try(ArtifactImage, e.cfg.ImageFile, func(path string) error {
		return rimage.WriteImageToFile(path, e.annotate(res, colors))
	})

	if e.cfg.DebugImages {
		if res.Intermediates == nil {
			e.logger.Warn("debug images requested but the result holds no intermediates")
		} else {
			for _, dbg := range []struct {
				artifact, name string
				img            *image.Gray
			}{
				{ArtifactGray, DefaultGrayFile, res.Intermediates.Gray},
				{ArtifactThreshold, DefaultThresholdFile, res.Intermediates.Threshold},
				{ArtifactFilled, DefaultFilledFile, res.Intermediates.Filled},
				{ArtifactClosed, DefaultClosedFile, res.Intermediates.Closed},
			} {
				img := dbg.img
				try(dbg.artifact, dbg.name, func(path string) error { return rimage.WriteImageToFile(path, img) })
			}
		}
	}

	if e.cfg.DepthImageFile != "" && pm != nil {
		try(ArtifactDepthImage, e.cfg.DepthImageFile, func(path string) error {
			return rimage.WriteImageToFile(path, pm.ToPrettyPicture(0, math.MaxFloat64))
		})
	}

	if e.cfg.PCDFile != "" {
		try(ArtifactPCD, e.cfg.PCDFile, func(path string) error {
			return e.writePCD(path, res, colors)
		})
	}

	if e.cfg.SummaryFile != "" {
		summary := Summarize(res)
		e.logger.Infow("boundary summary", "points", summary.Points, "length", summary.Length,
			"mean_z", summary.MeanZ, "stddev_z", summary.StdDevZ)
		try(ArtifactSummary, e.cfg.SummaryFile, func(path string) error {
			return cutils.CreateFileFunc(path, func(w io.Writer) error {
				enc := json.NewEncoder(w)
				enc.SetIndent("", "  ")
				return enc.Encode(summary)
			})
		})
	}
	if e.cfg.ProfileFile != "" {
		try(ArtifactProfile, e.cfg.ProfileFile, func(path string) error {
			p, err := PlotDepthProfile(res.Points)
			if err != nil {
				return err
			}
			return p.Save(profileWidth, profileHeight, path)
		})
	}
	return errs
}

func (e *Emitter) path(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(e.cfg.Dir, name)
}

func (e *Emitter) annotate(res *Result, colors image.Image) image.Image {
	caption := ""
	if e.cfg.Caption {
		caption = fmt.Sprintf("%d points, area %.0f px", len(res.Points), res.Area)
	}
	return rimage.AnnotateContour(colors, res.Contour, e.cfg.highlight(), e.cfg.LineWidth, caption)
}

// writePCD writes the boundary colored with the texture under each contour pixel.
func (e *Emitter) writePCD(path string, res *Result, colors image.Image) error {
	pcdType, err := pointcloud.PCDTypeFromString(e.cfg.PCDType)
	if err != nil {
		return err
	}
	cloud := pointcloud.NewOrderedWithPrealloc(len(res.Points))
	b := colors.Bounds()
	for i, v := range res.Points {
		var d pointcloud.Data
		if i < len(res.PointPixels) {
			p := res.PointPixels[i]
			d = pointcloud.NewColoredData(color.NRGBAModel.Convert(colors.At(b.Min.X+p.X, b.Min.Y+p.Y)).(color.NRGBA))
		}
		if err := cloud.Set(v, d); err != nil {
			return err
		}
	}
	return pointcloud.WriteToPCDFile(cloud, path, pcdType)
}

// WritePoints writes one "x y z;" line per point.
func WritePoints(w io.Writer, points []r3.Vector) error {
	for _, p := range points {
		if _, err := fmt.Fprintf(w, "%f %f %f;\n", p.X, p.Y, p.Z); err != nil {
			return err
		}
	}
	return nil
}
