// Package cli contains the contour3d command line.
package cli

import (
	"io"

	"github.com/urfave/cli/v2"

	"go.viam.com/contour3d/vision/contour"
)

const (
	generalFlagConfig  = "config"
	generalFlagDebug   = "debug"
	generalFlagLogFile = "log-file"

	captureFlagPoints  = "points"
	captureFlagTexture = "texture"
	captureFlagWidth   = "width"
	captureFlagHeight  = "height"

	extractFlagOut            = "out"
	extractFlagThreshold      = "threshold"
	extractFlagPolarity       = "polarity"
	extractFlagFillFromBorder = "fill-from-border"
	extractFlagDebugImages    = "debug-images"
	extractFlagDepthImage     = "depth-image"
	extractFlagPCD            = "pcd"
	extractFlagPCDType        = "pcd-type"
	extractFlagSummary        = "summary"
	extractFlagCaption        = "caption"
	extractFlagProfile        = "profile"

	synthFlagOut   = "out"
	synthFlagSide  = "side"
	synthFlagDepth = "depth"
	synthFlagPitch = "pitch"
)

var app = &cli.App{
	Name:            "contour3d",
	Usage:           "extract the 3D boundary of a dark region from a registered point map and texture",
	HideHelpCommand: true,
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:    generalFlagConfig,
			Aliases: []string{"c"},
			Usage:   "load configuration from `FILE`",
		},
		&cli.BoolFlag{
			Name:    generalFlagDebug,
			Aliases: []string{"vvv"},
			Usage:   "enable debug logging",
		},
		&cli.PathFlag{
			Name:  generalFlagLogFile,
			Usage: "also write logs to `FILE`, rotated by size",
		},
	},
	Commands: []*cli.Command{
		{
			Name:      "extract",
			Usage:     "extract the boundary of the largest dark region of a capture",
			UsageText: "contour3d [global options] extract [--points FILE --texture FILE --width W --height H] [options]",
			Flags: []cli.Flag{
				&cli.PathFlag{
					Name:  captureFlagPoints,
					Usage: "raw little endian float32 XYZ point map `FILE`",
				},
				&cli.PathFlag{
					Name:  captureFlagTexture,
					Usage: "texture `FILE`, raw RGBA8 when it ends in .rgba, any image format otherwise",
				},
				&cli.IntFlag{
					Name:  captureFlagWidth,
					Usage: "capture width in pixels",
				},
				&cli.IntFlag{
					Name:  captureFlagHeight,
					Usage: "capture height in pixels",
				},
				&cli.PathFlag{
					Name:    extractFlagOut,
					Aliases: []string{"o"},
					Usage:   "output `DIR`",
				},
				&cli.IntFlag{
					Name:  extractFlagThreshold,
					Usage: "intensity cutoff, values at or below it are dark",
					Value: contour.DefaultThreshold,
				},
				&cli.StringFlag{
					Name:  extractFlagPolarity,
					Usage: "dark_on_light or light_on_dark",
					Value: string(contour.DarkOnLight),
				},
				&cli.BoolFlag{
					Name:  extractFlagFillFromBorder,
					Usage: "keep all background reachable from the image border when filling holes",
				},
				&cli.BoolFlag{
					Name:  extractFlagDebugImages,
					Usage: "also write the intermediate images",
				},
				&cli.StringFlag{
					Name:  extractFlagDepthImage,
					Usage: "write a false color depth image to `FILE`",
				},
				&cli.StringFlag{
					Name:  extractFlagPCD,
					Usage: "write the boundary as a point cloud to `FILE`",
				},
				&cli.StringFlag{
					Name:  extractFlagPCDType,
					Usage: "ascii or binary",
					Value: "ascii",
				},
				&cli.StringFlag{
					Name:  extractFlagSummary,
					Usage: "write a JSON summary of the boundary to `FILE`",
				},
				&cli.BoolFlag{
					Name:  extractFlagCaption,
					Usage: "caption the annotated image",
				},
				&cli.StringFlag{
					Name:  extractFlagProfile,
					Usage: "plot the depth along the boundary to `FILE` (png, svg or pdf)",
				},
			},
			Action: ExtractAction,
		},
		{
			Name:  "synth",
			Usage: "write a synthetic capture of a dark square on a white plane",
			Flags: []cli.Flag{
				&cli.PathFlag{
					Name:     synthFlagOut,
					Aliases:  []string{"o"},
					Usage:    "output `DIR`",
					Required: true,
				},
				&cli.IntFlag{
					Name:  captureFlagWidth,
					Usage: "capture width in pixels",
					Value: 640,
				},
				&cli.IntFlag{
					Name:  captureFlagHeight,
					Usage: "capture height in pixels",
					Value: 480,
				},
				&cli.IntFlag{
					Name:  synthFlagSide,
					Usage: "side of the dark square in pixels",
					Value: 120,
				},
				&cli.Float64Flag{
					Name:  synthFlagDepth,
					Usage: "depth of the plane",
					Value: 500,
				},
				&cli.Float64Flag{
					Name:  synthFlagPitch,
					Usage: "distance between neighboring points",
					Value: 1,
				},
			},
			Action: SynthAction,
		},
	},
}

// NewApp returns a new app with the CLI API, Writer set to out, and ErrWriter
// set to errOut.
func NewApp(out, errOut io.Writer) *cli.App {
	app.Writer = out
	app.ErrWriter = errOut
	return app
}
