// Package main is the contour3d command itself.
package main

import (
	"os"

	"go.viam.com/contour3d/cli"
)

func main() {
	app := cli.NewApp(os.Stdout, os.Stderr)
	if err := app.Run(os.Args); err != nil {
		cli.Errorf(app.ErrWriter, "%v", err)
	}
}
