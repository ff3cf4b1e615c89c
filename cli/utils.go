package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"

	"go.viam.com/contour3d/logging"
)

// printf prints a message with no prefix.
func printf(w io.Writer, format string, a ...interface{}) {
	//nolint:errcheck
	fmt.Fprintf(w, format+"\n", a...)
}

// warningf prints a message prefixed with a bold yellow "Warning: ".
func warningf(w io.Writer, format string, a ...interface{}) {
	//nolint:errcheck
	color.New(color.Bold, color.FgYellow).Fprint(w, "Warning: ")
	printf(w, format, a...)
}

// Errorf prints a message prefixed with a bold red "Error: " and exits with 1.
func Errorf(w io.Writer, format string, a ...interface{}) {
	//nolint:errcheck
	color.New(color.Bold, color.FgRed).Fprint(w, "Error: ")
	printf(w, format, a...)
	os.Exit(1)
}

// newLogger returns a logger writing to the app's error writer, and to the log file when one
// is given, at debug level when the debug flag is set. The returned function closes the log
// file.
func newLogger(c *cli.Context) (logging.Logger, func()) {
	logger := logging.NewBlankLogger("contour3d")
	logger.AddAppender(logging.NewWriterAppender(c.App.ErrWriter))
	if c.Bool(generalFlagDebug) {
		logger.SetLevel(logging.DEBUG)
	} else {
		logger.SetLevel(logging.INFO)
	}

	path := c.String(generalFlagLogFile)
	if path == "" {
		return logger, func() {}
	}
	file := logging.NewFileAppender(path)
	logger.AddAppender(file)
	return logger, func() {
		if err := file.Close(); err != nil {
			warningf(c.App.ErrWriter, "cannot close log file %q: %v", path, err)
		}
	}
}
