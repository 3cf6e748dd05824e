package logger

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
)

// ProgressLogger logs the main steps of a layout run.
// It is silent unless its level is lowered to [log.DebugLevel].
var ProgressLogger = log.NewWithOptions(os.Stderr, log.Options{
	Prefix: "webgrid.progress",
	Level:  log.InfoLevel,
})

// WarningLogger emits a warning for each non fatal error, like invalid CSS
// values, unknown grid line names or unsupported writing modes.
var WarningLogger = log.NewWithOptions(os.Stderr, log.Options{
	Prefix: "webgrid.warning",
	Level:  log.WarnLevel,
})

// SetOutput redirects both loggers to w.
func SetOutput(w io.Writer) {
	ProgressLogger.SetOutput(w)
	WarningLogger.SetOutput(w)
}

// SetVerbose enables the progress messages.
func SetVerbose(verbose bool) {
	if verbose {
		ProgressLogger.SetLevel(log.DebugLevel)
	} else {
		ProgressLogger.SetLevel(log.InfoLevel)
	}
}
