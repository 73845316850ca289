package logging

import (
	"github.com/pion/logging"
)

var loggerFactory = logging.NewDefaultLoggerFactory()

func init() {
	loggerFactory.DefaultLogLevel = logging.LogLevelInfo
}

// SetVerbose switches the process-wide default level between info and debug.
// Scopes configured through the PIONS_LOG_* environment variables keep their
// explicit levels.
func SetVerbose(verbose bool) {
	if verbose {
		loggerFactory.DefaultLogLevel = logging.LogLevelDebug
	} else {
		loggerFactory.DefaultLogLevel = logging.LogLevelInfo
	}
}

func NewLogger(scope string) logging.LeveledLogger {
	return loggerFactory.NewLogger(scope)
}
