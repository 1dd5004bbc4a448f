package logger

import corelogger "github.com/aquatherm/poolsim/core/logger"

// Logger mirrors the core logger interface.
type Logger = corelogger.Logger

// NopLogger discards all output.
type NopLogger = corelogger.Nop

// New returns a Logger for the given component. The output format is
// selected from the APP_ENV environment variable.
func New(component string) Logger {
	return NewZerologLogger(component)
}
