package core

import "fmt"

// Logger interface for renderer progress logging
type Logger interface {
	Printf(format string, args ...interface{})
}

// StdoutLogger writes log lines straight to standard output
type StdoutLogger struct{}

// Printf implements the Logger interface
func (StdoutLogger) Printf(format string, args ...interface{}) {
	fmt.Printf(format, args...)
}
