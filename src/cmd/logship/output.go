// FILE: logship/src/cmd/logship/output.go
package main

import (
	"fmt"
	"io"
	"os"
)

// Routes pre-logger diagnostics to the console, respecting quiet mode
type OutputHandler struct {
	quiet  bool
	stderr io.Writer
}

var output *OutputHandler

// Initializes the global output handler
func InitOutputHandler(quiet bool) {
	output = &OutputHandler{
		quiet:  quiet,
		stderr: os.Stderr,
	}
}

// Writes to stderr if not in quiet mode
func (o *OutputHandler) Error(format string, args ...any) {
	if !o.quiet {
		fmt.Fprintf(o.stderr, format, args...)
	}
}

func Error(format string, args ...any) {
	if output != nil {
		output.Error(format, args...)
		return
	}
	fmt.Fprintf(os.Stderr, format, args...)
}
