// ABOUTME: Leveled logging with verbosity control for the client engine
// ABOUTME: Wire tracing of protocol lines is gated behind verbose mode

package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
)

var (
	verbose           = false
	output  io.Writer = os.Stderr
)

// SetVerbose enables or disables verbose (DEBUG and WIRE) logging
func SetVerbose(v bool) {
	verbose = v
}

// IsVerbose returns current verbose setting
func IsVerbose() bool {
	return verbose
}

// SetOutput sets the output destination for logs
func SetOutput(w io.Writer) {
	if w == nil {
		output = os.Stderr
		log.SetOutput(os.Stderr)
	} else {
		output = w
		log.SetOutput(w)
	}
}

// Debug logs at DEBUG level (only shown when verbose)
func Debug(format string, args ...interface{}) {
	if verbose {
		msg := fmt.Sprintf(format, args...)
		log.Printf("[DEBUG] %s", msg)
	}
}

// Info logs at INFO level (always shown)
func Info(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	log.Printf("[INFO] %s", msg)
}

// Warn logs at WARN level (always shown)
func Warn(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	log.Printf("[WARN] %s", msg)
}

// Error logs at ERROR level (always shown)
func Error(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	log.Printf("[ERROR] %s", msg)
}

// Wire traces one protocol line (only shown when verbose). Direction is ">>"
// for lines sent to the server and "<<" for lines received from it.
func Wire(direction, line string) {
	if verbose {
		log.Printf("[WIRE] %s %s", direction, strings.TrimSpace(line))
	}
}
