// Package monitoring holds the diagnostic logger shared by the renderer.
package monitoring

import "log"

// Logf is the package-level diagnostic logger. It defaults to log.Printf but may
// be replaced by SetLogger. Tests or production code can redirect or mute it.
var Logf func(format string, v ...interface{}) = log.Printf

var verbose bool

// SetLogger replaces the package logger. Passing nil will set a no-op logger.
func SetLogger(f func(format string, v ...interface{})) {
	if f == nil {
		Logf = func(string, ...interface{}) {}
		return
	}
	Logf = f
}

// SetVerbose enables or disables Debugf output.
func SetVerbose(v bool) { verbose = v }

// Verbose reports whether Debugf output is enabled.
func Verbose() bool { return verbose }

// Debugf logs through Logf only when verbose output is enabled. Render
// calls use it for per-chart detail (bar counts, grid sizes, ignored
// style options).
func Debugf(format string, v ...interface{}) {
	if !verbose {
		return
	}
	Logf(format, v...)
}
