// Package monitoring carries the shared progress logger for the
// session processing pipeline. The CLI reports each stage (ingest,
// smoothing plan, artifact writes) through Logf.
package monitoring

import "log"

// Logf is the pipeline progress logger. It defaults to log.Printf;
// tests redirect or mute it with SetLogger.
var Logf func(format string, v ...interface{}) = log.Printf

// SetLogger replaces the package logger. A nil f installs a no-op
// logger.
func SetLogger(f func(format string, v ...interface{})) {
	if f == nil {
		Logf = func(string, ...interface{}) {}
		return
	}
	Logf = f
}
