package monitoring

import (
	"fmt"
	"testing"
)

func TestSetLogger(t *testing.T) {
	original := Logf
	defer func() { Logf = original }()

	var captured []string
	SetLogger(func(format string, v ...interface{}) {
		captured = append(captured, fmt.Sprintf(format, v...))
	})

	Logf("processed %d samples", 200)
	if len(captured) != 1 || captured[0] != "processed 200 samples" {
		t.Errorf("captured = %v, want one formatted message", captured)
	}
}

func TestSetLoggerNilMutes(t *testing.T) {
	original := Logf
	defer func() { Logf = original }()

	called := false
	SetLogger(func(format string, v ...interface{}) { called = true })
	SetLogger(nil)

	// Must not panic and must not reach the previous logger.
	Logf("plot saved")
	if called {
		t.Error("muted logger still invoked the previous logger")
	}
}

func TestLogfDefault(t *testing.T) {
	if Logf == nil {
		t.Fatal("Logf must have a usable default")
	}
}
