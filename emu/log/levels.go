package log

import (
	"io"

	"gopkg.in/Sirupsen/logrus.v0"
)

type Level uint8

// Levels mirror logrus severities, most severe first.
const (
	PanicLevel Level = iota
	FatalLevel
	ErrorLevel
	WarnLevel
	InfoLevel
	DebugLevel
)

func init() {
	// Severity filtering happens per-module before an entry reaches logrus,
	// so the backend itself must let everything through.
	logrus.SetLevel(logrus.DebugLevel)
}

// Disable turns off all log output, warnings and errors included.
func Disable() {
	logrus.SetOutput(io.Discard)
}
