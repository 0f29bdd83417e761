// Package logging provides per-subsystem tagged loggers, mirroring the
// reference implementation's log_cpu!/log_via!/log_video!/log_mem! macros.
// Every subsystem logger is silent unless enabled via the BEEBGO_LOG
// environment variable (a comma-separated list of subsystem tags, or "all").
package logging

import (
	"io"
	"log"
	"os"
	"strings"
)

// Logger is a per-subsystem logger that can be toggled on or off.
type Logger struct {
	tag string
	*log.Logger
}

var (
	Cpu       = newLogger("cpu")
	Via       = newLogger("via")
	Video     = newLogger("video")
	Memory    = newLogger("mem")
	Debugger  = newLogger("debugger")
	subsystem = os.Getenv("BEEBGO_LOG")
)

func newLogger(tag string) *Logger {
	return &Logger{
		tag:    tag,
		Logger: log.New(os.Stderr, "["+tag+"] ", log.LstdFlags),
	}
}

func enabled(tag string) bool {
	if subsystem == "" {
		return false
	}
	if subsystem == "all" {
		return true
	}
	for _, t := range strings.Split(subsystem, ",") {
		if strings.TrimSpace(t) == tag {
			return true
		}
	}
	return false
}

// Printf logs, but only when this subsystem's tag is enabled via
// BEEBGO_LOG. Anomalies that don't warrant failing the emulation are
// logged and the caller continues.
func (l *Logger) Printf(format string, args ...any) {
	if !enabled(l.tag) {
		return
	}
	l.Logger.Printf(format, args...)
}

// SetOutput redirects this logger's destination.
func (l *Logger) SetOutput(w io.Writer) {
	l.Logger.SetOutput(w)
}
