// Package log provides a small leveled-logger facade over go-logging, in
// the same shape the rest of the renderer expects from pkg/core.Logger:
// a narrow interface callers depend on, with the concrete backend wired
// in one place.
package log

import (
	"io"
	"os"

	"github.com/op/go-logging"
)

// Level selects the minimum severity a logger backend will emit.
type Level int

const (
	Debug Level = iota
	Info
	Notice
	Warning
	Error
)

var format = logging.MustStringFormatter(
	`%{color}[%{time:15:04:05.000}] [%{module}] [%{level}]%{color:reset} %{message}`,
)

var leveledBackend logging.LeveledBackend

// Logger is the interface pkg/lightdist depends on. Nothing outside this
// package should reference go-logging directly.
type Logger interface {
	Debug(v ...interface{})
	Debugf(format string, v ...interface{})
	Info(v ...interface{})
	Infof(format string, v ...interface{})
	Warning(v ...interface{})
	Warningf(format string, v ...interface{})
	Error(v ...interface{})
	Errorf(format string, v ...interface{})
}

// New creates a named logger. Callers typically name it after the package
// or component emitting through it, e.g. log.New("lightdist.voxelcache").
func New(name string) Logger {
	return logging.MustGetLogger(name)
}

// SetSink redirects all logger output to w.
func SetSink(w io.Writer) {
	backend := logging.NewLogBackend(w, "", 0)
	backendWithFormatter := logging.NewBackendFormatter(backend, format)
	leveledBackend = logging.AddModuleLevel(backendWithFormatter)
	leveledBackend.SetLevel(logging.INFO, "")
	logging.SetBackend(leveledBackend)
}

// SetLevel changes the minimum severity emitted by all loggers created
// through New.
func SetLevel(level Level) {
	var loggingLevel logging.Level
	switch level {
	case Debug:
		loggingLevel = logging.DEBUG
	case Info:
		loggingLevel = logging.INFO
	case Notice:
		loggingLevel = logging.NOTICE
	case Warning:
		loggingLevel = logging.WARNING
	case Error:
		loggingLevel = logging.ERROR
	}
	leveledBackend.SetLevel(loggingLevel, "")
}

func init() {
	SetSink(os.Stdout)
	SetLevel(Notice)
}
