// Package logger configures the shared op/go-logging backend used by every
// package of the interpreter.
package logger

import (
	"os"
	"strings"
	"sync"

	logging "github.com/op/go-logging"
)

const (
	plainFormat = `%{time:15:04:05.000} %{module} %{level:.4s} %{message}`
	colorFormat = `%{color}%{time:15:04:05.000} %{module} %{level:.4s}%{color:reset} %{message}`
)

var (
	setupOnce sync.Once
	leveled   logging.LeveledBackend
)

func setup() {
	format := plainFormat
	if isTerminal(os.Stderr.Fd()) {
		format = colorFormat
	}
	backend := logging.NewLogBackend(os.Stderr, "", 0)
	formatted := logging.NewBackendFormatter(backend, logging.MustStringFormatter(format))
	leveled = logging.AddModuleLevel(formatted)
	leveled.SetLevel(logging.WARNING, "")
	logging.SetBackend(leveled)
}

// NewLogger returns the logger for module, e.g. NewLogger("[evm]").
func NewLogger(module string) *logging.Logger {
	setupOnce.Do(setup)
	return logging.MustGetLogger(module)
}

// SetLevel changes the level of all loggers. Accepted names are those of
// go-logging: CRITICAL, ERROR, WARNING, NOTICE, INFO, DEBUG (any case).
func SetLevel(level string) error {
	setupOnce.Do(setup)
	lvl, err := logging.LogLevel(strings.ToUpper(level))
	if err != nil {
		return err
	}
	leveled.SetLevel(lvl, "")
	return nil
}
