// Package logger provides the prefixed, colored logger every component of
// the system receives as an injected dependency.
package logger

import (
	"errors"
	"io"
	"log"

	"github.com/akeshari98/wall-robot-control-system/config"
)

// Logger writes leveled log lines tagged with a component prefix.
type Logger struct {
	prefix string
	color  string
	out    *log.Logger
}

// New creates a Logger for the given component prefix. The color escape
// code is applied to the prefix only.
func New(prefix, color string, w io.Writer) (*Logger, error) {
	if prefix == "" {
		return nil, errors.New("logger prefix must not be empty")
	}
	if w == nil {
		return nil, errors.New("logger writer must not be nil")
	}
	return &Logger{
		prefix: prefix,
		color:  color,
		out:    log.New(w, "", log.LstdFlags),
	}, nil
}

func (l *Logger) print(level, msg string) {
	l.out.Printf("%s[%s]%s [%s] %s", l.color, l.prefix, config.ColorReset, level, msg)
}

// Info logs an informational message.
func (l *Logger) Info(msg string) {
	l.print("INFO", msg)
}

// Warning logs a warning message.
func (l *Logger) Warning(msg string) {
	l.print("WARNING", msg)
}

// Error logs an error message.
func (l *Logger) Error(msg string) {
	l.print("ERROR", msg)
}
