// Package logging is the leveled logger shared by the readers and the CLI.
package logging

import (
	"fmt"
	"io"
	"log"
	"os"
	"sync"
)

type Level int

const (
	// error levels that should almost always be printed
	LevelFatal Level = iota // error that must stop the program
	LevelError              // error that does not need to stop execution

	// debugging levels, okay to disable
	LevelWarn // something may be wrong, e.g. a reader candidate was skipped
	LevelInfo // nothing wrong, informational only

	// Library code by default only shows warnings and above.
	LevelDefault = LevelWarn

	LevelMin = LevelFatal
	LevelMax = LevelInfo
)

var levelToPrefix = []string{
	"FATAL ",
	"ERROR ",
	"WARN ",
	"INFO ",
}

// Logger writes lines prefixed by level and component name.
type Logger struct {
	mu     sync.Mutex
	level  Level
	name   string
	logger *log.Logger
}

// New returns a logger writing to stderr at LevelDefault.
func New(name string) *Logger {
	return &Logger{
		level:  LevelDefault,
		name:   name,
		logger: log.New(os.Stderr, "", log.LstdFlags),
	}
}

func (l *Logger) Level() Level {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.level
}

// SetLevel returns the old level.
func (l *Logger) SetLevel(level Level) Level {
	if level < LevelMin || level > LevelMax {
		panic("trying to set invalid log level")
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	old := l.level
	l.level = level
	return old
}

// SetOutput redirects the logger, mostly for tests.
func (l *Logger) SetOutput(w io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.logger.SetOutput(w)
}

func (l *Logger) output(level Level, s string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if level > l.level {
		return
	}
	prefix := levelToPrefix[level]
	if l.name != "" {
		prefix += "[" + l.name + "] "
	}
	l.logger.Output(3, prefix+s)
}

func (l *Logger) Info(v ...any)                 { l.output(LevelInfo, fmt.Sprintln(v...)) }
func (l *Logger) Infof(format string, v ...any) { l.output(LevelInfo, fmt.Sprintf(format, v...)) }

func (l *Logger) Warn(v ...any)                 { l.output(LevelWarn, fmt.Sprintln(v...)) }
func (l *Logger) Warnf(format string, v ...any) { l.output(LevelWarn, fmt.Sprintf(format, v...)) }

func (l *Logger) Error(v ...any)                 { l.output(LevelError, fmt.Sprintln(v...)) }
func (l *Logger) Errorf(format string, v ...any) { l.output(LevelError, fmt.Sprintf(format, v...)) }

func (l *Logger) Fatalf(format string, v ...any) {
	l.output(LevelFatal, fmt.Sprintf(format, v...))
	os.Exit(1)
}
