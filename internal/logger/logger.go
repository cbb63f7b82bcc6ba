package logger

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"sync"

	"github.com/fatih/color"
)

// Level controls which messages are emitted. The default shows warnings
// and errors only; --debug raises it to info, --verbose to debug.
type Level int

const (
	LevelError Level = iota
	LevelWarn
	LevelInfo
	LevelDebug
)

var (
	mu     sync.Mutex
	level  = LevelWarn
	output io.Writer = os.Stderr

	debugTag = color.New(color.FgHiBlack).Sprint("DEBUG")
	infoTag  = color.New(color.FgCyan).Sprint("INFO ")
	warnTag  = color.New(color.FgYellow, color.Bold).Sprint("WARN ")
	errorTag = color.New(color.FgRed, color.Bold).Sprint("ERROR")
)

// SetLevel changes the global verbosity.
func SetLevel(l Level) {
	mu.Lock()
	defer mu.Unlock()
	level = l
}

// SetOutput redirects log output, mainly for tests.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	output = w
}

// Logger carries structured fields attached to every message it emits.
type Logger struct {
	fields map[string]interface{}
}

// WithField returns a logger with one structured field attached.
func WithField(key string, value interface{}) Logger {
	return Logger{}.WithField(key, value)
}

// WithFields returns a logger with several structured fields attached.
func WithFields(fields map[string]interface{}) Logger {
	return Logger{}.WithFields(fields)
}

func (l Logger) WithField(key string, value interface{}) Logger {
	return l.WithFields(map[string]interface{}{key: value})
}

func (l Logger) WithFields(fields map[string]interface{}) Logger {
	merged := make(map[string]interface{}, len(l.fields)+len(fields))
	for k, v := range l.fields {
		merged[k] = v
	}
	for k, v := range fields {
		merged[k] = v
	}
	return Logger{fields: merged}
}

func (l Logger) Debug(format string, args ...interface{}) { l.log(LevelDebug, debugTag, format, args...) }
func (l Logger) Info(format string, args ...interface{})  { l.log(LevelInfo, infoTag, format, args...) }
func (l Logger) Warn(format string, args ...interface{})  { l.log(LevelWarn, warnTag, format, args...) }
func (l Logger) Error(format string, args ...interface{}) { l.log(LevelError, errorTag, format, args...) }

// Package-level shortcuts for messages without fields.

func Debug(format string, args ...interface{}) { Logger{}.Debug(format, args...) }
func Info(format string, args ...interface{})  { Logger{}.Info(format, args...) }
func Warn(format string, args ...interface{})  { Logger{}.Warn(format, args...) }
func Error(format string, args ...interface{}) { Logger{}.Error(format, args...) }

func (l Logger) log(msgLevel Level, tag, format string, args ...interface{}) {
	mu.Lock()
	defer mu.Unlock()
	if msgLevel > level {
		return
	}

	msg := fmt.Sprintf(format, args...)
	if len(l.fields) > 0 {
		keys := make([]string, 0, len(l.fields))
		for k := range l.fields {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		pairs := make([]string, 0, len(keys))
		for _, k := range keys {
			pairs = append(pairs, fmt.Sprintf("%s=%v", k, l.fields[k]))
		}
		msg = msg + " " + strings.Join(pairs, " ")
	}

	fmt.Fprintf(output, "%s %s\n", tag, msg)
}
