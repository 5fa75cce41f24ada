package logging

import (
	"io"
	"log"
	"os"
	"strings"
	"sync"
)

// Level selects the least severe messages that are written.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarning
	LevelError
	LevelNone
)

var (
	mu      sync.Mutex
	level   Level
	out     io.Writer = os.Stderr
	debug   *log.Logger
	info    *log.Logger
	warning *log.Logger
	errLog  *log.Logger
)

func init() {
	flags := log.Ldate | log.Ltime | log.LUTC
	debug = log.New(io.Discard, "D ", flags)
	info = log.New(io.Discard, "I ", flags)
	warning = log.New(io.Discard, "W ", flags)
	errLog = log.New(io.Discard, "E ", flags)

	SetLevel(LevelWarning)
}

// ParseLevel maps a level name to a Level.
// Unknown names disable logging.
func ParseLevel(s string) Level {
	switch strings.ToLower(s) {
	case "debug":
		return LevelDebug
	case "info":
		return LevelInfo
	case "warning", "warn":
		return LevelWarning
	case "error":
		return LevelError
	default:
		return LevelNone
	}
}

// SetLevel enables l and every more severe level.
func SetLevel(l Level) {
	mu.Lock()
	defer mu.Unlock()
	level = l
	apply()
}

// SetOutput redirects all enabled levels to w.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	out = w
	apply()
}

func apply() {
	loggers := []*log.Logger{debug, info, warning, errLog}
	for i, l := range loggers {
		if Level(i) >= level {
			l.SetOutput(out)
		} else {
			l.SetOutput(io.Discard)
		}
	}
}

// Debug logs at debug level.
func Debug(msg string, v ...interface{}) {
	debug.Printf(msg, v...)
}

// Info logs at info level.
func Info(msg string, v ...interface{}) {
	info.Printf(msg, v...)
}

// Warning logs at warning level.
func Warning(msg string, v ...interface{}) {
	warning.Printf(msg, v...)
}

// Error logs at error level.
func Error(msg string, v ...interface{}) {
	errLog.Printf(msg, v...)
}
