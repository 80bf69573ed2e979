// Package slog is a simple levelled logger with colorized level tags, code
// location printing and error check shortcuts.
package slog

import (
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"
	"sync/atomic"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/gookit/color"
)

const (
	Off = iota
	Fatal
	Error
	Warn
	Info
	Debug
	Trace
)

type (
	// Ln prints lists of interfaces with spaces in between
	Ln func(a ...interface{})
	// F prints like fmt.Printf surrounded by log details
	F func(format string, a ...interface{})
	// S prints a spew.Sdump for an interface slice
	S func(a ...interface{})
	// C accepts a closure so the extra computation can be avoided if it is
	// not being viewed
	C func(closure func() string)
	// Chk prints if there is an error, and returns true if there was
	Chk func(e error) bool
	// Err constructs an error via fmt.Errorf and returns it after printing
	Err func(format string, a ...interface{}) error

	LevelPrinter struct {
		Ln
		F
		S
		C
		Chk
		Err
	}
	LevelSpec struct {
		Name      string
		Colorizer func(a ...interface{}) string
	}
)

// Log is a set of log printers for the various levels.
type Log struct {
	F, E, W, I, D, T LevelPrinter
}

// Check is the set of error check shortcuts, one per level.
type Check struct {
	F, E, W, I, D, T Chk
}

var (
	currentLevel atomic.Int32
	// LevelSpecs specifies the string name and color-printing function of
	// each level.
	LevelSpecs = []LevelSpec{
		{"   ", color.Bit24(0, 0, 0, false).Sprint},
		{"FTL", color.Bit24(128, 0, 0, false).Sprint},
		{"ERR", color.Bit24(255, 0, 0, false).Sprint},
		{"WRN", color.Bit24(0, 255, 0, false).Sprint},
		{"INF", color.Bit24(255, 255, 0, false).Sprint},
		{"DBG", color.Bit24(0, 125, 255, false).Sprint},
		{"TRC", color.Bit24(125, 0, 255, false).Sprint},
	}
	levelNames = map[string]int{
		"off": Off, "fatal": Fatal, "error": Error, "warn": Warn,
		"info": Info, "debug": Debug, "trace": Trace,
	}
)

func init() {
	SetLogLevel(Info)
	if lvl, ok := levelNames[strings.ToLower(os.Getenv("GODEBUG"))]; ok {
		SetLogLevel(lvl)
	}
}

func SetLogLevel(l int) { currentLevel.Store(int32(l)) }

func GetLogLevel() int { return int(currentLevel.Load()) }

// SetLogLevelString sets the level from its name, ignoring unknown names.
func SetLogLevelString(s string) {
	if lvl, ok := levelNames[strings.ToLower(strings.TrimSpace(s))]; ok {
		SetLogLevel(lvl)
	}
}

func New(writer io.Writer) (l *Log, c *Check) {
	l = &Log{
		F: getPrinter(Fatal, writer),
		E: getPrinter(Error, writer),
		W: getPrinter(Warn, writer),
		I: getPrinter(Info, writer),
		D: getPrinter(Debug, writer),
		T: getPrinter(Trace, writer),
	}
	c = &Check{
		F: l.F.Chk,
		E: l.E.Chk,
		W: l.W.Chk,
		I: l.I.Chk,
		D: l.D.Chk,
		T: l.T.Chk,
	}
	return
}

func joinStrings(a ...any) (s string) {
	for i := range a {
		s += fmt.Sprint(a[i])
		if i < len(a)-1 {
			s += " "
		}
	}
	return
}

func emit(l int32, writer io.Writer, text string) {
	if int(l) > GetLogLevel() {
		return
	}
	fmt.Fprintf(writer,
		"%s %s %s %s\n",
		timeStamp(),
		LevelSpecs[l].Colorizer(LevelSpecs[l].Name),
		text,
		GetLoc(3),
	)
}

func getPrinter(l int32, writer io.Writer) LevelPrinter {
	return LevelPrinter{
		Ln: func(a ...interface{}) {
			emit(l, writer, joinStrings(a...))
		},
		F: func(format string, a ...interface{}) {
			emit(l, writer, fmt.Sprintf(format, a...))
		},
		S: func(a ...interface{}) {
			emit(l, writer, spew.Sdump(a...))
		},
		C: func(closure func() string) {
			emit(l, writer, closure())
		},
		Chk: func(e error) bool {
			if e != nil {
				emit(l, writer, e.Error())
				return true
			}
			return false
		},
		Err: func(format string, a ...interface{}) error {
			emit(l, writer, fmt.Sprintf(format, a...))
			return fmt.Errorf(format, a...)
		},
	}
}

// GetLoc returns the source location of the caller at the given stack depth.
func GetLoc(skip int) (output string) {
	_, file, line, _ := runtime.Caller(skip)
	output = color.Bit24(0, 128, 255, false).Sprint(file, ":", line)
	return
}

func timeStamp() string {
	return time.Now().Format("2006-01-02T15:04:05.000")
}
