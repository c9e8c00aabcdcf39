package log

import (
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
)

type Logger interface {
	Info(format string, args ...interface{})
	Warn(format string, args ...interface{})
	Error(format string, args ...interface{})
	Fatal(format string, args ...interface{})
}

type logger struct {
	info  *color.Color
	warn  *color.Color
	error *color.Color
}

func NewDefaultLogger() Logger {
	return &logger{
		info:  color.New(color.FgCyan),
		warn:  color.New(color.FgYellow),
		error: color.New(color.FgRed, color.Bold),
	}
}

func (l *logger) Info(format string, args ...interface{}) {
	l.print(l.info, "INFO", format, args...)
}

func (l *logger) Warn(format string, args ...interface{}) {
	l.print(l.warn, "WARN", format, args...)
}

func (l *logger) Error(format string, args ...interface{}) {
	l.print(l.error, "ERROR", format, args...)
}

func (l *logger) Fatal(format string, args ...interface{}) {
	l.print(l.error, "FATAL", format, args...)
	os.Exit(1)
}

func (l *logger) print(c *color.Color, level string, format string, args ...interface{}) {
	fmt.Printf("%s  %s  %s\n",
		time.Now().Format("2006/01/02 15:04:05"),
		c.Sprintf("[%s]", level),
		fmt.Sprintf(format, args...))
}
