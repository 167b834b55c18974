package log

import (
	"strings"

	"github.com/fatih/color"
)

type LogLevel int

const (
	Debug LogLevel = iota
	Info
	Warn
	Error
)

var levelNames = [...]string{
	Debug: "DEBUG",
	Info:  "INFO",
	Warn:  "WARN",
	Error: "ERROR",
}

func (l LogLevel) String() string {
	if l < Debug || l > Error {
		return "UNKNOWN"
	}
	return levelNames[l]
}

// Parse maps a case-insensitive level name to a LogLevel. Unknown names fall
// back to Info.
func Parse(s string) LogLevel {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DEBUG", "TRACE":
		return Debug
	case "WARN", "WARNING":
		return Warn
	case "ERROR", "FATAL":
		return Error
	}
	return Info
}

// Color returns the terminal styling for a level.
func Color(l LogLevel) *color.Color {
	switch l {
	case Debug:
		return color.New(color.FgHiBlack)
	case Warn:
		return color.New(color.FgYellow)
	case Error:
		return color.New(color.FgRed, color.Bold)
	}
	return color.New(color.FgCyan)
}
