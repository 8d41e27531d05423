package log

import (
	"errors"
	"strings"
)

// Level is the severity of an entry.
type Level int

const (
	Debug Level = iota
	Info
	Warn
	Error
	Fatal
)

// ErrInvalidLevel is returned by ParseLevel for unknown names.
var ErrInvalidLevel = errors.New("invalid log level")

func (l Level) String() string {
	switch l {
	case Debug:
		return "DEBUG"
	case Info:
		return "INFO"
	case Warn:
		return "WARN"
	case Error:
		return "ERROR"
	case Fatal:
		return "FATAL"
	default:
		return "UNKNOWN"
	}
}

// ParseLevel accepts level names case-insensitively.
// Unknown names return Info together with ErrInvalidLevel.
func ParseLevel(s string) (Level, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DEBUG":
		return Debug, nil
	case "INFO", "":
		return Info, nil
	case "WARN", "WARNING":
		return Warn, nil
	case "ERROR":
		return Error, nil
	case "FATAL":
		return Fatal, nil
	default:
		return Info, ErrInvalidLevel
	}
}

// Enables reports whether a logger at level l emits entries at target.
func (l Level) Enables(target Level) bool {
	return target >= l
}
