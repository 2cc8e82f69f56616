// Package logger provides the service's zerolog logger.
package logger

import (
	"io"
	"os"
	"strings"

	pkgerrors "github.com/pkg/errors"
	"github.com/rs/zerolog"
	zpkgerrors "github.com/rs/zerolog/pkgerrors"
)

type stackTracer interface {
	StackTrace() pkgerrors.StackTrace
}

// New returns a JSON logger on stdout tagged with the service name.
// Error events logged with .Stack() render the pkg/errors stack of the cause.
func New(serviceName, level string) zerolog.Logger {
	return NewWithWriter(os.Stdout, serviceName, level)
}

func NewWithWriter(w io.Writer, serviceName, level string) zerolog.Logger {
	zerolog.ErrorStackMarshaler = func(err error) interface{} {
		if traced := findStack(err); traced != nil {
			return zpkgerrors.MarshalStack(traced)
		}
		return zpkgerrors.MarshalStack(pkgerrors.WithStack(err))
	}

	return zerolog.New(w).
		Level(ParseLevel(level)).
		With().
		Str("service", serviceName).
		Timestamp().
		Logger()
}

func ParseLevel(level string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "disabled", "off":
		return zerolog.Disabled
	default:
		return zerolog.InfoLevel
	}
}

// findStack walks the unwrap chain, multi-error nodes included, and returns
// the first error that already carries a stack.
func findStack(err error) error {
	for err != nil {
		if _, ok := err.(stackTracer); ok {
			return err
		}
		switch u := err.(type) {
		case interface{ Unwrap() []error }:
			for _, inner := range u.Unwrap() {
				if traced := findStack(inner); traced != nil {
					return traced
				}
			}
			return nil
		case interface{ Unwrap() error }:
			err = u.Unwrap()
		default:
			return nil
		}
	}
	return nil
}
