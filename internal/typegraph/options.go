package typegraph

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"
)

// InvalidIDType selects what happens when an object's "id" field is not
// written as ID!.
type InvalidIDType uint8

const (
	// InvalidIDTypeError rejects the definition.
	InvalidIDTypeError InvalidIDType = iota
	// InvalidIDTypeIgnore logs a warning and keeps the field as the
	// identifier field.
	InvalidIDTypeIgnore
)

func (o InvalidIDType) String() string {
	switch o {
	case InvalidIDTypeError:
		return "error"
	case InvalidIDTypeIgnore:
		return "ignore"
	default:
		return "unknown"
	}
}

// ParseInvalidIDType accepts "error" or "ignore". The empty string selects
// the default.
func ParseInvalidIDType(s string) (InvalidIDType, error) {
	switch s {
	case "", "error":
		return InvalidIDTypeError, nil
	case "ignore":
		return InvalidIDTypeIgnore, nil
	default:
		return 0, fmt.Errorf("invalid on_invalid_id_type %q (want \"error\" or \"ignore\")", s)
	}
}

// Options configures a Schema. The zero value is the strict configuration
// with logging disabled.
type Options struct {
	OnInvalidIDType InvalidIDType
	Logger          *log.Logger
}

type Option func(*Options)

func defaultOptions() *Options {
	return &Options{
		OnInvalidIDType: InvalidIDTypeError,
		Logger:          log.New(io.Discard),
	}
}

// WithInvalidIDType selects how a malformed id field is treated.
func WithInvalidIDType(o InvalidIDType) Option {
	return func(opts *Options) { opts.OnInvalidIDType = o }
}

// WithLogger sets the logger for debug output and accepted-id warnings. A
// nil logger keeps the discard logger.
func WithLogger(l *log.Logger) Option {
	return func(opts *Options) {
		if l != nil {
			opts.Logger = l
		}
	}
}
