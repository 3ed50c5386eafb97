// Package status defines the error taxonomy shared by the rasterizer and
// compositor packages.
package status

import "errors"

// Sentinel errors. Internal code returns these (possibly wrapped) and
// callers classify them with errors.Is.
var (
	// ErrNoMemory is returned when an arena exceeds its allocation limit.
	ErrNoMemory = errors.New("glitter: out of memory")

	// ErrUnsupported signals that a compositing strategy cannot handle the
	// request and the next strategy should be tried. It never escapes the
	// compositor.
	ErrUnsupported = errors.New("glitter: unsupported operation")

	// ErrNothingToDo reports that the operation reduced to a no-op.
	ErrNothingToDo = errors.New("glitter: nothing to do")

	// ErrInvalidSize is returned for non-positive or overflowing dimensions.
	ErrInvalidSize = errors.New("glitter: invalid size")

	// ErrInvalidFormat is returned for unknown pixel formats.
	ErrInvalidFormat = errors.New("glitter: invalid format")

	// ErrInvalidArgument is returned for malformed inputs such as an
	// unknown operator or a nil pattern.
	ErrInvalidArgument = errors.New("glitter: invalid argument")
)

// Status is the coarse outcome of an operation.
type Status uint8

const (
	Success Status = iota
	NothingToDo
	NoMemory
	InvalidSize
	InvalidFormat
	InvalidArgument
	Unsupported
	Unknown
)

var statusNames = [...]string{
	Success:         "success",
	NothingToDo:     "nothing to do",
	NoMemory:        "out of memory",
	InvalidSize:     "invalid size",
	InvalidFormat:   "invalid format",
	InvalidArgument: "invalid argument",
	Unsupported:     "unsupported",
	Unknown:         "unknown error",
}

// String returns a human readable status name.
func (s Status) String() string {
	if int(s) < len(statusNames) {
		return statusNames[s]
	}
	return statusNames[Unknown]
}

// Of classifies err.
func Of(err error) Status {
	switch {
	case err == nil:
		return Success
	case errors.Is(err, ErrNothingToDo):
		return NothingToDo
	case errors.Is(err, ErrNoMemory):
		return NoMemory
	case errors.Is(err, ErrInvalidSize):
		return InvalidSize
	case errors.Is(err, ErrInvalidFormat):
		return InvalidFormat
	case errors.Is(err, ErrInvalidArgument):
		return InvalidArgument
	case errors.Is(err, ErrUnsupported):
		return Unsupported
	default:
		return Unknown
	}
}

// IsFailure reports whether err is a real failure, as opposed to nil or
// the early-success ErrNothingToDo.
func IsFailure(err error) bool {
	return err != nil && !errors.Is(err, ErrNothingToDo)
}
