// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package glitter

import (
	"errors"

	"github.com/gogpu/glitter/internal/status"
)

// Errors returned by rendering operations. Test with errors.Is.
var (
	ErrNoMemory        = status.ErrNoMemory
	ErrInvalidSize     = status.ErrInvalidSize
	ErrInvalidFormat   = status.ErrInvalidFormat
	ErrInvalidArgument = status.ErrInvalidArgument
)

// Status is the coarse outcome of an operation.
type Status = status.Status

// Status values.
const (
	StatusSuccess         = status.Success
	StatusNothingToDo     = status.NothingToDo
	StatusNoMemory        = status.NoMemory
	StatusInvalidSize     = status.InvalidSize
	StatusInvalidFormat   = status.InvalidFormat
	StatusInvalidArgument = status.InvalidArgument
	StatusUnknown         = status.Unknown
)

// StatusOf classifies an error returned by this package.
func StatusOf(err error) Status {
	return status.Of(err)
}

// SurfaceError records the operation that put a surface into an error
// state. Every later operation on the surface returns it.
type SurfaceError struct {
	Op  string
	Err error
}

func (e *SurfaceError) Error() string {
	return "glitter: " + e.Op + ": " + e.Err.Error()
}

func (e *SurfaceError) Unwrap() error {
	return e.Err
}

// isSticky reports whether err should put the target surface into an
// error state. Argument errors only reject the call.
func isSticky(err error) bool {
	return errors.Is(err, ErrNoMemory) || errors.Is(err, ErrInvalidFormat)
}
