package brightness

import (
	"errors"
	"fmt"
)

// ErrNoDevice is logged when no backlight device is usable.
var ErrNoDevice = errors.New("no usable backlight device")

// ReadError is returned when the current level could not be read.
// The last known level is retained.
type ReadError struct {
	Kind Kind
	Err  error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("read %s brightness: %v", e.Kind, e.Err)
}

func (e *ReadError) Unwrap() error { return e.Err }

// WriteError is returned when a new level could not be applied.
// The controller still records the requested level.
type WriteError struct {
	Kind  Kind
	Level float64
	Err   error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("set %s brightness to %g: %v", e.Kind, e.Level, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }
