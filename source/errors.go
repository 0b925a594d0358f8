package source

import (
	"errors"
	"fmt"
)

var (
	// ErrShortRead is returned when more bytes are requested than the origin
	// holds, either at construction or when a stream delivers less than it
	// reported.
	ErrShortRead = errors.New("source: short read")

	// ErrUnknownLength is returned by FromReader when no length is given.
	ErrUnknownLength = errors.New("source: length required for unseekable reader")

	// ErrClosed is returned by Next after Close was called on an
	// unexhausted source.
	ErrClosed = errors.New("source: closed")
)

// shortRead wraps ErrShortRead with the byte counts involved.
func shortRead(wanted, got int64) error {
	return fmt.Errorf("%w: wanted %d bytes, %d available", ErrShortRead, wanted, got)
}
