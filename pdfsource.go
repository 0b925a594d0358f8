// Package pdfsource provides a fluent API for reading byte ranges of PDF
// files and decoding the streams they contain.
//
// Basic usage:
//
//	data, err := pdfsource.Open("document.pdf").
//	    At(1024).
//	    Limit(4096).
//	    Bytes()
//	if err != nil {
//	    // handle error
//	}
//
// With decode filters, as listed in a stream's /Filter entry:
//
//	content, err := pdfsource.Open("document.pdf").
//	    At(streamOffset).
//	    Limit(streamLength).
//	    Filter("FlateDecode", nil).
//	    Bytes()
//
// Large streams can be processed chunk by chunk without holding them in
// memory:
//
//	err := pdfsource.Open("document.pdf").
//	    ChunkSize(32 * 1024).
//	    Each(func(chunk []byte) error {
//	        _, err := h.Write(chunk)
//	        return err
//	    })
//
// For lower-level control, the source package is also available.
package pdfsource

import (
	"errors"
	"io"

	"github.com/tsawler/pdfsource/source"
)

// ErrNilStream is returned by terminal operations on a Range created from a
// nil stream.
var ErrNilStream = errors.New("pdfsource: nil stream")

// Open returns a Range covering the whole file at path. The file is not
// opened until a terminal operation like Bytes() runs, and each terminal
// operation opens and closes it again.
//
// Example:
//
//	data, err := pdfsource.Open("document.pdf").Bytes()
func Open(path string) *Range {
	return &Range{
		path:    path,
		kind:    source.File,
		options: defaultOptions(),
	}
}

// FromBytes returns a Range over data held in memory. Chunks are copies, but
// data itself must not be modified while the Range is in use.
//
// Example:
//
//	header, err := pdfsource.FromBytes(pdf).Limit(8).Bytes()
func FromBytes(data []byte) *Range {
	return &Range{
		data:    data,
		kind:    source.Memory,
		options: defaultOptions(),
	}
}

// FromStream returns a Range over a seekable stream. Offsets are absolute
// within the stream, whatever its current position.
// Note: The caller is responsible for closing the stream.
//
// Example:
//
//	f, err := os.Open("document.pdf")
//	if err != nil {
//	    // handle error
//	}
//	defer f.Close()
//	trailer, err := pdfsource.FromStream(f).At(size - 1024).Bytes()
func FromStream(rs io.ReadSeeker) *Range {
	r := &Range{
		stream:  rs,
		kind:    source.Stream,
		options: defaultOptions(),
	}
	if rs == nil {
		r.err = ErrNilStream
	}
	return r
}

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil. It is intended for use in scripts
// or tests where error handling would be cumbersome.
//
// Example:
//
//	data := pdfsource.Must(pdfsource.Open("document.pdf").Limit(1024).Bytes())
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}
