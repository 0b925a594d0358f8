package source

import (
	"bytes"
	"errors"
	"io"
)

// streamSource reads a bounded range from an io.Reader in fixed-size pulls.
// It backs stream, reader and file sources.
type streamSource struct {
	r         io.Reader
	kind      Kind
	length    int64
	remaining int64
	chunkSize int

	// skip is the number of bytes to discard before the first chunk, used
	// when the reader cannot seek.
	skip int64

	// closer is non-nil only when the source owns the handle.
	closer io.Closer

	// err is the terminal state: io.EOF once exhausted, ErrClosed after
	// Close, or the first failure.
	err error
}

// FromStream returns a Source reading from rs. Offsets are absolute: the
// available size is taken from the end of the stream, so a handle that was
// already read does not need rewinding. The handle is borrowed and is never
// closed by the Source. After exhaustion its position is exactly the end of
// the selected range.
func FromStream(rs io.ReadSeeker, opts ...Option) (Source, error) {
	size, err := rs.Seek(0, io.SeekEnd)
	if err != nil {
		return nil, err
	}

	return seekStream(rs, size, Stream, buildOptions(opts))
}

// FromReader returns a Source reading from a reader that cannot seek. Its
// size is only discovered by reading, so WithLength is required; without it
// FromReader fails with ErrUnknownLength. Bytes before the start offset are
// discarded on the first pull. A reader that ends early fails with
// ErrShortRead during consumption.
func FromReader(r io.Reader, opts ...Option) (Source, error) {
	o := buildOptions(opts)
	if o.Length < 0 {
		return nil, ErrUnknownLength
	}
	if o.Pos < 0 {
		o.Pos = 0
	}

	b, err := o.resolve(o.Pos + o.Length)
	if err != nil {
		return nil, err
	}

	s := newStreamSource(r, b, Stream)
	s.skip = b.Pos
	return s, nil
}

// seekStream resolves o against size and positions rs at the start of the
// range.
func seekStream(rs io.ReadSeeker, size int64, kind Kind, o Options) (*streamSource, error) {
	b, err := o.resolve(size)
	if err != nil {
		return nil, err
	}

	if _, err := rs.Seek(b.Pos, io.SeekStart); err != nil {
		return nil, err
	}

	return newStreamSource(rs, b, kind), nil
}

func newStreamSource(r io.Reader, b Bounds, kind Kind) *streamSource {
	return &streamSource{
		r:         r,
		kind:      kind,
		length:    b.Length,
		remaining: b.Length,
		chunkSize: b.ChunkSize,
	}
}

func (s *streamSource) Next() ([]byte, error) {
	if s.err != nil {
		return nil, s.err
	}

	if s.remaining == 0 {
		return nil, s.finish(io.EOF)
	}

	if s.skip > 0 {
		n, err := io.CopyN(io.Discard, s.r, s.skip)
		if err != nil {
			if errors.Is(err, io.EOF) {
				err = shortRead(s.skip+s.length, n)
			}
			return nil, s.finish(err)
		}
		s.skip = 0
	}

	n := int64(s.chunkSize)
	if s.remaining < n {
		n = s.remaining
	}

	chunk, err := readChunk(s.r, n)
	s.remaining -= int64(len(chunk))
	if err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			err = shortRead(s.length, s.length-s.remaining)
		}
		return nil, s.finish(err)
	}

	return chunk, nil
}

// finish records the terminal state and releases an owned handle. A close
// failure is reported only when the source ended normally.
func (s *streamSource) finish(err error) error {
	s.err = err
	if s.closer == nil {
		return err
	}

	closeErr := s.closer.Close()
	s.closer = nil
	if err == io.EOF && closeErr != nil {
		s.err = closeErr
	}
	return s.err
}

func (s *streamSource) Len() int64 { return s.length }

func (s *streamSource) Kind() Kind { return s.kind }

func (s *streamSource) Close() error {
	if s.err != nil {
		return nil
	}
	s.err = ErrClosed
	if s.closer == nil {
		return nil
	}
	err := s.closer.Close()
	s.closer = nil
	return err
}

// readChunk reads exactly n bytes from r, returning what arrived along with
// io.ErrUnexpectedEOF or io.EOF when r ends early. Chunks above maxPrealloc
// are read into a growing buffer.
func readChunk(r io.Reader, n int64) ([]byte, error) {
	if n <= maxPrealloc {
		chunk := make([]byte, n)
		read, err := io.ReadFull(r, chunk)
		return chunk[:read], err
	}

	var buf bytes.Buffer
	read, err := io.CopyN(&buf, r, n)
	if err == io.EOF && read > 0 {
		err = io.ErrUnexpectedEOF
	}
	return buf.Bytes(), err
}
