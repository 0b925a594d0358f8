package source

import "io"

// memorySource yields copies of consecutive slices of a byte buffer.
type memorySource struct {
	buf       []byte
	off       int64
	end       int64
	length    int64
	chunkSize int
	closed    bool
}

// FromBytes returns a Source over buf. The buffer is never modified and each
// chunk is an independent copy, so callers may change yielded chunks freely.
//
// A requested length larger than what buf holds after the start offset fails
// with ErrShortRead.
func FromBytes(buf []byte, opts ...Option) (Source, error) {
	b, err := buildOptions(opts).resolve(int64(len(buf)))
	if err != nil {
		return nil, err
	}

	return &memorySource{
		buf:       buf,
		off:       b.Pos,
		end:       b.Pos + b.Length,
		length:    b.Length,
		chunkSize: b.ChunkSize,
	}, nil
}

func (s *memorySource) Next() ([]byte, error) {
	if s.off >= s.end {
		if s.closed {
			return nil, ErrClosed
		}
		return nil, io.EOF
	}

	n := int64(s.chunkSize)
	if rest := s.end - s.off; rest < n {
		n = rest
	}

	chunk := make([]byte, n)
	copy(chunk, s.buf[s.off:s.off+n])
	s.off += n

	return chunk, nil
}

func (s *memorySource) Len() int64 { return s.length }

func (s *memorySource) Kind() Kind { return Memory }

func (s *memorySource) Close() error {
	if s.off < s.end {
		s.closed = true
		s.off = s.end
	}
	return nil
}
