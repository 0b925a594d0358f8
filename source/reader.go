package source

import "io"

// chunkReader adapts a Chunker to io.Reader.
type chunkReader struct {
	c       Chunker
	pending []byte
	err     error
}

// NewReader returns an io.Reader that pulls chunks from c on demand. It lets
// decoders written against io.Reader consume a Source without collecting it
// first. io.EOF from c is passed through; other errors are returned as is.
func NewReader(c Chunker) io.Reader {
	return &chunkReader{c: c}
}

func (r *chunkReader) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}

	for len(r.pending) == 0 {
		if r.err != nil {
			return 0, r.err
		}
		r.pending, r.err = r.c.Next()
	}

	n := copy(p, r.pending)
	r.pending = r.pending[n:]
	return n, nil
}

// readerChunker adapts an io.Reader of unknown length to Chunker.
type readerChunker struct {
	r         io.Reader
	chunkSize int
	err       error
}

// ReaderChunks returns a Chunker that reads r in chunks of up to chunkSize
// bytes until r reports io.EOF. A non-positive chunkSize selects
// DefaultChunkSize. Unlike a Source, its total length is not known up front.
func ReaderChunks(r io.Reader, chunkSize int) Chunker {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	return &readerChunker{r: r, chunkSize: chunkSize}
}

func (c *readerChunker) Next() ([]byte, error) {
	if c.err != nil {
		return nil, c.err
	}

	chunk := make([]byte, c.chunkSize)
	n := 0
	var err error
	for n < len(chunk) && err == nil {
		var m int
		m, err = c.r.Read(chunk[n:])
		n += m
	}
	if err != nil {
		c.err = err
	}

	if n == 0 {
		return nil, c.err
	}
	return chunk[:n], nil
}
