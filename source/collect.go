package source

import "io"

// Collect drains c and returns the concatenation of every chunk. When c is a
// Source the result must match its declared length; a mismatch fails with
// ErrShortRead. Errors from c are returned as is, after closing a Source.
func Collect(c Chunker) ([]byte, error) {
	src, isSource := c.(Source)

	buf := []byte{}
	if isSource {
		buf = make([]byte, 0, min(src.Len(), maxPrealloc))
	}

	for {
		chunk, err := c.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			if isSource {
				src.Close()
			}
			return nil, err
		}
		buf = append(buf, chunk...)
	}

	if isSource && int64(len(buf)) != src.Len() {
		return nil, shortRead(src.Len(), int64(len(buf)))
	}

	return buf, nil
}
