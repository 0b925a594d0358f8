package source

// DefaultChunkSize is the chunk size used when none, or a non-positive one,
// is requested.
const DefaultChunkSize = 64 * 1024

// maxPrealloc bounds buffers sized from a declared length before the bytes
// have arrived. Larger reads grow with the data actually delivered.
const maxPrealloc = 16 * DefaultChunkSize

// Bounds is the effective byte range and chunk size a Source reads with.
type Bounds struct {
	// Pos is the absolute offset of the first byte in the origin.
	Pos int64
	// Length is the number of bytes the Source yields.
	Length int64
	// ChunkSize is the maximum number of bytes per chunk.
	ChunkSize int
}

// Resolve computes effective bounds from raw parameters and the number of
// bytes available in the origin.
//
// A pos at or below zero starts at the beginning, and a pos at or beyond
// available leaves nothing to read. A negative length means the rest of the
// origin. A positive length larger than what remains after pos fails with
// ErrShortRead; a length that fits exactly is accepted. A non-positive
// chunkSize selects DefaultChunkSize.
func Resolve(available, pos, length int64, chunkSize int) (Bounds, error) {
	if available < 0 {
		available = 0
	}
	if pos < 0 {
		pos = 0
	}
	if pos > available {
		pos = available
	}
	remaining := available - pos

	b := Bounds{Pos: pos, Length: remaining, ChunkSize: chunkSize}

	switch {
	case length == 0:
		b.Length = 0
	case length > 0:
		if length > remaining {
			return Bounds{}, shortRead(length, remaining)
		}
		b.Length = length
	}

	if b.ChunkSize <= 0 {
		b.ChunkSize = DefaultChunkSize
	}
	if b.Length > 0 && b.Length < int64(b.ChunkSize) {
		b.ChunkSize = int(b.Length)
	}

	return b, nil
}
