package source

// Kind identifies the origin a Source reads from.
type Kind int

const (
	// Memory sources slice an in-memory byte buffer.
	Memory Kind = iota
	// Stream sources read from a caller-supplied handle.
	Stream
	// File sources read from a file they open and close themselves.
	File
)

// String returns the name of the kind.
func (k Kind) String() string {
	switch k {
	case Memory:
		return "memory"
	case Stream:
		return "stream"
	case File:
		return "file"
	default:
		return "unknown"
	}
}

// Chunker is a forward-only sequence of byte chunks. Next returns the next
// chunk, or io.EOF once the sequence is exhausted.
type Chunker interface {
	Next() ([]byte, error)
}

// Source is a Chunker with a length known at construction. A Source is
// single-pass and must not be used from multiple goroutines.
type Source interface {
	Chunker

	// Len returns the total number of bytes the Source yields.
	Len() int64

	// Kind returns the origin the Source reads from.
	Kind() Kind

	// Close ends the sequence and releases any resource the Source owns.
	// It is safe to call Close multiple times.
	Close() error
}
