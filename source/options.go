package source

// Options holds the raw bounding parameters of a Source before they are
// resolved against the origin.
type Options struct {
	// Pos is the requested start offset. Negative values start at 0.
	Pos int64

	// Length is the requested number of bytes. Negative means the rest of
	// the origin.
	Length int64

	// ChunkSize is the preferred chunk size. Non-positive values select
	// DefaultChunkSize.
	ChunkSize int
}

// Option configures a Source at construction.
type Option func(*Options)

// defaultOptions returns options selecting the whole origin.
func defaultOptions() Options {
	return Options{
		Pos:       0,
		Length:    -1,
		ChunkSize: 0,
	}
}

// WithPos sets the start offset.
func WithPos(pos int64) Option {
	return func(o *Options) {
		o.Pos = pos
	}
}

// WithLength sets the maximum number of bytes to read.
func WithLength(length int64) Option {
	return func(o *Options) {
		o.Length = length
	}
}

// WithChunkSize sets the preferred number of bytes per chunk.
func WithChunkSize(size int) Option {
	return func(o *Options) {
		o.ChunkSize = size
	}
}

func buildOptions(opts []Option) Options {
	o := defaultOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}

// resolve applies the options to an origin holding available bytes.
func (o Options) resolve(available int64) (Bounds, error) {
	return Resolve(available, o.Pos, o.Length, o.ChunkSize)
}
