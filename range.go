package pdfsource

import (
	"fmt"
	"io"

	"github.com/tsawler/pdfsource/internal/filters"
	"github.com/tsawler/pdfsource/source"
)

// FilterParams holds the decode parameters of a filter, as found in a
// stream's /DecodeParms dictionary. Common keys are Predictor, Columns,
// Colors, BitsPerComponent, K, Rows and BlackIs1.
type FilterParams map[string]interface{}

// Range provides a fluent interface for reading a byte range from a file,
// a stream or memory. Each configuration method returns a new Range
// instance, so a partially configured Range can be shared and extended.
type Range struct {
	// Origin (only one is used, based on kind)
	path   string
	data   []byte
	stream io.ReadSeeker
	kind   source.Kind

	// Configuration
	options RangeOptions

	// Accumulated error (fail-fast)
	err error
}

// clone creates a shallow copy of the Range with a deep copy of options.
// This ensures immutability - each chain method returns a new instance.
func (r *Range) clone() *Range {
	return &Range{
		path:    r.path,
		data:    r.data,
		stream:  r.stream,
		kind:    r.kind,
		options: r.options.clone(),
		err:     r.err,
	}
}

// At returns a new Range starting at byte offset pos of the origin.
// Negative offsets start at the beginning; offsets past the end select
// nothing.
func (r *Range) At(pos int64) *Range {
	newRange := r.clone()
	newRange.options.pos = pos
	return newRange
}

// Limit returns a new Range reading at most n bytes. A negative n reads to
// the end of the origin. Terminal operations fail with source.ErrShortRead
// if fewer than n bytes remain after the start offset.
func (r *Range) Limit(n int64) *Range {
	newRange := r.clone()
	newRange.options.length = n
	return newRange
}

// ChunkSize returns a new Range that pulls n bytes at a time from the
// origin. Zero or negative selects source.DefaultChunkSize.
func (r *Range) ChunkSize(n int) *Range {
	newRange := r.clone()
	newRange.options.chunkSize = n
	return newRange
}

// Filter returns a new Range that decodes its bytes with the named PDF
// filter. Filters apply in the order they are added, matching the order of
// a /Filter array. Abbreviated names (Fl, AHx, A85, RL, CCF) are accepted.
// An unknown or unsupported name makes every terminal operation fail.
func (r *Range) Filter(name string, params FilterParams) *Range {
	newRange := r.clone()
	if newRange.err != nil {
		return newRange
	}

	if _, err := filters.Lookup(name); err != nil {
		newRange.err = err
		return newRange
	}

	// Copy params so later changes by the caller don't leak in
	var p filters.Params
	if params != nil {
		p = make(filters.Params, len(params))
		for k, v := range params {
			p[k] = v
		}
	}

	newRange.options.filters = append(newRange.options.filters, filterStep{
		name:   name,
		params: p,
	})
	return newRange
}

// Kind reports the origin of the Range.
func (r *Range) Kind() source.Kind {
	return r.kind
}

// Source opens the raw byte range, without filters. The caller must close
// the returned Source.
func (r *Range) Source() (source.Source, error) {
	if r.err != nil {
		return nil, r.err
	}

	opts := []source.Option{
		source.WithPos(r.options.pos),
		source.WithLength(r.options.length),
		source.WithChunkSize(r.options.chunkSize),
	}

	switch r.kind {
	case source.File:
		return source.FromFile(r.path, opts...)
	case source.Stream:
		return source.FromStream(r.stream, opts...)
	default:
		return source.FromBytes(r.data, opts...)
	}
}

// Len returns the number of raw bytes in the range, before decoding.
func (r *Range) Len() (int64, error) {
	src, err := r.Source()
	if err != nil {
		return 0, err
	}
	defer src.Close()

	return src.Len(), nil
}

// Bytes reads the range and returns its decoded bytes.
func (r *Range) Bytes() ([]byte, error) {
	chunks, closeFn, err := r.chunks()
	if err != nil {
		return nil, err
	}
	defer closeFn()

	return source.Collect(chunks)
}

// Each reads the range and calls fn with every decoded chunk, in order. The
// chunk is only valid until fn returns. Iteration stops at the first error
// from fn or from decoding, and that error is returned.
func (r *Range) Each(fn func(chunk []byte) error) error {
	chunks, closeFn, err := r.chunks()
	if err != nil {
		return err
	}
	defer closeFn()

	for {
		chunk, err := chunks.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		if err := fn(chunk); err != nil {
			return err
		}
	}
}

// chunks opens the range and stacks the configured filters on top of it.
// The returned function closes the underlying Source.
func (r *Range) chunks() (source.Chunker, func() error, error) {
	src, err := r.Source()
	if err != nil {
		return nil, nil, err
	}

	if len(r.options.filters) == 0 {
		return src, src.Close, nil
	}

	out, err := filters.DecodeChain(src, r.options.names(), r.options.params())
	if err != nil {
		src.Close()
		return nil, nil, fmt.Errorf("failed to set up filters: %w", err)
	}

	return out, src.Close, nil
}
