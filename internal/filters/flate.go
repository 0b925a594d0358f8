package filters

import (
	"fmt"
	"io"

	"github.com/klauspost/compress/zlib"

	"github.com/tsawler/pdfsource/source"
)

// FlateDecode inflates zlib/deflate compressed data pulled from in. This is
// the most common compression filter in PDFs. If params carry a Predictor
// other than 1, the matching PNG or TIFF predictor is undone row by row as
// the data streams through.
func FlateDecode(in source.Chunker, params Params) (source.Chunker, error) {
	r, err := flateReader(in, params)
	if err != nil {
		return nil, err
	}

	return source.ReaderChunks(r, source.DefaultChunkSize), nil
}

// flateReader returns the inflated, predictor-decoded stream. Creating the
// zlib reader pulls the stream header from in.
func flateReader(in source.Chunker, params Params) (io.Reader, error) {
	zr, err := zlib.NewReader(source.NewReader(in))
	if err != nil {
		return nil, fmt.Errorf("failed to create zlib reader: %w", err)
	}

	predictor := getIntParam(params, "Predictor", 1)
	r, err := applyPredictor(zr, predictor, params)
	if err != nil {
		return nil, fmt.Errorf("predictor failed: %w", err)
	}

	return r, nil
}
