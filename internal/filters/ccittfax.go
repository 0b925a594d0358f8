package filters

import (
	"golang.org/x/image/ccitt"

	"github.com/tsawler/pdfsource/source"
)

// CCITTFaxDecode decodes CCITT Group 3/4 fax compressed data pulled from in.
// This is commonly used for bi-level (black and white) images in PDFs,
// particularly for scanned documents.
//
// Parameters from the PDF decode parameters dictionary:
//   - K: Group selector (-1=Group4, 0=Group3 1D, >0=Group3 2D)
//   - Columns: Image width in pixels (default 1728)
//   - Rows: Image height in pixels (default 0, uses AutoDetectHeight)
//   - BlackIs1: Bit interpretation (default false, maps to ccitt.Options.Invert)
//   - EncodedByteAlign: Rows start on byte boundaries (default false)
func CCITTFaxDecode(in source.Chunker, params Params) (source.Chunker, error) {
	columns := getIntParam(params, "Columns", 1728)
	rows := getIntParam(params, "Rows", 0)
	k := getIntParam(params, "K", 0)
	blackIs1 := getBoolParam(params, "BlackIs1", false)
	align := getBoolParam(params, "EncodedByteAlign", false)

	// K < 0: pure Group 4
	// K = 0: pure Group 3 (1-dimensional)
	// K > 0: mixed Group 3 (2-dimensional)
	sf := ccitt.Group3
	if k < 0 {
		sf = ccitt.Group4
	}

	opts := &ccitt.Options{Align: align, Invert: blackIs1}

	if rows == 0 {
		rows = ccitt.AutoDetectHeight
	}

	r := ccitt.NewReader(source.NewReader(in), ccitt.MSB, sf, columns, rows, opts)
	return source.ReaderChunks(r, source.DefaultChunkSize), nil
}
