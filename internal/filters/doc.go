// Package filters provides PDF stream decompression filters that read from a
// chunked source.
//
// Every filter consumes a [source.Chunker] and returns another one, so a
// stream is decoded as it is pulled instead of being loaded whole first.
//
// # Supported Filters
//
// FlateDecode (zlib/deflate):
//
//	decoded, err := filters.FlateDecode(src, params)
//
// FlateDecode supports PNG predictors for improved compression of image data.
// The Predictor parameter specifies the algorithm:
//   - 1: No prediction (default)
//   - 2: TIFF Predictor 2
//   - 10-15: PNG predictors (None, Sub, Up, Average, Paeth)
//
// ASCIIHexDecode, ASCII85Decode and RunLengthDecode are implemented as
// golang.org/x/text/transform Transformers. CCITTFaxDecode uses
// golang.org/x/image/ccitt.
//
// # Filter Names
//
// [Lookup] maps PDF filter names and their abbreviations (Fl, AHx, A85, RL,
// CCF) to decoders. [DecodeChain] applies a Filter array in order:
//
//	out, err := filters.DecodeChain(src,
//	    []string{"ASCII85Decode", "FlateDecode"},
//	    []filters.Params{nil, {"Predictor": 12, "Columns": 5}},
//	)
//	data, err := source.Collect(out)
//
// # Decode Parameters
//
// Filters accept a Params map for additional parameters:
//
//	params := filters.Params{
//	    "Predictor": 12,
//	    "Columns":   100,
//	    "Colors":    3,
//	}
package filters
