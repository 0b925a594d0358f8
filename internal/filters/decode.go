package filters

import (
	"errors"
	"fmt"

	"github.com/tsawler/pdfsource/source"
)

var (
	// ErrUnknownFilter is returned for filter names PDF does not define.
	ErrUnknownFilter = errors.New("filters: unknown filter")

	// ErrUnsupportedFilter is returned for standard filters that are not
	// implemented.
	ErrUnsupportedFilter = errors.New("filters: filter not implemented")
)

// Decoder decodes the bytes of in, returning the decoded chunks.
type Decoder func(in source.Chunker, params Params) (source.Chunker, error)

// passThrough returns in unchanged, for image formats decoded elsewhere.
func passThrough(in source.Chunker, _ Params) (source.Chunker, error) {
	return in, nil
}

// Lookup returns the decoder for a PDF filter name or its abbreviation.
func Lookup(name string) (Decoder, error) {
	switch name {
	case "FlateDecode", "Fl":
		return FlateDecode, nil

	case "ASCIIHexDecode", "AHx":
		return ASCIIHexDecode, nil

	case "ASCII85Decode", "A85":
		return ASCII85Decode, nil

	case "RunLengthDecode", "RL":
		return RunLengthDecode, nil

	case "CCITTFaxDecode", "CCF":
		return CCITTFaxDecode, nil

	case "DCTDecode", "DCT", "JPXDecode":
		// JPEG and JPEG2000 stay encoded for image extraction.
		return passThrough, nil

	case "LZWDecode", "LZW", "JBIG2Decode", "Crypt":
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFilter, name)

	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownFilter, name)
	}
}

// Decode applies the named filter to in.
func Decode(in source.Chunker, name string, params Params) (source.Chunker, error) {
	dec, err := Lookup(name)
	if err != nil {
		return nil, err
	}
	return dec(in, params)
}

// DecodeChain applies filters in order, each reading the output of the
// previous one. params[i] belongs to names[i]; missing entries mean no
// parameters, and a single entry applies to every filter.
func DecodeChain(in source.Chunker, names []string, params []Params) (source.Chunker, error) {
	out := in
	for i, name := range names {
		var p Params
		switch {
		case i < len(params):
			p = params[i]
		case len(params) == 1:
			p = params[0]
		}

		var err error
		out, err = Decode(out, name, p)
		if err != nil {
			return nil, fmt.Errorf("filter %d (%s) failed: %w", i, name, err)
		}
	}

	return out, nil
}
