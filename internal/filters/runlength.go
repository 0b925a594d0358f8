package filters

import (
	"errors"

	"golang.org/x/text/transform"

	"github.com/tsawler/pdfsource/source"
)

// RunLengthDecode decodes RunLengthDecode data pulled from in. A length byte
// of 0-127 is followed by that many plus one literal bytes, 129-255 by one
// byte repeated 257 minus length times, and 128 marks end of data. Data
// ending inside a run is an error.
func RunLengthDecode(in source.Chunker, _ Params) (source.Chunker, error) {
	return transformChunks(in, &runLengthDecoder{}), nil
}

var errTruncatedRunLength = errors.New("truncated run-length data")

// runLengthDecoder is a transform.Transformer decoding RunLengthDecode data.
type runLengthDecoder struct {
	literal int  // literal bytes still to copy
	repeat  int  // copies of value still to write
	value   byte // the repeated byte, valid when haveVal is set
	haveVal bool
	eod     bool
}

func (d *runLengthDecoder) Reset() { *d = runLengthDecoder{} }

func (d *runLengthDecoder) Transform(dst, src []byte, atEOF bool) (nDst, nSrc int, err error) {
	for {
		if d.eod {
			return nDst, len(src), nil
		}

		switch {
		case d.literal > 0:
			if nSrc == len(src) {
				if atEOF {
					return nDst, nSrc, errTruncatedRunLength
				}
				return nDst, nSrc, nil
			}
			n := min(d.literal, len(src)-nSrc, len(dst)-nDst)
			if n == 0 {
				return nDst, nSrc, transform.ErrShortDst
			}
			copy(dst[nDst:], src[nSrc:nSrc+n])
			nDst += n
			nSrc += n
			d.literal -= n

		case d.repeat > 0:
			if !d.haveVal {
				if nSrc == len(src) {
					if atEOF {
						return nDst, nSrc, errTruncatedRunLength
					}
					return nDst, nSrc, nil
				}
				d.value = src[nSrc]
				d.haveVal = true
				nSrc++
			}
			n := min(d.repeat, len(dst)-nDst)
			if n == 0 {
				return nDst, nSrc, transform.ErrShortDst
			}
			for i := 0; i < n; i++ {
				dst[nDst+i] = d.value
			}
			nDst += n
			d.repeat -= n
			if d.repeat == 0 {
				d.haveVal = false
			}

		default:
			if nSrc == len(src) {
				return nDst, nSrc, nil
			}
			length := src[nSrc]
			nSrc++
			switch {
			case length < 128:
				d.literal = int(length) + 1
			case length == 128:
				d.eod = true
			default:
				d.repeat = 257 - int(length)
			}
		}
	}
}
