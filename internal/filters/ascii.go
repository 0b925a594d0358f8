package filters

import (
	"fmt"

	"golang.org/x/text/transform"

	"github.com/tsawler/pdfsource/source"
)

// ASCIIHexDecode decodes ASCII hexadecimal encoded data pulled from in.
// Each pair of hexadecimal digits (0-9, A-F, a-f) represents one byte.
// Whitespace is ignored, and > marks end of data. A final odd digit is
// treated as if followed by 0.
func ASCIIHexDecode(in source.Chunker, _ Params) (source.Chunker, error) {
	return transformChunks(in, &asciiHexDecoder{}), nil
}

// ASCII85Decode decodes ASCII base-85 (Ascii85) encoded data pulled from in.
// Each group of 5 ASCII characters (! to u, values 33-117) represents 4 bytes.
// The special character 'z' represents four zero bytes. The sequence ~> marks
// end of data; input that simply stops is decoded as if it were there, but a
// final ~ without its > is an error.
func ASCII85Decode(in source.Chunker, _ Params) (source.Chunker, error) {
	return transformChunks(in, &ascii85Decoder{}), nil
}

// transformChunks runs t over the bytes of in.
func transformChunks(in source.Chunker, t transform.Transformer) source.Chunker {
	return source.ReaderChunks(transform.NewReader(source.NewReader(in), t), source.DefaultChunkSize)
}

// asciiHexDecoder is a transform.Transformer decoding ASCIIHexDecode data.
type asciiHexDecoder struct {
	high    byte
	pending bool // high holds the first digit of a pair
	eod     bool
}

func (d *asciiHexDecoder) Reset() { *d = asciiHexDecoder{} }

func (d *asciiHexDecoder) Transform(dst, src []byte, atEOF bool) (nDst, nSrc int, err error) {
	for nSrc < len(src) {
		if d.eod {
			return nDst, len(src), nil
		}

		c := src[nSrc]
		if isWhitespace(c) {
			nSrc++
			continue
		}

		if c == '>' {
			if d.pending {
				if nDst == len(dst) {
					return nDst, nSrc, transform.ErrShortDst
				}
				dst[nDst] = d.high
				nDst++
				d.pending = false
			}
			d.eod = true
			nSrc++
			continue
		}

		v, err := hexDigitToByte(c)
		if err != nil {
			return nDst, nSrc, err
		}

		if !d.pending {
			d.high = v << 4
			d.pending = true
			nSrc++
			continue
		}

		if nDst == len(dst) {
			return nDst, nSrc, transform.ErrShortDst
		}
		dst[nDst] = d.high | v
		nDst++
		d.pending = false
		nSrc++
	}

	if atEOF && d.pending {
		if nDst == len(dst) {
			return nDst, nSrc, transform.ErrShortDst
		}
		dst[nDst] = d.high
		nDst++
		d.pending = false
	}

	return nDst, nSrc, nil
}

// ascii85Decoder is a transform.Transformer decoding ASCII85Decode data.
type ascii85Decoder struct {
	group [5]byte
	n     int
	tilde bool // the previous character was '~'
	eod   bool
}

func (d *ascii85Decoder) Reset() { *d = ascii85Decoder{} }

func (d *ascii85Decoder) Transform(dst, src []byte, atEOF bool) (nDst, nSrc int, err error) {
	for nSrc < len(src) {
		if d.eod {
			return nDst, len(src), nil
		}

		c := src[nSrc]

		if d.tilde {
			if c != '>' {
				return nDst, nSrc, fmt.Errorf("invalid ASCII85 character after ~: %c", c)
			}
			m, ok := d.flush(dst[nDst:])
			if !ok {
				return nDst, nSrc, transform.ErrShortDst
			}
			nDst += m
			d.tilde = false
			d.eod = true
			nSrc++
			continue
		}

		switch {
		case isWhitespace(c):
		case c == '~':
			d.tilde = true
		case c == 'z' && d.n == 0:
			if len(dst)-nDst < 4 {
				return nDst, nSrc, transform.ErrShortDst
			}
			copy(dst[nDst:], []byte{0, 0, 0, 0})
			nDst += 4
		case c < '!' || c > 'u':
			return nDst, nSrc, fmt.Errorf("invalid ASCII85 character: %c", c)
		default:
			if d.n == 4 && len(dst)-nDst < 4 {
				return nDst, nSrc, transform.ErrShortDst
			}
			d.group[d.n] = c - '!'
			d.n++
			if d.n == 5 {
				nDst += d.emit(dst[nDst:], 4)
				d.n = 0
			}
		}
		nSrc++
	}

	if atEOF && d.tilde {
		return nDst, nSrc, fmt.Errorf("incomplete ASCII85 end marker: ~ without >")
	}

	if atEOF && !d.eod {
		m, ok := d.flush(dst[nDst:])
		if !ok {
			return nDst, nSrc, transform.ErrShortDst
		}
		nDst += m
	}

	return nDst, nSrc, nil
}

// flush writes a partial final group. Missing digits are padded with 'u'
// and one byte fewer than the number of digits is produced.
func (d *ascii85Decoder) flush(dst []byte) (int, bool) {
	if d.n == 0 {
		return 0, true
	}

	numBytes := d.n - 1
	if len(dst) < numBytes {
		return 0, false
	}

	for i := d.n; i < 5; i++ {
		d.group[i] = 84 // 'u' - '!'
	}
	n := d.emit(dst, numBytes)
	d.n = 0
	return n, true
}

// emit converts the current group to binary and writes its first numBytes
// bytes (big-endian) to dst.
func (d *ascii85Decoder) emit(dst []byte, numBytes int) int {
	value := uint32(0)
	for _, digit := range d.group {
		value = value*85 + uint32(digit)
	}

	for j := 0; j < numBytes; j++ {
		dst[j] = byte(value >> (24 - j*8))
	}
	return numBytes
}

// hexDigitToByte converts a hexadecimal character to its numeric value (0-15).
func hexDigitToByte(c byte) (byte, error) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', nil
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, nil
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, nil
	default:
		return 0, fmt.Errorf("invalid hex digit: %c", c)
	}
}

// isWhitespace reports whether c is a PDF whitespace character.
func isWhitespace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\n' || c == '\f' || c == 0
}
