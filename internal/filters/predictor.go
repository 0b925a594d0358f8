package filters

import (
	"fmt"
	"io"
)

// applyPredictor wraps r so that prediction is undone as rows are read.
// Predictor 1 is identity (no prediction), 2 is TIFF Predictor 2,
// and 10-15 are PNG predictors (None, Sub, Up, Average, Paeth).
func applyPredictor(r io.Reader, predictor int, params Params) (io.Reader, error) {
	switch {
	case predictor == 1:
		return r, nil
	case predictor == 2:
		return newTIFFPredictor(r, params)
	case predictor >= 10 && predictor <= 15:
		return newPNGPredictor(r, params)
	}

	return nil, fmt.Errorf("unsupported predictor: %d", predictor)
}

// rowGeometry reads Columns, Colors and BitsPerComponent and returns the
// number of bytes per row and per pixel.
func rowGeometry(params Params, name string) (rowLen, bytesPerPixel int, err error) {
	columns := getIntParam(params, "Columns", 1)
	colors := getIntParam(params, "Colors", 1)
	bpc := getIntParam(params, "BitsPerComponent", 8)

	if bpc != 8 {
		return 0, 0, fmt.Errorf("%s only supports 8 bits per component, got %d", name, bpc)
	}
	if columns <= 0 || colors <= 0 {
		return 0, 0, fmt.Errorf("invalid row geometry: %d columns, %d colors", columns, colors)
	}

	return columns * colors, colors, nil
}

// newTIFFPredictor undoes TIFF Predictor 2, which predicts each sample from
// the sample to its left. This is rarely used in PDFs.
func newTIFFPredictor(r io.Reader, params Params) (io.Reader, error) {
	rowLen, colors, err := rowGeometry(params, "TIFF Predictor 2")
	if err != nil {
		return nil, err
	}

	return newPredictorReader(r, rowLen, rowLen, func(dst, raw, _ []byte) error {
		for i := range raw {
			if i < colors {
				dst[i] = raw[i]
			} else {
				dst[i] = raw[i] + dst[i-colors]
			}
		}
		return nil
	}), nil
}

// newPNGPredictor undoes PNG prediction. Each row starts with a tag byte
// (0-4) selecting the algorithm used for that row.
func newPNGPredictor(r io.Reader, params Params) (io.Reader, error) {
	rowLen, bytesPerPixel, err := rowGeometry(params, "PNG predictor")
	if err != nil {
		return nil, err
	}

	return newPredictorReader(r, rowLen+1, rowLen, func(dst, raw, prev []byte) error {
		return decodePNGRow(dst, raw[1:], prev, raw[0], bytesPerPixel)
	}), nil
}

// predictorReader decodes a stream one fixed-size row at a time.
type predictorReader struct {
	r      io.Reader
	raw    []byte
	rowLen int
	decode func(dst, raw, prev []byte) error
	cur    []byte
	prev   []byte // nil before the first row
	out    []byte
	row    int
	err    error
}

func newPredictorReader(r io.Reader, rawLen, rowLen int, decode func(dst, raw, prev []byte) error) *predictorReader {
	return &predictorReader{
		r:      r,
		raw:    make([]byte, rawLen),
		rowLen: rowLen,
		decode: decode,
	}
}

func (p *predictorReader) Read(b []byte) (int, error) {
	if len(b) == 0 {
		return 0, nil
	}

	for len(p.out) == 0 {
		if p.err != nil {
			return 0, p.err
		}
		p.nextRow()
	}

	n := copy(b, p.out)
	p.out = p.out[n:]
	return n, nil
}

// nextRow decodes one row into p.out or records why it could not.
func (p *predictorReader) nextRow() {
	n, err := readRow(p.r, p.raw)
	if n < len(p.raw) {
		switch {
		case err == io.EOF && n == 0:
			p.err = io.EOF
		case err == io.EOF:
			p.err = fmt.Errorf("data size is not a multiple of row size %d", len(p.raw))
		default:
			p.err = err
		}
		return
	}

	if p.cur == nil {
		p.cur = make([]byte, p.rowLen)
	}
	if err := p.decode(p.cur, p.raw, p.prev); err != nil {
		p.err = fmt.Errorf("failed to decode row %d: %w", p.row, err)
		return
	}

	// The decoded row becomes the reference for the next one; out is drained
	// before the spare buffer is written again.
	p.out = p.cur
	p.prev, p.cur = p.cur, p.prev
	p.row++
}

// readRow fills buf from r, stopping early only on an error.
func readRow(r io.Reader, buf []byte) (int, error) {
	n := 0
	for n < len(buf) {
		m, err := r.Read(buf[n:])
		n += m
		if err != nil {
			return n, err
		}
	}
	return n, nil
}

// decodePNGRow decodes a single PNG-predicted row into dst using the
// specified predictor. prev is the previous decoded row, or nil for the
// first row. Predictor types: 0=None, 1=Sub (left), 2=Up (above),
// 3=Average, 4=Paeth.
func decodePNGRow(dst, rowData, prev []byte, predictor byte, bytesPerPixel int) error {
	for i := 0; i < len(rowData); i++ {
		var left, up, upLeft byte
		if i >= bytesPerPixel {
			left = dst[i-bytesPerPixel]
		}
		if prev != nil {
			up = prev[i]
			if i >= bytesPerPixel {
				upLeft = prev[i-bytesPerPixel]
			}
		}

		var predicted byte
		switch predictor {
		case 0: // None
		case 1: // Sub
			predicted = left
		case 2: // Up
			predicted = up
		case 3: // Average
			predicted = byte((int(left) + int(up)) / 2)
		case 4: // Paeth
			predicted = paethPredictor(left, up, upLeft)
		default:
			return fmt.Errorf("unknown PNG predictor: %d", predictor)
		}

		dst[i] = rowData[i] + predicted
	}

	return nil
}

// paethPredictor implements the Paeth predictor algorithm from the PNG specification.
// It selects the neighbor (left, above, or upper-left) closest to a linear prediction.
func paethPredictor(a, b, c byte) byte {
	// a = left, b = above, c = upper left
	p := int(a) + int(b) - int(c)
	pa := abs(p - int(a))
	pb := abs(p - int(b))
	pc := abs(p - int(c))

	if pa <= pb && pa <= pc {
		return a
	} else if pb <= pc {
		return b
	}
	return c
}

// abs returns the absolute value of an integer.
func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
