package filters

import (
	"bytes"
	"errors"
	"math/rand"
	"testing"

	"github.com/tsawler/pdfsource/source"
)

// TestFlateDecodeBasic tests basic zlib decompression
func TestFlateDecodeBasic(t *testing.T) {
	original := []byte("Hello, World! This is test data for FlateDecode.")
	assertDecodes(t, FlateDecode, zlibCompress(original), nil, original)
}

// TestFlateDecodeNoPredictor tests with Predictor=1 (no prediction)
func TestFlateDecodeNoPredictor(t *testing.T) {
	original := []byte("Test data with no predictor")
	assertDecodes(t, FlateDecode, zlibCompress(original), Params{"Predictor": 1}, original)
}

// TestFlateDecodeLarge tests output spanning several chunks
func TestFlateDecodeLarge(t *testing.T) {
	original := make([]byte, 3*source.DefaultChunkSize+123)
	rand.New(rand.NewSource(7)).Read(original[:1000])

	src, err := source.FromBytes(zlibCompress(original), source.WithChunkSize(512))
	if err != nil {
		t.Fatalf("FromBytes failed: %v", err)
	}

	out, err := FlateDecode(src, nil)
	if err != nil {
		t.Fatalf("FlateDecode failed: %v", err)
	}

	chunks := 0
	var got []byte
	for {
		chunk, err := out.Next()
		if err != nil {
			break
		}
		if len(chunk) > source.DefaultChunkSize {
			t.Errorf("chunk of %d bytes exceeds default chunk size", len(chunk))
		}
		chunks++
		got = append(got, chunk...)
	}

	if chunks != 4 {
		t.Errorf("got %d chunks, want 4", chunks)
	}
	if !bytes.Equal(got, original) {
		t.Error("decoded data doesn't match original")
	}
}

// TestFlateDecodeInvalidData tests error handling for data that isn't zlib
func TestFlateDecodeInvalidData(t *testing.T) {
	src, err := source.FromBytes([]byte("not compressed at all"))
	if err != nil {
		t.Fatalf("FromBytes failed: %v", err)
	}

	if _, err := FlateDecode(src, nil); err == nil {
		t.Error("expected error for invalid zlib header")
	}
}

// TestFlateDecodeTruncated tests that a truncated stream fails
func TestFlateDecodeTruncated(t *testing.T) {
	compressed := zlibCompress(bytes.Repeat([]byte("truncate me "), 100))
	assertFails(t, FlateDecode, compressed[:len(compressed)/2], nil)
}

// TestFlateDecodeShortSource tests that a short read from the source reaches
// the caller
func TestFlateDecodeShortSource(t *testing.T) {
	compressed := zlibCompress(bytes.Repeat([]byte("short source "), 100))

	// The reader is missing the checksum the declared length promises.
	truncated := bytes.NewReader(compressed[:len(compressed)-4])
	src, err := source.FromReader(truncated, source.WithLength(int64(len(compressed))), source.WithChunkSize(16))
	if err != nil {
		t.Fatalf("FromReader failed: %v", err)
	}

	out, err := FlateDecode(src, nil)
	if err != nil {
		t.Fatalf("FlateDecode failed: %v", err)
	}

	if _, err := source.Collect(out); !errors.Is(err, source.ErrShortRead) {
		t.Errorf("Collect() error = %v, want ErrShortRead", err)
	}
}

// TestPNGPredictorNone tests PNG predictor with None (0) algorithm
func TestPNGPredictorNone(t *testing.T) {
	// Format: [predictor byte][row data...]
	data := []byte{
		0, 1, 2, 3, // Row 1: predictor=0, data=[1,2,3]
		0, 4, 5, 6, // Row 2: predictor=0, data=[4,5,6]
	}

	params := Params{
		"Predictor":        10,
		"Columns":          3,
		"Colors":           1,
		"BitsPerComponent": 8,
	}

	assertDecodes(t, FlateDecode, zlibCompress(data), params, []byte{1, 2, 3, 4, 5, 6})
}

// TestPNGPredictorSub tests PNG predictor with Sub (1) algorithm
func TestPNGPredictorSub(t *testing.T) {
	data := []byte{
		1, 10, 5, 5, // Row 1: Sub predictor, [10, 10+5, 15+5]
	}

	params := Params{
		"Predictor": 11,
		"Columns":   3,
		"Colors":    1,
	}

	assertDecodes(t, FlateDecode, zlibCompress(data), params, []byte{10, 15, 20})
}

// TestPNGPredictorUp tests PNG predictor with Up (2) algorithm
func TestPNGPredictorUp(t *testing.T) {
	data := []byte{
		0, 10, 20, 30, // Row 1: None
		2, 1, 2, 3, // Row 2: Up, adds row above
		2, 1, 1, 1, // Row 3: Up
	}

	params := Params{
		"Predictor": 12,
		"Columns":   3,
	}

	want := []byte{10, 20, 30, 11, 22, 33, 12, 23, 34}
	assertDecodes(t, FlateDecode, zlibCompress(data), params, want)
}

// TestPNGPredictorUpFirstRow tests that Up on the first row predicts zeros
func TestPNGPredictorUpFirstRow(t *testing.T) {
	data := []byte{2, 7, 8, 9}

	params := Params{
		"Predictor": 12,
		"Columns":   3,
	}

	assertDecodes(t, FlateDecode, zlibCompress(data), params, []byte{7, 8, 9})
}

// TestPNGPredictorAverage tests PNG predictor with Average (3) algorithm
func TestPNGPredictorAverage(t *testing.T) {
	data := []byte{
		0, 10, 20, // Row 1: None
		3, 5, 10, // Row 2: Average
	}

	params := Params{
		"Predictor": 13,
		"Columns":   2,
	}

	// Row 2: [5 + (0+10)/2, 10 + (10+20)/2] = [10, 25]
	assertDecodes(t, FlateDecode, zlibCompress(data), params, []byte{10, 20, 10, 25})
}

// TestPNGPredictorPaeth tests PNG predictor with Paeth (4) algorithm
func TestPNGPredictorPaeth(t *testing.T) {
	data := []byte{
		0, 10, 20, // Row 1: None
		4, 1, 1, // Row 2: Paeth
	}

	params := Params{
		"Predictor": 14,
		"Columns":   2,
	}

	// Row 2 byte 0: left=0, up=10, upLeft=0 -> Paeth picks 10 -> 11
	// Row 2 byte 1: left=11, up=20, upLeft=10 -> p=21, picks 20 -> 21
	assertDecodes(t, FlateDecode, zlibCompress(data), params, []byte{10, 20, 11, 21})
}

// TestPNGPredictorMultiColor tests Sub with several bytes per pixel
func TestPNGPredictorMultiColor(t *testing.T) {
	data := []byte{
		1, 10, 20, 30, 1, 2, 3, // Sub, 2 RGB pixels
	}

	params := Params{
		"Predictor": 15,
		"Columns":   2,
		"Colors":    3,
	}

	assertDecodes(t, FlateDecode, zlibCompress(data), params, []byte{10, 20, 30, 11, 22, 33})
}

// TestPNGPredictorUnknownTag tests error handling for an invalid row tag
func TestPNGPredictorUnknownTag(t *testing.T) {
	data := []byte{9, 1, 2, 3}

	params := Params{
		"Predictor": 10,
		"Columns":   3,
	}

	assertFails(t, FlateDecode, zlibCompress(data), params)
}

// TestPNGPredictorPartialRow tests error handling for a trailing partial row
func TestPNGPredictorPartialRow(t *testing.T) {
	data := []byte{0, 1, 2, 3, 0, 4}

	params := Params{
		"Predictor": 10,
		"Columns":   3,
	}

	assertFails(t, FlateDecode, zlibCompress(data), params)
}

// TestTIFFPredictor tests TIFF Predictor 2
func TestTIFFPredictor(t *testing.T) {
	data := []byte{
		10, 20, 1, 2, // Row 1, 2 colors: [10, 20, 11, 22]
		5, 5, 5, 5, // Row 2: [5, 5, 10, 10]
	}

	params := Params{
		"Predictor": 2,
		"Columns":   2,
		"Colors":    2,
	}

	assertDecodes(t, FlateDecode, zlibCompress(data), params, []byte{10, 20, 11, 22, 5, 5, 10, 10})
}

func TestPredictorParamErrors(t *testing.T) {
	tests := []struct {
		name   string
		params Params
	}{
		{"unsupported predictor", Params{"Predictor": 5}},
		{"png with 16 bits", Params{"Predictor": 10, "BitsPerComponent": 16}},
		{"tiff with 4 bits", Params{"Predictor": 2, "BitsPerComponent": 4}},
		{"zero columns", Params{"Predictor": 12, "Columns": 0}},
	}

	compressed := zlibCompress([]byte{0, 1, 2, 3})

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src, err := source.FromBytes(compressed)
			if err != nil {
				t.Fatalf("FromBytes failed: %v", err)
			}

			if _, err := FlateDecode(src, tt.params); err == nil {
				t.Error("expected error")
			}
		})
	}
}

// TestPaethPredictor tests the Paeth neighbor selection
func TestPaethPredictor(t *testing.T) {
	tests := []struct {
		a, b, c byte
		want    byte
	}{
		{0, 0, 0, 0},
		{10, 0, 0, 10},
		{0, 10, 0, 10},
		{10, 20, 10, 20},
		{20, 10, 10, 20},
		{5, 5, 10, 5},
	}

	for _, tt := range tests {
		if got := paethPredictor(tt.a, tt.b, tt.c); got != tt.want {
			t.Errorf("paethPredictor(%d, %d, %d) = %d, want %d", tt.a, tt.b, tt.c, got, tt.want)
		}
	}
}

// TestFlateDecodeErrorIsNotShortRead tests that decode errors keep their own
// identity
func TestFlateDecodeErrorIsNotShortRead(t *testing.T) {
	data := []byte{9, 1, 2, 3}
	_, err := decodeBytes(FlateDecode, zlibCompress(data), Params{"Predictor": 10, "Columns": 3}, 0)
	if err == nil || errors.Is(err, source.ErrShortRead) {
		t.Errorf("decode error = %v, want a predictor error", err)
	}
}
