package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/klauspost/compress/zlib"

	"github.com/tsawler/pdfsource/source"
)

// run runs chunkcat with args and stdin, returning what it printed
func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	app := newApp()
	app.Writer = &out
	app.ErrWriter = &out
	app.Reader = strings.NewReader(stdin)

	err := app.Run(append([]string{"chunkcat"}, args...))
	return out.String(), err
}

// writeTestFile writes data to a file in a temporary directory
func writeTestFile(t *testing.T, data []byte) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "input.bin")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}
	return path
}

func TestChunkcat(t *testing.T) {
	path := writeTestFile(t, []byte("0123456789abcdefghij"))

	tests := []struct {
		name  string
		stdin string
		args  []string
		want  string
	}{
		{"whole file", "", []string{path}, "0123456789abcdefghij"},
		{"pos", "", []string{"--pos", "10", path}, "abcdefghij"},
		{"pos and length", "", []string{"-p", "5", "-n", "3", path}, "567"},
		{"tiny chunks", "", []string{"-c", "1", "-n", "4", path}, "0123"},
		{"stdin", "hello world", []string{"-p", "6", "-"}, "world"},
		{"hex filter", "", []string{"-f", "AHx", "-"}, ""},
		{"hex filter stdin", "<48 69>", []string{"-p", "1", "-f", "ASCIIHexDecode", "-"}, "Hi"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := run(t, tt.stdin, tt.args...)
			if err != nil {
				t.Fatalf("chunkcat failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

// TestChunkcatFlateParams tests a filter flag carrying decode parameters
func TestChunkcatFlateParams(t *testing.T) {
	rows := []byte{
		0, 1, 2,
		2, 1, 1,
	}

	var buf bytes.Buffer
	w := zlib.NewWriter(&buf)
	w.Write(rows)
	w.Close()

	path := writeTestFile(t, buf.Bytes())

	got, err := run(t, "", "-f", "FlateDecode:Predictor=12,Columns=2", path)
	if err != nil {
		t.Fatalf("chunkcat failed: %v", err)
	}

	want := string([]byte{1, 2, 2, 3})
	if got != want {
		t.Errorf("got %v, want %v", []byte(got), []byte(want))
	}
}

func TestChunkcatErrors(t *testing.T) {
	path := writeTestFile(t, []byte("short"))

	t.Run("missing file argument", func(t *testing.T) {
		if _, err := run(t, ""); err == nil {
			t.Error("expected error without FILE")
		}
	})

	t.Run("short read", func(t *testing.T) {
		_, err := run(t, "", "-n", "100", path)
		if !errors.Is(err, source.ErrShortRead) {
			t.Errorf("expected ErrShortRead, got %v", err)
		}
	})

	t.Run("bad filter params", func(t *testing.T) {
		if _, err := run(t, "", "-f", "Fl:Predictor", path); err == nil {
			t.Error("expected error for malformed filter")
		}
	})

	t.Run("unknown filter", func(t *testing.T) {
		if _, err := run(t, "", "-f", "Bogus", path); err == nil {
			t.Error("expected error for unknown filter")
		}
	})
}

func TestChunkcatStat(t *testing.T) {
	path := writeTestFile(t, bytes.Repeat([]byte{'x'}, 2048))
	t.Setenv("CHUNKCAT_CHUNK_SIZE", "500")

	got, err := run(t, "", "--stat", "-p", "48", path)
	if err != nil {
		t.Fatalf("chunkcat failed: %v", err)
	}

	want := "origin:  file\n" +
		"raw:     2.0 KiB (2000 bytes)\n" +
		"decoded: 2.0 KiB (2000 bytes) in 4 chunks\n"
	if got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestParseFilter(t *testing.T) {
	tests := []struct {
		arg        string
		wantName   string
		wantParams map[string]interface{}
		wantErr    bool
	}{
		{"FlateDecode", "FlateDecode", nil, false},
		{"Fl:Predictor=12,Columns=5", "Fl", map[string]interface{}{"Predictor": 12, "Columns": 5}, false},
		{"CCF:K=-1,BlackIs1=true", "CCF", map[string]interface{}{"K": -1, "BlackIs1": true}, false},
		{"X:Mode=fast", "X", map[string]interface{}{"Mode": "fast"}, false},
		{":Predictor=12", "", nil, true},
		{"Fl:Predictor", "", nil, true},
		{"Fl:=3", "", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.arg, func(t *testing.T) {
			name, params, err := parseFilter(tt.arg)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseFilter(%q) error = %v, wantErr %v", tt.arg, err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}

			if name != tt.wantName {
				t.Errorf("name = %q, want %q", name, tt.wantName)
			}
			if len(params) != len(tt.wantParams) {
				t.Fatalf("params = %v, want %v", params, tt.wantParams)
			}
			for k, v := range tt.wantParams {
				if params[k] != v {
					t.Errorf("params[%q] = %v, want %v", k, params[k], v)
				}
			}
		})
	}
}
