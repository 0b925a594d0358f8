package source

import "os"

// openFile opens files for FromFile.
var openFile = os.Open

// FromFile opens the file at path and returns a Source reading from it.
//
// The Source owns the file handle. It is closed when the Source is
// exhausted, when a read fails, or when Close is called. If construction
// fails after the file was opened, the handle is closed before FromFile
// returns. Errors from opening, stat and seek are returned unchanged.
func FromFile(path string, opts ...Option) (Source, error) {
	f, err := openFile(path)
	if err != nil {
		return nil, err
	}

	s, err := newFileSource(f, buildOptions(opts))
	if err != nil {
		f.Close()
		return nil, err
	}

	return s, nil
}

func newFileSource(f *os.File, o Options) (*streamSource, error) {
	info, err := f.Stat()
	if err != nil {
		return nil, err
	}

	s, err := seekStream(f, info.Size(), File, o)
	if err != nil {
		return nil, err
	}
	s.closer = f

	return s, nil
}

// WithFile opens a file Source, passes it to fn and closes it when fn
// returns, whether or not fn drained it.
func WithFile(path string, fn func(Source) error, opts ...Option) error {
	src, err := FromFile(path, opts...)
	if err != nil {
		return err
	}
	defer src.Close()

	return fn(src)
}
