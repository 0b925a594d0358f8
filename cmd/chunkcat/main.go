// Command chunkcat prints a byte range of a file, optionally decoded with
// PDF stream filters.
//
// Usage:
//
//	chunkcat [--pos N] [--length N] [--chunk-size N] [--filter NAME[:KEY=VALUE,...]]... FILE
//
// FILE may be "-" to read standard input. Filters apply in the order given,
// for example:
//
//	chunkcat -p 1520 -n 873 -f FlateDecode:Predictor=12,Columns=5 document.pdf
//
// With --stat, chunkcat prints the raw and decoded sizes instead of the
// bytes themselves.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/tsawler/pdfsource"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "chunkcat:", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	app := cli.NewApp()
	app.Name = "chunkcat"
	app.Usage = "print a byte range of a file, optionally decoded with PDF filters"
	app.ArgsUsage = "FILE"
	app.HideHelpCommand = true
	app.Flags = []cli.Flag{
		&cli.Int64Flag{
			Name:    "pos",
			Aliases: []string{"p"},
			Usage:   "Start reading at byte `OFFSET`",
		},
		&cli.Int64Flag{
			Name:    "length",
			Aliases: []string{"n"},
			Usage:   "Read exactly `N` bytes, or to the end of the file if negative",
			Value:   -1,
		},
		&cli.IntFlag{
			Name:    "chunk-size",
			Aliases: []string{"c"},
			Usage:   "Read `N` bytes at a time (0 selects the default)",
			EnvVars: []string{"CHUNKCAT_CHUNK_SIZE"},
		},
		&cli.StringSliceFlag{
			Name:    "filter",
			Aliases: []string{"f"},
			Usage:   "Decode with `FILTER`, given as NAME or NAME:KEY=VALUE,...; repeat for a filter chain",
		},
		&cli.BoolFlag{
			Name:  "stat",
			Usage: "Print raw and decoded sizes instead of the data",
		},
		&cli.BoolFlag{
			Name:  "debug",
			Usage: "Log every chunk to stderr",
		},
	}
	app.Action = chunkcat
	return app
}

func chunkcat(ctx *cli.Context) error {
	logger, err := newLogger(ctx.Bool("debug"))
	if err != nil {
		return err
	}
	defer logger.Sync()

	r, err := openRange(ctx)
	if err != nil {
		return err
	}

	r = r.At(ctx.Int64("pos")).
		Limit(ctx.Int64("length")).
		ChunkSize(ctx.Int("chunk-size"))

	for _, arg := range ctx.StringSlice("filter") {
		name, params, err := parseFilter(arg)
		if err != nil {
			return err
		}
		r = r.Filter(name, params)
	}

	if ctx.Bool("stat") {
		return stat(ctx.App.Writer, r, logger)
	}

	var offset int64
	return r.Each(func(chunk []byte) error {
		logger.Debug("chunk", zap.Int64("offset", offset), zap.Int("size", len(chunk)))
		offset += int64(len(chunk))

		_, err := ctx.App.Writer.Write(chunk)
		return err
	})
}

// newLogger returns a development logger when debug is set and a no-op
// logger otherwise.
func newLogger(debug bool) (*zap.Logger, error) {
	if !debug {
		return zap.NewNop(), nil
	}

	logger, err := zap.NewDevelopment()
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}
	return logger, nil
}

// openRange returns the Range for the FILE argument. Standard input is read
// into memory, since it cannot seek.
func openRange(ctx *cli.Context) (*pdfsource.Range, error) {
	path := ctx.Args().First()
	switch path {
	case "":
		return nil, errors.New("FILE is required")
	case "-":
		data, err := io.ReadAll(ctx.App.Reader)
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		return pdfsource.FromBytes(data), nil
	default:
		return pdfsource.Open(path), nil
	}
}

// parseFilter splits a filter flag of the form NAME or NAME:KEY=VALUE,...
// into the filter name and its parameters. Values that look like integers
// or booleans are converted, anything else stays a string.
func parseFilter(arg string) (string, pdfsource.FilterParams, error) {
	name, rest, hasParams := strings.Cut(arg, ":")
	if name == "" {
		return "", nil, fmt.Errorf("invalid filter %q: missing name", arg)
	}
	if !hasParams {
		return name, nil, nil
	}

	params := pdfsource.FilterParams{}
	for _, pair := range strings.Split(rest, ",") {
		key, value, ok := strings.Cut(pair, "=")
		if !ok || key == "" {
			return "", nil, fmt.Errorf("invalid filter %q: expected KEY=VALUE, got %q", arg, pair)
		}

		if n, err := strconv.Atoi(value); err == nil {
			params[key] = n
		} else if b, err := strconv.ParseBool(value); err == nil {
			params[key] = b
		} else {
			params[key] = value
		}
	}

	return name, params, nil
}

// stat prints the raw size of the range and the size it decodes to.
func stat(w io.Writer, r *pdfsource.Range, logger *zap.Logger) error {
	raw, err := r.Len()
	if err != nil {
		return err
	}

	var decoded int64
	var chunks int
	err = r.Each(func(chunk []byte) error {
		logger.Debug("chunk", zap.Int64("offset", decoded), zap.Int("size", len(chunk)))
		decoded += int64(len(chunk))
		chunks++
		return nil
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "origin:  %s\n", r.Kind())
	fmt.Fprintf(w, "raw:     %s (%d bytes)\n", humanize.IBytes(uint64(raw)), raw)
	fmt.Fprintf(w, "decoded: %s (%d bytes) in %d chunks\n", humanize.IBytes(uint64(decoded)), decoded, chunks)
	return nil
}
