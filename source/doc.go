// Package source produces bounded sequences of byte chunks for PDF stream
// decoding.
//
// A [Source] reads a byte range from one of three origins and hands it out
// in chunks, so a filter can decode a stream without loading it whole. Its
// total length is known as soon as it is constructed.
//
// # Origins
//
// Use [FromBytes] for data already in memory, [FromStream] for a seekable
// handle the caller keeps ownership of, and [FromFile] for a path:
//
//	src, err := source.FromFile("document.pdf",
//	    source.WithPos(1024),
//	    source.WithLength(4096),
//	    source.WithChunkSize(512),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer src.Close()
//
// [FromReader] covers readers that cannot seek; it needs an explicit length.
//
// # Bounds
//
// Offsets below zero start at the beginning and offsets past the end select
// nothing. A negative length means "to the end". Asking for more bytes than
// exist fails with [ErrShortRead] instead of silently truncating:
//
//	_, err := source.FromBytes(data, source.WithLength(int64(len(data))+1))
//	errors.Is(err, source.ErrShortRead) // true
//
// The chunk size only changes how the bytes are split, never which bytes are
// returned.
//
// # Consuming
//
// Pull chunks with Next until it returns io.EOF, or drain everything with
// [Collect]:
//
//	data, err := source.Collect(src)
//
// [NewReader] exposes any [Chunker] as an io.Reader, and [ReaderChunks] turns
// an io.Reader back into chunks. The filters built on top use both.
//
// # Resources
//
// A file Source closes its handle once it is exhausted or a read fails.
// Callers that may stop early should call Close, or use [WithFile] which
// does so when the callback returns.
package source
