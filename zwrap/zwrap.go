// Package zwrap wraps a file or stream so that compression is
// invisible to the caller. Reading, it sniffs whether the source is
// gzipped. Writing, it compresses and makes sure Close finishes the
// gzip stream before the backing file is closed.
package zwrap

import (
	"compress/gzip"
	"errors"
	"io"
)

// FpGzip is a read side wrapper. If the source was not compressed it
// just passes reads through.
type FpGzip struct {
	fp   io.ReadCloser
	zrdr *gzip.Reader
}

// Read reads from the decompressor if there is one.
func (fc *FpGzip) Read(p []byte) (int, error) {
	if fc.zrdr != nil {
		return fc.zrdr.Read(p)
	}
	return fc.fp.Read(p)
}

// Close closes the decompressor, then the backing file or stream. If
// both complain, the messages are glued together.
func (fc *FpGzip) Close() error {
	if fc.zrdr == nil {
		return fc.fp.Close()
	}
	var s string
	if e := fc.zrdr.Close(); e != nil {
		s = e.Error()
	}
	if e := fc.fp.Close(); e != nil {
		s = s + " " + e.Error()
	}
	if s == "" {
		return nil
	}
	return errors.New(s)
}

// Wrap treats the source as gzipped. The error from gzip tells us if
// it was not.
func Wrap(fp io.ReadCloser) (*FpGzip, error) {
	var fpz FpGzip
	var err error
	fpz.fp = fp
	fpz.zrdr, err = gzip.NewReader(fp)
	return &fpz, err
}

// ReadSeekCloser is what WrapMaybe needs: it must be able to rewind
// after a failed sniff.
type ReadSeekCloser interface {
	io.Reader
	io.Seeker
	io.Closer
}

// WrapMaybe looks at the source and wraps it only if it really is
// compressed. Either way you get back something to Read and Close.
func WrapMaybe(fpIn ReadSeekCloser) (*FpGzip, error) {
	if out, err := Wrap(fpIn); err == nil {
		return out, nil
	}
	_, err := fpIn.Seek(0, io.SeekStart)
	return &FpGzip{fp: fpIn}, err
}

// FpGzipW is the write side. Everything written goes through the
// compressor into the backing file.
type FpGzipW struct {
	fp    io.WriteCloser
	zwrtr *gzip.Writer
}

// NewWriter wraps a sink for compressed writing. The wrapper owns the
// sink: closing the wrapper closes it.
func NewWriter(fp io.WriteCloser) *FpGzipW {
	return &FpGzipW{fp: fp, zwrtr: gzip.NewWriter(fp)}
}

// Write sends bytes into the compressor.
func (fc *FpGzipW) Write(p []byte) (int, error) {
	return fc.zwrtr.Write(p)
}

// Close flushes and closes the compressor, then the backing sink. Skip
// it and you get a truncated gzip file.
func (fc *FpGzipW) Close() error {
	var s string
	if e := fc.zwrtr.Close(); e != nil {
		s = e.Error()
	}
	if e := fc.fp.Close(); e != nil {
		s = s + " " + e.Error()
	}
	if s == "" {
		return nil
	}
	return errors.New(s)
}
