// Package brokenio gives us writers that fail on purpose. The writer
// of coordinate records promises that an error from the sink comes
// back to the caller and that a short file is never passed off as
// good. To test that promise we need a sink which breaks exactly when
// we tell it to.
package brokenio

import (
	"errors"
	"io"
)

// ErrBroken is what the wrappers return once they have decided to fail.
var ErrBroken = errors.New("broken writer: induced failure")

// BrknWrtrClsr wraps a writer and starts failing after a set number of
// bytes. A limit of zero fails on the first write.
type BrknWrtrClsr struct {
	wrtr_orig io.Writer // wrapped writer
	limit     int       // bytes to accept before breaking
	nByte     int       // bytes passed through so far
	closed    bool
}

// NewWriter wraps a writer which will accept limit bytes and then
// return errors.
func NewWriter(w io.Writer, limit int) *BrknWrtrClsr {
	return &BrknWrtrClsr{wrtr_orig: w, limit: limit}
}

// NBytes says how much data got through before the failures started.
func (b *BrknWrtrClsr) NBytes() int { return b.nByte }

// Write passes data through until the limit is reached. A write that
// straddles the limit is cut short, like a disk filling up mid-write.
func (b *BrknWrtrClsr) Write(p []byte) (int, error) {
	if b.nByte >= b.limit {
		return 0, ErrBroken
	}
	room := b.limit - b.nByte
	if len(p) <= room {
		n, err := b.wrtr_orig.Write(p)
		b.nByte += n
		return n, err
	}
	n, err := b.wrtr_orig.Write(p[:room])
	b.nByte += n
	if err == nil {
		err = ErrBroken
	}
	return n, err
}

// Close remembers that it was called, so a test can check the caller
// cleaned up even after errors.
func (b *BrknWrtrClsr) Close() error {
	b.closed = true
	return nil
}

// Closed says if Close was called.
func (b *BrknWrtrClsr) Closed() bool { return b.closed }
