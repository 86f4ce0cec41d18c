package brokenio_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/andrew-torda/pdbtree/brokenio"
)

func TestWriteWithinLimit(t *testing.T) {
	var sink bytes.Buffer
	bw := brokenio.NewWriter(&sink, 10)
	n, err := bw.Write([]byte("short"))
	if err != nil || n != 5 {
		t.Error("write below the limit should succeed, got", n, err)
	}
}

func TestWriteStraddlingLimit(t *testing.T) {
	var sink bytes.Buffer
	bw := brokenio.NewWriter(&sink, 4)
	n, err := bw.Write([]byte("abcdefgh"))
	if !errors.Is(err, brokenio.ErrBroken) {
		t.Error("expected the induced error, got", err)
	}
	if n != 4 || sink.String() != "abcd" {
		t.Error("the short write should pass the first bytes through, got", sink.String())
	}
	if _, err := bw.Write([]byte("x")); !errors.Is(err, brokenio.ErrBroken) {
		t.Error("later writes should keep failing")
	}
	if bw.NBytes() != 4 {
		t.Error("byte count wrong:", bw.NBytes())
	}
}

func TestZeroLimit(t *testing.T) {
	var sink bytes.Buffer
	bw := brokenio.NewWriter(&sink, 0)
	if _, err := bw.Write([]byte("a")); err == nil {
		t.Error("a zero limit should fail at once")
	}
	bw.Close()
	if !bw.Closed() {
		t.Error("close not recorded")
	}
}
