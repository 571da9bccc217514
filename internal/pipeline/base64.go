package pipeline

import (
	"encoding/base64"
	"errors"
	"io"
)

// ErrWriterClosed indicates a write after Close.
var ErrWriterClosed = errors.New("write after close")

// Base64Writer encodes a byte stream as standard base64 without interior
// padding. Chunk boundaries rarely fall on multiples of three, so the
// remainder of each write is carried into the next one and only flushed,
// padded, on Close.
type Base64Writer struct {
	w      io.Writer
	rem    [2]byte // bytes carried over from the previous write
	n      int     // number of valid bytes in rem
	buf    []byte
	closed bool
}

// NewBase64Writer returns a Base64Writer that writes encoded text to w.
func NewBase64Writer(w io.Writer) *Base64Writer {
	return &Base64Writer{w: w}
}

// Write encodes every complete 3-byte group available and holds back the rest.
func (b *Base64Writer) Write(p []byte) (int, error) {
	if b.closed {
		return 0, ErrWriterClosed
	}
	total := len(p)

	if b.n > 0 {
		need := 3 - b.n
		if len(p) < need {
			b.n += copy(b.rem[b.n:], p)
			return total, nil
		}
		var head [3]byte
		copy(head[:], b.rem[:b.n])
		copy(head[b.n:], p[:need])
		b.n = 0
		p = p[need:]
		if err := b.emit(head[:]); err != nil {
			return 0, err
		}
	}

	aligned := len(p) - len(p)%3
	if aligned > 0 {
		if err := b.emit(p[:aligned]); err != nil {
			return 0, err
		}
	}
	b.n = copy(b.rem[:], p[aligned:])

	return total, nil
}

// Close flushes the carried remainder with padding. It does not close the
// underlying writer.
func (b *Base64Writer) Close() error {
	if b.closed {
		return nil
	}
	b.closed = true
	if b.n == 0 {
		return nil
	}
	err := b.emit(b.rem[:b.n])
	b.n = 0
	return err
}

func (b *Base64Writer) emit(p []byte) error {
	size := base64.StdEncoding.EncodedLen(len(p))
	if cap(b.buf) < size {
		b.buf = make([]byte, size)
	}
	out := b.buf[:size]
	base64.StdEncoding.Encode(out, p)
	_, err := b.w.Write(out)
	return err
}
