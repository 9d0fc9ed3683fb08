package strio

import (
	"errors"
	"fmt"
	"io"
)

const defaultCapacity = 4096

// Writer batches small writes into fewer Sink calls through a
// fixed-capacity staging buffer.
//
// Backend I/O happens only on flush boundaries: a full buffer, an
// explicit Flush, Close, or a write at least as large as the buffer,
// which bypasses staging entirely after pending bytes are flushed.
// A Writer is exclusively owned by one call sequence and performs no
// internal locking; callers needing shared access must synchronize
// externally or use independent Writers over independent Sinks.
type Writer struct {
	sink   Sink
	buf    []byte
	n      int
	closed bool
}

// NewWriter returns a Writer over s with the default staging capacity.
func NewWriter(s Sink) *Writer {
	return NewWriterSize(s, defaultCapacity)
}

// NewWriterSize returns a Writer over s with the given staging
// capacity. A capacity of zero or less disables staging: every Write
// goes straight to the Sink.
func NewWriterSize(s Sink, capacity int) *Writer {
	if capacity < 0 {
		capacity = 0
	}
	return &Writer{sink: s, buf: make([]byte, capacity)}
}

// NewWriterBuffer returns a Writer staging into a caller-owned buffer.
// The buffer must outlive the Writer; an [Arena] is a convenient
// owner. An empty buffer disables staging, as with NewWriterSize.
func NewWriterBuffer(s Sink, buf []byte) *Writer {
	return &Writer{sink: s, buf: buf}
}

// Buffered returns the number of staged bytes not yet flushed.
func (w *Writer) Buffered() int { return w.n }

// Available returns the free space left in the staging buffer.
func (w *Writer) Available() int { return len(w.buf) - w.n }

// Write stages p, flushing to the Sink when p would not fit. A p at
// least as large as the staging buffer is written to the Sink directly
// after pending bytes are flushed, preserving order and avoiding a
// second copy. Write fails with [ErrClosed] after Close.
func (w *Writer) Write(p []byte) (int, error) {
	if w.closed {
		return 0, ErrClosed
	}
	if len(p) == 0 {
		return 0, nil
	}
	if len(p) > w.Available() && w.n > 0 {
		if err := w.Flush(); err != nil {
			return 0, err
		}
	}
	if len(p) >= len(w.buf) {
		return w.writeAll(p)
	}
	n := copy(w.buf[w.n:], p)
	w.n += n
	return n, nil
}

// WriteString stages s. It implements io.StringWriter.
func (w *Writer) WriteString(s string) (int, error) {
	return w.Write([]byte(s))
}

// WriteByte stages a single byte. It implements io.ByteWriter.
func (w *Writer) WriteByte(b byte) error {
	_, err := w.Write([]byte{b})
	return err
}

// Printf renders a template through the staging buffer. See [Render]
// for the template language. Format errors surface before any bytes
// are staged for the failing placeholder's template.
func (w *Writer) Printf(template string, args ...any) error {
	if w.closed {
		return ErrClosed
	}
	return Render(w, template, args...)
}

// Flush writes staged bytes to the Sink, looping over short writes.
// It is a no-op when the buffer is empty. On failure the consumed
// bytes are dropped and the unflushed rest is kept at the front of the
// buffer for the caller to retry; the error is surfaced immediately
// and never retried internally.
func (w *Writer) Flush() error {
	if w.closed {
		return ErrClosed
	}
	if w.n == 0 {
		return nil
	}
	var written int
	for written < w.n {
		n, err := w.sink.WriteChunk(w.buf[written:w.n])
		written += n
		if err == nil && n == 0 {
			err = io.ErrShortWrite
		}
		if err != nil {
			copy(w.buf, w.buf[written:w.n])
			w.n -= written
			return fmt.Errorf("strio: flush: %w", err)
		}
	}
	w.n = 0
	return nil
}

// Close flushes staged bytes and releases the Sink. The Sink is
// released even when the flush fails; both errors are reported with
// the flush error first. Close is idempotent: the second and later
// calls return nil and do not touch the Sink again.
func (w *Writer) Close() error {
	if w.closed {
		return nil
	}
	flushErr := w.Flush()
	w.closed = true
	return errors.Join(flushErr, w.sink.Close())
}

// writeAll loops WriteChunk until p is consumed or the Sink fails.
func (w *Writer) writeAll(p []byte) (int, error) {
	var written int
	for written < len(p) {
		n, err := w.sink.WriteChunk(p[written:])
		written += n
		if err == nil && n == 0 {
			err = io.ErrShortWrite
		}
		if err != nil {
			return written, fmt.Errorf("strio: write: %w", err)
		}
	}
	return written, nil
}
