package strio

import (
	"bytes"
	"fmt"
	"io"
)

// Reader stages bytes from a Source to support delimiter-based line
// extraction without a backend call per byte.
//
// Like [Writer], a Reader is exclusively owned by one call sequence
// and performs no internal locking.
type Reader struct {
	src    Source
	buf    []byte
	r, w   int
	eof    bool
	closed bool
}

// NewReader returns a Reader over s with the default staging capacity.
func NewReader(s Source) *Reader {
	return NewReaderSize(s, defaultCapacity)
}

// NewReaderSize returns a Reader over s with the given staging
// capacity. Unlike a Writer, a Reader cannot operate without staging,
// so a capacity of zero or less falls back to the default.
func NewReaderSize(s Source, capacity int) *Reader {
	if capacity <= 0 {
		capacity = defaultCapacity
	}
	return &Reader{src: s, buf: make([]byte, capacity)}
}

// NewReaderBuffer returns a Reader staging into a caller-owned buffer,
// which must outlive the Reader. An empty buffer falls back to an
// owned default-capacity buffer.
func NewReaderBuffer(s Source, buf []byte) *Reader {
	if len(buf) == 0 {
		buf = make([]byte, defaultCapacity)
	}
	return &Reader{src: s, buf: buf}
}

// Buffered returns the number of staged bytes not yet consumed.
func (r *Reader) Buffered() int { return r.w - r.r }

// ReadUntil returns a copy of the bytes up to and excluding delim,
// consuming the delimiter. Delimiters split across a backend refill
// behave identically to ones found in a single fill; ReadUntil never
// reports end of stream while the Source still has data.
//
// At end of stream the final unterminated bytes are returned with a
// nil error; once nothing remains, ReadUntil returns io.EOF. When the
// staging buffer fills before a delimiter appears, ReadUntil fails
// with [ErrLineTooLong] and keeps the staged bytes so [Reader.SkipUntil]
// can discard the oversized line and resynchronize.
func (r *Reader) ReadUntil(delim byte) ([]byte, error) {
	if r.closed {
		return nil, ErrClosed
	}
	for {
		if i := bytes.IndexByte(r.buf[r.r:r.w], delim); i >= 0 {
			line := make([]byte, i)
			copy(line, r.buf[r.r:])
			r.r += i + 1
			return line, nil
		}
		if r.eof {
			if r.r == r.w {
				return nil, io.EOF
			}
			line := make([]byte, r.w-r.r)
			copy(line, r.buf[r.r:r.w])
			r.r = r.w
			return line, nil
		}
		if r.Buffered() == len(r.buf) {
			return nil, ErrLineTooLong
		}
		if err := r.fill(); err != nil {
			return nil, err
		}
	}
}

// SkipUntil discards input up to and including the next delim. It
// returns io.EOF when the stream ends before a delimiter is seen.
func (r *Reader) SkipUntil(delim byte) error {
	if r.closed {
		return ErrClosed
	}
	for {
		if i := bytes.IndexByte(r.buf[r.r:r.w], delim); i >= 0 {
			r.r += i + 1
			return nil
		}
		r.r = r.w
		if r.eof {
			return io.EOF
		}
		if err := r.fill(); err != nil {
			return err
		}
	}
}

// Read drains staged bytes first. When the staging buffer is empty and
// p is at least its size, Read goes straight to the Source, mirroring
// the Writer's oversized bypass.
func (r *Reader) Read(p []byte) (int, error) {
	if r.closed {
		return 0, ErrClosed
	}
	if len(p) == 0 {
		return 0, nil
	}
	if r.r == r.w {
		if r.eof {
			return 0, io.EOF
		}
		if len(p) >= len(r.buf) {
			n, err := r.src.ReadChunk(p)
			if err != nil {
				return n, fmt.Errorf("strio: read: %w", err)
			}
			if n == 0 {
				r.eof = true
				return 0, io.EOF
			}
			return n, nil
		}
		if err := r.fill(); err != nil {
			return 0, err
		}
		if r.r == r.w {
			return 0, io.EOF
		}
	}
	n := copy(p, r.buf[r.r:r.w])
	r.r += n
	return n, nil
}

// Close releases the Source. It is idempotent: the second and later
// calls return nil and do not touch the Source again.
func (r *Reader) Close() error {
	if r.closed {
		return nil
	}
	r.closed = true
	return r.src.Close()
}

// fill compacts pending bytes to the front of the staging buffer and
// reads one chunk from the Source into the free space.
func (r *Reader) fill() error {
	if r.r > 0 {
		copy(r.buf, r.buf[r.r:r.w])
		r.w -= r.r
		r.r = 0
	}
	if r.w == len(r.buf) {
		return nil
	}
	n, err := r.src.ReadChunk(r.buf[r.w:])
	r.w += n
	if err != nil {
		return fmt.Errorf("strio: read: %w", err)
	}
	if n == 0 {
		r.eof = true
	}
	return nil
}
