package strio

import (
	"bytes"
	"errors"
	"io"
)

// Sentinel errors for programmatic error handling.
var (
	ErrClosed      = errors.New("stream closed")
	ErrLineTooLong = errors.New("line too long")
	ErrFormat      = errors.New("bad format")
)

// Sink is the minimal capability a write backend must provide.
//
// WriteChunk may accept fewer bytes than given; callers loop until the
// chunk is consumed or an error occurs. Close releases the backend
// resource and must be idempotent. Backend errors are returned as-is;
// this package wraps them with operation context but never retries.
type Sink interface {
	WriteChunk(p []byte) (int, error)
	Close() error
}

// Source is the minimal capability a read backend must provide.
//
// ReadChunk fills p with up to len(p) bytes and reports how many were
// filled; zero bytes with a nil error signals end of stream. Close
// releases the backend resource and must be idempotent.
type Source interface {
	ReadChunk(p []byte) (int, error)
	Close() error
}

// NewSink adapts any io.Writer to the Sink contract. Close forwards to
// the writer when it implements io.Closer and is a no-op otherwise.
func NewSink(w io.Writer) Sink { return &writerSink{w: w} }

type writerSink struct {
	w      io.Writer
	closed bool
}

func (s *writerSink) WriteChunk(p []byte) (int, error) {
	return s.w.Write(p)
}

func (s *writerSink) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	if c, ok := s.w.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// NewSource adapts any io.Reader to the Source contract. io.EOF from
// the reader maps to the zero-bytes end-of-stream convention.
func NewSource(r io.Reader) Source { return &readerSource{r: r} }

type readerSource struct {
	r      io.Reader
	closed bool
}

func (s *readerSource) ReadChunk(p []byte) (int, error) {
	n, err := s.r.Read(p)
	if err == io.EOF {
		return n, nil
	}
	return n, err
}

func (s *readerSource) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	if c, ok := s.r.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// MemSink is an in-memory Sink that accumulates all writes. The zero
// value is ready to use. After Close, further writes fail with
// [ErrClosed]; Reset reopens it.
type MemSink struct {
	buf    bytes.Buffer
	closed bool
}

func (m *MemSink) WriteChunk(p []byte) (int, error) {
	if m.closed {
		return 0, ErrClosed
	}
	return m.buf.Write(p)
}

func (m *MemSink) Close() error {
	m.closed = true
	return nil
}

// Bytes returns the accumulated contents.
func (m *MemSink) Bytes() []byte { return m.buf.Bytes() }

// String returns the accumulated contents as a string.
func (m *MemSink) String() string { return m.buf.String() }

// Len returns the number of accumulated bytes.
func (m *MemSink) Len() int { return m.buf.Len() }

// Reset clears the accumulated contents and reopens the sink.
func (m *MemSink) Reset() {
	m.buf.Reset()
	m.closed = false
}

// NewMemSource returns a Source that reads from b.
func NewMemSource(b []byte) Source {
	return &memSource{r: bytes.NewReader(b)}
}

// NewMemSourceString returns a Source that reads from s.
func NewMemSourceString(s string) Source {
	return NewMemSource([]byte(s))
}

type memSource struct {
	r      *bytes.Reader
	closed bool
}

func (m *memSource) ReadChunk(p []byte) (int, error) {
	if m.closed {
		return 0, ErrClosed
	}
	n, err := m.r.Read(p)
	if err == io.EOF {
		return n, nil
	}
	return n, err
}

func (m *memSource) Close() error {
	m.closed = true
	return nil
}
