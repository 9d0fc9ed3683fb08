package strio

import "errors"

// Scope tracks cleanups for resources acquired in one logical scope
// and runs them in reverse acquisition order when the scope ends.
//
// Two kinds are recorded. Defer cleanups run on every exit path.
// OnFailure cleanups run only when End receives a non-nil error; they
// are the ownership-transfer hook: register one after acquiring a
// resource that a later step hands off, and the success path skips the
// release while every failure path still runs it.
type Scope struct {
	cleanups []cleanup
	done     bool
}

type cleanup struct {
	fn       func() error
	failOnly bool
}

// NewScope returns an empty Scope.
func NewScope() *Scope { return &Scope{} }

// Defer registers fn to run when the scope ends, on success and
// failure alike.
func (s *Scope) Defer(fn func() error) {
	s.cleanups = append(s.cleanups, cleanup{fn: fn})
}

// OnFailure registers fn to run only when the scope ends in error.
func (s *Scope) OnFailure(fn func() error) {
	s.cleanups = append(s.cleanups, cleanup{fn: fn, failOnly: true})
}

// End runs the registered cleanups in reverse acquisition order and
// returns err joined with any cleanup failures. The triggering error
// keeps priority: it decides whether OnFailure cleanups run and comes
// first in the aggregate, so cleanup failures are reported but never
// mask it. A second End runs nothing and returns err unchanged.
func (s *Scope) End(err error) error {
	if s.done {
		return err
	}
	s.done = true
	agg := []error{err}
	for i := len(s.cleanups) - 1; i >= 0; i-- {
		c := s.cleanups[i]
		if c.failOnly && err == nil {
			continue
		}
		if cerr := c.fn(); cerr != nil {
			agg = append(agg, cerr)
		}
	}
	return errors.Join(agg...)
}

// Arena owns a set of staging buffers and releases them together.
// Buffers lent to [NewWriterBuffer] or [NewReaderBuffer] must come
// from an arena (or other owner) that outlives the wrapper using them.
type Arena struct {
	bufs [][]byte
}

// NewArena returns an empty Arena.
func NewArena() *Arena { return &Arena{} }

// Alloc returns a zeroed n-byte buffer owned by the arena.
func (a *Arena) Alloc(n int) []byte {
	buf := make([]byte, n)
	a.bufs = append(a.bufs, buf)
	return buf
}

// Len reports how many buffers the arena currently owns.
func (a *Arena) Len() int { return len(a.bufs) }

// Release drops every owned buffer at once. The arena is empty and
// reusable afterwards; buffers handed out earlier must no longer be
// referenced by live wrappers.
func (a *Arena) Release() { a.bufs = nil }
