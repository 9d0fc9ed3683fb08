// Package strio provides buffered, backend-agnostic byte streams with
// formatted output.
//
// The package is built around two minimal backend capabilities: a
// [Sink] accepts chunks of bytes and a [Source] produces them. A
// [Writer] wraps a Sink with a fixed-capacity staging buffer that
// batches small writes into fewer backend calls; a [Reader] wraps a
// Source and supports delimiter-based line extraction. [Render] turns
// a template plus typed arguments into bytes, dispatching to a type's
// own [Renderer] when it declares one. [Scope] and [Arena] carry the
// resource-lifetime discipline the stream wrappers rely on.
//
// Everything is single-threaded and synchronous: no operation suspends
// and no wrapper may be shared across goroutines without external
// synchronization.
//
// # Backends
//
// Any type satisfying the two-method contracts plugs in. [NewSink] and
// [NewSource] adapt stdlib writers and readers; [MemSink] and
// [NewMemSource] provide in-memory backends:
//
//	var sink strio.MemSink
//	w := strio.NewWriter(&sink)
//
// Sink.WriteChunk may accept fewer bytes than given; Writer loops
// until the chunk is consumed. Source.ReadChunk signals end of stream
// by filling zero bytes.
//
// # Buffered Writing
//
// Writes stage into the buffer and reach the backend only on flush
// boundaries: a full buffer, [Writer.Flush], [Writer.Close], or a
// write at least as large as the buffer, which bypasses staging after
// pending bytes are flushed. A zero-capacity Writer degrades to
// unbuffered operation. Close flushes, then releases the Sink even if
// the flush failed, reporting both errors with the flush error first.
//
// # Buffered Reading
//
// [Reader.ReadUntil] extracts delimiter-terminated lines, refilling
// across physical buffer boundaries so a delimiter split over a refill
// is found all the same. A line that outgrows the staging buffer fails
// with [ErrLineTooLong]; [Reader.SkipUntil] discards the rest of the
// oversized line and resynchronizes on the next delimiter.
//
// # Formatting
//
// [Render] and [Writer.Printf] use a small placeholder language:
//
//	{<mode>[:[<fill>]<align><width>][.<precision>]}
//
// Built-in modes cover decimal, hex, octal, binary, scientific,
// strings, and json/yaml encoding of composite values. Alignment is
// display-width aware, so double-width runes line up:
//
//	strio.Render(w, "{s:>8}: {d}\n", "total", 42)
//
// # Custom Renderers
//
// A type that implements [Renderer] takes full control of its own
// output; built-in rules are bypassed and the raw mode string is
// forwarded unmodified, the empty default mode included:
//
//	func (c RGB) RenderMode(mode string) ([]byte, error) { ... }
//	strio.Render(w, "{hex}", c) // RenderMode("hex")
//
// # Resource Scopes
//
// [Scope] records cleanups in acquisition order and runs them in
// reverse at [Scope.End]. Defer cleanups always run; OnFailure
// cleanups run only on error paths, which makes ownership transfer
// explicit. [Arena] owns staging buffers for [NewWriterBuffer] and
// [NewReaderBuffer] and drops them in bulk on release.
//
// # Errors
//
// The package exports sentinel errors for programmatic handling:
//
//   - [ErrClosed] — operation on a closed wrapper
//   - [ErrLineTooLong] — staging buffer exhausted before a delimiter
//   - [ErrFormat] — template/argument mismatch or unknown mode
//
// Backend failures are wrapped with operation context and surfaced to
// the immediate caller; nothing is retried internally, and cleanup
// failures are joined after the triggering error, never replacing it.
package strio
