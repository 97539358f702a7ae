package jsonreader

import (
	"github.com/kestrel-labs/jsonreader/cursor"
	"github.com/kestrel-labs/jsonreader/token"
)

// Reader is a resumable decoder for one JSON shape into a Go value of
// type T. Readers are built by the combinators in this package, not
// constructed directly.
//
// pure marks a reader whose structure state machine inspects the
// current token itself (array, object, tuple): it is documentation
// only here. Every reader, pure or not, tolerates being invoked with
// no current token yet (TokenType() == token.None) by advancing once
// before inspecting it; this collapses the reference implementation's
// pure/non-pure tokenizer-coupling distinction into one uniform rule,
// which is simpler to get right in Go and behaves identically (see
// DESIGN.md).
type Reader[T any] struct {
	pure bool
	fn   func(c *cursor.Cursor) ReadResult[T]
}

func newReader[T any](pure bool, fn func(c *cursor.Cursor) ReadResult[T]) Reader[T] {
	return Reader[T]{pure: pure, fn: fn}
}

// TryRead runs the reader against c. c is either positioned on the
// reader's first token (as a combinator's structure state machine
// leaves it) or, for a top-level call, has no current token yet, in
// which case the reader advances once itself via readyCursor.
func (r Reader[T]) TryRead(c *cursor.Cursor) ReadResult[T] {
	return r.fn(c)
}

// readyCursor ensures c has a current token, advancing once if it
// doesn't yet (TokenType() == token.None, i.e. nothing has been read
// from this cursor at all). It reports false only when the tokenizer
// needs more bytes (ok=false, err=nil) or hit malformed input
// (ok=false, err!=nil).
func readyCursor(c *cursor.Cursor) (ok bool, err error) {
	if c.TokenType() != token.None {
		return true, nil
	}
	if c.Advance() {
		return true, nil
	}
	return false, c.Err()
}
