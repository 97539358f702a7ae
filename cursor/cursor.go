// Package cursor implements ResumableCursor: a token.Cursor paired
// with the resumption-frame stack that lets reader combinators
// suspend mid-read and resume once more bytes are buffered.
package cursor

import (
	"github.com/kestrel-labs/jsonreader/frame"
	"github.com/kestrel-labs/jsonreader/token"
)

// Cursor is the ResumableCursor of the specification: a token cursor
// plus a LIFO of decoder-private resumption frames.
type Cursor struct {
	tok    *token.Cursor
	frames frame.Stack
}

// New wraps a fresh token cursor with an empty frame stack.
func New(tok *token.Cursor) *Cursor {
	return &Cursor{tok: tok}
}

// Resume reattaches a previously saved frame stack to a token cursor
// constructed (by the caller, typically a stream driver) from a
// refilled buffer and a token.State snapshot.
func Resume(tok *token.Cursor, frames frame.Stack) *Cursor {
	return &Cursor{tok: tok, frames: frames}
}

// Token exposes the underlying token cursor for the rare combinator
// that needs a capability beyond the ones wrapped below (buffering
// does).
func (c *Cursor) Token() *token.Cursor { return c.tok }

// Frames exposes the frame stack, e.g. for a stream driver that needs
// to snapshot it across a refill.
func (c *Cursor) Frames() *frame.Stack { return &c.frames }

// Advance moves to the next token, returning false if the buffer was
// exhausted before a full token was available.
func (c *Cursor) Advance() bool { return c.tok.Read() }

// TokenType is the kind of the current token.
func (c *Cursor) TokenType() token.Kind { return c.tok.TokenType() }

// Err is the tokenizer's sticky lexical error, if any.
func (c *Cursor) Err() error { return c.tok.Err() }

// Offset is the absolute byte offset of the current token.
func (c *Cursor) Offset() int64 { return c.tok.Offset() }

// ValueTextEquals zero-alloc-compares the current PropertyName or
// String token against name.
func (c *Cursor) ValueTextEquals(name []byte) bool { return c.tok.ValueTextEquals(name) }

// StringValue decodes the current String/PropertyName token.
func (c *Cursor) StringValue() (string, error) { return c.tok.StringValue() }

// BoolValue returns the current True/False token's value.
func (c *Cursor) BoolValue() bool { return c.tok.BoolValue() }

// Int64/Uint64/Float64 parse the current Number token.
func (c *Cursor) Int64() (int64, error)   { return c.tok.Int64() }
func (c *Cursor) Uint64() (uint64, error) { return c.tok.Uint64() }
func (c *Cursor) Float64() (float64, error) { return c.tok.Float64() }

// RawToken returns the raw, still-escaped bytes of the current token.
func (c *Cursor) RawToken() []byte { return c.tok.RawToken() }

// IsResuming reports whether the frame stack is non-empty, i.e.
// whether this invocation is continuing a previously suspended read.
func (c *Cursor) IsResuming() bool { return c.frames.Len() > 0 }

// Suspend is the only well-behaved way for a reader to report
// Incomplete: it pushes frame onto the stack for later retrieval by
// ResumeOrDefault. It returns nothing; the caller then returns its own
// Incomplete result.
func (c *Cursor) Suspend(frame any) {
	c.frames.Push(frame)
}

// ResumeOrDefault pops the top frame and type-asserts it as T, or
// returns the zero value of T if the stack is empty. Decoders must
// push and pop frames of matching shape: a mismatched type assertion
// is a programming error and panics, exactly like a corrupted
// resumption frame should.
func ResumeOrDefault[T any](c *Cursor) T {
	v, ok := c.frames.Pop()
	if !ok {
		var zero T
		return zero
	}
	return v.(T)
}

// Clone returns an independent cursor over the same underlying buffer,
// for a combinator (alternation) that needs to try a reader without
// committing to its effect on c until it succeeds.
func (c *Cursor) Clone() *Cursor {
	return &Cursor{tok: c.tok.Clone(), frames: c.frames.Clone()}
}

// Adopt makes c continue from other's position, committing the effect
// of whatever was read through other. Used once a tried alternation
// branch has succeeded.
func (c *Cursor) Adopt(other *Cursor) {
	c.tok = other.tok
	c.frames = other.frames
}

// SkipValue skips an entire JSON value (scalar or composite) starting
// at the current token position. The current token must not yet have
// been consumed past its start, i.e. this is called by the object
// combinator right after seeing an unmatched property name, before
// the value has been read. It is itself resumable: if the value is
// large and spans a refill, it suspends a depth-counter frame.
func (c *Cursor) SkipValue() bool {
	depth := ResumeOrDefault[int](c)
	for {
		opened, closed, ok := c.tok.SkipOneStep()
		if !ok {
			c.Suspend(depth)
			return false
		}
		if opened {
			depth++
			continue
		}
		if closed {
			depth--
			if depth <= 0 {
				return true
			}
			continue
		}
		if depth == 0 {
			// scalar value at the top of the skip: done.
			return true
		}
	}
}
