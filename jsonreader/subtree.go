package jsonreader

import (
	"github.com/kestrel-labs/jsonreader/cursor"
	"github.com/kestrel-labs/jsonreader/element"
	"github.com/kestrel-labs/jsonreader/token"
)

// elemFrame accumulates the re-serialized bytes of an element() read
// across however many Incomplete/resume cycles it takes. It is pushed
// whole onto the cursor's frame stack, since (unlike the scalar
// readers) element() may need to observe many tokens before it is
// done, each of which can fall on the wrong side of a chunk boundary.
type elemFrame struct {
	buf       []byte
	isObject  []bool
	needComma []bool
}

// Element captures one JSON value verbatim (scalar, array or object,
// arbitrarily nested) without interpreting it, the way the teacher's
// ion.Datum captures a subtree as opaque encoded bytes rather than a
// live tree of interface{} nodes. The result re-serializes to a
// canonical (whitespace-compacted) form on demand via element.Value's
// own Canonical method.
func Element() Reader[element.Value] {
	return newReader(false, func(c *cursor.Cursor) ReadResult[element.Value] {
		fr := cursor.ResumeOrDefault[*elemFrame](c)
		first := fr == nil
		if first {
			fr = &elemFrame{}
			if ok, err := readyCursor(c); !ok {
				if err != nil {
					return Err[element.Value](err)
				}
				c.Suspend(fr)
				return Incomplete[element.Value]()
			}
		}

		visit := func() (done bool) {
			kind := c.TokenType()
			switch kind {
			case token.StartObject, token.StartArray:
				if len(fr.isObject) > 0 && fr.needComma[len(fr.needComma)-1] {
					fr.buf = append(fr.buf, ',')
				}
				open := byte('[')
				if kind == token.StartObject {
					open = '{'
				}
				fr.buf = append(fr.buf, open)
				fr.isObject = append(fr.isObject, kind == token.StartObject)
				fr.needComma = append(fr.needComma, false)
				return false
			case token.EndObject, token.EndArray:
				closeCh := byte(']')
				if kind == token.EndObject {
					closeCh = '}'
				}
				fr.buf = append(fr.buf, closeCh)
				fr.isObject = fr.isObject[:len(fr.isObject)-1]
				fr.needComma = fr.needComma[:len(fr.needComma)-1]
				if len(fr.isObject) > 0 {
					fr.needComma[len(fr.needComma)-1] = true
				}
				return len(fr.isObject) == 0
			case token.PropertyName:
				if fr.needComma[len(fr.needComma)-1] {
					fr.buf = append(fr.buf, ',')
				}
				fr.buf = append(fr.buf, c.RawToken()...)
				fr.buf = append(fr.buf, ':')
				fr.needComma[len(fr.needComma)-1] = false
				return false
			default:
				if len(fr.isObject) > 0 {
					if fr.needComma[len(fr.needComma)-1] {
						fr.buf = append(fr.buf, ',')
					}
					fr.buf = append(fr.buf, c.RawToken()...)
					fr.needComma[len(fr.needComma)-1] = true
					return false
				}
				fr.buf = append(fr.buf, c.RawToken()...)
				return true
			}
		}

		if first {
			if visit() {
				return Val(element.FromRaw(fr.buf))
			}
		}
		for {
			if !c.Advance() {
				if err := c.Err(); err != nil {
					return Err[element.Value](err)
				}
				c.Suspend(fr)
				return Incomplete[element.Value]()
			}
			if visit() {
				return Val(element.FromRaw(fr.buf))
			}
		}
	})
}

// Buffer wraps r so that, before r ever runs, the whole of the current
// JSON value (if it is an array or object) is confirmed present in the
// buffer. Scalars need no buffering. This is the adapter that makes
// either/or safe over streaming input (see alternation.go): once
// Buffer has confirmed the subtree is fully resident, the cloned-
// cursor snapshot/restore either performs between branch attempts
// never needs a refill mid-attempt.
func Buffer[T any](r Reader[T]) Reader[T] {
	return newReader(false, func(c *cursor.Cursor) ReadResult[T] {
		if c.IsResuming() {
			cursor.ResumeOrDefault[struct{}](c)
		}
		probe := c.Token()
		if c.TokenType() == token.None {
			// Look ahead on a clone, so that while the subtree is not
			// yet resident nothing is consumed and a refill keeps the
			// value's opening byte.
			probe = probe.Clone()
			if !probe.Read() {
				if err := probe.Err(); err != nil {
					return Err[T](err)
				}
				return Incomplete[T]()
			}
		}
		switch probe.TokenType() {
		case token.StartObject, token.StartArray:
			if !probe.SubtreeComplete() {
				c.Suspend(struct{}{})
				return Incomplete[T]()
			}
		}
		return r.TryRead(c)
	})
}
