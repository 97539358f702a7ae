package jsonreader

import (
	"github.com/kestrel-labs/jsonreader/cursor"
)

// Recursive builds a reader for a self-referential grammar (e.g. a
// JSON tree shape) by handing the constructor function a forward
// reference to its own result, resolved lazily so the recursion
// bottoms out instead of recursing infinitely at construction time.
func Recursive[T any](build func(self Reader[T]) Reader[T]) Reader[T] {
	ref := &selfRef[T]{}
	r := build(ref.Reader())
	ref.target = &r
	return r
}

// selfRef is the forward-reference cell Recursive closes over: its
// Reader() delegates to whatever target eventually gets assigned,
// which happens synchronously before the returned reader is ever
// invoked.
type selfRef[T any] struct {
	target *Reader[T]
}

func (ref *selfRef[T]) Reader() Reader[T] {
	return newReader(true, func(c *cursor.Cursor) ReadResult[T] {
		return (*ref.target).TryRead(c)
	})
}
