package jsonreader

import (
	"errors"

	"github.com/kestrel-labs/jsonreader/cursor"
	"github.com/kestrel-labs/jsonreader/token"
)

// TryReadAll runs r against the entirety of data, treated as a single,
// complete document (no further bytes will ever arrive). It returns
// the plain, unannotated error a nested combinator produced; Read
// additionally stamps the failure with token/offset context.
func (r Reader[T]) TryReadAll(data []byte) ReadResult[T] {
	tok := token.New(data, true)
	c := cursor.New(tok)
	res := r.TryRead(c)
	if res.IsIncomplete() {
		return Err[T](errStreamingAlternation)
	}
	return res
}

// Read decodes data completely, returning a position-annotated error
// if r does not accept it.
func (r Reader[T]) Read(data []byte) (T, error) {
	tok := token.New(data, true)
	c := cursor.New(tok)
	res := r.TryRead(c)
	if res.IsIncomplete() {
		var zero T
		return zero, errors.New(errStreamingAlternation.Error())
	}
	if res.IsError() {
		var zero T
		return zero, annotate(res.Error(), c.TokenType(), c.Offset())
	}
	v, _ := res.Value()
	return v, nil
}

// MustRead is Read, panicking instead of returning an error.
func (r Reader[T]) MustRead(data []byte) T {
	v, err := r.Read(data)
	if err != nil {
		panic(err)
	}
	return v
}
