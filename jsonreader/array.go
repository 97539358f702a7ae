package jsonreader

import (
	"golang.org/x/exp/slices"

	"github.com/kestrel-labs/jsonreader/cursor"
)

// arrayFrame is the resumption state for one in-progress array() read:
// the structure state machine plus whatever has been folded so far.
type arrayFrame[T, A any] struct {
	sm   ArraySM
	acc  A
	item any // not set by Array: the in-progress item's own frames sit on the cursor's stack above this frame
}

// Array reads a JSON array, folding each decoded item into an
// accumulator of type A using fold (typically append-to-slice), seeded
// by initial. Mirrors the teacher's append-while-scanning shape in
// ion's jsonArray, generalized to an arbitrary accumulator and item
// reader instead of a fixed Datum slice.
func Array[T, A any](item Reader[T], initial A, fold func(acc A, v T) A) Reader[A] {
	return newReader(true, func(c *cursor.Cursor) ReadResult[A] {
		fr := cursor.ResumeOrDefault[*arrayFrame[T, A]](c)
		if fr == nil {
			fr = &arrayFrame[T, A]{acc: initial}
		}
		for {
			ev := fr.sm.Read(c)
			switch ev {
			case arrayIncomplete:
				c.Suspend(fr)
				return Incomplete[A]()
			case arrayError:
				return Err[A](arrayShapeErr(c))
			case arrayDone:
				return Val(fr.acc)
			case arrayItem:
				res := item.TryRead(c)
				if res.IsIncomplete() {
					c.Suspend(fr)
					return Incomplete[A]()
				}
				if res.IsError() {
					return Err[A](res.Error())
				}
				v, _ := res.Value()
				fr.acc = fold(fr.acc, v)
				fr.sm.OnItemRead()
			}
		}
	})
}

func arrayShapeErr(c *cursor.Cursor) error {
	if err := c.Err(); err != nil {
		return err
	}
	return ErrWrongArray
}

// Slice reads a JSON array into a Go slice of T, the common case of
// Array.
func Slice[T any](item Reader[T]) Reader[[]T] {
	return Array(item, []T(nil), func(acc []T, v T) []T {
		if len(acc) == cap(acc) {
			acc = slices.Grow(acc, 1)
		}
		return append(acc, v)
	})
}

// tupleFrame is the resumption state for a fixed-arity tuple() read.
type tupleFrame struct {
	sm   ArraySM
	vals []any
}

// anyReader erases a Reader[T] to operate uniformly over []any inside
// Tuple/Object, where each slot has its own element type.
type anyReader func(c *cursor.Cursor) ReadResult[any]

func erase[T any](r Reader[T]) anyReader {
	return func(c *cursor.Cursor) ReadResult[any] {
		res := r.TryRead(c)
		switch {
		case res.IsValue():
			v, _ := res.Value()
			return Val[any](v)
		case res.IsError():
			return Err[any](res.Error())
		default:
			return Incomplete[any]()
		}
	}
}

func tuple(readers []anyReader) Reader[[]any] {
	n := len(readers)
	return newReader(true, func(c *cursor.Cursor) ReadResult[[]any] {
		fr := cursor.ResumeOrDefault[*tupleFrame](c)
		if fr == nil {
			fr = &tupleFrame{vals: make([]any, 0, n)}
		}
		for {
			ev := fr.sm.Read(c)
			switch ev {
			case arrayIncomplete:
				c.Suspend(fr)
				return Incomplete[[]any]()
			case arrayError:
				return Err[[]any](arrayShapeErr(c))
			case arrayDone:
				if len(fr.vals) < n {
					return Err[[]any](ErrTupleTooFew)
				}
				return Val(fr.vals)
			case arrayItem:
				idx := fr.sm.CurrentLength()
				if idx >= n {
					return Err[[]any](ErrTupleTooMany)
				}
				res := readers[idx](c)
				if res.IsIncomplete() {
					c.Suspend(fr)
					return Incomplete[[]any]()
				}
				if res.IsError() {
					return Err[[]any](res.Error())
				}
				v, _ := res.Value()
				fr.vals = append(fr.vals, v)
				fr.sm.OnItemRead()
			}
		}
	})
}

// Tuple2 reads a fixed two-element JSON array into a (T1, T2) pair.
func Tuple2[T1, T2 any](r1 Reader[T1], r2 Reader[T2]) Reader[struct {
	First  T1
	Second T2
}] {
	type pair = struct {
		First  T1
		Second T2
	}
	inner := tuple([]anyReader{erase(r1), erase(r2)})
	return Map(inner, func(vals []any) pair {
		return pair{First: vals[0].(T1), Second: vals[1].(T2)}
	})
}

// Tuple3 reads a fixed three-element JSON array into a (T1, T2, T3)
// triple.
func Tuple3[T1, T2, T3 any](r1 Reader[T1], r2 Reader[T2], r3 Reader[T3]) Reader[struct {
	First  T1
	Second T2
	Third  T3
}] {
	type triple = struct {
		First  T1
		Second T2
		Third  T3
	}
	inner := tuple([]anyReader{erase(r1), erase(r2), erase(r3)})
	return Map(inner, func(vals []any) triple {
		return triple{First: vals[0].(T1), Second: vals[1].(T2), Third: vals[2].(T3)}
	})
}
