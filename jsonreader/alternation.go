package jsonreader

import (
	"github.com/kestrel-labs/jsonreader/cursor"
)

// Either tries a, and if it fails (reports Err, not Incomplete) tries
// b from the same starting position. Both attempts run against an
// independent clone of the cursor, so a's partial progress never
// leaks into b's attempt; the real cursor only adopts whichever
// clone's position actually succeeded.
//
// Over a streaming source this requires the whole subtree to already
// be buffered (wrap with Buffer), since a failed first attempt cannot
// be un-consumed once bytes it read have been discarded by a refill;
// Either reports that requirement as a hard error rather than silently
// mis-parsing.
func Either[T any](a, b Reader[T]) Reader[T] {
	return newReader(false, func(c *cursor.Cursor) ReadResult[T] {
		if ok, err := readyCursor(c); !ok {
			if err != nil {
				return Err[T](err)
			}
			return Incomplete[T]()
		}
		branchA := c.Clone()
		resA := a.TryRead(branchA)
		if resA.IsIncomplete() {
			return Err[T](errStreamingAlternation)
		}
		if resA.IsValue() {
			c.Adopt(branchA)
			return resA
		}
		branchB := c.Clone()
		resB := b.TryRead(branchB)
		if resB.IsIncomplete() {
			return Err[T](errStreamingAlternation)
		}
		if resB.IsValue() {
			c.Adopt(branchB)
			return resB
		}
		return Err[T](ErrAlternationExhausted)
	})
}

// Or is Either generalized to more than two branches, tried in order.
func Or[T any](first Reader[T], rest ...Reader[T]) Reader[T] {
	r := first
	for _, next := range rest {
		r = Either(r, next)
	}
	return r
}
