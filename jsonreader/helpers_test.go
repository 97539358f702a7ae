package jsonreader

import (
	"fmt"
	"testing"

	"github.com/kestrel-labs/jsonreader/cursor"
	"github.com/kestrel-labs/jsonreader/token"
)

// driveChunked feeds full to r one refill at a time, starting with an
// initial window of the first `initial` bytes and growing the window
// by exactly one byte per Incomplete result, always resuming from the
// unconsumed tail the way a real StreamChunkReader refill does (see
// stream.go's EnumerateArray and token/token_test.go's
// TestIncompleteThenResume). It exercises every chunk-boundary
// placement a caller's buffering strategy could produce.
func driveChunked[T any](t *testing.T, r Reader[T], full []byte, initial int) (T, error) {
	t.Helper()
	winStart := 0
	winEnd := initial
	if winEnd > len(full) {
		winEnd = len(full)
	}
	tok := token.New(full[winStart:winEnd], winEnd == len(full))
	cur := cursor.New(tok)
	for {
		res := r.TryRead(cur)
		if res.IsValue() {
			v, _ := res.Value()
			return v, nil
		}
		if res.IsError() {
			var zero T
			return zero, res.Error()
		}
		if winEnd >= len(full) {
			var zero T
			return zero, fmt.Errorf("driveChunked: stuck incomplete at end of input")
		}
		consumed := tok.BytesConsumed()
		st := tok.State()
		frames := cur.Frames().Clone()
		winStart += consumed
		winEnd++
		final := winEnd == len(full)
		tok = token.Resume(full[winStart:winEnd], final, st)
		cur = cursor.Resume(tok, frames)
	}
}
