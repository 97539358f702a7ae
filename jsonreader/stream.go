package jsonreader

import (
	"context"
	"io"

	"github.com/kestrel-labs/jsonreader/cursor"
	"github.com/kestrel-labs/jsonreader/token"
)

// StreamChunkReader is a growable refill buffer over an io.Reader:
// each Refill shifts the still-unconsumed tail to the front, doubles
// the buffer if it is already full, then reads new bytes into the free
// space, returning after the first Read of src that yields any bytes
// (or reports io.EOF). Modeled on the teacher's ndjson chunk reader (buf/rpos/flushed
// fields driving fill/shift in jsonrl, since removed from this
// workspace; see DESIGN.md), generalized from newline-delimited JSON
// records to an arbitrary resumable Reader.
type StreamChunkReader struct {
	src   io.Reader
	buf   []byte
	n     int // buf[:n] holds valid, as-yet-unconsumed-or-unshifted bytes
	final bool
}

// NewStreamChunkReader wraps src with an initial buffer of
// initialSize bytes (a non-positive value is replaced with a sensible
// default).
func NewStreamChunkReader(src io.Reader, initialSize int) *StreamChunkReader {
	if initialSize <= 0 {
		initialSize = 1024
	}
	return &StreamChunkReader{src: src, buf: make([]byte, initialSize)}
}

// Bytes returns the currently buffered window.
func (s *StreamChunkReader) Bytes() []byte { return s.buf[:s.n] }

// Final reports whether src has reported io.EOF: Bytes() will not grow
// again after this returns true.
func (s *StreamChunkReader) Final() bool { return s.final }

// Refill discards the first consumed bytes of the current window
// (already-parsed tokens the tokenizer will never revisit), grows the
// buffer if there is no room left, and reads more bytes from src. It
// is a no-op read-wise once Final() is true.
func (s *StreamChunkReader) Refill(consumed int) error {
	tail := s.n - consumed
	copy(s.buf, s.buf[consumed:s.n])
	s.n = tail
	if s.final {
		return nil
	}
	if s.n == len(s.buf) {
		bigger := make([]byte, len(s.buf)*2)
		copy(bigger, s.buf[:s.n])
		s.buf = bigger
	}
	for {
		k, err := s.src.Read(s.buf[s.n:])
		s.n += k
		if err == io.EOF {
			s.final = true
			return nil
		}
		if err != nil {
			return err
		}
		if k > 0 {
			return nil
		}
	}
}

// EnumerateArray drives item across a top-level JSON array read
// incrementally from src, calling visit for each decoded element as
// soon as it is available rather than materializing the whole array
// in memory. ctx is checked for cancellation at every refill boundary
// and between every emitted item, matching the cooperative-
// cancellation contract of a long-running streaming read.
func EnumerateArray[T any](ctx context.Context, src io.Reader, item Reader[T], initialBufSize int, visit func(T) error) error {
	scr := NewStreamChunkReader(src, initialBufSize)
	if err := scr.Refill(0); err != nil {
		return err
	}
	tok := token.New(scr.Bytes(), scr.Final())
	cur := cursor.New(tok)
	sm := &ArraySM{}

	refill := func() error {
		if scr.Final() {
			return &DecodeError{Message: "Unexpected end of input.", Token: cur.TokenType(), Offset: cur.Offset()}
		}
		// cur.Token(), not tok: a successful alternation branch
		// replaces cur's token cursor with its clone.
		consumed := cur.Token().BytesConsumed()
		st := cur.Token().State()
		frames := cur.Frames().Clone()
		if err := scr.Refill(consumed); err != nil {
			return err
		}
		tok = token.Resume(scr.Bytes(), scr.Final(), st)
		cur = cursor.Resume(tok, frames)
		return nil
	}

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		ev := sm.Read(cur)
		switch ev {
		case arrayIncomplete:
			if err := refill(); err != nil {
				return err
			}
			continue
		case arrayError:
			return annotate(arrayShapeErr(cur), cur.TokenType(), cur.Offset())
		case arrayDone:
			return nil
		case arrayItem:
			res := item.TryRead(cur)
			if res.IsIncomplete() {
				if err := refill(); err != nil {
					return err
				}
				continue
			}
			if res.IsError() {
				return annotate(res.Error(), cur.TokenType(), cur.Offset())
			}
			v, _ := res.Value()
			sm.OnItemRead()
			if err := visit(v); err != nil {
				return err
			}
		}
	}
}
