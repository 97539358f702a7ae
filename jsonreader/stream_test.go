package jsonreader

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/kestrel-labs/jsonreader/element"
)

func TestStreamChunkReaderRefillGrows(t *testing.T) {
	src := strings.NewReader(strings.Repeat("x", 10))
	scr := NewStreamChunkReader(src, 4)
	if err := scr.Refill(0); err != nil {
		t.Fatalf("Refill: %v", err)
	}
	if len(scr.Bytes()) != 4 {
		t.Fatalf("got %d bytes, want 4", len(scr.Bytes()))
	}
	if err := scr.Refill(0); err != nil {
		t.Fatalf("Refill: %v", err)
	}
	if len(scr.Bytes()) <= 4 {
		t.Fatalf("expected the buffer to grow past its initial size, got %d bytes", len(scr.Bytes()))
	}
}

func TestStreamChunkReaderReachesFinal(t *testing.T) {
	src := strings.NewReader("abc")
	scr := NewStreamChunkReader(src, 16)
	if err := scr.Refill(0); err != nil {
		t.Fatalf("Refill: %v", err)
	}
	// strings.Reader's first Read returns all available bytes with a nil
	// error; EOF only surfaces on the next call once it is exhausted.
	if err := scr.Refill(0); err != nil {
		t.Fatalf("Refill: %v", err)
	}
	if !scr.Final() {
		t.Fatal("expected Final() once the source is exhausted")
	}
	if string(scr.Bytes()) != "abc" {
		t.Errorf("got %q", scr.Bytes())
	}
}

type stutterReader struct {
	chunks [][]byte
}

func (s *stutterReader) Read(p []byte) (int, error) {
	if len(s.chunks) == 0 {
		return 0, io.EOF
	}
	if len(s.chunks[0]) == 0 {
		s.chunks = s.chunks[1:]
		return 0, nil
	}
	n := copy(p, s.chunks[0])
	s.chunks[0] = s.chunks[0][n:]
	return n, nil
}

func TestStreamChunkReaderLoopsPastZeroByteReads(t *testing.T) {
	src := &stutterReader{chunks: [][]byte{nil, nil, []byte("hi")}}
	scr := NewStreamChunkReader(src, 16)
	if err := scr.Refill(0); err != nil {
		t.Fatalf("Refill: %v", err)
	}
	if string(scr.Bytes()) != "hi" {
		t.Errorf("got %q", scr.Bytes())
	}
}

func TestEnumerateArrayBasic(t *testing.T) {
	src := strings.NewReader(`[1,2,3,4,5]`)
	var got []int32
	err := EnumerateArray(context.Background(), src, Int32(), 2, func(v int32) error {
		got = append(got, v)
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []int32{1, 2, 3, 4, 5}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("index %d: got %d, want %d", i, got[i], want[i])
		}
	}
}

func TestEnumerateArrayEveryInitialBufferSize(t *testing.T) {
	full := `[10,20,30,{"a":1},"z"]`
	for n := 1; n < len(full); n++ {
		var got []string
		src := strings.NewReader(full)
		err := EnumerateArray(context.Background(), src, Element(), n, func(v element.Value) error {
			got = append(got, v.String())
			return nil
		})
		if err != nil {
			t.Fatalf("initial buffer %d: unexpected error: %v", n, err)
		}
		want := []string{"10", "20", "30", `{"a":1}`, `"z"`}
		if len(got) != len(want) {
			t.Fatalf("initial buffer %d: got %v, want %v", n, got, want)
		}
		for i := range want {
			if got[i] != want[i] {
				t.Errorf("initial buffer %d, item %d: got %q, want %q", n, i, got[i], want[i])
			}
		}
	}
}

func TestEnumerateArrayVisitErrorStopsEarly(t *testing.T) {
	src := strings.NewReader(`[1,2,3]`)
	sentinel := errors.New("stop here")
	count := 0
	err := EnumerateArray(context.Background(), src, Int32(), 16, func(v int32) error {
		count++
		if v == 2 {
			return sentinel
		}
		return nil
	})
	if !errors.Is(err, sentinel) {
		t.Fatalf("got %v, want %v", err, sentinel)
	}
	if count != 2 {
		t.Errorf("got %d visits, want 2", count)
	}
}

func TestEnumerateArrayRejectsNonArray(t *testing.T) {
	src := strings.NewReader(`{"a":1}`)
	err := EnumerateArray(context.Background(), src, Int32(), 16, func(int32) error { return nil })
	if err == nil {
		t.Fatal("expected an error for a non-array top-level value")
	}
}

func TestEnumerateArrayTruncatedInputIsAnError(t *testing.T) {
	src := strings.NewReader(`[1,2,`)
	err := EnumerateArray(context.Background(), src, Int32(), 16, func(int32) error { return nil })
	if err == nil {
		t.Fatal("expected an error for a truncated top-level array")
	}
}

func TestEnumerateArrayRespectsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	src := strings.NewReader(`[1,2,3]`)
	err := EnumerateArray(ctx, src, Int32(), 16, func(int32) error { return nil })
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("got %v, want context.Canceled", err)
	}
}

func TestEnumerateArrayPropagatesItemDecodeError(t *testing.T) {
	src := strings.NewReader(`[1,"x",3]`)
	err := EnumerateArray(context.Background(), src, Int32(), 16, func(int32) error { return nil })
	if err == nil {
		t.Fatal("expected a decode error for the mistyped item")
	}
}

func TestEnumerateArrayOverBytesReader(t *testing.T) {
	src := bytes.NewReader([]byte(`[]`))
	var got []int32
	err := EnumerateArray(context.Background(), src, Int32(), 16, func(v int32) error {
		got = append(got, v)
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("got %v, want empty", got)
	}
}
