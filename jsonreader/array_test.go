package jsonreader

import (
	"errors"
	"reflect"
	"testing"
)

func TestSliceOfInts(t *testing.T) {
	v, err := Slice(Int32()).Read([]byte(`[1,2,3]`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(v, []int32{1, 2, 3}) {
		t.Errorf("got %v", v)
	}
}

func TestSliceEmpty(t *testing.T) {
	v, err := Slice(Int32()).Read([]byte(`[]`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(v) != 0 {
		t.Errorf("got %v, want empty", v)
	}
}

func TestSliceWrongShape(t *testing.T) {
	if _, err := Slice(Int32()).Read([]byte(`{"a":1}`)); !errors.Is(err, ErrWrongArray) {
		t.Errorf("got %v, want ErrWrongArray", err)
	}
}

func TestSliceItemError(t *testing.T) {
	if _, err := Slice(Int32()).Read([]byte(`[1,"x",3]`)); err == nil {
		t.Error("expected a per-item decode error to propagate")
	}
}

func TestSliceChunkedAcrossEveryBoundary(t *testing.T) {
	full := []byte(`[1,2,3,4,5]`)
	for n := 1; n < len(full); n++ {
		v, err := driveChunked(t, Slice(Int32()), full, n)
		if err != nil {
			t.Fatalf("chunk size %d: unexpected error: %v", n, err)
		}
		want := []int32{1, 2, 3, 4, 5}
		if !reflect.DeepEqual(v, want) {
			t.Errorf("chunk size %d: got %v, want %v", n, v, want)
		}
	}
}

func TestArrayFold(t *testing.T) {
	sum := Array(Int32(), int32(0), func(acc, v int32) int32 { return acc + v })
	v, err := sum.Read([]byte(`[1,2,3,4]`))
	if err != nil || v != 10 {
		t.Fatalf("got %d, %v", v, err)
	}
}

func TestTuple2(t *testing.T) {
	r := Tuple2(String(), Int32())
	v, err := r.Read([]byte(`["a",7]`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.First != "a" || v.Second != 7 {
		t.Errorf("got %+v", v)
	}
}

func TestTuple2TooFew(t *testing.T) {
	if _, err := Tuple2(String(), Int32()).Read([]byte(`["a"]`)); !errors.Is(err, ErrTupleTooFew) {
		t.Errorf("got %v, want ErrTupleTooFew", err)
	}
}

func TestTuple2TooMany(t *testing.T) {
	if _, err := Tuple2(String(), Int32()).Read([]byte(`["a",1,2]`)); !errors.Is(err, ErrTupleTooMany) {
		t.Errorf("got %v, want ErrTupleTooMany", err)
	}
}

func TestTuple3(t *testing.T) {
	r := Tuple3(String(), Int32(), Boolean())
	v, err := r.Read([]byte(`["a",1,true]`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.First != "a" || v.Second != 1 || !v.Third {
		t.Errorf("got %+v", v)
	}
}
