package jsonreader

import (
	"errors"
	"testing"
)

func TestReadResultAccessors(t *testing.T) {
	v := Val(7)
	if !v.IsValue() || v.IsError() || v.IsIncomplete() {
		t.Fatalf("Val: wrong kind flags")
	}
	if got, ok := v.Value(); !ok || got != 7 {
		t.Errorf("Value() = %d, %v", got, ok)
	}
	if v.Must() != 7 {
		t.Errorf("Must() = %d", v.Must())
	}

	sentinel := errors.New("boom")
	e := Err[int](sentinel)
	if !e.IsError() || e.IsValue() || e.IsIncomplete() {
		t.Fatalf("Err: wrong kind flags")
	}
	if e.Error() != sentinel {
		t.Errorf("Error() = %v, want %v", e.Error(), sentinel)
	}

	inc := Incomplete[int]()
	if !inc.IsIncomplete() || inc.IsValue() || inc.IsError() {
		t.Fatalf("Incomplete: wrong kind flags")
	}
}

func TestReadResultMustPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected Must to panic on an error result")
		}
	}()
	Err[int](errors.New("boom")).Must()
}

func TestReadResultMustPanicsOnIncomplete(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected Must to panic on an incomplete result")
		}
	}()
	Incomplete[int]().Must()
}
