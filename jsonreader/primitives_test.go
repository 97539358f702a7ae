package jsonreader

import (
	"errors"
	"testing"
)

func TestStringReader(t *testing.T) {
	v, err := String().Read([]byte(`"hello"`))
	if err != nil || v != "hello" {
		t.Fatalf("got %q, %v", v, err)
	}
	if _, err := String().Read([]byte(`42`)); !errors.Is(err, ErrWrongString) {
		t.Errorf("got %v, want ErrWrongString", err)
	}
}

func TestBooleanReader(t *testing.T) {
	if v, err := Boolean().Read([]byte(`true`)); err != nil || !v {
		t.Fatalf("got %v, %v", v, err)
	}
	if v, err := Boolean().Read([]byte(`false`)); err != nil || v {
		t.Fatalf("got %v, %v", v, err)
	}
	if _, err := Boolean().Read([]byte(`"x"`)); !errors.Is(err, ErrWrongBoolean) {
		t.Errorf("got %v, want ErrWrongBoolean", err)
	}
}

func TestNullReader(t *testing.T) {
	v, err := Null(-1).Read([]byte(`null`))
	if err != nil || v != -1 {
		t.Fatalf("got %d, %v", v, err)
	}
	if _, err := Null(-1).Read([]byte(`0`)); !errors.Is(err, ErrWrongNull) {
		t.Errorf("got %v, want ErrWrongNull", err)
	}
}

func TestIntReaders(t *testing.T) {
	if v, err := Int32().Read([]byte(`-7`)); err != nil || v != -7 {
		t.Fatalf("got %d, %v", v, err)
	}
	if _, err := Int8().Read([]byte(`300`)); err == nil {
		t.Error("expected Int8 overflow to fail")
	}
	if _, err := Uint8().Read([]byte(`-1`)); err == nil {
		t.Error("expected negative Uint8 to fail")
	}
	if v, err := Uint64().Read([]byte(`18446744073709551615`)); err != nil || v != 18446744073709551615 {
		t.Fatalf("got %d, %v", v, err)
	}
}

func TestFloatReaders(t *testing.T) {
	v, err := Float64().Read([]byte(`3.5e2`))
	if err != nil || v != 350 {
		t.Fatalf("got %v, %v", v, err)
	}
	if _, err := Float32().Read([]byte(`"x"`)); err == nil {
		t.Error("expected a type error")
	}
}

func TestDecimalReader(t *testing.T) {
	cases := []struct {
		in   string
		want Decimal
	}{
		{`123`, Decimal{Unscaled: 123, Exp: 0}},
		{`1.25`, Decimal{Unscaled: 125, Exp: -2}},
		{`-0.5`, Decimal{Unscaled: -5, Exp: -1}},
		{`1.5e3`, Decimal{Unscaled: 15, Exp: 2}},
		{`2e-2`, Decimal{Unscaled: 2, Exp: -2}},
	}
	for _, tc := range cases {
		got, err := DecimalReader().Read([]byte(tc.in))
		if err != nil {
			t.Errorf("%s: unexpected error %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("%s: got %+v, want %+v", tc.in, got, tc.want)
		}
	}
}

func TestDateTimeReader(t *testing.T) {
	v, err := DateTime().Read([]byte(`"2024-01-02T03:04:05Z"`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	_ = v
	if _, err := DateTime().Read([]byte(`"not a date"`)); !errors.Is(err, ErrWrongDateTime) {
		t.Errorf("got %v, want ErrWrongDateTime", err)
	}
}

func TestDateTimeOffsetReader(t *testing.T) {
	if _, err := DateTimeOffset().Read([]byte(`"2024-01-02T03:04:05+02:00"`)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := DateTimeOffset().Read([]byte(`"garbage"`)); !errors.Is(err, ErrWrongDateTimeOffset) {
		t.Errorf("got %v, want ErrWrongDateTimeOffset", err)
	}
}

func TestGuidReader(t *testing.T) {
	v, err := Guid().Read([]byte(`"3fa85f64-5717-4562-b3fc-2c963f66afa6"`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.String() != "3fa85f64-5717-4562-b3fc-2c963f66afa6" {
		t.Errorf("got %s", v)
	}
	cases := []string{
		`"3fa85f645717-4562-b3fc-2c963f66afa6"`,   // missing a hyphen
		`"{3fa85f64-5717-4562-b3fc-2c963f66afa6}"`, // braced 'B' form, disallowed
		`"not-a-guid-at-all-xxxxxxxxxxxxxxxxxxxx"`,
		`42`,
	}
	for _, in := range cases {
		if _, err := Guid().Read([]byte(in)); !errors.Is(err, ErrWrongGuid) {
			t.Errorf("%s: got %v, want ErrWrongGuid", in, err)
		}
	}
}

func TestErrorReader(t *testing.T) {
	_, err := ErrorReader[int]("always fails").Read([]byte(`1`))
	if err == nil || err.Error() != "always fails See token \"Number\" at offset 0." {
		t.Errorf("got %v", err)
	}
}
