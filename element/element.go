// Package element implements the DOM-style opaque JSON value produced
// by the element() primitive reader: a captured subtree that can be
// cloned cheaply and re-serialized to a canonical form, modeled on the
// teacher's ion.Datum (a thin wrapper around an already-encoded byte
// buffer rather than a live tree of interface{} nodes).
package element

import (
	"bytes"
	"encoding/json"
)

// Value is an immutable capture of one JSON value, stored as its raw
// source bytes. Cloning copies the backing buffer so the clone is
// independent of the buffer the original subtree was parsed from,
// exactly as Datum.Clone does for ion values.
type Value struct {
	raw []byte
}

// FromRaw wraps already-captured raw JSON bytes. The caller must not
// reuse or mutate raw afterwards unless it calls Clone first.
func FromRaw(raw []byte) Value {
	return Value{raw: raw}
}

// Raw returns the exact source bytes this Value was captured from.
func (v Value) Raw() []byte { return v.raw }

// Clone returns an independent copy of v.
func (v Value) Clone() Value {
	out := make([]byte, len(v.raw))
	copy(out, v.raw)
	return Value{raw: out}
}

// Canonical returns a compacted form of the captured JSON (insignificant
// whitespace removed, object key order preserved as written). Two
// Values produced from syntactically different but semantically
// identical source text (e.g. differing only in whitespace) compare
// equal after Canonical.
func (v Value) Canonical() ([]byte, error) {
	var buf bytes.Buffer
	if err := json.Compact(&buf, v.raw); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Equal reports whether v and other have the same canonical form.
func (v Value) Equal(other Value) bool {
	a, errA := v.Canonical()
	b, errB := other.Canonical()
	if errA != nil || errB != nil {
		return bytes.Equal(v.raw, other.raw)
	}
	return bytes.Equal(a, b)
}

// String implements fmt.Stringer for debugging.
func (v Value) String() string { return string(v.raw) }
