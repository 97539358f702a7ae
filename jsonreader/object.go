package jsonreader

import (
	"golang.org/x/exp/maps"

	"github.com/kestrel-labs/jsonreader/cursor"
)

// Property describes one named property of an object() reader: its
// JSON name, the reader for its value, whether it may be omitted, and
// (if so) the default to use when it is. Construct with Prop or
// OptionalProp.
type Property[T any] struct {
	Name     string
	Reader   Reader[T]
	Optional bool
	Default  T
}

// Prop declares a required property.
func Prop[T any](name string, r Reader[T]) Property[T] {
	return Property[T]{Name: name, Reader: r}
}

// OptionalProp declares a property that defaults to def when absent.
func OptionalProp[T any](name string, r Reader[T], def T) Property[T] {
	return Property[T]{Name: name, Reader: r, Optional: true, Default: def}
}

// erasedProperty is Property[T] with its value type hidden behind
// `any`, so ObjectBuilder can hold a heterogeneous list of them.
type erasedProperty struct {
	name     string
	optional bool
	def      any
	read     anyReader
}

func eraseProperty[T any](p Property[T]) erasedProperty {
	return erasedProperty{name: p.Name, optional: p.Optional, def: p.Default, read: erase(p.Reader)}
}

// objectFrame is the resumption state for one in-progress object()
// read: the structure state machine, which properties have been seen,
// their decoded values, and (while mid-value or mid-skip) the index of
// the property currently being read.
type objectFrame struct {
	sm      ObjectSM
	seen    []bool
	vals    []any
	pending  bool // a value (matched or to-be-skipped) is awaiting consumption
	matched  int  // index into props, valid only when pending && !skipping
	skipping bool
	advanced bool // matched path only: have we already moved onto the value's first token?
}

// ObjectBuilder accumulates an unbounded list of properties and a
// final projection from their decoded values to R. Exceeds the
// reference implementation's fixed N=16 property overloads (itself a
// workaround for C# lacking variadic generics, noted as a non-issue in
// Go per spec.md §9) by not capping arity at all.
type ObjectBuilder[R any] struct {
	props []erasedProperty
}

// NewObjectBuilder starts an empty builder.
func NewObjectBuilder[R any]() *ObjectBuilder[R] {
	return &ObjectBuilder[R]{}
}

// With appends one property to the builder and returns it for
// chaining.
func With[T, R any](b *ObjectBuilder[R], p Property[T]) *ObjectBuilder[R] {
	b.props = append(b.props, eraseProperty(p))
	return b
}

// Build finishes the builder into a Reader[R], projecting the ordered
// decoded property values (in declaration order, matching With calls)
// through project.
func (b *ObjectBuilder[R]) Build(project func(vals []any) R) Reader[R] {
	props := b.props
	return objectReader(props, project)
}

// Object2 through Object8 are fixed-arity convenience constructors over
// ObjectBuilder for the common small-N case, in the spirit of Tuple2/
// Tuple3 for arrays: no fluent With chain to assemble, just the
// properties and a typed projector. ObjectBuilder remains the only
// path once a shape needs more than eight properties or a variable
// property count built up in a loop.

func Object2[T1, T2, R any](p1 Property[T1], p2 Property[T2], project func(T1, T2) R) Reader[R] {
	props := []erasedProperty{eraseProperty(p1), eraseProperty(p2)}
	return objectReader(props, func(vals []any) R {
		return project(vals[0].(T1), vals[1].(T2))
	})
}

func Object3[T1, T2, T3, R any](p1 Property[T1], p2 Property[T2], p3 Property[T3], project func(T1, T2, T3) R) Reader[R] {
	props := []erasedProperty{eraseProperty(p1), eraseProperty(p2), eraseProperty(p3)}
	return objectReader(props, func(vals []any) R {
		return project(vals[0].(T1), vals[1].(T2), vals[2].(T3))
	})
}

func Object4[T1, T2, T3, T4, R any](p1 Property[T1], p2 Property[T2], p3 Property[T3], p4 Property[T4], project func(T1, T2, T3, T4) R) Reader[R] {
	props := []erasedProperty{eraseProperty(p1), eraseProperty(p2), eraseProperty(p3), eraseProperty(p4)}
	return objectReader(props, func(vals []any) R {
		return project(vals[0].(T1), vals[1].(T2), vals[2].(T3), vals[3].(T4))
	})
}

func Object5[T1, T2, T3, T4, T5, R any](p1 Property[T1], p2 Property[T2], p3 Property[T3], p4 Property[T4], p5 Property[T5], project func(T1, T2, T3, T4, T5) R) Reader[R] {
	props := []erasedProperty{eraseProperty(p1), eraseProperty(p2), eraseProperty(p3), eraseProperty(p4), eraseProperty(p5)}
	return objectReader(props, func(vals []any) R {
		return project(vals[0].(T1), vals[1].(T2), vals[2].(T3), vals[3].(T4), vals[4].(T5))
	})
}

func Object6[T1, T2, T3, T4, T5, T6, R any](p1 Property[T1], p2 Property[T2], p3 Property[T3], p4 Property[T4], p5 Property[T5], p6 Property[T6], project func(T1, T2, T3, T4, T5, T6) R) Reader[R] {
	props := []erasedProperty{eraseProperty(p1), eraseProperty(p2), eraseProperty(p3), eraseProperty(p4), eraseProperty(p5), eraseProperty(p6)}
	return objectReader(props, func(vals []any) R {
		return project(vals[0].(T1), vals[1].(T2), vals[2].(T3), vals[3].(T4), vals[4].(T5), vals[5].(T6))
	})
}

func Object7[T1, T2, T3, T4, T5, T6, T7, R any](p1 Property[T1], p2 Property[T2], p3 Property[T3], p4 Property[T4], p5 Property[T5], p6 Property[T6], p7 Property[T7], project func(T1, T2, T3, T4, T5, T6, T7) R) Reader[R] {
	props := []erasedProperty{eraseProperty(p1), eraseProperty(p2), eraseProperty(p3), eraseProperty(p4), eraseProperty(p5), eraseProperty(p6), eraseProperty(p7)}
	return objectReader(props, func(vals []any) R {
		return project(vals[0].(T1), vals[1].(T2), vals[2].(T3), vals[3].(T4), vals[4].(T5), vals[5].(T6), vals[6].(T7))
	})
}

func Object8[T1, T2, T3, T4, T5, T6, T7, T8, R any](p1 Property[T1], p2 Property[T2], p3 Property[T3], p4 Property[T4], p5 Property[T5], p6 Property[T6], p7 Property[T7], p8 Property[T8], project func(T1, T2, T3, T4, T5, T6, T7, T8) R) Reader[R] {
	props := []erasedProperty{eraseProperty(p1), eraseProperty(p2), eraseProperty(p3), eraseProperty(p4), eraseProperty(p5), eraseProperty(p6), eraseProperty(p7), eraseProperty(p8)}
	return objectReader(props, func(vals []any) R {
		return project(vals[0].(T1), vals[1].(T2), vals[2].(T3), vals[3].(T4), vals[4].(T5), vals[5].(T6), vals[6].(T7), vals[7].(T8))
	})
}

func objectReader[R any](props []erasedProperty, project func(vals []any) R) Reader[R] {
	return newReader(true, func(c *cursor.Cursor) ReadResult[R] {
		fr := cursor.ResumeOrDefault[*objectFrame](c)
		if fr == nil {
			fr = &objectFrame{seen: make([]bool, len(props)), vals: make([]any, len(props))}
			for i, p := range props {
				if p.optional {
					fr.vals[i] = p.def
				}
			}
		}
		for {
			if fr.pending {
				if fr.skipping {
					if !c.SkipValue() {
						c.Suspend(fr)
						return Incomplete[R]()
					}
				} else {
					if !fr.advanced {
						if !c.Advance() {
							if err := c.Err(); err != nil {
								return Err[R](err)
							}
							c.Suspend(fr)
							return Incomplete[R]()
						}
						fr.advanced = true
					}
					res := props[fr.matched].read(c)
					if res.IsIncomplete() {
						c.Suspend(fr)
						return Incomplete[R]()
					}
					if res.IsError() {
						return Err[R](res.Error())
					}
					v, _ := res.Value()
					fr.vals[fr.matched] = v
					fr.seen[fr.matched] = true
				}
				fr.pending = false
				fr.skipping = false
				fr.advanced = false
				fr.sm.OnPropertyValueRead()
				continue
			}

			ev := fr.sm.Read(c)
			switch ev {
			case objectIncomplete:
				c.Suspend(fr)
				return Incomplete[R]()
			case objectError:
				return Err[R](objectShapeErr(c))
			case objectDone:
				for i, p := range props {
					if !p.optional && !fr.seen[i] {
						return Err[R](&MissingPropertyError{Name: p.name})
					}
				}
				return Val(project(fr.vals))
			case objectPropertyName:
				idx := -1
				for i, p := range props {
					if c.ValueTextEquals([]byte(p.name)) {
						idx = i
						break
					}
				}
				fr.sm.OnPropertyNameRead()
				if idx < 0 {
					// SkipValue expects the value's first token not yet
					// consumed, unlike the matched path below where every
					// reader expects the cursor already positioned on it.
					fr.pending = true
					fr.skipping = true
					continue
				}
				fr.matched = idx
				fr.pending = true
				continue
			}
		}
	})
}

func objectShapeErr(c *cursor.Cursor) error {
	if err := c.Err(); err != nil {
		return err
	}
	return ErrWrongObject
}

// objectMapFrame is the resumption state for object_as_map().
type objectMapFrame[T, A any] struct {
	sm       ObjectSM
	acc      A
	pending  bool
	advanced bool
	key      string
}

// ObjectAsMap reads a JSON object whose property set is not known
// ahead of time, folding each (name, value) pair into an accumulator
// of type A, seeded by initial. Duplicate keys fold in document
// order, so a caller whose fold simply overwrites gets last-value-wins
// for free, matching the typed object() duplicate-key policy.
func ObjectAsMap[T, A any](value Reader[T], initial A, fold func(acc A, key string, v T) A) Reader[A] {
	return newReader(true, func(c *cursor.Cursor) ReadResult[A] {
		fr := cursor.ResumeOrDefault[*objectMapFrame[T, A]](c)
		if fr == nil {
			fr = &objectMapFrame[T, A]{acc: initial}
		}
		for {
			if fr.pending {
				if !fr.advanced {
					if !c.Advance() {
						if err := c.Err(); err != nil {
							return Err[A](err)
						}
						c.Suspend(fr)
						return Incomplete[A]()
					}
					fr.advanced = true
				}
				res := value.TryRead(c)
				if res.IsIncomplete() {
					c.Suspend(fr)
					return Incomplete[A]()
				}
				if res.IsError() {
					return Err[A](res.Error())
				}
				v, _ := res.Value()
				fr.acc = fold(fr.acc, fr.key, v)
				fr.pending = false
				fr.advanced = false
				fr.sm.OnPropertyValueRead()
				continue
			}
			ev := fr.sm.Read(c)
			switch ev {
			case objectIncomplete:
				c.Suspend(fr)
				return Incomplete[A]()
			case objectError:
				return Err[A](objectShapeErr(c))
			case objectDone:
				return Val(fr.acc)
			case objectPropertyName:
				key, err := c.StringValue()
				if err != nil {
					return Err[A](objectShapeErr(c))
				}
				fr.key = key
				fr.sm.OnPropertyNameRead()
				fr.pending = true
			}
		}
	})
}

// ToMap is an ObjectAsMap fold that builds a map[string]T, last value
// wins on duplicate keys.
func ToMap[T any]() func(acc map[string]T, key string, v T) map[string]T {
	return func(acc map[string]T, key string, v T) map[string]T {
		if acc == nil {
			acc = make(map[string]T)
		}
		acc[key] = v
		return acc
	}
}

// MapKeys returns the property names an ObjectAsMap read actually
// collected, in unspecified order. A small convenience for callers who
// want to report or validate the observed key set without hand-rolling
// a range loop, the way the teacher reaches for golang.org/x/exp/maps
// over its own map-shaped intermediate results.
func MapKeys[T any](m map[string]T) []string {
	return maps.Keys(m)
}
