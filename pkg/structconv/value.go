// Package structconv turns the structured payloads returned by the conversational platform
// (matched-intent parameters, context parameters, webhook bodies) into plain Go data.
//
// Callers describe a payload as a tagged Value built with the constructors below or with one
// of the adapters (FromJSON, FromProto, FromAny). Convert then walks the tree and produces
// ordered maps, slices and scalars with no dependency on any platform SDK type.
package structconv

// Kind tags the shape held by a Value.
type Kind uint8

const (
	// KindOpaque is any value the conversion rules do not recognise. It is passed through.
	KindOpaque Kind = iota
	KindScalar
	KindSequence
	KindMapping
)

func (k Kind) String() string {
	switch k {
	case KindScalar:
		return "scalar"
	case KindSequence:
		return "sequence"
	case KindMapping:
		return "mapping"
	default:
		return "opaque"
	}
}

// Value is an immutable composite value. The zero Value is an opaque nil.
type Value struct {
	kind    Kind
	scalar  any
	items   []Value
	entries []Entry
	opaque  any
}

// Entry is one key/value pair of a mapping.
type Entry struct {
	Key   string
	Value Value
}

// Field is shorthand for Entry{Key: key, Value: v}.
func Field(key string, v Value) Entry {
	return Entry{Key: key, Value: v}
}

func String(s string) Value {
	return Value{kind: KindScalar, scalar: s}
}

func Number(f float64) Value {
	return Value{kind: KindScalar, scalar: f}
}

func Bool(b bool) Value {
	return Value{kind: KindScalar, scalar: b}
}

// Sequence builds an ordered list. The slice is copied.
func Sequence(items ...Value) Value {
	cp := make([]Value, len(items))
	copy(cp, items)
	return Value{kind: KindSequence, items: cp}
}

// Mapping builds a mapping that keeps entries in the given order. The slice is copied.
func Mapping(entries ...Entry) Value {
	cp := make([]Entry, len(entries))
	copy(cp, entries)
	return Value{kind: KindMapping, entries: cp}
}

// Opaque wraps a value the converter must hand back untouched.
func Opaque(v any) Value {
	return Value{kind: KindOpaque, opaque: v}
}

func (v Value) Kind() Kind {
	return v.kind
}

// Len reports the number of items or entries; scalars and opaque values have length 0.
func (v Value) Len() int {
	switch v.kind {
	case KindSequence:
		return len(v.items)
	case KindMapping:
		return len(v.entries)
	default:
		return 0
	}
}

// Items returns a copy of the elements of a sequence.
func (v Value) Items() []Value {
	if v.kind != KindSequence {
		return nil
	}
	cp := make([]Value, len(v.items))
	copy(cp, v.items)
	return cp
}

// Entries returns a copy of the entries of a mapping, in order.
func (v Value) Entries() []Entry {
	if v.kind != KindMapping {
		return nil
	}
	cp := make([]Entry, len(v.entries))
	copy(cp, v.entries)
	return cp
}

// Lookup returns the value stored under key in a mapping. With duplicate keys the last one wins.
func (v Value) Lookup(key string) (Value, bool) {
	if v.kind != KindMapping {
		return Value{}, false
	}
	for i := len(v.entries) - 1; i >= 0; i-- {
		if v.entries[i].Key == key {
			return v.entries[i].Value, true
		}
	}
	return Value{}, false
}
