package structconv

import (
	jsoniter "github.com/json-iterator/go"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Map is the plain representation of a mapping. Iteration follows insertion order.
type Map = orderedmap.OrderedMap[string, any]

// NewMap returns an empty plain mapping.
func NewMap() *Map {
	return orderedmap.New[string, any]()
}

// Convert turns v into plain data:
//
//	mapping  -> *Map with the source key order
//	sequence -> []any
//	scalar   -> string, float64 or bool
//	opaque   -> the wrapped value, unchanged
//
// Convert never fails and never modifies v. Empty mappings and sequences convert to empty,
// non-nil containers.
func Convert(v Value) any {
	switch v.kind {
	case KindMapping:
		out := NewMap()
		for _, e := range v.entries {
			out.Set(e.Key, Convert(e.Value))
		}
		return out
	case KindSequence:
		out := make([]any, 0, len(v.items))
		for _, item := range v.items {
			out = append(out, Convert(item))
		}
		return out
	case KindScalar:
		return v.scalar
	default:
		return v.opaque
	}
}

// ConvertMapping converts a mapping and returns nil when v is not one.
func ConvertMapping(v Value) *Map {
	if v.kind != KindMapping {
		return nil
	}
	return Convert(v).(*Map)
}

// MarshalJSON encodes a plain value. Ordered maps keep their key order on the wire.
func MarshalJSON(plain any) ([]byte, error) {
	return jsoniter.ConfigCompatibleWithStandardLibrary.Marshal(plain)
}
