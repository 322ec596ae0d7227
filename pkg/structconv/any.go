package structconv

import (
	"encoding/json"
	"sort"

	"google.golang.org/protobuf/types/known/structpb"
)

// FromAny classifies a Go value. Plain maps are read in sorted key order, ordered maps in
// their own order. Integer and float types become Number. Anything else is opaque.
func FromAny(x any) Value {
	switch t := x.(type) {
	case Value:
		return t
	case *Map:
		if t == nil {
			return Opaque(nil)
		}
		entries := make([]Entry, 0, t.Len())
		for pair := t.Oldest(); pair != nil; pair = pair.Next() {
			entries = append(entries, Entry{Key: pair.Key, Value: FromAny(pair.Value)})
		}
		return Value{kind: KindMapping, entries: entries}
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		entries := make([]Entry, 0, len(keys))
		for _, k := range keys {
			entries = append(entries, Entry{Key: k, Value: FromAny(t[k])})
		}
		return Value{kind: KindMapping, entries: entries}
	case []any:
		items := make([]Value, 0, len(t))
		for _, item := range t {
			items = append(items, FromAny(item))
		}
		return Value{kind: KindSequence, items: items}
	case []string:
		items := make([]Value, 0, len(t))
		for _, item := range t {
			items = append(items, String(item))
		}
		return Value{kind: KindSequence, items: items}
	case string:
		return String(t)
	case bool:
		return Bool(t)
	case float64:
		return Number(t)
	case float32:
		return Number(float64(t))
	case int:
		return Number(float64(t))
	case int32:
		return Number(float64(t))
	case int64:
		return Number(float64(t))
	case uint32:
		return Number(float64(t))
	case uint64:
		return Number(float64(t))
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			return Opaque(t)
		}
		return Number(f)
	case *structpb.Value:
		return FromProto(t)
	case *structpb.Struct:
		return FromStruct(t)
	case *structpb.ListValue:
		return FromList(t)
	default:
		return Opaque(x)
	}
}
