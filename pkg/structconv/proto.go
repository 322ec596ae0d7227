package structconv

import (
	"sort"

	"google.golang.org/protobuf/types/known/structpb"
)

// FromProto maps a protobuf well-known Value onto a Value. NullValue and unset kinds are
// opaque. Struct fields carry no order on the wire, so keys are emitted sorted.
func FromProto(v *structpb.Value) Value {
	if v == nil {
		return Opaque(nil)
	}

	switch k := v.GetKind().(type) {
	case *structpb.Value_StructValue:
		return FromStruct(k.StructValue)
	case *structpb.Value_ListValue:
		return FromList(k.ListValue)
	case *structpb.Value_StringValue:
		return String(k.StringValue)
	case *structpb.Value_NumberValue:
		return Number(k.NumberValue)
	case *structpb.Value_BoolValue:
		return Bool(k.BoolValue)
	case *structpb.Value_NullValue:
		return Opaque(nil)
	default:
		return Opaque(v)
	}
}

func FromStruct(s *structpb.Struct) Value {
	fields := s.GetFields()
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	entries := make([]Entry, 0, len(keys))
	for _, k := range keys {
		entries = append(entries, Entry{Key: k, Value: FromProto(fields[k])})
	}
	return Value{kind: KindMapping, entries: entries}
}

func FromList(l *structpb.ListValue) Value {
	values := l.GetValues()
	items := make([]Value, 0, len(values))
	for _, item := range values {
		items = append(items, FromProto(item))
	}
	return Value{kind: KindSequence, items: items}
}
