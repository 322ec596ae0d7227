package structconv

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	jsoniter "github.com/json-iterator/go"
)

var (
	ErrEmptyInput  = errors.New("structconv: empty input")
	ErrInvalidJSON = errors.New("structconv: invalid json")
)

var jsonAPI = jsoniter.ConfigCompatibleWithStandardLibrary

// FromJSON decodes a JSON document into a Value. Object keys keep their document order,
// numbers become Number and null becomes an opaque nil.
func FromJSON(data []byte) (Value, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return Value{}, ErrEmptyInput
	}

	// The streaming reader closes containers at end of input, so completeness is checked first.
	if !jsonAPI.Valid(data) {
		return Value{}, ErrInvalidJSON
	}

	iter := jsonAPI.BorrowIterator(data)
	defer jsonAPI.ReturnIterator(iter)

	v := readValue(iter)
	if iter.Error != nil && !errors.Is(iter.Error, io.EOF) {
		return Value{}, fmt.Errorf("%w: %v", ErrInvalidJSON, iter.Error)
	}

	return v, nil
}

func readValue(iter *jsoniter.Iterator) Value {
	switch iter.WhatIsNext() {
	case jsoniter.ObjectValue:
		var entries []Entry
		iter.ReadObjectCB(func(it *jsoniter.Iterator, key string) bool {
			entries = append(entries, Entry{Key: key, Value: readValue(it)})
			return it.Error == nil
		})
		return Value{kind: KindMapping, entries: nonNilEntries(entries)}
	case jsoniter.ArrayValue:
		var items []Value
		iter.ReadArrayCB(func(it *jsoniter.Iterator) bool {
			items = append(items, readValue(it))
			return it.Error == nil
		})
		return Value{kind: KindSequence, items: nonNilItems(items)}
	case jsoniter.StringValue:
		return String(iter.ReadString())
	case jsoniter.NumberValue:
		return Number(iter.ReadFloat64())
	case jsoniter.BoolValue:
		return Bool(iter.ReadBool())
	case jsoniter.NilValue:
		iter.ReadNil()
		return Opaque(nil)
	default:
		iter.ReportError("structconv.readValue", "unexpected token")
		return Value{}
	}
}

func nonNilEntries(entries []Entry) []Entry {
	if entries == nil {
		return []Entry{}
	}
	return entries
}

func nonNilItems(items []Value) []Value {
	if items == nil {
		return []Value{}
	}
	return items
}
