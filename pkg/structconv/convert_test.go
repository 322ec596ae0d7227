package structconv

import (
	"reflect"
	"sync"
	"testing"
)

func keysOf(m *Map) []string {
	var keys []string
	for pair := m.Oldest(); pair != nil; pair = pair.Next() {
		keys = append(keys, pair.Key)
	}
	return keys
}

func TestConvertPreservesShapeAndOrder(t *testing.T) {
	v := Mapping(
		Field("zeta", String("last-alphabetically")),
		Field("alpha", Mapping(
			Field("y", Number(2)),
			Field("x", Sequence(
				Mapping(Field("b", Bool(true)), Field("a", Bool(false))),
				Sequence(String("n1"), String("n2")),
			)),
		)),
		Field("mid", Sequence(Number(3), Number(1), Number(2))),
	)

	out, ok := Convert(v).(*Map)
	if !ok {
		t.Fatalf("expected *Map, got %T", Convert(v))
	}
	if got, want := keysOf(out), []string{"zeta", "alpha", "mid"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("top-level keys = %v, want %v", got, want)
	}

	alpha, _ := out.Get("alpha")
	alphaMap := alpha.(*Map)
	if got, want := keysOf(alphaMap), []string{"y", "x"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("nested keys = %v, want %v", got, want)
	}

	x, _ := alphaMap.Get("x")
	list := x.([]any)
	if len(list) != 2 {
		t.Fatalf("expected 2 elements, got %d", len(list))
	}
	inner := list[0].(*Map)
	if got, want := keysOf(inner), []string{"b", "a"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("list element keys = %v, want %v", got, want)
	}
	if got, want := list[1], []any{"n1", "n2"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("nested sequence = %v, want %v", got, want)
	}

	mid, _ := out.Get("mid")
	if got, want := mid, []any{3.0, 1.0, 2.0}; !reflect.DeepEqual(got, want) {
		t.Fatalf("sequence order = %v, want %v", got, want)
	}
}

func TestConvertScalarsKeepCanonicalTypes(t *testing.T) {
	tests := []struct {
		name string
		in   Value
		want any
	}{
		{name: "string", in: String("pizza"), want: "pizza"},
		{name: "empty string", in: String(""), want: ""},
		{name: "number", in: Number(1.5), want: 1.5},
		{name: "bool true", in: Bool(true), want: true},
		{name: "bool false", in: Bool(false), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Convert(tt.in)
			if reflect.TypeOf(got) != reflect.TypeOf(tt.want) {
				t.Fatalf("type = %T, want %T", got, tt.want)
			}
			if got != tt.want {
				t.Fatalf("value = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestConvertEmptyContainers(t *testing.T) {
	m, ok := Convert(Mapping()).(*Map)
	if !ok || m == nil {
		t.Fatalf("expected non-nil *Map, got %#v", Convert(Mapping()))
	}
	if m.Len() != 0 {
		t.Fatalf("expected empty map, got %d entries", m.Len())
	}

	s, ok := Convert(Sequence()).([]any)
	if !ok || s == nil {
		t.Fatalf("expected non-nil []any, got %#v", Convert(Sequence()))
	}
	if len(s) != 0 {
		t.Fatalf("expected empty slice, got %d", len(s))
	}
}

type platformTimestamp struct {
	Seconds int64
}

func TestConvertPassesOpaqueThrough(t *testing.T) {
	ts := &platformTimestamp{Seconds: 42}

	got := Convert(Mapping(Field("when", Opaque(ts)), Field("nothing", Opaque(nil))))
	m := got.(*Map)

	when, _ := m.Get("when")
	if when != any(ts) {
		t.Fatalf("opaque value not identity-preserved: %#v", when)
	}
	nothing, ok := m.Get("nothing")
	if !ok || nothing != nil {
		t.Fatalf("expected nil passthrough, got %#v (present=%v)", nothing, ok)
	}

	if Convert(Value{}) != nil {
		t.Fatal("zero Value should convert to nil")
	}
}

func TestConvertDoesNotMutateInput(t *testing.T) {
	items := []Value{String("a"), String("b")}
	v := Sequence(items...)
	items[0] = String("changed")

	out := Convert(v).([]any)
	out[1] = "mutated"

	again := Convert(v).([]any)
	if !reflect.DeepEqual(again, []any{"a", "b"}) {
		t.Fatalf("input changed: %v", again)
	}
}

func TestConvertDeepNesting(t *testing.T) {
	v := String("leaf")
	for i := 0; i < 500; i++ {
		if i%2 == 0 {
			v = Sequence(v)
		} else {
			v = Mapping(Field("k", v))
		}
	}

	cur := Convert(v)
	depth := 0
	for {
		switch node := cur.(type) {
		case []any:
			cur = node[0]
		case *Map:
			cur, _ = node.Get("k")
		case string:
			if node != "leaf" || depth != 500 {
				t.Fatalf("reached %q at depth %d", node, depth)
			}
			return
		default:
			t.Fatalf("unexpected %T at depth %d", node, depth)
		}
		depth++
	}
}

func TestConvertConcurrentUse(t *testing.T) {
	v := Mapping(Field("a", Sequence(Number(1), Number(2))), Field("b", Bool(true)))

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			out := Convert(v).(*Map)
			if out.Len() != 2 {
				t.Errorf("expected 2 entries, got %d", out.Len())
			}
		}()
	}
	wg.Wait()
}

func TestMarshalJSONKeepsKeyOrder(t *testing.T) {
	v := Mapping(
		Field("size", String("large")),
		Field("amount", Number(2)),
		Field("toppings", Sequence(String("ham"), String("olives"))),
		Field("extra", Mapping()),
		Field("delivery", Bool(false)),
	)

	data, err := MarshalJSON(Convert(v))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	want := `{"size":"large","amount":2,"toppings":["ham","olives"],"extra":{},"delivery":false}`
	if string(data) != want {
		t.Fatalf("json = %s, want %s", data, want)
	}
}

func TestValueLookupLastWins(t *testing.T) {
	v := Mapping(Field("k", String("first")), Field("k", String("second")))

	got, ok := v.Lookup("k")
	if !ok || Convert(got) != "second" {
		t.Fatalf("lookup = %v (ok=%v)", Convert(got), ok)
	}
	if _, ok := String("x").Lookup("k"); ok {
		t.Fatal("lookup on scalar should fail")
	}
}
