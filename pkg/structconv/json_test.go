package structconv

import (
	"errors"
	"reflect"
	"testing"
)

func TestFromJSONPreservesDocumentOrder(t *testing.T) {
	raw := []byte(`{"pizza-size":"large","geo-city":{"name":"Lyon","zip":69001},"toppings":["ham",{"z":1,"a":2}],"paid":true,"note":null}`)

	v, err := FromJSON(raw)
	if err != nil {
		t.Fatalf("from json: %v", err)
	}
	if v.Kind() != KindMapping {
		t.Fatalf("kind = %s, want mapping", v.Kind())
	}

	out := Convert(v).(*Map)
	if got, want := keysOf(out), []string{"pizza-size", "geo-city", "toppings", "paid", "note"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("keys = %v, want %v", got, want)
	}

	city, _ := out.Get("geo-city")
	zip, _ := city.(*Map).Get("zip")
	if zip != 69001.0 {
		t.Fatalf("zip = %#v, want float64 69001", zip)
	}

	toppings, _ := out.Get("toppings")
	list := toppings.([]any)
	if list[0] != "ham" {
		t.Fatalf("first topping = %v", list[0])
	}
	if got, want := keysOf(list[1].(*Map)), []string{"z", "a"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("nested keys = %v, want %v", got, want)
	}

	note, ok := out.Get("note")
	if !ok || note != nil {
		t.Fatalf("note = %#v (present=%v), want nil", note, ok)
	}

	data, err := MarshalJSON(out)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != string(raw) {
		t.Fatalf("round trip = %s, want %s", data, raw)
	}
}

func TestFromJSONScalarsAndEmpty(t *testing.T) {
	tests := []struct {
		in   string
		want any
	}{
		{in: `"text"`, want: "text"},
		{in: `3.25`, want: 3.25},
		{in: `42`, want: 42.0},
		{in: `true`, want: true},
		{in: `  false  `, want: false},
		{in: `[]`, want: []any{}},
	}

	for _, tt := range tests {
		v, err := FromJSON([]byte(tt.in))
		if err != nil {
			t.Fatalf("%s: %v", tt.in, err)
		}
		if got := Convert(v); !reflect.DeepEqual(got, tt.want) {
			t.Fatalf("%s: got %#v, want %#v", tt.in, got, tt.want)
		}
	}

	v, err := FromJSON([]byte(`{}`))
	if err != nil {
		t.Fatalf("empty object: %v", err)
	}
	if m := Convert(v).(*Map); m.Len() != 0 {
		t.Fatalf("expected empty map, got %d", m.Len())
	}
}

func TestFromJSONErrors(t *testing.T) {
	if _, err := FromJSON(nil); !errors.Is(err, ErrEmptyInput) {
		t.Fatalf("nil input: err = %v, want ErrEmptyInput", err)
	}
	if _, err := FromJSON([]byte("   ")); !errors.Is(err, ErrEmptyInput) {
		t.Fatalf("blank input: err = %v, want ErrEmptyInput", err)
	}

	for _, bad := range []string{
		`{"a":`,
		`[1,2`,
		`{"a":1`,
		`{"city":"Lyon","zip":[1,2`,
		`{"a":1} 7`,
		`nope`,
		`{"a":[1,2]]`,
	} {
		if v, err := FromJSON([]byte(bad)); !errors.Is(err, ErrInvalidJSON) {
			t.Fatalf("FromJSON(%q) = %v, %v; want ErrInvalidJSON", bad, v.Kind(), err)
		}
	}
}
