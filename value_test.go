package main

import "testing"

func TestIsTruthy(t *testing.T) {
	falsy := []any{nil, false, 0.0}
	for _, v := range falsy {
		if isTruthy(v) {
			t.Errorf("%v should be falsy", v)
		}
	}

	truthy := []any{true, 1.0, -1.0, "", "x", &NativeFunction{name: "clock"},
		NewInstance(&Class{Name: "C"})}
	for _, v := range truthy {
		if !isTruthy(v) {
			t.Errorf("%v should be truthy", v)
		}
	}
}

func TestStringify(t *testing.T) {
	cases := []struct {
		value any
		want  string
	}{
		{nil, "nil"},
		{true, "true"},
		{false, "false"},
		{1.0, "1"},
		{2.5, "2.5"},
		{-0.75, "-0.75"},
		{"already a string", "already a string"},
		{&NativeFunction{name: "clock"}, "<native fn>"},
		{&Class{Name: "Point"}, "Point"},
		{NewInstance(&Class{Name: "Point"}), "instanceof(Point)"},
	}
	for _, tc := range cases {
		if got := Stringify(tc.value); got != tc.want {
			t.Errorf("Stringify(%v) = %q, want %q", tc.value, got, tc.want)
		}
	}
}

func TestStringifyWholeNumbersDropTheFraction(t *testing.T) {
	if got := Stringify(3.0); got != "3" {
		t.Fatalf("got %q", got)
	}
	if got := Stringify(1e21); got != "1000000000000000000000" {
		t.Fatalf("got %q", got)
	}
}
