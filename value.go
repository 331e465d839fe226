package main

import (
	"fmt"
	"strconv"
)

// Runtime values are a closed set: nil, bool, float64, string, the three
// Callable variants, and *Instance.

// isTruthy maps a runtime value to its boolean meaning in conditions,
// '!', 'and' and 'or'. nil and false are falsy, and so is the number 0 —
// every other value, including the empty string, is truthy.
func isTruthy(value any) bool {
	switch v := value.(type) {
	case nil:
		return false
	case bool:
		return v
	case float64:
		return v != 0
	default:
		return true
	}
}

// Stringify renders a value the way print and string concatenation see it.
func Stringify(value any) string {
	switch v := value.(type) {
	case nil:
		return "nil"
	case bool:
		if v {
			return "true"
		}
		return "false"
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case string:
		return v
	case fmt.Stringer:
		// Callables and instances render themselves
		return v.String()
	default:
		panic(fmt.Sprintf("Unrepresentable value type: %T", v))
	}
}
