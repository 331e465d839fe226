package main

import (
	"bufio"
	"fmt"
	"math"
	"math/rand"
	"os"
	"strconv"
	"strings"
	"time"
)

// Callable is implemented by exactly three types: *NativeFunction,
// *Function and *Class (whose call is construction). The interpreter
// dispatches over that closed set; invocation itself lives there because
// every variant needs the evaluator.
type Callable interface {
	Arity() int
	fmt.Stringer
}

type NativeFunction struct {
	name  string
	arity int
	fn    func(args []any) (any, error)
}

func (n *NativeFunction) Arity() int {
	return n.arity
}

func (n *NativeFunction) String() string {
	return "<native fn>"
}

// Built-ins, registered into the global frame before any user code runs.

var stdinReader = bufio.NewReader(os.Stdin)

func nativeFunctions() []*NativeFunction {
	return []*NativeFunction{
		{"clock", 0, nativeClock},
		{"read_line", 0, nativeReadLine},
		{"random", 2, nativeRandom},
		{"string_to_number", 1, nativeStringToNumber},
	}
}

func nativeClock(_ []any) (any, error) {
	return float64(time.Now().UnixNano()) / 1e9, nil
}

func nativeReadLine(_ []any) (any, error) {
	line, err := stdinReader.ReadString('\n')
	if err != nil {
		return nil, err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func nativeRandom(args []any) (any, error) {
	lower, ok := args[0].(float64)
	if !ok {
		return nil, fmt.Errorf("random: lower bound must be a number, got %s", Stringify(args[0]))
	}
	upper, ok := args[1].(float64)
	if !ok {
		return nil, fmt.Errorf("random: upper bound must be a number, got %s", Stringify(args[1]))
	}

	// Converting an out-of-range or NaN float to int has no defined result,
	// so the bounds are checked while they are still floats. NaN compares
	// false against everything and needs its own check.
	if math.IsNaN(lower) || math.IsNaN(upper) ||
		lower < math.MinInt32 || lower > math.MaxInt32 ||
		upper < math.MinInt32 || upper > math.MaxInt32 {
		return nil, fmt.Errorf("random: bounds must be whole numbers between %d and %d, got %s and %s",
			math.MinInt32, math.MaxInt32, Stringify(args[0]), Stringify(args[1]))
	}

	lo, hi := int(lower), int(upper)
	if lo > hi {
		lo, hi = hi, lo
	}

	return float64(rand.Intn(hi-lo+1) + lo), nil
}

func nativeStringToNumber(args []any) (any, error) {
	str, ok := args[0].(string)
	if !ok {
		return nil, fmt.Errorf("string_to_number: argument must be a string, got %s", Stringify(args[0]))
	}

	number, err := strconv.ParseFloat(str, 64)
	if err != nil {
		return nil, err
	}
	return number, nil
}
