package lang

import (
	"fmt"
	"math"
	"strconv"
)

func numericBuiltins() map[string]entry {
	return map[string]entry{
		"add": {atLeast(2), fold("add", checkedAdd)},
		"sub": {atLeast(2), fold("sub", checkedSub)},
		"mul": {atLeast(2), fold("mul", checkedMul)},
		"div": {atLeast(2), fold("div", checkedDiv)},
		"min": {atLeast(2), StringFunc(extremum(func(a, b int64) bool { return b < a }))},
		"max": {atLeast(2), StringFunc(extremum(func(a, b int64) bool { return b > a }))},

		"eq":  {exactly(2), compare(func(a, b int64) bool { return a == b })},
		"ne":  {exactly(2), compare(func(a, b int64) bool { return a != b })},
		"gt":  {exactly(2), compare(func(a, b int64) bool { return a > b })},
		"gte": {exactly(2), compare(func(a, b int64) bool { return a >= b })},
		"lt":  {exactly(2), compare(func(a, b int64) bool { return a < b })},
		"lte": {exactly(2), compare(func(a, b int64) bool { return a <= b })},
	}
}

// fold applies op left to right over the integer values of the arguments.
func fold(name string, op func(a, b int64) (int64, bool)) FallibleStringFunc {
	return func(args []string) (string, error) {
		acc := toInt(args[0])

		for _, arg := range args[1:] {
			n := toInt(arg)

			next, ok := op(acc, n)
			if !ok {
				return "", outOfRange(name,
					fmt.Errorf("$%s(%d, %d) overflows int64", name, acc, n))
			}

			acc = next
		}

		return strconv.FormatInt(acc, 10), nil
	}
}

func checkedAdd(a, b int64) (int64, bool) {
	if (b > 0 && a > math.MaxInt64-b) || (b < 0 && a < math.MinInt64-b) {
		return 0, false
	}

	return a + b, true
}

func checkedSub(a, b int64) (int64, bool) {
	if (b < 0 && a > math.MaxInt64+b) || (b > 0 && a < math.MinInt64+b) {
		return 0, false
	}

	return a - b, true
}

func checkedMul(a, b int64) (int64, bool) {
	if a == 0 || b == 0 {
		return 0, true
	}

	if (a == -1 && b == math.MinInt64) || (b == -1 && a == math.MinInt64) {
		return 0, false
	}

	c := a * b
	if c/b != a {
		return 0, false
	}

	return c, true
}

// checkedDiv truncates toward zero. Division by zero yields 0.
func checkedDiv(a, b int64) (int64, bool) {
	switch {
	case b == 0:
		return 0, true

	case a == math.MinInt64 && b == -1:
		return 0, false

	default:
		return a / b, true
	}
}

// extremum returns the argument value that wins every comparison with
// replace(current, candidate).
func extremum(replace func(a, b int64) bool) func([]string) string {
	return func(args []string) string {
		acc := toInt(args[0])

		for _, arg := range args[1:] {
			if n := toInt(arg); replace(acc, n) {
				acc = n
			}
		}

		return strconv.FormatInt(acc, 10)
	}
}

// compare yields empty text whose truth is pred over the two integer values.
func compare(pred func(a, b int64) bool) ValueFunc {
	return func(args []Value) (Value, error) {
		return Value{Truth: pred(toInt(args[0].Text), toInt(args[1].Text))}, nil
	}
}
