package lang

import (
	"maps"
	"math"
	"slices"
	"strings"
	"sync"
	"unicode"
)

// Arity bounds the number of arguments a builtin accepts.
// A negative Max means no upper bound.
type Arity struct {
	Min int
	Max int
}

func exactly(n int) Arity { return Arity{Min: n, Max: n} }
func atLeast(n int) Arity { return Arity{Min: n, Max: -1} }
func between(a, b int) Arity { return Arity{Min: a, Max: b} }

func (a Arity) accepts(n int) bool {
	return n >= a.Min && (a.Max < 0 || n <= a.Max)
}

// builtin is implemented only by the four function types below, one per
// calling convention.
type builtin interface {
	call(env *Environment, args []Value) (Value, error)
}

// StringFunc is a builtin over argument texts that cannot fail.
// The result is true only when every argument is true.
type StringFunc func(args []string) string

// FallibleStringFunc is a builtin over argument texts that may fail.
// The result is true only when every argument is true.
type FallibleStringFunc func(args []string) (string, error)

// ValueFunc is a builtin that inspects argument truth and computes the truth
// of its result itself.
type ValueFunc func(args []Value) (Value, error)

// EnvFunc is a ValueFunc with access to the evaluation environment: metadata
// and the scratch store.
type EnvFunc func(env *Environment, args []Value) (Value, error)

func (f StringFunc) call(_ *Environment, args []Value) (Value, error) {
	return Value{Text: f(texts(args)), Truth: allTrue(args)}, nil
}

func (f FallibleStringFunc) call(_ *Environment, args []Value) (Value, error) {
	text, err := f(texts(args))
	if err != nil {
		return Value{}, err
	}

	return Value{Text: text, Truth: allTrue(args)}, nil
}

func (f ValueFunc) call(_ *Environment, args []Value) (Value, error) {
	return f(args)
}

func (f EnvFunc) call(env *Environment, args []Value) (Value, error) {
	return f(env, args)
}

// entry is a registered builtin.
type entry struct {
	arity Arity
	fn    builtin
}

// Private singleton registry, read-only once built.
//
//nolint:gochecknoglobals
var (
	registryOnce  sync.Once
	registry      map[string]entry
	registryNames []string
)

// builtins returns the process-scoped builtin registry and its sorted names.
func builtins() (map[string]entry, []string) {
	registryOnce.Do(func() {
		registry = make(map[string]entry)

		for _, group := range []map[string]entry{
			numericBuiltins(),
			logicBuiltins(),
			stringBuiltins(),
			metaBuiltins(),
		} {
			for name, e := range group {
				registry[name] = e
			}
		}

		registryNames = slices.Sorted(maps.Keys(registry))
	})

	return registry, registryNames
}

// BuiltinNames returns the names of all builtin functions in sorted order.
func BuiltinNames() []string {
	_, names := builtins()

	return slices.Clone(names)
}

func texts(args []Value) []string {
	s := make([]string, len(args))
	for i, v := range args {
		s[i] = v.Text
	}

	return s
}

func allTrue(args []Value) bool {
	for _, v := range args {
		if !v.Truth {
			return false
		}
	}

	return true
}

// toInt converts the leading integer of s: leading white space is skipped,
// a '-' immediately before the first digit negates, and the longest run of
// ASCII digits is taken. Without digits the result is 0. Runs beyond the
// int64 range saturate.
func toInt(s string) int64 {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)

	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}

	var n int64

	for i := 0; i < len(s) && s[i] >= '0' && s[i] <= '9'; i++ {
		d := int64(s[i] - '0')

		if neg {
			if n < (math.MinInt64+d)/10 {
				return math.MinInt64
			}

			n = n*10 - d
		} else {
			if n > (math.MaxInt64-d)/10 {
				return math.MaxInt64
			}

			n = n*10 + d
		}
	}

	return n
}
