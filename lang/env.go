package lang

import (
	"context"
	"iter"
	"log/slog"
	"strings"

	"github.com/sahilm/fuzzy"

	"github.com/ardnew/titlefmt/log"
)

// Environment is the state one evaluation runs against: read-only metadata,
// a scratch store written by $put and $puts, and the builtin registry.
//
// An Environment is not safe for concurrent use.
type Environment struct {
	meta   Metadata
	vars   map[string]string
	funcs  map[string]entry
	names  []string
	logger log.Logger
}

// NewEnvironment creates an environment over meta with an empty scratch
// store. The metadata must not be modified while the environment is in use.
func NewEnvironment(meta Metadata, opts ...Option) *Environment {
	cfg := makeConfig(opts...)
	funcs, names := builtins()

	return &Environment{
		meta:   meta,
		vars:   make(map[string]string),
		funcs:  funcs,
		names:  names,
		logger: cfg.logger,
	}
}

// Functions returns an iterator over the names of all callable functions in
// sorted order.
func (env *Environment) Functions() iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, name := range env.names {
			if !yield(name) {
				return
			}
		}
	}
}

// Call invokes the builtin called name with positional arguments.
func (env *Environment) Call(
	ctx context.Context,
	name string,
	args []Value,
) (Value, error) {
	e, ok := env.funcs[name]
	if !ok {
		return Value{}, undefinedFunction(name, env.suggest(name))
	}

	if !e.arity.accepts(len(args)) {
		return Value{}, invalidArgs(name, len(args))
	}

	v, err := e.fn.call(env, args)
	if err != nil {
		return Value{}, err
	}

	env.logger.Trace(ctx, "call",
		slog.String("function", name),
		slog.Int("arg_count", len(args)),
		slog.Any("result", v),
	)

	return v, nil
}

// suggest returns the registered name that best matches name, if any.
func (env *Environment) suggest(name string) string {
	if name == "" {
		return ""
	}

	matches := fuzzy.Find(name, env.names)
	if len(matches) == 0 {
		return ""
	}

	return matches[0].Str
}

// Meta returns all values of a field joined with ", ".
func (env *Environment) Meta(name string) Value {
	return env.MetaSep(name, ", ", ", ")
}

// MetaIndex returns the value of a field at a 0-based index.
func (env *Environment) MetaIndex(name string, index int64) Value {
	values := env.meta[name]
	if index < 0 || index >= int64(len(values)) {
		return missing
	}

	return True(values[index])
}

// MetaSep returns all values of a field joined with sep, except that the
// last two are joined with last.
func (env *Environment) MetaSep(name, sep, last string) Value {
	values := env.meta[name]

	switch n := len(values); n {
	case 0:
		return missing

	case 1:
		return True(values[0])

	default:
		return True(strings.Join(values[:n-1], sep) + last + values[n-1])
	}
}

// MetaNum returns the number of values of a field.
func (env *Environment) MetaNum(name string) int {
	return len(env.meta[name])
}

// Get returns the scratch variable called key.
func (env *Environment) Get(key string) (string, bool) {
	v, ok := env.vars[key]

	return v, ok
}

// Put sets the scratch variable called key.
func (env *Environment) Put(key, value string) {
	env.vars[key] = value
}
