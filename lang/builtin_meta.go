package lang

import "strconv"

func metaBuiltins() map[string]entry {
	return map[string]entry{
		"meta":      {between(1, 2), EnvFunc(meta)},
		"meta_sep":  {between(2, 3), EnvFunc(metaSep)},
		"meta_num":  {exactly(1), EnvFunc(metaNum)},
		"meta_test": {atLeast(1), EnvFunc(metaTest)},

		"get":  {exactly(1), EnvFunc(get)},
		"put":  {exactly(2), EnvFunc(put)},
		"puts": {exactly(2), EnvFunc(puts)},
	}
}

// meta implements $meta(name[, index]).
func meta(env *Environment, args []Value) (Value, error) {
	if len(args) == 2 {
		return env.MetaIndex(args[0].Text, toInt(args[1].Text)), nil
	}

	return env.Meta(args[0].Text), nil
}

// metaSep implements $meta_sep(name, sep[, lastsep]).
func metaSep(env *Environment, args []Value) (Value, error) {
	last := args[1].Text
	if len(args) == 3 {
		last = args[2].Text
	}

	return env.MetaSep(args[0].Text, args[1].Text, last), nil
}

func metaNum(env *Environment, args []Value) (Value, error) {
	return True(strconv.Itoa(env.MetaNum(args[0].Text))), nil
}

// metaTest is true when every named field has at least one value.
func metaTest(env *Environment, args []Value) (Value, error) {
	for _, v := range args {
		if env.MetaNum(v.Text) == 0 {
			return False(""), nil
		}
	}

	return True(""), nil
}

func get(env *Environment, args []Value) (Value, error) {
	v, ok := env.Get(args[0].Text)
	if !ok {
		return missing, nil
	}

	return True(v), nil
}

// put stores a scratch variable and returns its value.
func put(env *Environment, args []Value) (Value, error) {
	env.Put(args[0].Text, args[1].Text)

	return True(args[1].Text), nil
}

// puts stores a scratch variable silently.
func puts(env *Environment, args []Value) (Value, error) {
	env.Put(args[0].Text, args[1].Text)

	return True(""), nil
}
