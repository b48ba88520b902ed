package lang

import "unicode/utf8"

func logicBuiltins() map[string]entry {
	return map[string]entry{
		"and": {atLeast(2), ValueFunc(and)},
		"or":  {atLeast(2), ValueFunc(or)},
		"xor": {atLeast(2), ValueFunc(xor)},
		"not": {exactly(1), ValueFunc(not)},

		"if":        {between(2, 3), ValueFunc(if1)},
		"if2":       {exactly(2), ValueFunc(if2)},
		"if3":       {atLeast(2), ValueFunc(if3)},
		"ifequal":   {exactly(4), ValueFunc(ifequal)},
		"ifgreater": {exactly(4), ValueFunc(ifgreater)},
		"iflonger":  {exactly(4), ValueFunc(iflonger)},
		"select":    {atLeast(2), ValueFunc(choose)},
	}
}

func and(args []Value) (Value, error) {
	return Value{Truth: allTrue(args)}, nil
}

func or(args []Value) (Value, error) {
	for _, v := range args {
		if v.Truth {
			return True(""), nil
		}
	}

	return False(""), nil
}

func xor(args []Value) (Value, error) {
	truth := false
	for _, v := range args {
		truth = truth != v.Truth
	}

	return Value{Truth: truth}, nil
}

func not(args []Value) (Value, error) {
	return Value{Truth: !args[0].Truth}, nil
}

// if1 implements $if(cond, then[, else]).
func if1(args []Value) (Value, error) {
	switch {
	case args[0].Truth:
		return args[1], nil

	case len(args) > 2:
		return args[2], nil

	default:
		return Value{}, nil
	}
}

// if2 implements $if2(a, else): a when a is true, else otherwise.
func if2(args []Value) (Value, error) {
	if args[0].Truth {
		return args[0], nil
	}

	return args[1], nil
}

// if3 returns the first true argument, or the last argument when none of
// the others is true.
func if3(args []Value) (Value, error) {
	last := len(args) - 1

	for _, v := range args[:last] {
		if v.Truth {
			return v, nil
		}
	}

	return args[last], nil
}

func ifequal(args []Value) (Value, error) {
	return branch(toInt(args[0].Text) == toInt(args[1].Text), args[2], args[3]), nil
}

func ifgreater(args []Value) (Value, error) {
	return branch(toInt(args[0].Text) > toInt(args[1].Text), args[2], args[3]), nil
}

// iflonger compares the character count of its first argument with the
// integer value of its second.
func iflonger(args []Value) (Value, error) {
	n := int64(utf8.RuneCountInString(args[0].Text))

	return branch(n > toInt(args[1].Text), args[2], args[3]), nil
}

// choose implements $select(n, a1, a2, ...): the n-th value, 1-based.
func choose(args []Value) (Value, error) {
	n := toInt(args[0].Text)
	if n < 1 || n >= int64(len(args)) {
		return Value{}, nil
	}

	return args[n], nil
}

func branch(cond bool, then, otherwise Value) Value {
	if cond {
		return then
	}

	return otherwise
}
