package lang

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/rivo/uniseg"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// maxRepeat bounds the output of padding builtins ($tab, $num).
const maxRepeat = 256

// defaultPrefixes are stripped or swapped by $stripprefix and $swapprefix
// when no prefixes are given.
var defaultPrefixes = []string{"A ", "The "}

func stringBuiltins() map[string]entry {
	return map[string]entry{
		"upper":          {exactly(1), ValueFunc(upper)},
		"lower":          {exactly(1), ValueFunc(lower)},
		"firstalphachar": {between(1, 2), ValueFunc(firstalphachar)},
		"len":            {exactly(1), ValueFunc(length)},
		"longer":         {exactly(2), ValueFunc(longer)},
		"stripprefix":    {atLeast(1), ValueFunc(stripprefix)},
		"swapprefix":     {atLeast(1), ValueFunc(swapprefix)},
		"cut":            {exactly(2), ValueFunc(cut)},
		"left":           {exactly(2), ValueFunc(cut)},
		"num":            {exactly(2), ValueFunc(num)},

		"crlf": {exactly(0), ValueFunc(func([]Value) (Value, error) { return True("\r\n"), nil })},
		"tab":  {between(0, 1), ValueFunc(tab)},
		"noop": {atLeast(0), ValueFunc(func([]Value) (Value, error) { return True(""), nil })},

		"year": {exactly(1), ValueFunc(year)},
	}
}

// Casers are not safe for concurrent use, so one is made per call.
func upper(args []Value) (Value, error) {
	c := cases.Upper(language.Und)

	return Value{Text: c.String(args[0].Text), Truth: args[0].Truth}, nil
}

func lower(args []Value) (Value, error) {
	c := cases.Lower(language.Und)

	return Value{Text: c.String(args[0].Text), Truth: args[0].Truth}, nil
}

// firstalphachar returns the first character of the first grapheme cluster
// when it is a letter, otherwise the replacement text (default "#").
func firstalphachar(args []Value) (Value, error) {
	text := "#"
	if len(args) > 1 {
		text = args[1].Text
	}

	if cluster, _, _, _ := uniseg.FirstGraphemeClusterInString(args[0].Text, -1); cluster != "" {
		if r, _ := utf8.DecodeRuneInString(cluster); unicode.IsLetter(r) {
			text = string(r)
		}
	}

	return Value{Text: text, Truth: args[0].Truth}, nil
}

func length(args []Value) (Value, error) {
	n := utf8.RuneCountInString(args[0].Text)

	return Value{Text: strconv.Itoa(n), Truth: args[0].Truth}, nil
}

func longer(args []Value) (Value, error) {
	a := utf8.RuneCountInString(args[0].Text)
	b := utf8.RuneCountInString(args[1].Text)

	return Value{Truth: a > b}, nil
}

// splitPrefix splits s after the first of prefixes that begins it.
func splitPrefix(s string, prefixes []string) (string, string, bool) {
	for _, pre := range prefixes {
		if rest, ok := strings.CutPrefix(s, pre); ok {
			return pre, rest, true
		}
	}

	return "", s, false
}

func prefixes(args []Value) []string {
	if len(args) == 1 {
		return defaultPrefixes
	}

	return texts(args[1:])
}

// stripprefix removes the first matching prefix from its first argument.
func stripprefix(args []Value) (Value, error) {
	_, rest, _ := splitPrefix(args[0].Text, prefixes(args))

	return Value{Text: rest, Truth: args[0].Truth}, nil
}

// swapprefix moves the first matching prefix to the end: "The Band" becomes
// "Band, The".
func swapprefix(args []Value) (Value, error) {
	text := args[0].Text

	if pre, rest, ok := splitPrefix(text, prefixes(args)); ok {
		text = rest + ", " + strings.TrimRightFunc(pre, unicode.IsSpace)
	}

	return Value{Text: text, Truth: args[0].Truth}, nil
}

// cut returns the first n characters of its first argument.
func cut(args []Value) (Value, error) {
	s := args[0].Text
	n := toInt(args[1].Text)

	i := 0
	for ; n > 0 && i < len(s); n-- {
		_, size := utf8.DecodeRuneInString(s[i:])
		i += size
	}

	return Value{Text: s[:i], Truth: args[0].Truth}, nil
}

// num formats the integer value of its first argument zero-padded to the
// width given by its second. The sign counts toward the width.
func num(args []Value) (Value, error) {
	n := toInt(args[0].Text)
	width := toInt(args[1].Text)

	if width > maxRepeat {
		return Value{}, outOfRange("num",
			fmt.Errorf("width %d exceeds %d", width, maxRepeat))
	}

	if width < 1 {
		return True(strconv.FormatInt(n, 10)), nil
	}

	return True(fmt.Sprintf("%0*d", int(width), n)), nil
}

// tab returns one tab, or the given number of them.
func tab(args []Value) (Value, error) {
	if len(args) == 0 {
		return True("\t"), nil
	}

	n := toInt(args[0].Text)
	if n > maxRepeat {
		return Value{}, outOfRange("tab",
			fmt.Errorf("count %d exceeds %d", n, maxRepeat))
	}

	return True(strings.Repeat("\t", int(max(n, 0)))), nil
}
