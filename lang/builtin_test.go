package lang

import (
	"errors"
	"math"
	"slices"
	"strconv"
	"strings"
	"testing"
)

func TestBuiltins_Render(t *testing.T) {
	meta := Metadata{
		"artist": {"The Beatles"},
		"title":  {"Help!"},
		"n":      {"7"},
	}

	tests := []struct {
		name   string
		source string
		want   string
	}{
		// arithmetic
		{"add", "$add(2,2)", "4"},
		{"add nested", "$add($add(1,1),2)", "4"},
		{"add many", "$add(1,2,3,4)", "10"},
		{"add field", "$add(%n%,3)", "10"},
		{"sub", "$sub(8,2,2)", "4"},
		{"sub negative", "$sub(2,5)", "-3"},
		{"mul", "$mul(3,-4)", "-12"},
		{"div", "$div(32,2,2)", "8"},
		{"div truncates toward zero", "$div(-7,2)", "-3"},
		{"div by zero", "$div(7,0)", "0"},
		{"min", "$min(3,-1,2)", "-1"},
		{"max", "$max(3,-1,2)", "3"},
		{"non-numeric text is zero", "$add(abc,2)", "2"},
		{"leading integer", "$add(4.8,1)", "5"},

		// comparison and logic
		{"eq true", "$if($eq(1,01),y,n)", "y"},
		{"ne", "$if($ne(1,2),y,n)", "y"},
		{"gt", "$if($gt(2,1),y,n)", "y"},
		{"gte", "$if($gte(2,2),y,n)", "y"},
		{"lt", "$if($lt(2,1),y,n)", "n"},
		{"lte", "$if($lte(1,1),y,n)", "y"},
		{"comparison renders empty", "$eq(1,1)", ""},
		{"and", "$if($and(%artist%,%title%),y,n)", "y"},
		{"and with absent", "$if($and(%artist%,%album%),y,n)", "n"},
		{"or", "$if($or(%album%,%title%),y,n)", "y"},
		{"xor", "$if($xor(%artist%,%title%),y,n)", "n"},
		{"xor odd", "$if($xor(%artist%,%album%),y,n)", "y"},
		{"not", "$if($not(%album%),y,n)", "y"},
		{"if without else", "[$if(%album%,x)]", ""},
		{"if with literal condition", "$if(abc,x,y)", "x"},
		{"if with empty condition", "$if(,x,y)", "y"},
		{"if2 present", "$if2(%artist%,none)", "The Beatles"},
		{"if2 absent", "$if2(%album%,none)", "none"},
		{"if3 first true", "$if3(%album%,%title%,last)", "Help!"},
		{"if3 fallback", "$if3(%album%,%year%,last)", "last"},
		{"ifequal", "$ifequal(%n%,7,y,n)", "y"},
		{"ifgreater", "$ifgreater(%n%,8,y,n)", "n"},
		{"iflonger counts characters", "$iflonger(héllo,4,y,n)", "y"},
		{"iflonger not longer", "$iflonger(abc,3,y,n)", "n"},
		{"select", "$select(2,a,b,c)", "b"},
		{"select out of range", "$select(4,a,b,c)", ""},
		{"select zero", "$select(0,a,b)", ""},

		// strings
		{"upper", "$upper(%title%)", "HELP!"},
		{"lower", "$lower(ÀBC)", "àbc"},
		{"firstalphachar", "$firstalphachar(%artist%)", "T"},
		{"firstalphachar digit", "$firstalphachar(1999)", "#"},
		{"firstalphachar replacement", "$firstalphachar(1999,0-9)", "0-9"},
		{"firstalphachar combining mark", "$firstalphachar(école)", "e"},
		{"len", "$len(héllo)", "5"},
		{"longer", "$if($longer(abc,ab),y,n)", "y"},
		{"stripprefix default", "$stripprefix(A thing)", "thing"},
		{"stripprefix the", "$stripprefix(%artist%)", "Beatles"},
		{"stripprefix custom", "$stripprefix(Le Tigre,Le ,La )", "Tigre"},
		{"stripprefix no match", "$stripprefix(Blur)", "Blur"},
		{"swapprefix", "$swapprefix(%artist%)", "Beatles, The"},
		{"swapprefix custom", "$swapprefix(Los Lobos,Los )", "Lobos, Los"},
		{"cut", "$cut(A thing,2)", "A "},
		{"cut runes", "$cut(héllo,2)", "hé"},
		{"cut zero", "$cut(abc,0)", ""},
		{"cut past end", "$cut(abc,10)", "abc"},
		{"left", "$left(abc,1)", "a"},
		{"num", "$num(7,3)", "007"},
		{"num negative", "$num(-7,4)", "-007"},
		{"num narrow", "$num(1234,2)", "1234"},
		{"num zero width", "$num(7,0)", "7"},
		{"crlf", "a$crlf()b", "a\r\nb"},
		{"tab", "a$tab()b", "a\tb"},
		{"tab count", "$tab(3)", "\t\t\t"},
		{"tab negative", "x$tab(-2)", "x"},
		{"noop", "a$noop(x,y)b", "ab"},
		{"noop no args", "$noop()", ""},

		// dates
		{"year calendar", "$year(2024-03-15)", "2024"},
		{"year basic", "$year(20240315)", "2024"},
		{"year only", "$year(1999)", "1999"},
		{"year month", "$year(1999-12)", "1999"},
		{"year week", "$year(2024-W05-3)", "2024"},
		{"year ordinal", "$year(2024-366)", "2024"},
		{"year time", "$year(2024-03-15T10:20:30Z)", "2024"},
		{"year invalid day", "[$year(2023-02-29)]", ""},
		{"year invalid ordinal", "$year(2023-366)", ""},
		{"year not a date", "$year(soon)", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := render(t, tt.source, meta)
			if err != nil {
				t.Fatalf("Run(%q) error: %v", tt.source, err)
			}

			if got != tt.want {
				t.Errorf("Run(%q) = %q, want %q", tt.source, got, tt.want)
			}
		})
	}
}

func TestBuiltins_Metadata(t *testing.T) {
	meta := Metadata{
		"artist": {"Alpha", "Beta", "Gamma"},
		"title":  {"Solo"},
		"none":   {},
	}

	tests := []struct {
		name   string
		source string
		want   string
	}{
		{"meta joins all values", "$meta(artist)", "Alpha, Beta, Gamma"},
		{"meta single value", "$meta(title)", "Solo"},
		{"meta absent", "$meta(album)", "?"},
		{"meta index", "$meta(artist,1)", "Beta"},
		{"meta index out of range", "$meta(artist,3)", "?"},
		{"meta negative index", "$meta(artist,-1)", "?"},
		{"meta_sep", "$meta_sep(artist,; )", "Alpha; Beta; Gamma"},
		{"meta_sep last", "$meta_sep(artist,; , and )", "Alpha; Beta and Gamma"},
		{"meta_sep absent", "[$meta_sep(album,; )]", ""},
		{"meta_num", "$meta_num(artist)", "3"},
		{"meta_num absent", "$meta_num(album)", "0"},
		{"meta_num empty list", "$meta_num(none)", "0"},
		{"meta_test", "$if($meta_test(artist,title),y,n)", "y"},
		{"meta_test absent", "$if($meta_test(artist,album),y,n)", "n"},
		{"meta_test empty list", "$if($meta_test(none),y,n)", "n"},
		{"put returns value", "$put(x,5)", "5"},
		{"put then get", "$put(x,5)-$get(x)", "5-5"},
		{"puts is silent", "$puts(x,5)$get(x)", "5"},
		{"get absent", "$get(y)", "?"},
		{"get absent in conditional", "[$get(y)]", ""},
		{"put overwrites", "$puts(x,1)$puts(x,2)$get(x)", "2"},
		{"scratch is not metadata", "$puts(title,x)%title%", "Solo"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := render(t, tt.source, meta)
			if err != nil {
				t.Fatalf("Run(%q) error: %v", tt.source, err)
			}

			if got != tt.want {
				t.Errorf("Run(%q) = %q, want %q", tt.source, got, tt.want)
			}
		})
	}
}

func TestBuiltins_MetaAgreesWithMetaNum(t *testing.T) {
	for _, values := range [][]string{
		{"a"},
		{"a", "b"},
		{"x", "y", "z", "w"},
	} {
		meta := Metadata{"k": values}

		count, err := render(t, "$meta_num(k)", meta)
		if err != nil || count != strconv.Itoa(len(values)) {
			t.Errorf("meta_num = %q, %v; want %d", count, err, len(values))
		}

		joined, err := render(t, "$meta(k)", meta)
		if err != nil || joined != strings.Join(values, ", ") {
			t.Errorf("meta = %q, %v; want %q", joined, err, strings.Join(values, ", "))
		}
	}
}

func TestBuiltins_TruthOfStringFunctions(t *testing.T) {
	env := NewEnvironment(nil)

	tests := []struct {
		name string
		args []Value
		want bool
	}{
		{"add all true", []Value{True("1"), True("2")}, true},
		{"add one false", []Value{True("1"), False("?")}, false},
		{"min one false", []Value{False("?"), True("2")}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			name := strings.Fields(tt.name)[0]

			v, err := env.Call(t.Context(), name, tt.args)
			if err != nil {
				t.Fatalf("Call error: %v", err)
			}

			if v.Truth != tt.want {
				t.Errorf("truth = %v, want %v", v.Truth, tt.want)
			}
		})
	}
}

func TestBuiltins_Errors(t *testing.T) {
	tests := []struct {
		source   string
		want     error
		function string
	}{
		{"$add(9223372036854775807,1)", ErrOutOfRange, "add"},
		{"$sub(-9223372036854775808,1)", ErrOutOfRange, "sub"},
		{"$mul(9223372036854775807,2)", ErrOutOfRange, "mul"},
		{"$mul(-1,-9223372036854775808)", ErrOutOfRange, "mul"},
		{"$div(-9223372036854775808,-1)", ErrOutOfRange, "div"},
		{"$num(1,257)", ErrOutOfRange, "num"},
		{"$tab(300)", ErrOutOfRange, "tab"},
		{"$upper()", ErrInvalidArgs, "upper"},
		{"$if(a)", ErrInvalidArgs, "if"},
		{"$if(a,b,c,d)", ErrInvalidArgs, "if"},
		{"$ifequal(1,1,y)", ErrInvalidArgs, "ifequal"},
		{"$meta()", ErrInvalidArgs, "meta"},
		{"$meta_test()", ErrInvalidArgs, "meta_test"},
		{"$put(x)", ErrInvalidArgs, "put"},
		{"$tab(1,2)", ErrInvalidArgs, "tab"},
	}

	for _, tt := range tests {
		t.Run(tt.source, func(t *testing.T) {
			_, err := render(t, tt.source, nil)
			if !errors.Is(err, tt.want) {
				t.Fatalf("Run(%q) error = %v, want %v", tt.source, err, tt.want)
			}

			var lerr *Error
			if !errors.As(err, &lerr) {
				t.Fatalf("error %T is not *Error", err)
			}

			if v, ok := lerr.Attr("function"); !ok || v.String() != tt.function {
				t.Errorf("function attr = %v, %v; want %q", v, ok, tt.function)
			}
		})
	}
}

func TestBuiltins_AtBounds(t *testing.T) {
	tests := []struct {
		source string
		want   string
	}{
		{"$add(9223372036854775806,1)", "9223372036854775807"},
		{"$sub(-9223372036854775807,1)", "-9223372036854775808"},
		{"$mul(-9223372036854775808,1)", "-9223372036854775808"},
		{"$div(-9223372036854775808,1)", "-9223372036854775808"},
		{"$num(1,256)", strings.Repeat("0", 255) + "1"},
		{"$len($tab(256))", "256"},
	}

	for _, tt := range tests {
		t.Run(tt.source, func(t *testing.T) {
			got, err := render(t, tt.source, nil)
			if err != nil {
				t.Fatalf("Run(%q) error: %v", tt.source, err)
			}

			if got != tt.want {
				t.Errorf("Run(%q) = %q, want %q", tt.source, got, tt.want)
			}
		})
	}
}

func TestToInt(t *testing.T) {
	tests := []struct {
		input string
		want  int64
	}{
		{"", 0},
		{"42", 42},
		{"  42abc", 42},
		{"\t-17", -17},
		{"-0", 0},
		{"4.8", 4},
		{"- 12", 0},
		{"+5", 0},
		{"abc", 0},
		{"007", 7},
		{"9223372036854775807", math.MaxInt64},
		{"-9223372036854775808", math.MinInt64},
		{"99999999999999999999", math.MaxInt64},
		{"-99999999999999999999", math.MinInt64},
	}

	for _, tt := range tests {
		if got := toInt(tt.input); got != tt.want {
			t.Errorf("toInt(%q) = %d, want %d", tt.input, got, tt.want)
		}
	}
}

func TestParseYear(t *testing.T) {
	tests := []struct {
		input string
		want  int
		ok    bool
	}{
		{"2024", 2024, true},
		{"2024-02-29", 2024, true},
		{"2023-02-29", 0, false},
		{"2024-13", 0, false},
		{"2024-00-10", 0, false},
		{"2024W01", 2024, true},
		{"2024-W54", 0, false},
		{"2024-W01-8", 0, false},
		{"2024-001", 2024, true},
		{"2024-000", 0, false},
		{"2024-03-15 08:30", 2024, true},
		{"2024-03-15T08:30:00+02:00", 2024, true},
		{"24-03-15", 0, false},
		{"2024-03-15x", 0, false},
	}

	for _, tt := range tests {
		got, ok := parseYear(tt.input)
		if got != tt.want || ok != tt.ok {
			t.Errorf("parseYear(%q) = %d, %v; want %d, %v", tt.input, got, ok, tt.want, tt.ok)
		}
	}
}

func TestBuiltinNames(t *testing.T) {
	names := BuiltinNames()

	if !slices.IsSorted(names) {
		t.Error("BuiltinNames is not sorted")
	}

	for _, want := range []string{
		"add", "sub", "mul", "div", "min", "max",
		"eq", "ne", "gt", "gte", "lt", "lte",
		"and", "or", "xor", "not",
		"if", "if2", "if3", "ifequal", "ifgreater", "iflonger", "select",
		"upper", "lower", "firstalphachar", "len", "longer",
		"stripprefix", "swapprefix", "cut", "left", "num",
		"crlf", "tab", "noop", "year",
		"meta", "meta_sep", "meta_num", "meta_test",
		"get", "put", "puts",
	} {
		if _, ok := slices.BinarySearch(names, want); !ok {
			t.Errorf("builtin %q not registered", want)
		}
	}

	// The result is a copy.
	names[0] = "mutated"
	if BuiltinNames()[0] == "mutated" {
		t.Error("BuiltinNames shares its backing array")
	}
}

func TestArity(t *testing.T) {
	tests := []struct {
		arity Arity
		n     int
		want  bool
	}{
		{exactly(0), 0, true},
		{exactly(0), 1, false},
		{atLeast(2), 1, false},
		{atLeast(2), 100, true},
		{between(1, 2), 0, false},
		{between(1, 2), 2, true},
		{between(1, 2), 3, false},
	}

	for _, tt := range tests {
		if got := tt.arity.accepts(tt.n); got != tt.want {
			t.Errorf("%+v.accepts(%d) = %v, want %v", tt.arity, tt.n, got, tt.want)
		}
	}
}
