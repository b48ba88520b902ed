package lang

import (
	"io"
	"regexp"
	"strconv"
	"testing"
)

func FuzzParse(f *testing.F) {
	for _, seed := range []string{
		"",
		"%title%",
		"[%artist% - ]%title%",
		"$if($eq(%n%,1),one,[%x%])",
		"'quoted'''",
		"a // comment\nb",
		"$upper(a]b)",
		"[[[[",
		"$$$((",
		"%%",
		"a\rb",
	} {
		f.Add(seed)
	}

	f.Fuzz(func(t *testing.T, src string) {
		prog := NewProgram(WithMaxDepth(32))
		if err := prog.Parse(t.Context(), src); err != nil {
			return
		}

		_ = prog.Format(io.Discard)
	})
}

func FuzzRun(f *testing.F) {
	for _, seed := range []string{
		"$add(%n%,%n%)",
		"$num(%n%,%n%)",
		"$cut(%title%,%n%)",
		"$meta(artist,%n%)",
		"$select(%n%,a,b)",
		"$year(%title%)",
		"$firstalphachar(%title%)",
	} {
		f.Add(seed, "7", "Title")
	}

	f.Fuzz(func(t *testing.T, src, n, title string) {
		prog := NewProgram(WithMaxDepth(32))
		if err := prog.Parse(t.Context(), src); err != nil {
			return
		}

		meta := Metadata{
			"n":      {n},
			"title":  {title},
			"artist": {title, n},
		}

		_, _ = prog.RunWithMeta(t.Context(), meta)
	})
}

var plainInt = regexp.MustCompile(`^-?[0-9]+$`)

func FuzzToInt(f *testing.F) {
	for _, seed := range []string{"0", "-1", "42", "9223372036854775807", "-9223372036854775808", "007"} {
		f.Add(seed)
	}

	f.Fuzz(func(t *testing.T, s string) {
		got := toInt(s)

		if !plainInt.MatchString(s) {
			return
		}

		want, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return
		}

		if got != want {
			t.Errorf("toInt(%q) = %d, want %d", s, got, want)
		}
	})
}
