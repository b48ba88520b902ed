package lang

import (
	"errors"
	"strings"
	"testing"
	"testing/iotest"
)

func TestParseString_Cache(t *testing.T) {
	ctx := t.Context()
	src := "[%artist% - ]%title% (cache)"

	first, err := ParseString(ctx, src)
	if err != nil {
		t.Fatalf("ParseString error: %v", err)
	}

	second, err := ParseString(ctx, src)
	if err != nil {
		t.Fatalf("ParseString error: %v", err)
	}

	if first == second {
		t.Error("cache hit returned the same *Program")
	}

	if first.Exprs()[0] != second.Exprs()[0] {
		t.Error("cache hit did not share parsed expressions")
	}

	other, err := ParseString(ctx, src, WithMaxDepth(7))
	if err != nil {
		t.Fatalf("ParseString error: %v", err)
	}

	if other.Exprs()[0] == first.Exprs()[0] {
		t.Error("different options shared a cache entry")
	}

	ClearCache()

	third, err := ParseString(ctx, src)
	if err != nil {
		t.Fatalf("ParseString error: %v", err)
	}

	if third.Exprs()[0] == first.Exprs()[0] {
		t.Error("ClearCache kept the cache entry")
	}

	if !equalSeq(third.Exprs(), first.Exprs()) {
		t.Error("reparsed expressions differ")
	}
}

func TestParseString_CachedProgramIsIndependent(t *testing.T) {
	ctx := t.Context()
	src := "%title% (independent)"

	prog, err := ParseString(ctx, src)
	if err != nil {
		t.Fatalf("ParseString error: %v", err)
	}

	if err := prog.Parse(ctx, "replaced"); err != nil {
		t.Fatalf("Parse error: %v", err)
	}

	again, err := ParseString(ctx, src)
	if err != nil {
		t.Fatalf("ParseString error: %v", err)
	}

	if again.Source() != src {
		t.Errorf("Source() = %q, want %q", again.Source(), src)
	}

	got, err := again.RunWithMeta(ctx, Metadata{"title": {"T"}})
	if err != nil || got != "T (independent)" {
		t.Errorf("RunWithMeta = %q, %v", got, err)
	}
}

func TestParseString_CachesErrors(t *testing.T) {
	src := "[%unclosed (cached error)"

	for range 2 {
		prog, err := ParseString(t.Context(), src)
		if !errors.Is(err, ErrParse) {
			t.Errorf("error = %v, want ErrParse", err)
		}

		if prog != nil {
			t.Error("failed parse returned a Program")
		}
	}
}

func TestParseReader(t *testing.T) {
	prog, err := ParseReader(t.Context(), strings.NewReader("$upper(%title%)"))
	if err != nil {
		t.Fatalf("ParseReader error: %v", err)
	}

	got, err := prog.RunWithMeta(t.Context(), Metadata{"title": {"loud"}})
	if err != nil || got != "LOUD" {
		t.Errorf("RunWithMeta = %q, %v; want LOUD", got, err)
	}
}

func TestParseReader_ReadError(t *testing.T) {
	cause := errors.New("disk on fire")

	_, err := ParseReader(t.Context(), iotest.ErrReader(cause))
	if !errors.Is(err, ErrReadInput) {
		t.Errorf("error = %v, want ErrReadInput", err)
	}

	if !errors.Is(err, cause) {
		t.Errorf("error = %v does not wrap the reader error", err)
	}
}

func BenchmarkParseString(b *testing.B) {
	src := "[%artist% - ]$if2(%title%,untitled)[ '('$year(%date%)')']"

	b.Run("cached", func(b *testing.B) {
		for b.Loop() {
			if _, err := ParseString(b.Context(), src); err != nil {
				b.Fatal(err)
			}
		}
	})

	b.Run("uncached", func(b *testing.B) {
		for b.Loop() {
			if err := NewProgram().Parse(b.Context(), src); err != nil {
				b.Fatal(err)
			}
		}
	})
}
