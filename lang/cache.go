package lang

import (
	"bytes"
	"context"
	"encoding/gob"
	"io"
	"log/slog"
	"strconv"
	"sync"

	"github.com/klauspost/readahead"
	"github.com/zeebo/xxh3"
)

// cacheKey identifies a parse result by the hashes of its source text and
// of the options that affect parsing.
type cacheKey struct {
	source uint64
	opts   uint64
}

// cacheEntry is parsed at most once, by whichever caller stores it first.
type cacheEntry struct {
	once  sync.Once
	exprs []*Expr
	err   error
}

//nolint:gochecknoglobals
var parseCache sync.Map // cacheKey -> *cacheEntry

func makeCacheKey(source string, opts optionsKey) cacheKey {
	var buf bytes.Buffer

	_ = gob.NewEncoder(&buf).Encode(opts)

	return cacheKey{
		source: xxh3.HashString(source),
		opts:   xxh3.Hash(buf.Bytes()),
	}
}

// ParseString parses source into a new Program.
//
// Results are cached: parsing the same source with the same options again
// returns a Program sharing the expressions parsed the first time. Parse
// errors are cached as well.
func ParseString(
	ctx context.Context,
	source string,
	opts ...Option,
) (*Program, error) {
	cfg := makeConfig(opts...)
	key := makeCacheKey(source, cfg.opts)

	v, hit := parseCache.LoadOrStore(key, new(cacheEntry))
	entry := v.(*cacheEntry) //nolint:forcetypeassert

	cfg.logger.Trace(ctx, "cache lookup",
		slog.String("source_hash", strconv.FormatUint(key.source, 16)),
		slog.String("opts_hash", strconv.FormatUint(key.opts, 16)),
		slog.Bool("cache_hit", hit),
	)

	entry.once.Do(func() {
		entry.exprs, entry.err = parse(ctx, source, cfg)
	})

	if entry.err != nil {
		return nil, entry.err
	}

	return &Program{exprs: entry.exprs, source: source, cfg: cfg}, nil
}

// ParseReader reads all of r and parses it with [ParseString]. The reader
// is drained by a read-ahead goroutine.
func ParseReader(
	ctx context.Context,
	r io.Reader,
	opts ...Option,
) (*Program, error) {
	ra := readahead.NewReader(r)
	defer ra.Close()

	data, err := io.ReadAll(ra)
	if err != nil {
		return nil, ErrReadInput.Wrap(err).With(slog.String("source", "reader"))
	}

	makeConfig(opts...).logger.Trace(ctx, "read input",
		slog.Int("source_bytes", len(data)))

	return ParseString(ctx, string(data), opts...)
}

// ClearCache drops every cached parse result.
func ClearCache() {
	parseCache.Clear()
}
