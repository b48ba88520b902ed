package lang

import "github.com/ardnew/titlefmt/log"

// DefaultMaxDepth is the default maximum nesting depth of conditionals and
// function calls, enforced while parsing and while evaluating.
// Users may modify this before parsing to change the default.
var DefaultMaxDepth = 100

// optionsKey holds configuration that affects parse results.
// This type is gob-encodable for cache key hashing.
type optionsKey struct {
	MaxDepth int
}

// config holds the effective configuration of a Program or Environment.
type config struct {
	opts   optionsKey
	logger log.Logger // not part of the cache key
}

// Option configures parsing or evaluation behavior.
type Option func(*config)

// WithMaxDepth sets the maximum nesting depth of conditionals and function
// calls. Values less than 1 are ignored.
func WithMaxDepth(depth int) Option {
	return func(c *config) {
		if depth > 0 {
			c.opts.MaxDepth = depth
		}
	}
}

// WithLogger routes parse and evaluation trace records to logger. Without
// it records go to [log.Default] as it was when the option set was built;
// pass the zero [log.Logger] to discard them.
func WithLogger(logger log.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

func makeConfig(opts ...Option) config {
	c := config{
		opts:   optionsKey{MaxDepth: DefaultMaxDepth},
		logger: log.Default(),
	}

	for _, opt := range opts {
		opt(&c)
	}

	return c
}
