package lang

import (
	"context"
	"iter"
	"log/slog"
)

// RunEach renders the program once per metadata record, e.g. for every
// track of a playlist. Each record gets a fresh Environment. Iteration
// continues after a failed record; the error is yielded in its place.
func (p *Program) RunEach(
	ctx context.Context,
	records iter.Seq[Metadata],
) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		n := 0

		for meta := range records {
			text, err := p.RunWithMeta(ctx, meta)
			if err != nil {
				p.cfg.logger.Debug(ctx, "record failed",
					slog.Int("record", n),
					slog.Any("error", err),
				)
			}

			if !yield(text, err) {
				return
			}

			n++
		}
	}
}
