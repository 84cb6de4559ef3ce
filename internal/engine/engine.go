package engine

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/roach88/baus/internal/config"
	"github.com/roach88/baus/internal/store"
)

// Runner performs one request/response cycle against a single backend.
//
// Sort: open store -> rank -> optional cleanup (persists) -> ranked lines.
// Save: open store -> update first line -> persist -> zero or one line.
//
// A Runner is not safe for concurrent use; baus runs exactly one cycle per
// process.
type Runner struct {
	backend store.Backend
	clock   Clock
	ids     RunIDGenerator
	logger  *slog.Logger
}

// Option configures a Runner.
type Option func(*Runner)

// WithClock overrides the wall clock used for timestamp scores.
func WithClock(c Clock) Option {
	return func(r *Runner) { r.clock = c }
}

// WithRunIDs overrides the run id generator (default UUIDv7).
func WithRunIDs(g RunIDGenerator) Option {
	return func(r *Runner) { r.ids = g }
}

// WithLogger sets the logger. The default discards all output.
func WithLogger(l *slog.Logger) Option {
	return func(r *Runner) { r.logger = l }
}

// New creates a Runner over b.
func New(b store.Backend, opts ...Option) *Runner {
	r := &Runner{
		backend: b,
		clock:   SystemClock{},
		ids:     UUIDv7Generator{},
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run executes cfg.Action over lines and returns the lines to print.
//
// Any error aborts the run before output is produced. Errors are wrapped
// with the name of the failed step ("load scores", "record usage",
// "save scores", "cleanup") and keep the underlying store.ErrIO,
// store.ErrFormat or *ClockError for errors.Is / errors.As.
func (r *Runner) Run(ctx context.Context, cfg config.Config, lines []string) ([]string, error) {
	log := r.logger.With(
		"run_id", r.ids.Generate(),
		"name", cfg.Name,
		"action", string(cfg.Action),
	)

	if cfg.Action != config.ActionSort && cfg.Action != config.ActionSave {
		return nil, fmt.Errorf("%w %q", ErrUnknownAction, cfg.Action)
	}

	log.Debug("loading scores", "path", r.backend.Path(), "backend", string(cfg.Backend))
	scores, err := store.Open(ctx, r.backend)
	if err != nil {
		return nil, fmt.Errorf("load scores: %w", err)
	}
	log.Debug("scores loaded", "entries", scores.Len(), "lines", len(lines))

	switch cfg.Action {
	case config.ActionSort:
		ranked := Rank(lines, scores, cfg.Desc)
		if cfg.Cleanup {
			before := scores.Len()
			if err := Cleanup(ctx, r.backend, scores, ranked); err != nil {
				return nil, fmt.Errorf("cleanup: %w", err)
			}
			log.Debug("cleanup complete", "before", before, "after", scores.Len())
		}
		log.Debug("sorted", "lines", len(ranked), "desc", cfg.Desc)
		return ranked, nil

	default: // config.ActionSave
		out, err := UpdateFirst(lines, scores, cfg.Value, r.clock)
		if err != nil {
			return nil, fmt.Errorf("record usage: %w", err)
		}
		if err := r.backend.Save(ctx, scores); err != nil {
			return nil, fmt.Errorf("save scores: %w", err)
		}
		if len(out) > 0 {
			log.Debug("usage recorded", "line", out[0], "score", scores.Get(out[0]), "value", string(cfg.Value))
		} else {
			log.Debug("empty input, nothing recorded")
		}
		return out, nil
	}
}
