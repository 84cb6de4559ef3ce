package harness

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/roach88/baus/internal/engine"
	"github.com/roach88/baus/internal/score"
	"github.com/roach88/baus/internal/store"
	"github.com/roach88/baus/internal/testutil"
)

// cacheName is the profile name every scenario runs under.
const cacheName = "scenario"

// Run executes a scenario and returns the result.
//
// Each scenario runs against a fresh temporary cache directory, with a fixed
// clock at s.Now and deterministic run ids, so repeated runs produce
// identical traces.
func Run(s *Scenario) (*Result, error) {
	ctx := context.Background()

	dir, err := os.MkdirTemp("", "baus-scenario-*")
	if err != nil {
		return nil, fmt.Errorf("create temp dir: %w", err)
	}
	defer os.RemoveAll(dir)

	kind := store.KindJSON
	if s.Backend != "" {
		if kind, err = store.ParseKind(s.Backend); err != nil {
			return nil, err
		}
	}

	backend, err := store.New(kind, filepath.Join(dir, store.FileName(kind, cacheName)))
	if err != nil {
		return nil, err
	}
	defer backend.Close()

	if s.Store != nil {
		if err := backend.Initialize(ctx); err != nil {
			return nil, fmt.Errorf("seed store: %w", err)
		}
		if err := backend.Save(ctx, score.Scores(s.Store)); err != nil {
			return nil, fmt.Errorf("seed store: %w", err)
		}
	}

	ids := make([]string, len(s.Steps))
	for i := range ids {
		ids[i] = fmt.Sprintf("%s-%d", s.Name, i+1)
	}
	runner := engine.New(backend,
		engine.WithClock(testutil.NewFixedClock(s.Now)),
		engine.WithRunIDs(engine.NewFixedGenerator(ids...)),
	)

	result := NewResult()
	for i, step := range s.Steps {
		cfg, err := step.config()
		if err != nil {
			return nil, fmt.Errorf("steps[%d]: %w", i, err)
		}
		cfg.Name = cacheName
		cfg.Backend = kind

		input := step.Input
		if input == nil {
			input = []string{}
		}
		out, runErr := runner.Run(ctx, cfg, input)
		if out == nil {
			out = []string{}
		}

		trace := StepTrace{Action: step.Action, Input: input, Output: out}
		if runErr != nil {
			trace.Error = runErr.Error()
		}
		result.Trace = append(result.Trace, trace)

		checkStep(result, i, step, out, runErr)
	}

	final, err := store.Open(ctx, backend)
	if err != nil {
		return nil, fmt.Errorf("load final store: %w", err)
	}
	result.FinalStore = map[string]int64(final)

	if s.FinalStore != nil && !score.Scores(*s.FinalStore).Equal(final) {
		result.AddError(fmt.Sprintf("final_store: expected %v, got %v", *s.FinalStore, result.FinalStore))
	}

	return result, nil
}

// checkStep compares one step's outcome with its expect clause.
func checkStep(result *Result, i int, step Step, out []string, runErr error) {
	want := Expect{}
	if step.Expect != nil {
		want = *step.Expect
	}

	switch {
	case want.Error == "" && runErr != nil:
		result.AddError(fmt.Sprintf("steps[%d]: unexpected error: %v", i, runErr))
		return
	case want.Error != "" && runErr == nil:
		result.AddError(fmt.Sprintf("steps[%d]: expected error containing %q, got success", i, want.Error))
		return
	case want.Error != "" && !strings.Contains(runErr.Error(), want.Error):
		result.AddError(fmt.Sprintf("steps[%d]: expected error containing %q, got %v", i, want.Error, runErr))
		return
	}

	if want.Output != nil && !slices.Equal(*want.Output, out) {
		result.AddError(fmt.Sprintf("steps[%d]: expected output %q, got %q", i, *want.Output, out))
	}
}
