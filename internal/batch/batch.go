// Package batch runs a per-file operation over many inputs with bounded
// parallelism.
package batch

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"golang.org/x/sync/errgroup"

	"github.com/lox/pixelshuffle/internal/pipeline"
)

// Task processes a single input file.
type Task func(input string) (pipeline.Result, error)

// Outcome is the result of one input, in input order.
type Outcome struct {
	Input    string
	Result   pipeline.Result
	Duration time.Duration
	Err      error
}

// Runner executes tasks concurrently. Each task builds its own generator, so
// nothing is shared between workers.
type Runner struct {
	Workers int
	Logger  *log.Logger
	Clock   quartz.Clock
}

// New returns a Runner with the given worker count and a real clock.
func New(workers int, logger *log.Logger) *Runner {
	return &Runner{Workers: workers, Logger: logger, Clock: quartz.NewReal()}
}

// Run applies task to every input. A failing input is recorded in its
// Outcome and does not stop the others. Inputs not yet started when ctx is
// cancelled are reported with ctx.Err().
func (r *Runner) Run(ctx context.Context, inputs []string, task Task) []Outcome {
	outcomes := make([]Outcome, len(inputs))

	workers := r.Workers
	if workers < 1 {
		workers = 1
	}
	clock := r.Clock
	if clock == nil {
		clock = quartz.NewReal()
	}
	logger := r.Logger
	if logger == nil {
		logger = log.Default()
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, input := range inputs {
		outcomes[i].Input = input

		if ctx.Err() != nil {
			outcomes[i].Err = ctx.Err()
			continue
		}

		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				outcomes[i].Err = err
				return nil
			}

			start := clock.Now()
			logger.Debug("Processing", "file", input)
			res, err := task(input)
			outcomes[i].Result = res
			outcomes[i].Err = err
			outcomes[i].Duration = clock.Since(start)

			if err != nil {
				logger.Error("Failed", "file", input, "err", err)
			} else {
				logger.Info("Processed",
					"file", input,
					"output", res.Output,
					"seed", res.Seed,
					"pixels", res.Pixels(),
					"duration", outcomes[i].Duration)
			}
			// Errors stay in the outcome; the group is never cancelled.
			return nil
		})
	}

	_ = g.Wait()
	return outcomes
}

// Failed counts outcomes with an error.
func Failed(outcomes []Outcome) int {
	n := 0
	for _, o := range outcomes {
		if o.Err != nil {
			n++
		}
	}
	return n
}
