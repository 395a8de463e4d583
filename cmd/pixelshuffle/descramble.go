package main

import (
	"fmt"

	"github.com/lox/pixelshuffle/cmd/pixelshuffle/shared"
	"github.com/lox/pixelshuffle/internal/batch"
	"github.com/lox/pixelshuffle/internal/pipeline"
)

// DescrambleCmd restores scrambled images
type DescrambleCmd struct {
	Files []string `arg:"" type:"existingfile" help:"Scrambled PNG files"`
	Seed  *int64   `short:"s" help:"Seed to use instead of the one stored in the file"`

	OutputFlags `embed:""`
}

func (c *DescrambleCmd) Run(g *Globals) error {
	e, err := g.setup()
	if err != nil {
		return err
	}

	opts, err := c.options(e, e.cfg.Output.Unsuffix, c.Files)
	if err != nil {
		return err
	}
	if c.Seed != nil {
		e.logger.Info("Ignoring stored seeds", "seed", *c.Seed)
	}

	ctx, cancel := shared.SetupSignalHandler(e.logger)
	defer cancel()

	runner := batch.New(c.workers(e), e.logger)
	outcomes := runner.Run(ctx, c.Files, func(input string) (pipeline.Result, error) {
		return pipeline.Descramble(input, c.Seed, opts)
	})
	shared.PrintOutcomes(e.out, e.styles, "Descramble", outcomes)

	if n := batch.Failed(outcomes); n > 0 {
		return fmt.Errorf("%d of %d files failed", n, len(outcomes))
	}
	return nil
}
