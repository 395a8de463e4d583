package main

import (
	"fmt"

	"github.com/lox/pixelshuffle/cmd/pixelshuffle/shared"
	"github.com/lox/pixelshuffle/internal/batch"
	"github.com/lox/pixelshuffle/internal/pipeline"
	"github.com/lox/pixelshuffle/internal/seed"
)

// ScrambleCmd scrambles one or more images with a single seed
type ScrambleCmd struct {
	Files      []string `arg:"" type:"existingfile" help:"Images to scramble"`
	Seed       int64    `short:"s" default:"-1" help:"Permutation seed; -1 picks a random one"`
	Passphrase string   `short:"p" env:"PIXELSHUFFLE_PASSPHRASE" help:"Derive the seed from a passphrase (overrides --seed)"`

	OutputFlags `embed:""`

	resolver *seed.Resolver `kong:"-"`
}

func (c *ScrambleCmd) Run(g *Globals) error {
	e, err := g.setup()
	if err != nil {
		return err
	}

	opts, err := c.options(e, e.cfg.Output.Suffix, c.Files)
	if err != nil {
		return err
	}

	resolver := c.resolver
	if resolver == nil {
		resolver = seed.NewResolver()
	}
	// Only the normalized seed reproduces the permutation, so it is the one
	// used, printed and stored.
	s := resolver.Resolve(c.Seed, c.Passphrase).Seed()
	if c.Passphrase != "" {
		e.logger.Info("Using passphrase-derived seed", "seed", s)
	} else if c.Seed == seed.Random {
		e.logger.Info("Using random seed", "seed", s)
	} else {
		e.logger.Info("Using seed from command line", "seed", s, "raw", c.Seed)
	}
	shared.PrintSeed(e.out, e.styles, s)

	ctx, cancel := shared.SetupSignalHandler(e.logger)
	defer cancel()

	runner := batch.New(c.workers(e), e.logger)
	outcomes := runner.Run(ctx, c.Files, func(input string) (pipeline.Result, error) {
		return pipeline.Scramble(input, s, opts)
	})
	shared.PrintOutcomes(e.out, e.styles, "Scramble", outcomes)

	if n := batch.Failed(outcomes); n > 0 {
		return fmt.Errorf("%d of %d files failed", n, len(outcomes))
	}
	return nil
}
