package main

import (
	"fmt"

	"github.com/lox/pixelshuffle/internal/fileutil"
	"github.com/lox/pixelshuffle/internal/mask"
	"github.com/lox/pixelshuffle/internal/pipeline"
)

// RevealCmd restores a scrambled image behind a cover image
type RevealCmd struct {
	File    string  `arg:"" type:"existingfile" help:"Scrambled PNG file"`
	Cover   string  `required:"" type:"existingfile" help:"Image to hide the restored picture behind"`
	Opacity float64 `default:"1" help:"Blend factor, 0 shows only the cover and 1 the full blend"`
	Seed    *int64  `short:"s" help:"Seed to use instead of the one stored in the file"`
	Output  string  `short:"o" help:"Output file (default <file>-revealed.png)"`
	Force   bool    `short:"f" help:"Overwrite an existing output file"`
}

func (c *RevealCmd) Run(g *Globals) error {
	e, err := g.setup()
	if err != nil {
		return err
	}

	m, err := mask.New(c.Opacity)
	if err != nil {
		return err
	}

	opts := pipeline.Options{
		Dir:    e.cfg.Output.Dir,
		Suffix: "-revealed",
		Output: c.Output,
		Write: fileutil.Options{
			Perm:      0o644,
			NoClobber: !(c.Force || e.cfg.Output.Overwrite),
		},
	}
	if err := pipeline.CheckOutputs([]string{c.File}, opts); err != nil {
		return err
	}

	res, err := pipeline.Reveal(c.File, c.Cover, c.Seed, m, opts)
	if err != nil {
		e.logger.Error("Reveal failed", "file", c.File, "err", err)
		return err
	}

	e.logger.Info("Revealed", "file", c.File, "cover", c.Cover, "opacity", c.Opacity, "output", res.Output)
	fmt.Fprintf(e.out, "%s → %s\n", e.styles.Path.Render(c.File), e.styles.Path.Render(res.Output))
	return nil
}
