package main

import (
	"fmt"
	"strconv"

	"github.com/lox/pixelshuffle/internal/codec"
)

// InspectCmd prints PNG text metadata
type InspectCmd struct {
	Files []string `arg:"" type:"existingfile" help:"PNG files to inspect"`
}

func (c *InspectCmd) Run(g *Globals) error {
	e, err := g.setup()
	if err != nil {
		return err
	}

	var failed int
	for _, path := range c.Files {
		fmt.Fprintln(e.out, e.styles.Header.Render(path))

		entries, err := codec.ReadText(path)
		if err != nil {
			failed++
			e.logger.Error("Cannot read metadata", "file", path, "err", err)
			fmt.Fprintf(e.out, "  %s %v\n", e.styles.Error.Render("error:"), err)
			continue
		}

		for _, entry := range entries {
			fmt.Fprintf(e.out, "  %s = %q\n", entry.Keyword, entry.Text)
		}

		s, err := codec.SeedFromEntries(entries)
		if err != nil {
			failed++
			fmt.Fprintf(e.out, "  %s %v\n", e.styles.Error.Render("seed:"), err)
			continue
		}
		fmt.Fprintf(e.out, "  seed: %s\n", e.styles.Seed.Render(strconv.FormatInt(s, 10)))
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d files have no usable seed", failed, len(c.Files))
	}
	return nil
}
