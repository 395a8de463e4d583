package main

import (
	"github.com/alecthomas/kong"
)

// version is set by ldflags during build
var version = "dev"

type CLI struct {
	Globals `embed:""`

	Version    kong.VersionFlag `short:"v" help:"Show version"`
	Scramble   ScrambleCmd      `cmd:"" help:"Scramble images, embedding the seed in the output PNG"`
	Descramble DescrambleCmd    `cmd:"" help:"Restore scrambled images using their embedded seed"`
	Inspect    InspectCmd       `cmd:"" help:"Show the text metadata and seed of PNG files"`
	Reveal     RevealCmd        `cmd:"" help:"Restore a scrambled image and blend it onto a cover image"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("pixelshuffle"),
		kong.Description("Seed-keyed, reversible pixel scrambling for images"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
		kong.Bind(&cli.Globals),
	)
	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}
