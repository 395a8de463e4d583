package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"

	"github.com/lox/pixelshuffle/cmd/pixelshuffle/shared"
	"github.com/lox/pixelshuffle/internal/config"
	"github.com/lox/pixelshuffle/internal/fileutil"
	"github.com/lox/pixelshuffle/internal/pipeline"
)

// Globals are flags shared by every command.
type Globals struct {
	Config   string `short:"c" default:"pixelshuffle.hcl" help:"Path to HCL configuration file"`
	LogLevel string `short:"l" help:"Log level (overrides config)"`
	Debug    bool   `help:"Enable debug logging"`
	NoColor  bool   `help:"Disable coloured output"`

	stdout io.Writer `kong:"-"`
}

// env is what a command needs once flags and the config file are merged.
type env struct {
	cfg    *config.Config
	logger *log.Logger
	out    io.Writer
	styles shared.Styles
}

func (g *Globals) setup() (*env, error) {
	cfg, err := config.Load(g.Config)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	if g.LogLevel != "" {
		cfg.Log.Level = g.LogLevel
	}
	if g.Debug {
		cfg.Log.Level = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	logger, err := shared.SetupLogger(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return nil, err
	}

	out := g.stdout
	if out == nil {
		out = os.Stdout
	}

	return &env{
		cfg:    cfg,
		logger: logger,
		out:    out,
		styles: shared.NewStyles(out, g.NoColor),
	}, nil
}

// OutputFlags are shared by the commands that write images.
type OutputFlags struct {
	Output  string `short:"o" help:"Output file (single input only)"`
	OutDir  string `help:"Output directory (overrides config)"`
	Force   bool   `short:"f" help:"Overwrite existing output files"`
	Workers int    `short:"w" help:"Files processed in parallel (overrides config)"`
}

// options builds the write settings for inputs and rejects runs where two
// inputs would land on the same output file.
func (o OutputFlags) options(e *env, suffix string, inputs []string) (pipeline.Options, error) {
	if o.Output != "" && len(inputs) > 1 {
		return pipeline.Options{}, fmt.Errorf("--output can only be used with a single input")
	}

	dir := e.cfg.Output.Dir
	if o.OutDir != "" {
		dir = o.OutDir
	}

	opts := pipeline.Options{
		Dir:    dir,
		Suffix: suffix,
		Output: o.Output,
		Write: fileutil.Options{
			Perm:      0o644,
			NoClobber: !(o.Force || e.cfg.Output.Overwrite),
		},
	}
	if err := pipeline.CheckOutputs(inputs, opts); err != nil {
		return pipeline.Options{}, err
	}
	return opts, nil
}

func (o OutputFlags) workers(e *env) int {
	if o.Workers > 0 {
		return o.Workers
	}
	return e.cfg.Workers
}
