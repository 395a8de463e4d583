// Package config loads the pixelshuffle settings file.
package config

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
)

// DefaultFile is the settings file looked up when --config is not given.
const DefaultFile = "pixelshuffle.hcl"

// Config represents the complete settings file
type Config struct {
	Log     LogSettings
	Output  OutputSettings
	Workers int
}

// LogSettings controls the logger
type LogSettings struct {
	Level  string `hcl:"level,optional"`
	Format string `hcl:"format,optional"`
}

// OutputSettings controls where results are written
type OutputSettings struct {
	Dir       string `hcl:"dir,optional"`
	Suffix    string `hcl:"suffix,optional"`
	Unsuffix  string `hcl:"unsuffix,optional"`
	Overwrite bool   `hcl:"overwrite,optional"`
}

// file mirrors Config with optional blocks so a partial file decodes.
type file struct {
	Log     *LogSettings    `hcl:"log,block"`
	Output  *OutputSettings `hcl:"output,block"`
	Workers int             `hcl:"workers,optional"`
}

// Default returns the built-in settings
func Default() *Config {
	return &Config{
		Log: LogSettings{
			Level:  "info",
			Format: "text",
		},
		Output: OutputSettings{
			Suffix:   "-scrambled",
			Unsuffix: "-descrambled",
		},
		Workers: 4,
	}
}

// Load reads settings from an HCL file. A missing file yields Default.
func Load(filename string) (*Config, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return Default(), nil
	}

	parser := hclparse.NewParser()
	f, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var raw file
	diags = gohcl.DecodeBody(f.Body, nil, &raw)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	cfg := Default()
	if raw.Log != nil {
		if raw.Log.Level != "" {
			cfg.Log.Level = raw.Log.Level
		}
		if raw.Log.Format != "" {
			cfg.Log.Format = raw.Log.Format
		}
	}
	if raw.Output != nil {
		cfg.Output.Dir = raw.Output.Dir
		cfg.Output.Overwrite = raw.Output.Overwrite
		if raw.Output.Suffix != "" {
			cfg.Output.Suffix = raw.Output.Suffix
		}
		if raw.Output.Unsuffix != "" {
			cfg.Output.Unsuffix = raw.Output.Unsuffix
		}
	}
	if raw.Workers != 0 {
		cfg.Workers = raw.Workers
	}

	return cfg, nil
}

// Validate validates the settings
func (c *Config) Validate() error {
	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("invalid log level %q", c.Log.Level)
	}

	switch c.Log.Format {
	case "text", "json", "logfmt":
	default:
		return fmt.Errorf("invalid log format %q", c.Log.Format)
	}

	if c.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", c.Workers)
	}

	if c.Output.Suffix == c.Output.Unsuffix {
		return fmt.Errorf("output suffixes must differ, both are %q", c.Output.Suffix)
	}

	if c.Output.Dir != "" {
		info, err := os.Stat(c.Output.Dir)
		if err != nil {
			return fmt.Errorf("output dir: %w", err)
		}
		if !info.IsDir() {
			return fmt.Errorf("output dir %s is not a directory", c.Output.Dir)
		}
	}

	return nil
}
