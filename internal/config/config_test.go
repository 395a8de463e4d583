package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "pixelshuffle.hcl")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.hcl"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.NoError(t, cfg.Validate())
}

func TestLoadFull(t *testing.T) {
	outDir := t.TempDir()
	path := writeConfig(t, `
log {
  level  = "debug"
  format = "json"
}

output {
  dir       = "`+filepath.ToSlash(outDir)+`"
  suffix    = ".enc"
  unsuffix  = ".dec"
  overwrite = true
}

workers = 8
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, filepath.ToSlash(outDir), cfg.Output.Dir)
	assert.Equal(t, ".enc", cfg.Output.Suffix)
	assert.Equal(t, ".dec", cfg.Output.Unsuffix)
	assert.True(t, cfg.Output.Overwrite)
	assert.Equal(t, 8, cfg.Workers)
	assert.NoError(t, cfg.Validate())
}

func TestLoadPartialAppliesDefaults(t *testing.T) {
	path := writeConfig(t, `
log {
  level = "warn"
}
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.Equal(t, "-scrambled", cfg.Output.Suffix)
	assert.Equal(t, "-descrambled", cfg.Output.Unsuffix)
	assert.Equal(t, 4, cfg.Workers)
}

func TestLoadInvalidHCL(t *testing.T) {
	path := writeConfig(t, `log {`)
	_, err := Load(path)
	assert.ErrorContains(t, err, "failed to parse HCL file")

	path = writeConfig(t, `colour = "blue"`)
	_, err = Load(path)
	assert.ErrorContains(t, err, "failed to decode HCL")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		errMsg string
	}{
		{"bad level", func(c *Config) { c.Log.Level = "loud" }, "invalid log level"},
		{"bad format", func(c *Config) { c.Log.Format = "xml" }, "invalid log format"},
		{"no workers", func(c *Config) { c.Workers = 0 }, "workers must be at least 1"},
		{"same suffix", func(c *Config) { c.Output.Unsuffix = c.Output.Suffix }, "suffixes must differ"},
		{"missing dir", func(c *Config) { c.Output.Dir = filepath.Join(t.TempDir(), "gone") }, "output dir"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			assert.ErrorContains(t, cfg.Validate(), tt.errMsg)
		})
	}
}
