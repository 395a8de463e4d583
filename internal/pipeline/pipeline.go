// Package pipeline implements the per-file scramble, descramble and reveal
// operations on top of the codec and the permutation engine.
package pipeline

import (
	"errors"
	"fmt"
	"image"
	"path/filepath"

	"github.com/lox/pixelshuffle/internal/codec"
	"github.com/lox/pixelshuffle/internal/fileutil"
	"github.com/lox/pixelshuffle/internal/mask"
	"github.com/lox/pixelshuffle/internal/raster"
	"github.com/lox/pixelshuffle/internal/shuffle"
)

// Options controls where and how results are written.
type Options struct {
	// Dir overrides the output directory; empty writes next to the input.
	Dir string
	// Suffix is appended to the input base name.
	Suffix string
	// Output, if set, is used verbatim instead of deriving a name.
	Output string
	Write  fileutil.Options
}

// ErrOutputConflict reports inputs that would be written to the same file.
var ErrOutputConflict = errors.New("output path conflict")

// OutputPath returns the file written for input.
func (o Options) OutputPath(input string) string {
	if o.Output != "" {
		return o.Output
	}
	return codec.OutputPath(input, o.Suffix, o.Dir)
}

// CheckOutputs fails if two inputs resolve to the same output file, as
// "a.png" and "a.jpg" do, or if an output would replace its own input.
func CheckOutputs(inputs []string, opts Options) error {
	seen := make(map[string]string, len(inputs))
	for _, input := range inputs {
		out := filepath.Clean(opts.OutputPath(input))
		if out == filepath.Clean(input) {
			return fmt.Errorf("%w: %s would overwrite its input", ErrOutputConflict, input)
		}
		if prev, ok := seen[out]; ok {
			return fmt.Errorf("%w: %s and %s both write %s", ErrOutputConflict, prev, input, out)
		}
		seen[out] = input
	}
	return nil
}

// Result describes one processed file.
type Result struct {
	Input  string
	Output string
	Seed   int64
	Width  int
	Height int
}

// Pixels returns the number of pixels permuted.
func (r Result) Pixels() int {
	return r.Width * r.Height
}

// Scramble permutes the image at input with seed and writes a PNG carrying
// the seed. seed must already be normalized so the stored value reproduces
// the permutation.
func Scramble(input string, seed int64, opts Options) (Result, error) {
	img, err := codec.Load(input)
	if err != nil {
		return Result{}, err
	}

	out := transform(shuffle.Forward, seed, img)
	res := result(input, opts.OutputPath(input), seed, out)
	if err := codec.SaveScrambled(res.Output, out, seed, opts.Write); err != nil {
		return Result{}, fmt.Errorf("save %s: %w", res.Output, err)
	}
	return res, nil
}

// Descramble restores a scrambled PNG. A non-nil override replaces the seed
// stored in the file, for images whose metadata was stripped.
func Descramble(input string, override *int64, opts Options) (Result, error) {
	img, seed, err := load(input, override)
	if err != nil {
		return Result{}, err
	}

	out := transform(shuffle.Backward, seed, img)
	res := result(input, opts.OutputPath(input), seed, out)
	if err := codec.SavePlain(res.Output, out, opts.Write); err != nil {
		return Result{}, fmt.Errorf("save %s: %w", res.Output, err)
	}
	return res, nil
}

// Reveal restores a scrambled PNG and composes it onto the image at cover
// with m.
func Reveal(input, cover string, override *int64, m mask.Mask, opts Options) (Result, error) {
	img, seed, err := load(input, override)
	if err != nil {
		return Result{}, err
	}
	coverImg, err := codec.Load(cover)
	if err != nil {
		return Result{}, err
	}

	restored := transform(shuffle.Backward, seed, img)
	out := m.Compose(restored, coverImg)
	res := result(input, opts.OutputPath(input), seed, out)
	if err := codec.SavePlain(res.Output, out, opts.Write); err != nil {
		return Result{}, fmt.Errorf("save %s: %w", res.Output, err)
	}
	return res, nil
}

func load(input string, override *int64) (image.Image, int64, error) {
	if override != nil {
		img, err := codec.Load(input)
		return img, *override, err
	}
	return codec.LoadScrambled(input)
}

func transform(dir shuffle.Direction, seed int64, img image.Image) *image.NRGBA {
	src := raster.FromImage(img)
	w, h := src.Bounds()
	return raster.ToImage(w, h, shuffle.Transform(dir, seed, src))
}

func result(input, output string, seed int64, img image.Image) Result {
	b := img.Bounds()
	return Result{Input: input, Output: output, Seed: seed, Width: b.Dx(), Height: b.Dy()}
}
