package pipeline

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/pixelshuffle/internal/codec"
	"github.com/lox/pixelshuffle/internal/fileutil"
	"github.com/lox/pixelshuffle/internal/lehmer"
	"github.com/lox/pixelshuffle/internal/mask"
)

func writePNG(t *testing.T, path string, img image.Image) {
	t.Helper()
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
}

func sample(w, h int, alpha uint8) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{uint8(x * 7), uint8(y * 11), uint8(x*y + 3), alpha})
		}
	}
	return img
}

func nrgba(t *testing.T, img image.Image) *image.NRGBA {
	t.Helper()
	b := img.Bounds()
	out := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			out.Set(x, y, img.At(b.Min.X+x, b.Min.Y+y))
		}
	}
	return out
}

func TestScrambleDescrambleFiles(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "cat.png")
	orig := sample(23, 17, 255)
	writePNG(t, input, orig)

	seed := lehmer.New(424242).Seed()
	res, err := Scramble(input, seed, Options{Suffix: "-scrambled"})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "cat-scrambled.png"), res.Output)
	assert.Equal(t, seed, res.Seed)
	assert.Equal(t, 23*17, res.Pixels())

	scrambled, storedSeed, err := codec.LoadScrambled(res.Output)
	require.NoError(t, err)
	assert.Equal(t, seed, storedSeed)
	assert.NotEqual(t, orig.Pix, nrgba(t, scrambled).Pix)

	res2, err := Descramble(res.Output, nil, Options{Suffix: "-descrambled"})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "cat-scrambled-descrambled.png"), res2.Output)
	assert.Equal(t, seed, res2.Seed)

	restored, err := codec.Load(res2.Output)
	require.NoError(t, err)
	assert.Equal(t, orig.Pix, nrgba(t, restored).Pix)
}

func TestTranslucentInputComesBackOpaque(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "ghost.png")
	orig := sample(8, 8, 90)
	writePNG(t, input, orig)

	res, err := Scramble(input, 7, Options{Suffix: "-s"})
	require.NoError(t, err)
	res, err = Descramble(res.Output, nil, Options{Suffix: "-d"})
	require.NoError(t, err)

	restored, err := codec.Load(res.Output)
	require.NoError(t, err)
	got := nrgba(t, restored)
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			want := orig.NRGBAAt(x, y)
			want.A = 255
			assert.Equal(t, want, got.NRGBAAt(x, y))
		}
	}
}

func TestDescrambleOverrideSeed(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "in.png")
	orig := sample(10, 6, 255)
	writePNG(t, input, orig)

	res, err := Scramble(input, 99, Options{Suffix: "-s"})
	require.NoError(t, err)

	// Strip the metadata by re-encoding without text chunks.
	scrambled, err := codec.Load(res.Output)
	require.NoError(t, err)
	stripped := filepath.Join(dir, "stripped.png")
	writePNG(t, stripped, scrambled)

	_, err = Descramble(stripped, nil, Options{Suffix: "-d"})
	assert.ErrorIs(t, err, codec.ErrSeedMissing)

	seed := int64(99)
	out, err := Descramble(stripped, &seed, Options{Output: filepath.Join(dir, "fixed.png")})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "fixed.png"), out.Output)

	restored, err := codec.Load(out.Output)
	require.NoError(t, err)
	assert.Equal(t, orig.Pix, nrgba(t, restored).Pix)
}

func TestScrambleRespectsNoClobber(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "in.png")
	writePNG(t, input, sample(3, 3, 255))

	_, err := Scramble(input, 5, Options{Suffix: "-s", Write: fileutil.Options{NoClobber: true}})
	require.NoError(t, err)
	_, err = Scramble(input, 5, Options{Suffix: "-s", Write: fileutil.Options{NoClobber: true}})
	assert.ErrorIs(t, err, fileutil.ErrExists)
}

func TestCheckOutputs(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.png")
	b := filepath.Join(dir, "b.png")

	tests := []struct {
		name    string
		inputs  []string
		opts    Options
		wantErr bool
	}{
		{"distinct", []string{a, b}, Options{Suffix: "-s"}, false},
		{"same base name", []string{a, filepath.Join(dir, "a.jpg")}, Options{Suffix: "-s"}, true},
		{"same base in other dirs", []string{a, filepath.Join(dir, "sub", "a.gif")}, Options{Suffix: "-s", Dir: dir}, true},
		{"repeated input", []string{a, a}, Options{Suffix: "-s"}, true},
		{"output is input", []string{a}, Options{Output: a}, true},
		{"empty suffix png", []string{a}, Options{}, true},
		{"empty suffix jpeg", []string{filepath.Join(dir, "a.jpg")}, Options{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckOutputs(tt.inputs, tt.opts)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrOutputConflict)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestScrambleMissingInput(t *testing.T) {
	_, err := Scramble(filepath.Join(t.TempDir(), "nope.png"), 1, Options{})
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestReveal(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "secret.png")
	coverPath := filepath.Join(dir, "cover.png")
	orig := sample(12, 9, 255)
	writePNG(t, input, orig)

	cover := image.NewNRGBA(image.Rect(0, 0, 12, 9))
	for i := range cover.Pix {
		cover.Pix[i] = 255
	}
	writePNG(t, coverPath, cover)

	res, err := Scramble(input, 31337, Options{Suffix: "-s"})
	require.NoError(t, err)

	t.Run("shown", func(t *testing.T) {
		out := filepath.Join(dir, "shown.png")
		_, err := Reveal(res.Output, coverPath, nil, mask.Mask{Opacity: 1}, Options{Output: out})
		require.NoError(t, err)

		img, err := codec.Load(out)
		require.NoError(t, err)
		// A white cover darkened by the secret is the secret.
		assert.Equal(t, orig.Pix, nrgba(t, img).Pix)
	})

	t.Run("hidden", func(t *testing.T) {
		out := filepath.Join(dir, "hidden.png")
		_, err := Reveal(res.Output, coverPath, nil, mask.Mask{Opacity: 0}, Options{Output: out})
		require.NoError(t, err)

		img, err := codec.Load(out)
		require.NoError(t, err)
		assert.Equal(t, cover.Pix, nrgba(t, img).Pix)
	})

	t.Run("missing cover", func(t *testing.T) {
		_, err := Reveal(res.Output, filepath.Join(dir, "nope.png"), nil, mask.Mask{Opacity: 1}, Options{Suffix: "-r"})
		assert.ErrorIs(t, err, os.ErrNotExist)
	})
}
