// Package codec loads source images and stores scrambled images together with
// the seed needed to restore them.
//
// A scrambled image is a PNG carrying a tEXt chunk with keyword "seed" whose
// text is the decimal normalized seed.
package codec

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/lox/pixelshuffle/internal/fileutil"
	"github.com/lox/pixelshuffle/internal/pngtext"
)

// SeedKey is the PNG text keyword holding the seed.
const SeedKey = "seed"

var (
	ErrSeedMissing   = errors.New("seed metadata not found")
	ErrSeedMalformed = errors.New("seed metadata is not a 64-bit integer")
)

// Load decodes an image in any registered format (PNG, JPEG, GIF).
func Load(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return img, nil
}

// LoadScrambled decodes a scrambled PNG and returns it with its stored seed.
func LoadScrambled(path string) (image.Image, int64, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, 0, err
	}

	seed, err := ReadSeed(bytes.NewReader(data))
	if err != nil {
		return nil, 0, fmt.Errorf("%s: %w", path, err)
	}

	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, 0, fmt.Errorf("decode %s: %w", path, err)
	}
	return img, seed, nil
}

// ReadSeed extracts the seed from a PNG stream's text metadata.
func ReadSeed(r io.Reader) (int64, error) {
	entries, err := pngtext.Read(r)
	if err != nil {
		return 0, err
	}
	return SeedFromEntries(entries)
}

// SeedFromEntries finds and parses the seed among decoded text entries.
func SeedFromEntries(entries []pngtext.Entry) (int64, error) {
	v, ok := pngtext.Lookup(entries, SeedKey)
	if !ok {
		return 0, ErrSeedMissing
	}
	seed, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrSeedMalformed, err)
	}
	return seed, nil
}

// ReadText returns every text entry stored in the PNG at path.
func ReadText(path string) ([]pngtext.Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return pngtext.Read(f)
}

// SaveScrambled writes img as a PNG with the seed embedded.
func SaveScrambled(path string, img image.Image, seed int64, opts fileutil.Options) error {
	entry := pngtext.Entry{Keyword: SeedKey, Text: strconv.FormatInt(seed, 10)}
	return fileutil.WriteFileAtomic(path, opts, func(w io.Writer) error {
		return pngtext.Encode(w, img, entry)
	})
}

// SavePlain writes img as a PNG without metadata.
func SavePlain(path string, img image.Image, opts fileutil.Options) error {
	return fileutil.WriteFileAtomic(path, opts, func(w io.Writer) error {
		return pngtext.Encode(w, img)
	})
}

// OutputPath derives "<base><suffix>.png" from input. If dir is not empty
// the result is placed there instead of next to input.
func OutputPath(input, suffix, dir string) string {
	base := filepath.Base(input)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	if dir == "" {
		dir = filepath.Dir(input)
	}
	return filepath.Join(dir, base+suffix+".png")
}
