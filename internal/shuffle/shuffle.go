// Package shuffle scrambles and restores images by permuting their pixels
// with a seed-keyed inside-out Fisher-Yates shuffle.
//
// A single swap sequence is generated from the seed. Replaying it in order
// scrambles the image; replaying it in reverse order undoes every
// transposition and restores the original arrangement, so no inverse
// permutation is ever built.
package shuffle

import (
	"github.com/lox/pixelshuffle/internal/lehmer"
)

// Source provides packed 0xAARRGGBB samples row by row.
type Source interface {
	// Bounds returns the width and height in pixels.
	Bounds() (width, height int)
	// Row fills dst, which has length width, with row y.
	Row(y int, dst []uint32)
}

// Swap is a single transposition of two buffer positions.
type Swap struct {
	Left, Right int
}

// Swaps builds the swap sequence for a buffer of n pixels. Swap i always has
// Left == i and i <= Right < n. A fresh generator is created for every call.
func Swaps(seed int64, n int) []Swap {
	if n <= 0 {
		return nil
	}

	rng := lehmer.New(seed)
	swaps := make([]Swap, n)
	for left := 0; left < n; left++ {
		swaps[left] = Swap{Left: left, Right: left + rng.Intn(n-left)}
	}
	return swaps
}

// Apply replays swaps over buf in the given direction.
func Apply(buf []Pixel, swaps []Swap, dir Direction) {
	n := len(swaps)
	for i := 0; i < n; i++ {
		idx := i
		if dir == Backward {
			idx = n - i - 1
		}
		s := swaps[idx]
		buf[s.Left], buf[s.Right] = buf[s.Right], buf[s.Left]
	}
}

// Transform reads src in row-major order, permutes its pixels with the swap
// sequence for seed and returns the packed result. Every output pixel is
// fully opaque; see Pixel.Pack.
func Transform(dir Direction, seed int64, src Source) []uint32 {
	width, height := src.Bounds()
	if width <= 0 || height <= 0 {
		return []uint32{}
	}

	n := width * height
	buf := make([]Pixel, 0, n)
	row := make([]uint32, width)
	for y := 0; y < height; y++ {
		src.Row(y, row)
		for _, argb := range row {
			buf = append(buf, Decompose(argb))
		}
	}

	Apply(buf, Swaps(seed, n), dir)

	out := make([]uint32, n)
	for i, p := range buf {
		out[i] = p.Pack()
	}
	return out
}

// Scramble is Transform in the Forward direction.
func Scramble(seed int64, src Source) []uint32 {
	return Transform(Forward, seed, src)
}

// Descramble is Transform in the Backward direction. seed must be the
// normalized seed used to scramble an image of the same dimensions.
func Descramble(seed int64, src Source) []uint32 {
	return Transform(Backward, seed, src)
}
