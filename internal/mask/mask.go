// Package mask hides an image behind a cover image.
//
// The blend darkens: each colour channel takes the minimum of the two
// images, and alpha is combined with the "over" rule. Opacity then
// interpolates between the untouched cover (0) and the full blend (1).
package mask

import (
	"errors"
	"image"
	"image/color"
	"math"
)

var ErrOpacity = errors.New("mask: opacity must be between 0 and 1")

// Mask blends at a fixed opacity.
type Mask struct {
	Opacity float64
}

// New returns a mask with the given opacity.
func New(opacity float64) (Mask, error) {
	if math.IsNaN(opacity) || opacity < 0 || opacity > 1 {
		return Mask{}, ErrOpacity
	}
	return Mask{Opacity: opacity}, nil
}

// Blend combines a revealed pixel src with a cover pixel dst.
func (m Mask) Blend(src, dst color.NRGBA) color.NRGBA {
	sa, da := int(src.A), int(dst.A)
	res := [4]int{
		min(int(src.R), int(dst.R)),
		min(int(src.G), int(dst.G)),
		min(int(src.B), int(dst.B)),
		min(255, sa+da-(sa*da)/255),
	}

	mix := func(d uint8, r int) uint8 {
		v := float64(d) + float64(r-int(d))*m.Opacity
		return uint8(int(v) & 0xFF)
	}
	return color.NRGBA{
		R: mix(dst.R, res[0]),
		G: mix(dst.G, res[1]),
		B: mix(dst.B, res[2]),
		A: mix(dst.A, res[3]),
	}
}

// Compose blends src onto a copy of dst over the region both images cover,
// anchored at their top-left corners. Pixels of dst outside that region are
// copied unchanged.
func (m Mask) Compose(src, dst image.Image) *image.NRGBA {
	sb, db := src.Bounds(), dst.Bounds()
	out := image.NewNRGBA(image.Rect(0, 0, db.Dx(), db.Dy()))

	w := min(sb.Dx(), db.Dx())
	h := min(sb.Dy(), db.Dy())
	for y := 0; y < db.Dy(); y++ {
		for x := 0; x < db.Dx(); x++ {
			d := color.NRGBAModel.Convert(dst.At(db.Min.X+x, db.Min.Y+y)).(color.NRGBA)
			if x < w && y < h {
				s := color.NRGBAModel.Convert(src.At(sb.Min.X+x, sb.Min.Y+y)).(color.NRGBA)
				d = m.Blend(s, d)
			}
			out.SetNRGBA(x, y, d)
		}
	}
	return out
}
