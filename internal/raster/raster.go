// Package raster converts between image.Image values and packed 0xAARRGGBB
// pixel buffers.
package raster

import (
	"image"
	"image/color"
)

// Raster adapts an image.Image to shuffle.Source. Samples are read as
// straight (non-premultiplied) alpha.
type Raster struct {
	img    image.Image
	bounds image.Rectangle
}

// FromImage wraps img. The image's bounds need not start at the origin.
func FromImage(img image.Image) *Raster {
	return &Raster{img: img, bounds: img.Bounds()}
}

func (r *Raster) Bounds() (int, int) {
	return r.bounds.Dx(), r.bounds.Dy()
}

func (r *Raster) Row(y int, dst []uint32) {
	py := r.bounds.Min.Y + y

	// image/png decodes translucent truecolour images as *image.NRGBA.
	if n, ok := r.img.(*image.NRGBA); ok {
		off := n.PixOffset(r.bounds.Min.X, py)
		for x := range dst {
			p := n.Pix[off+x*4 : off+x*4+4 : off+x*4+4]
			dst[x] = uint32(p[3])<<24 | uint32(p[0])<<16 | uint32(p[1])<<8 | uint32(p[2])
		}
		return
	}

	for x := range dst {
		c := color.NRGBAModel.Convert(r.img.At(r.bounds.Min.X+x, py)).(color.NRGBA)
		dst[x] = Pack(c)
	}
}

// Pack encodes c as 0xAARRGGBB.
func Pack(c color.NRGBA) uint32 {
	return uint32(c.A)<<24 | uint32(c.R)<<16 | uint32(c.G)<<8 | uint32(c.B)
}

// Unpack decodes a 0xAARRGGBB sample.
func Unpack(argb uint32) color.NRGBA {
	return color.NRGBA{
		R: uint8(argb >> 16),
		G: uint8(argb >> 8),
		B: uint8(argb),
		A: uint8(argb >> 24),
	}
}

// ToImage builds a width x height image from row-major packed samples.
func ToImage(width, height int, pix []uint32) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for i, argb := range pix {
		c := Unpack(argb)
		o := i * 4
		img.Pix[o+0] = c.R
		img.Pix[o+1] = c.G
		img.Pix[o+2] = c.B
		img.Pix[o+3] = c.A
	}
	return img
}
