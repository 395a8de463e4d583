package shuffle

// Pixel holds the four 8-bit channels of one sample in R, G, B, A order.
type Pixel [4]uint8

// Decompose splits a packed 0xAARRGGBB sample into its channels.
func Decompose(argb uint32) Pixel {
	return Pixel{
		uint8(argb >> 16),
		uint8(argb >> 8),
		uint8(argb),
		uint8(argb >> 24),
	}
}

// Pack recomposes the pixel as 0xAARRGGBB. The alpha channel is always
// written as fully opaque, whatever the pixel carried.
func (p Pixel) Pack() uint32 {
	return 0xFF<<24 | uint32(p[0])<<16 | uint32(p[1])<<8 | uint32(p[2])
}
