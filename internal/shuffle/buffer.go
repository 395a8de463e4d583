package shuffle

// Buffer is an in-memory Source over packed 0xAARRGGBB samples.
type Buffer struct {
	Width, Height int
	Pix           []uint32
}

// NewBuffer wraps pix, which must hold width*height samples in row-major
// order.
func NewBuffer(width, height int, pix []uint32) *Buffer {
	return &Buffer{Width: width, Height: height, Pix: pix}
}

func (b *Buffer) Bounds() (int, int) {
	return b.Width, b.Height
}

func (b *Buffer) Row(y int, dst []uint32) {
	copy(dst, b.Pix[y*b.Width:(y+1)*b.Width])
}
