package acsbin

// Palette holds exactly 256 32-bit on-disk color words. Only the low
// 24 bits of each entry matter: 0x00RRGGBB, with the top byte
// discarded.
type Palette [256]uint32

// RGB returns the red, green and blue channels of palette index idx.
func (p Palette) RGB(idx uint8) (r, g, b uint8) {
	word := p[idx]
	return uint8(word >> 16), uint8(word >> 8), uint8(word)
}

// IndexedImage is a palette-indexed bitmap stored bottom-up (DIB
// convention): row 0 of Pixels is the visually bottom row.
type IndexedImage struct {
	Width, Height int
	Stride        int
	Pixels        []byte // Stride*Height bytes
}

// RowBase returns the offset into Pixels of source row sy (top-down,
// sy in [0, Height)), accounting for the bottom-up storage order.
func (img *IndexedImage) RowBase(sy int) int {
	return (img.Height - 1 - sy) * img.Stride
}

// FrameLayer references an image by index with a signed offset
// relative to the animation's canvas origin.
type FrameLayer struct {
	ImageIndex int
	X, Y       int
}

// ParsedFrame is an ordered list of layers (back-to-front, including
// appended overlays) plus a raw duration in hundredths of a second;
// zero means "unknown, use the ingest's configured fallback".
type ParsedFrame struct {
	Layers        []FrameLayer
	DurationTicks uint16
}

// ParsedAnimation is a named, ordered sequence of frames. Name may be
// empty.
type ParsedAnimation struct {
	Name   string
	Frames []ParsedFrame
}

// Container is the full result of parsing an Agent 2.0 acs blob: the
// canvas size, palette, transparency index, decoded images and
// animations in file order.
type Container struct {
	CanvasWidth, CanvasHeight int
	TransparencyIndex        uint8
	Palette                  Palette
	Images                   []IndexedImage
	Animations               []ParsedAnimation
}
