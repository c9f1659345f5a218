package acsbin

import (
	"acsforge/acserr"
)

const magicAgent2 = 0xABCDABC3

const (
	styleHasTTS     = 0x00000020
	styleHasBalloon = 0x00000200
)

type blockDesc struct {
	offset, size uint32
}

type gestureRef struct {
	name         string
	offset, size uint32
}

type imageRef struct {
	offset, size uint32
}

// Parse decodes a complete Agent 2.0 ("acs") container blob into a
// Container. Any structural problem aborts the whole parse and
// returns a single acserr error: an *acserr.Error or one of the
// structured types (*acserr.UnsupportedSignature,
// *acserr.UnexpectedEndOfData, *acserr.InvalidRange,
// *acserr.ImageDecodeFailed).
func Parse(blob []byte) (*Container, error) {
	top := NewReader(blob)

	magic, err := top.U32()
	if err != nil {
		return nil, err
	}
	if magic != magicAgent2 {
		return nil, &acserr.UnsupportedSignature{Value: magic}
	}

	var blocks [4]blockDesc
	for i := range blocks {
		off, err := top.U32()
		if err != nil {
			return nil, err
		}
		sz, err := top.U32()
		if err != nil {
			return nil, err
		}
		blocks[i] = blockDesc{off, sz}
	}

	c := &Container{}

	headerR, err := top.Sub(int(blocks[0].offset), int(blocks[0].size))
	if err != nil {
		return nil, err
	}
	if err := parseHeader(headerR, c); err != nil {
		return nil, err
	}

	gestureR, err := top.Sub(int(blocks[1].offset), int(blocks[1].size))
	if err != nil {
		return nil, err
	}
	refs, err := parseGestureRefs(gestureR)
	if err != nil {
		return nil, err
	}

	imageR, err := top.Sub(int(blocks[2].offset), int(blocks[2].size))
	if err != nil {
		return nil, err
	}
	imgRefs, err := parseImageRefs(imageR)
	if err != nil {
		return nil, err
	}

	c.Images = make([]IndexedImage, len(imgRefs))
	for i, ref := range imgRefs {
		imgR, err := top.Sub(int(ref.offset), int(ref.size))
		if err != nil {
			return nil, err
		}
		img, err := parseImage(imgR, i)
		if err != nil {
			return nil, err
		}
		c.Images[i] = img
	}

	c.Animations = make([]ParsedAnimation, len(refs))
	for i, ref := range refs {
		animR, err := top.Sub(int(ref.offset), int(ref.size))
		if err != nil {
			return nil, err
		}
		anim, err := parseAnimation(animR)
		if err != nil {
			return nil, err
		}
		if ref.name != "" {
			anim.Name = ref.name
		}
		c.Animations[i] = anim
	}

	return c, nil
}

func parseHeader(r *Reader, c *Container) error {
	if _, err := r.U16(); err != nil { // minor version
		return err
	}
	if _, err := r.U16(); err != nil { // major version
		return err
	}
	if _, err := r.U32(); err != nil { // names table offset
		return err
	}
	if _, err := r.U32(); err != nil { // names table size
		return err
	}
	if err := r.Skip(16); err != nil { // GUID
		return err
	}
	w, err := r.U16()
	if err != nil {
		return err
	}
	h, err := r.U16()
	if err != nil {
		return err
	}
	c.CanvasWidth, c.CanvasHeight = int(w), int(h)

	ti, err := r.U8()
	if err != nil {
		return err
	}
	c.TransparencyIndex = ti

	style, err := r.U32()
	if err != nil {
		return err
	}
	if _, err := r.U32(); err != nil { // reserved
		return err
	}

	if style&styleHasTTS != 0 {
		if err := r.Skip(16 + 16 + 4 + 2); err != nil {
			return err
		}
		hasLanguage, err := r.U8()
		if err != nil {
			return err
		}
		if hasLanguage != 0 {
			if err := r.Skip(2); err != nil {
				return err
			}
			if err := skipLengthPrefixedUTF16(r); err != nil {
				return err
			}
			if err := r.Skip(2 + 2); err != nil {
				return err
			}
			if err := skipLengthPrefixedUTF16(r); err != nil {
				return err
			}
		}
	}

	if style&styleHasBalloon != 0 {
		if err := r.Skip(1 + 1 + 4 + 4 + 4); err != nil {
			return err
		}
		if err := skipLengthPrefixedUTF16(r); err != nil {
			return err
		}
		if err := r.Skip(4 + 2 + 2 + 2); err != nil {
			return err
		}
	}

	paletteCount, err := r.U32()
	if err != nil {
		return err
	}
	n := int(paletteCount)
	if n > 256 {
		n = 256
	}
	for i := 0; i < n; i++ {
		v, err := r.U32()
		if err != nil {
			return err
		}
		c.Palette[i] = v
	}
	if paletteCount > 256 {
		// Excess entries are consumed but discarded; skip them so the
		// cursor lands where the has-icon section actually starts.
		// excessBytes is computed in uint64 and bounds-checked against
		// Remaining before truncating to int, so a bogus huge
		// paletteCount can't wrap the Skip argument negative on a
		// 32-bit int.
		excessBytes := uint64(paletteCount-256) * 4
		if excessBytes > uint64(r.Remaining()) {
			return &acserr.UnexpectedEndOfData{BytesRequested: int(excessBytes), OffsetFromRangeStart: r.Offset()}
		}
		if err := r.Skip(int(excessBytes)); err != nil {
			return err
		}
	}

	hasIcon, err := r.U8()
	if err != nil {
		return err
	}
	if hasIcon != 0 {
		maskSize, err := r.U32()
		if err != nil {
			return err
		}
		if err := r.Skip(int(maskSize)); err != nil {
			return err
		}
		colorSize, err := r.U32()
		if err != nil {
			return err
		}
		if err := r.Skip(int(colorSize)); err != nil {
			return err
		}
	}

	return nil
}

// skipLengthPrefixedUTF16 skips a u32 code-unit length L followed by
// (L+1)*2 bytes: L UTF-16 code units plus a null terminator.
func skipLengthPrefixedUTF16(r *Reader) error {
	length, err := r.U32()
	if err != nil {
		return err
	}
	return r.Skip((int(length) + 1) * 2)
}

func parseGestureRefs(r *Reader) ([]gestureRef, error) {
	count, err := r.U32()
	if err != nil {
		return nil, err
	}
	refs := make([]gestureRef, count)
	for i := range refs {
		length, err := r.U32()
		if err != nil {
			return nil, err
		}
		name, err := r.UTF16String(int(length))
		if err != nil {
			return nil, err
		}
		if err := r.Skip(2); err != nil { // null terminator
			return nil, err
		}
		off, err := r.U32()
		if err != nil {
			return nil, err
		}
		size, err := r.U32()
		if err != nil {
			return nil, err
		}
		refs[i] = gestureRef{name: name, offset: off, size: size}
	}
	return refs, nil
}

func parseImageRefs(r *Reader) ([]imageRef, error) {
	count, err := r.U32()
	if err != nil {
		return nil, err
	}
	refs := make([]imageRef, count)
	for i := range refs {
		off, err := r.U32()
		if err != nil {
			return nil, err
		}
		size, err := r.U32()
		if err != nil {
			return nil, err
		}
		if _, err := r.U32(); err != nil { // checksum, ignored
			return nil, err
		}
		refs[i] = imageRef{offset: off, size: size}
	}
	return refs, nil
}

func parseImage(r *Reader, index int) (IndexedImage, error) {
	if err := r.Skip(1); err != nil {
		return IndexedImage{}, err
	}
	w, err := r.U16()
	if err != nil {
		return IndexedImage{}, err
	}
	h, err := r.U16()
	if err != nil {
		return IndexedImage{}, err
	}
	compressed, err := r.U8()
	if err != nil {
		return IndexedImage{}, err
	}
	byteCount, err := r.U32()
	if err != nil {
		return IndexedImage{}, err
	}
	payload, err := r.Bytes(int(byteCount))
	if err != nil {
		return IndexedImage{}, err
	}

	width, height := int(w), int(h)
	if width == 0 || height == 0 {
		return IndexedImage{}, acserr.InvalidInputf("image %d has zero dimension %dx%d", index, width, height)
	}
	stride := ((width + 3) / 4) * 4
	pixelCount := stride * height

	var pixels []byte
	if compressed != 0 {
		decoded, ok := decompress(payload, pixelCount)
		if !ok {
			return IndexedImage{}, &acserr.ImageDecodeFailed{ImageIndex: index}
		}
		pixels = decoded
	} else {
		if len(payload) < pixelCount {
			return IndexedImage{}, acserr.DecodeFailedf("image %d: uncompressed payload too short", index)
		}
		pixels = append([]byte(nil), payload[:pixelCount]...)
	}

	return IndexedImage{Width: width, Height: height, Stride: stride, Pixels: pixels}, nil
}

func parseAnimation(r *Reader) (ParsedAnimation, error) {
	nameLen, err := r.U32()
	if err != nil {
		return ParsedAnimation{}, err
	}
	name, err := r.UTF16String(int(nameLen))
	if err != nil {
		return ParsedAnimation{}, err
	}
	if err := r.Skip(2); err != nil { // terminator
		return ParsedAnimation{}, err
	}

	if _, err := r.U8(); err != nil { // return type, ignored
		return ParsedAnimation{}, err
	}
	returnNameLen, err := r.U32()
	if err != nil {
		return ParsedAnimation{}, err
	}
	if returnNameLen != 0 {
		if err := r.Skip(int(returnNameLen)*2 + 2); err != nil {
			return ParsedAnimation{}, err
		}
	}

	frameCount, err := r.U16()
	if err != nil {
		return ParsedAnimation{}, err
	}

	frames := make([]ParsedFrame, frameCount)
	for i := range frames {
		f, err := parseFrame(r)
		if err != nil {
			return ParsedAnimation{}, err
		}
		frames[i] = f
	}

	return ParsedAnimation{Name: name, Frames: frames}, nil
}

func parseFrame(r *Reader) (ParsedFrame, error) {
	imageCount, err := r.U16()
	if err != nil {
		return ParsedFrame{}, err
	}
	layers := make([]FrameLayer, 0, int(imageCount))
	for i := 0; i < int(imageCount); i++ {
		imgIdx, err := r.U32()
		if err != nil {
			return ParsedFrame{}, err
		}
		xOff, err := r.I16()
		if err != nil {
			return ParsedFrame{}, err
		}
		yOff, err := r.I16()
		if err != nil {
			return ParsedFrame{}, err
		}
		layers = append(layers, FrameLayer{ImageIndex: int(imgIdx), X: int(xOff), Y: int(yOff)})
	}

	if _, err := r.U16(); err != nil { // sound id, skipped
		return ParsedFrame{}, err
	}
	duration, err := r.U16()
	if err != nil {
		return ParsedFrame{}, err
	}
	if _, err := r.U16(); err != nil { // exit frame, skipped
		return ParsedFrame{}, err
	}

	branchCount, err := r.U8()
	if err != nil {
		return ParsedFrame{}, err
	}
	if err := r.Skip(int(branchCount) * 4); err != nil {
		return ParsedFrame{}, err
	}

	overlayCount, err := r.U8()
	if err != nil {
		return ParsedFrame{}, err
	}
	for i := 0; i < int(overlayCount); i++ {
		if err := r.Skip(1 + 1); err != nil {
			return ParsedFrame{}, err
		}
		imgIdx, err := r.U16()
		if err != nil {
			return ParsedFrame{}, err
		}
		if err := r.Skip(1 + 1); err != nil {
			return ParsedFrame{}, err
		}
		x, err := r.I16()
		if err != nil {
			return ParsedFrame{}, err
		}
		y, err := r.I16()
		if err != nil {
			return ParsedFrame{}, err
		}
		if err := r.Skip(2 + 2); err != nil {
			return ParsedFrame{}, err
		}
		layers = append(layers, FrameLayer{ImageIndex: int(imgIdx), X: int(x), Y: int(y)})
	}

	return ParsedFrame{Layers: layers, DurationTicks: duration}, nil
}
