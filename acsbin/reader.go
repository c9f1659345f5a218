// Package acsbin implements the structured binary reader, LZSS-style
// bit-stream decompressor and Microsoft Agent 2.0 container parser
// that together turn a raw ".acs" blob into parsed animations, images
// and a palette.
package acsbin

import (
	"golang.org/x/text/encoding/unicode"

	"acsforge/acserr"
)

// Reader is a bounds-checked little-endian cursor over a byte range
// [start, end) of a shared backing blob. It never copies the blob.
type Reader struct {
	blob  []byte
	start int
	end   int
	pos   int
}

// NewReader returns a Reader over the whole of blob.
func NewReader(blob []byte) *Reader {
	return &Reader{blob: blob, start: 0, end: len(blob), pos: 0}
}

// Sub constructs a reader over [rangeOffset, rangeOffset+rangeLength)
// of the same backing blob, independent of this reader's own range or
// cursor position. It fails with acserr.InvalidRange if rangeOffset or
// rangeLength is negative, or if the range would exceed the blob.
func (r *Reader) Sub(rangeOffset, rangeLength int) (*Reader, error) {
	if rangeOffset < 0 || rangeLength < 0 || rangeOffset+rangeLength > len(r.blob) {
		return nil, &acserr.InvalidRange{RangeOffset: rangeOffset, RangeLength: rangeLength, BlobLength: len(r.blob)}
	}
	return &Reader{blob: r.blob, start: rangeOffset, end: rangeOffset + rangeLength, pos: rangeOffset}, nil
}

// Offset returns the current cursor position relative to the start of
// this reader's range.
func (r *Reader) Offset() int { return r.pos - r.start }

// Remaining returns the number of unread bytes in this reader's range.
func (r *Reader) Remaining() int { return r.end - r.pos }

func (r *Reader) need(n int) error {
	if r.pos+n > r.end {
		return &acserr.UnexpectedEndOfData{BytesRequested: n, OffsetFromRangeStart: r.pos - r.start}
	}
	return nil
}

// U8 reads an unsigned 8-bit integer.
func (r *Reader) U8() (uint8, error) {
	if err := r.need(1); err != nil {
		return 0, err
	}
	v := r.blob[r.pos]
	r.pos++
	return v, nil
}

// U16 reads an unsigned 16-bit little-endian integer.
func (r *Reader) U16() (uint16, error) {
	if err := r.need(2); err != nil {
		return 0, err
	}
	v := uint16(r.blob[r.pos]) | uint16(r.blob[r.pos+1])<<8
	r.pos += 2
	return v, nil
}

// I16 reads a signed 16-bit little-endian integer.
func (r *Reader) I16() (int16, error) {
	v, err := r.U16()
	return int16(v), err
}

// U32 reads an unsigned 32-bit little-endian integer.
func (r *Reader) U32() (uint32, error) {
	if err := r.need(4); err != nil {
		return 0, err
	}
	v := uint32(r.blob[r.pos]) | uint32(r.blob[r.pos+1])<<8 |
		uint32(r.blob[r.pos+2])<<16 | uint32(r.blob[r.pos+3])<<24
	r.pos += 4
	return v, nil
}

// Bytes reads n raw bytes. The returned slice aliases the backing blob
// and must not be retained past the ingest call.
func (r *Reader) Bytes(n int) ([]byte, error) {
	if err := r.need(n); err != nil {
		return nil, err
	}
	v := r.blob[r.pos : r.pos+n]
	r.pos += n
	return v, nil
}

// Skip advances the cursor by n bytes without reading them.
func (r *Reader) Skip(n int) error {
	if err := r.need(n); err != nil {
		return err
	}
	r.pos += n
	return nil
}

var utf16le = unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM).NewDecoder()

// UTF16String reads units UTF-16LE code units (2*units bytes) and
// decodes them into a string. No terminator is consumed.
func (r *Reader) UTF16String(units int) (string, error) {
	raw, err := r.Bytes(units * 2)
	if err != nil {
		return "", err
	}
	decoded, err := utf16le.Bytes(raw)
	if err != nil {
		return "", acserr.DecodeFailedWrap("utf16 string", err)
	}
	return string(decoded), nil
}
