// Package atlas composites parsed animation frames onto an RGBA
// canvas and packs composited frames into a single bounded atlas
// image.
package atlas

import (
	"acsforge/acsbin"
	"acsforge/geom"
)

// Composite paints frame's layers, back-to-front, onto a fresh
// canvasSize.Width*canvasSize.Height*4 RGBA8 buffer. Layer image
// indices outside [0, len(images)) are silently skipped: the
// container is known to carry sentinel indices in the wild.
func Composite(frame acsbin.ParsedFrame, images []acsbin.IndexedImage, palette acsbin.Palette, transparencyIndex uint8, canvasSize geom.Size) []byte {
	canvas := make([]byte, canvasSize.Width*canvasSize.Height*4)

	for _, layer := range frame.Layers {
		if layer.ImageIndex < 0 || layer.ImageIndex >= len(images) {
			continue
		}
		img := &images[layer.ImageIndex]
		compositeLayer(canvas, canvasSize, img, palette, transparencyIndex, layer)
	}
	return canvas
}

func compositeLayer(canvas []byte, canvasSize geom.Size, img *acsbin.IndexedImage, palette acsbin.Palette, transparencyIndex uint8, layer acsbin.FrameLayer) {
	for sy := 0; sy < img.Height; sy++ {
		dy := layer.Y + sy
		if dy < 0 || dy >= canvasSize.Height {
			continue
		}
		rowBase := img.RowBase(sy)
		for sx := 0; sx < img.Width; sx++ {
			dx := layer.X + sx
			if dx < 0 || dx >= canvasSize.Width {
				continue
			}
			p := img.Pixels[rowBase+sx]
			if p == transparencyIndex {
				continue
			}
			r, g, b := palette.RGB(p)
			o := (dy*canvasSize.Width + dx) * 4
			canvas[o] = r
			canvas[o+1] = g
			canvas[o+2] = b
			canvas[o+3] = 0xFF
		}
	}
}
