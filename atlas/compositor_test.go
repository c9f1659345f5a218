package atlas

import (
	"testing"

	"acsforge/acsbin"
	"acsforge/geom"
)

func solidImage(w, h int, fill byte) acsbin.IndexedImage {
	px := make([]byte, w*h)
	for i := range px {
		px[i] = fill
	}
	return acsbin.IndexedImage{Width: w, Height: h, Stride: w, Pixels: px}
}

func TestCompositeTransparencySkipped(t *testing.T) {
	var pal acsbin.Palette
	pal[1] = 0x00112233
	images := []acsbin.IndexedImage{solidImage(2, 2, 1)}
	images[0].Pixels[images[0].RowBase(0)] = 0 // top-left pixel (rows are stored bottom-up) is the transparency index

	frame := acsbin.ParsedFrame{Layers: []acsbin.FrameLayer{{ImageIndex: 0, X: 0, Y: 0}}}
	canvas := Composite(frame, images, pal, 0, geom.Size{Width: 2, Height: 2})

	if canvas[3] != 0 {
		t.Fatalf("transparent pixel alpha = %d, want 0", canvas[3])
	}
	// pixel (1,0) should be opaque and painted from the palette.
	o := 1 * 4
	if canvas[o+3] != 0xFF || canvas[o] != 0x11 || canvas[o+1] != 0x22 || canvas[o+2] != 0x33 {
		t.Fatalf("unexpected painted pixel: %v", canvas[o:o+4])
	}
}

func TestCompositeClipsOutOfRangeLayer(t *testing.T) {
	var pal acsbin.Palette
	pal[1] = 0x00FFFFFF
	images := []acsbin.IndexedImage{solidImage(4, 4, 1)}

	frame := acsbin.ParsedFrame{Layers: []acsbin.FrameLayer{{ImageIndex: 0, X: -2, Y: 3}}}
	// Should not panic despite the layer extending past every edge.
	Composite(frame, images, pal, 0, geom.Size{Width: 2, Height: 2})
}

func TestCompositeSkipsOutOfRangeImageIndex(t *testing.T) {
	var pal acsbin.Palette
	frame := acsbin.ParsedFrame{Layers: []acsbin.FrameLayer{{ImageIndex: 5, X: 0, Y: 0}}}
	canvas := Composite(frame, nil, pal, 0, geom.Size{Width: 1, Height: 1})
	if canvas[3] != 0 {
		t.Fatalf("expected empty canvas, got %v", canvas)
	}
}

func TestCompositeLayersPaintBackToFront(t *testing.T) {
	var pal acsbin.Palette
	pal[1] = 0x00110000 // red-ish
	pal[2] = 0x00002200 // green-ish
	images := []acsbin.IndexedImage{solidImage(1, 1, 1), solidImage(1, 1, 2)}

	frame := acsbin.ParsedFrame{Layers: []acsbin.FrameLayer{
		{ImageIndex: 0, X: 0, Y: 0},
		{ImageIndex: 1, X: 0, Y: 0},
	}}
	canvas := Composite(frame, images, pal, 0, geom.Size{Width: 1, Height: 1})
	if canvas[1] != 0x22 {
		t.Fatalf("expected later layer to win, got %v", canvas[:4])
	}
}
