package ingest

import (
	"image"
	"image/png"
	"os"

	"acsforge/acserr"
)

// encodeAtlasPNG writes buf (tightly packed RGBA8, width*height*4
// bytes) as a PNG file at path.
func encodeAtlasPNG(buf []byte, width, height int, path string) error {
	img := &image.RGBA{
		Pix:    buf,
		Stride: width * 4,
		Rect:   image.Rect(0, 0, width, height),
	}

	f, err := os.Create(path)
	if err != nil {
		return acserr.IoFailedWrap("creating "+path, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return acserr.EncodeFailedWrap("encoding atlas PNG", err)
	}
	if err := f.Close(); err != nil {
		return acserr.IoFailedWrap("closing "+path, err)
	}
	return nil
}
