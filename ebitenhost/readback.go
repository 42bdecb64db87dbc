package ebitenhost

import (
	"errors"
	"image"
	"image/png"
	"io"
)

// EncodePNG writes the current target as PNG. It only works while a frame
// is being drawn, which is when script screenshots are taken.
func (s *Surface) EncodePNG(w io.Writer) error {
	if s.target == nil {
		return errors.New("ebitenhost: no frame to capture")
	}
	return png.Encode(w, readPixels(s.target))
}

// readPixels copies img into a straight-alpha NRGBA image. ebiten images
// are premultiplied.
func readPixels(img interface {
	Bounds() image.Rectangle
	ReadPixels([]byte)
}) *image.NRGBA {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	pixels := make([]byte, 4*w*h)
	img.ReadPixels(pixels)

	out := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(pixels); i += 4 {
		r, g, b, a := pixels[i], pixels[i+1], pixels[i+2], pixels[i+3]
		if a > 0 && a < 255 {
			r = uint8(min(int(r)*255/int(a), 255))
			g = uint8(min(int(g)*255/int(a), 255))
			b = uint8(min(int(b)*255/int(a), 255))
		}
		out.Pix[i] = r
		out.Pix[i+1] = g
		out.Pix[i+2] = b
		out.Pix[i+3] = a
	}
	return out
}
