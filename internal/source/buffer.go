package source

import (
	"image"
	"image/draw"
)

// PixelBuffer is one decoded frame: interleaved 8-bit RGBA samples.
// A buffer is immutable once produced and owned by the pipeline that
// requested it; extractors only ever read it.
type PixelBuffer struct {
	Width  int
	Height int
	Pix    []uint8 // len = Width*Height*4
}

// FromImage flattens any image.Image into an RGBA pixel buffer.
func FromImage(img image.Image) *PixelBuffer {
	bounds := img.Bounds()
	rgba, ok := img.(*image.RGBA)
	if !ok || rgba.Stride != bounds.Dx()*4 || rgba.Rect.Min.X != 0 || rgba.Rect.Min.Y != 0 {
		rgba = image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
		draw.Draw(rgba, rgba.Rect, img, bounds.Min, draw.Src)
	}
	return &PixelBuffer{
		Width:  bounds.Dx(),
		Height: bounds.Dy(),
		Pix:    rgba.Pix,
	}
}

// RGBA returns the channel samples at (x, y). No bounds check.
func (b *PixelBuffer) RGBA(x, y int) (r, g, bl, a uint8) {
	i := (y*b.Width + x) * 4
	return b.Pix[i], b.Pix[i+1], b.Pix[i+2], b.Pix[i+3]
}

// Gray returns the grayscale projection 0.299R+0.587G+0.114B at (x, y).
func (b *PixelBuffer) Gray(x, y int) float64 {
	i := (y*b.Width + x) * 4
	return 0.299*float64(b.Pix[i]) + 0.587*float64(b.Pix[i+1]) + 0.114*float64(b.Pix[i+2])
}

// PixelCount returns Width*Height.
func (b *PixelBuffer) PixelCount() int {
	return b.Width * b.Height
}

// Image wraps the buffer as a read-only image.RGBA sharing the same pixels.
func (b *PixelBuffer) Image() *image.RGBA {
	return &image.RGBA{
		Pix:    b.Pix,
		Stride: b.Width * 4,
		Rect:   image.Rect(0, 0, b.Width, b.Height),
	}
}
