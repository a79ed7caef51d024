package analyzer

import (
	"image"

	xdraw "golang.org/x/image/draw"

	"deepsight/internal/source"
)

const maxHistogramSide = 256

// FrequencyAnomaly builds a 256-bin grayscale histogram and scores its
// variance around the expected-uniform bin mean. Generator output tends to
// concentrate gray levels into fewer bins than camera sensor noise does.
// Large frames are downscaled to at most 256x256 first so the cost stays
// flat regardless of input resolution.
func (a *Analyzer) FrequencyAnomaly(buf *source.PixelBuffer) float64 {
	scaled := buf
	if buf.Width > maxHistogramSide || buf.Height > maxHistogramSide {
		scaled = downscale(buf, maxHistogramSide)
	}

	var histogram [256]int
	for y := 0; y < scaled.Height; y++ {
		for x := 0; x < scaled.Width; x++ {
			histogram[int(scaled.Gray(x, y))]++
		}
	}

	mean := float64(scaled.PixelCount()) / 256
	variance := 0.0
	for _, count := range histogram {
		d := float64(count) - mean
		variance += d * d
	}
	variance /= 256

	return clamp100(variance / a.cfg.FrequencyDivisor)
}

// downscale resizes the buffer so its longer side equals maxSide,
// preserving aspect ratio.
func downscale(buf *source.PixelBuffer, maxSide int) *source.PixelBuffer {
	w, h := buf.Width, buf.Height
	if w >= h {
		h = h * maxSide / w
		w = maxSide
	} else {
		w = w * maxSide / h
		h = maxSide
	}
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	xdraw.ApproxBiLinear.Scale(dst, dst.Rect, buf.Image(), buf.Image().Rect, xdraw.Src, nil)

	return &source.PixelBuffer{Width: w, Height: h, Pix: dst.Pix}
}
