package analyzer

import "deepsight/internal/source"

// FaceRatio estimates how much of the central region is skin-toned. Faces
// are the usual manipulation target, so the scorer treats a high ratio as
// raised exposure. The scan is restricted to a circle centered in the frame
// with radius min(width,height)/4.
func (a *Analyzer) FaceRatio(buf *source.PixelBuffer) float64 {
	cx := buf.Width / 2
	cy := buf.Height / 2
	radius := buf.Width
	if buf.Height < radius {
		radius = buf.Height
	}
	radius /= 4
	if radius < 1 {
		return 0
	}

	regionPixels := 0
	skinPixels := 0
	r2 := radius * radius

	for y := cy - radius; y <= cy+radius; y++ {
		if y < 0 || y >= buf.Height {
			continue
		}
		dy := y - cy
		for x := cx - radius; x <= cx+radius; x++ {
			if x < 0 || x >= buf.Width {
				continue
			}
			dx := x - cx
			if dx*dx+dy*dy > r2 {
				continue
			}
			regionPixels++
			r, g, b, _ := buf.RGBA(x, y)
			if isSkinTone(float64(r), float64(g), float64(b)) {
				skinPixels++
			}
		}
	}

	if regionPixels == 0 {
		return 0
	}
	return clamp100(float64(skinPixels) / float64(regionPixels) * a.cfg.SkinScale)
}

// isSkinTone combines an RGB rule with a YCbCr chroma range. Either passing
// classifies the pixel as skin.
func isSkinTone(r, g, b float64) bool {
	maxC := max3(r, g, b)
	minC := min3(r, g, b)
	if r > 95 && g > 40 && b > 20 && maxC-minC > 15 && r > g && r > b {
		return true
	}

	cb := 128 - 0.168736*r - 0.331264*g + 0.5*b
	cr := 128 + 0.5*r - 0.418688*g - 0.081312*b
	return cb >= 77 && cb <= 127 && cr >= 133 && cr <= 173
}

func max3(a, b, c float64) float64 {
	m := a
	if b > m {
		m = b
	}
	if c > m {
		m = c
	}
	return m
}

func min3(a, b, c float64) float64 {
	m := a
	if b < m {
		m = b
	}
	if c < m {
		m = c
	}
	return m
}
