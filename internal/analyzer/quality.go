package analyzer

import "deepsight/internal/source"

// Quality reports global contrast: the variance of the grayscale projection
// over the whole buffer, rescaled and capped. Flat, low-variance frames
// score near zero.
func (a *Analyzer) Quality(buf *source.PixelBuffer) float64 {
	n := float64(buf.PixelCount())
	if n == 0 {
		return 0
	}

	var sum, sumSq float64
	for y := 0; y < buf.Height; y++ {
		for x := 0; x < buf.Width; x++ {
			v := buf.Gray(x, y)
			sum += v
			sumSq += v * v
		}
	}

	mean := sum / n
	variance := sumSq/n - mean*mean

	return clamp100(variance / a.cfg.QualityDivisor)
}
