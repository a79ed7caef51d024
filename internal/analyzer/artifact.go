package analyzer

import "deepsight/internal/source"

// ArtifactScore measures local-variance artifacts. For each interior pixel
// the 3x3 neighborhood is scanned per channel; a pixel counts as an artifact
// when the averaged channel variance exceeds the variance limit, or when any
// of its channels deviates from the neighborhood mean by more than the delta
// limit. The artifact count is normalized by pixel count and rescaled.
func (a *Analyzer) ArtifactScore(buf *source.PixelBuffer) float64 {
	if buf.Width < 3 || buf.Height < 3 {
		return 0
	}

	artifacts := 0
	for y := 1; y < buf.Height-1; y++ {
		for x := 1; x < buf.Width-1; x++ {
			var sum, sumSq [3]float64
			for dy := -1; dy <= 1; dy++ {
				for dx := -1; dx <= 1; dx++ {
					r, g, b, _ := buf.RGBA(x+dx, y+dy)
					for c, v := range [3]float64{float64(r), float64(g), float64(b)} {
						sum[c] += v
						sumSq[c] += v * v
					}
				}
			}

			variance := 0.0
			var mean [3]float64
			for c := 0; c < 3; c++ {
				mean[c] = sum[c] / 9
				variance += sumSq[c]/9 - mean[c]*mean[c]
			}
			variance /= 3

			if variance > a.cfg.ArtifactVarianceLimit {
				artifacts++
				continue
			}

			r, g, b, _ := buf.RGBA(x, y)
			if abs(float64(r)-mean[0]) > a.cfg.ArtifactDeltaLimit ||
				abs(float64(g)-mean[1]) > a.cfg.ArtifactDeltaLimit ||
				abs(float64(b)-mean[2]) > a.cfg.ArtifactDeltaLimit {
				artifacts++
			}
		}
	}

	interior := (buf.Width - 2) * (buf.Height - 2)
	return clamp100(float64(artifacts) / float64(interior) * a.cfg.ArtifactScale)
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
