package analyzer

import "deepsight/internal/source"

// ColorConsistency splits the frame into four quadrants and compares their
// mean colors pairwise. Composited or partially regenerated frames drift
// apart regionally; a uniform frame scores a full 100.
func (a *Analyzer) ColorConsistency(buf *source.PixelBuffer) float64 {
	halfW := buf.Width / 2
	halfH := buf.Height / 2
	if halfW == 0 || halfH == 0 {
		return 100
	}

	// Quadrant order: top-left, top-right, bottom-left, bottom-right.
	var means [4][3]float64
	for q := 0; q < 4; q++ {
		x0 := (q % 2) * halfW
		y0 := (q / 2) * halfH

		var sum [3]float64
		for y := y0; y < y0+halfH; y++ {
			for x := x0; x < x0+halfW; x++ {
				r, g, b, _ := buf.RGBA(x, y)
				sum[0] += float64(r)
				sum[1] += float64(g)
				sum[2] += float64(b)
			}
		}
		n := float64(halfW * halfH)
		means[q] = [3]float64{sum[0] / n, sum[1] / n, sum[2] / n}
	}

	// All 6 quadrant pairs.
	totalDiff := 0.0
	pairs := 0
	for i := 0; i < 4; i++ {
		for j := i + 1; j < 4; j++ {
			totalDiff += abs(means[i][0]-means[j][0]) +
				abs(means[i][1]-means[j][1]) +
				abs(means[i][2]-means[j][2])
			pairs++
		}
	}

	avgDiff := totalDiff / float64(pairs)
	score := 100 - avgDiff/a.cfg.ColorScale
	if score < 0 {
		score = 0
	}
	return score
}
