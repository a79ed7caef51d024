package analyzer

import (
	"math"

	"deepsight/internal/source"
)

// Sobel kernels
var sobelX = [3][3]float64{
	{-1, 0, 1},
	{-2, 0, 2},
	{-1, 0, 1},
}

var sobelY = [3][3]float64{
	{-1, -2, -1},
	{0, 0, 0},
	{1, 2, 1},
}

// EdgeConsistency applies the Sobel operator to the grayscale projection and
// measures how well edge directions agree with their neighborhood. Blended
// or resynthesized regions tend to break the local gradient flow of real
// optics. Returns the share of consistent edges in [0,100], or the neutral
// fallback when the buffer has no edges to judge.
func (a *Analyzer) EdgeConsistency(buf *source.PixelBuffer) float64 {
	w, h := buf.Width, buf.Height
	if w < 3 || h < 3 {
		return a.cfg.EdgeNeutral
	}

	magnitude := make([]float64, w*h)
	angle := make([]float64, w*h)

	for y := 1; y < h-1; y++ {
		for x := 1; x < w-1; x++ {
			var sumX, sumY float64
			for ky := -1; ky <= 1; ky++ {
				for kx := -1; kx <= 1; kx++ {
					pixel := buf.Gray(x+kx, y+ky)
					sumX += pixel * sobelX[ky+1][kx+1]
					sumY += pixel * sobelY[ky+1][kx+1]
				}
			}
			magnitude[y*w+x] = math.Sqrt(sumX*sumX + sumY*sumY)
			angle[y*w+x] = math.Atan2(sumY, sumX) * 180 / math.Pi
		}
	}

	totalEdges := 0
	consistentEdges := 0

	for y := 1; y < h-1; y++ {
		for x := 1; x < w-1; x++ {
			if magnitude[y*w+x] <= a.cfg.EdgeThreshold {
				continue
			}
			totalEdges++

			neighbors := 0
			agreeing := 0
			for dy := -1; dy <= 1; dy++ {
				for dx := -1; dx <= 1; dx++ {
					if dx == 0 && dy == 0 {
						continue
					}
					ni := (y+dy)*w + (x + dx)
					if magnitude[ni] <= a.cfg.EdgeThreshold {
						continue
					}
					neighbors++
					if angleDelta(angle[y*w+x], angle[ni]) <= 45 {
						agreeing++
					}
				}
			}

			// An isolated edge has nothing to disagree with.
			if neighbors == 0 || agreeing*2 >= neighbors {
				consistentEdges++
			}
		}
	}

	if totalEdges == 0 {
		return a.cfg.EdgeNeutral
	}
	return float64(consistentEdges) / float64(totalEdges) * 100
}

// angleDelta returns the distance between two gradient directions in
// degrees, folded mod 180 so opposite gradients compare as parallel.
func angleDelta(a, b float64) float64 {
	d := math.Mod(math.Abs(a-b), 180)
	if d > 90 {
		d = 180 - d
	}
	return d
}
