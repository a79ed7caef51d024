package analyzer

import "deepsight/internal/source"

// Blockiness measures 8x8 compression block artifacts. For each block the
// average gray level just inside the right and bottom boundaries is compared
// against the first row/column outside; a jump above the limit counts as a
// blocky boundary. Two boundaries are checked per block.
func (a *Analyzer) Blockiness(buf *source.PixelBuffer) float64 {
	const blockSize = 8

	blocksX := buf.Width / blockSize
	blocksY := buf.Height / blockSize
	if blocksX == 0 || blocksY == 0 {
		return 0
	}

	blockCount := 0
	blocky := 0

	for by := 0; by < blocksY; by++ {
		for bx := 0; bx < blocksX; bx++ {
			blockCount++
			x0 := bx * blockSize
			y0 := by * blockSize

			// Right boundary: last column of this block vs first column after it.
			if inX := x0 + blockSize - 1; inX+1 < buf.Width {
				var inside, outside float64
				for y := y0; y < y0+blockSize; y++ {
					inside += buf.Gray(inX, y)
					outside += buf.Gray(inX+1, y)
				}
				if abs(inside-outside)/blockSize > a.cfg.BlockJumpLimit {
					blocky++
				}
			}

			// Bottom boundary.
			if inY := y0 + blockSize - 1; inY+1 < buf.Height {
				var inside, outside float64
				for x := x0; x < x0+blockSize; x++ {
					inside += buf.Gray(x, inY)
					outside += buf.Gray(x, inY+1)
				}
				if abs(inside-outside)/blockSize > a.cfg.BlockJumpLimit {
					blocky++
				}
			}
		}
	}

	return clamp100(float64(blocky) / float64(2*blockCount) * 100)
}
