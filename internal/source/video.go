package source

import (
	"context"
	"fmt"
	"io"
	"os/exec"

	"deepsight/internal/system"
)

// VideoSource samples N frames at evenly spaced timestamps across the
// asset's duration. Frames are decoded on demand by seeking ffmpeg to the
// midpoint of each of the N spans, so no two captures share a timestamp.
type VideoSource struct {
	path       string
	width      int
	height     int
	duration   float64
	timestamps []float64
}

func NewVideoSource(ctx context.Context, path string, frameCount int) (*VideoSource, error) {
	if frameCount < 1 {
		frameCount = 1
	}

	width, height, duration, err := system.ProbeVideo(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	timestamps := make([]float64, frameCount)
	for i := range timestamps {
		timestamps[i] = duration * (2*float64(i) + 1) / (2 * float64(frameCount))
	}

	return &VideoSource{
		path:       path,
		width:      width,
		height:     height,
		duration:   duration,
		timestamps: timestamps,
	}, nil
}

func (s *VideoSource) FrameCount() int {
	return len(s.timestamps)
}

// Frame seeks to the frame's timestamp and captures one raw RGBA frame
// through a pipe, so nothing touches the disk.
func (s *VideoSource) Frame(ctx context.Context, index int) (*PixelBuffer, error) {
	if index < 0 || index >= len(s.timestamps) {
		return nil, fmt.Errorf("%w: frame index %d out of range", ErrDecode, index)
	}

	cmd := exec.CommandContext(ctx, "ffmpeg",
		"-ss", fmt.Sprintf("%f", s.timestamps[index]),
		"-i", s.path,
		"-frames:v", "1",
		"-f", "rawvideo",
		"-pix_fmt", "rgba",
		"-vf", fmt.Sprintf("scale=%d:%d", s.width, s.height),
		"-v", "error",
		"pipe:1",
	)

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("%w: stdout pipe: %v", ErrDecode, err)
	}

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("%w: ffmpeg start: %v", ErrDecode, err)
	}

	pix := system.GetFrame(s.width * s.height * 4)
	if _, err := io.ReadFull(stdout, pix); err != nil {
		system.PutFrame(pix)
		cmd.Process.Kill()
		cmd.Wait()
		return nil, fmt.Errorf("%w: seek to %.3fs produced no frame: %v", ErrDecode, s.timestamps[index], err)
	}
	// Drain whatever ffmpeg flushes after the frame before waiting.
	io.Copy(io.Discard, stdout)

	if err := cmd.Wait(); err != nil {
		system.PutFrame(pix)
		return nil, fmt.Errorf("%w: ffmpeg wait: %v", ErrDecode, err)
	}

	return &PixelBuffer{Width: s.width, Height: s.height, Pix: pix}, nil
}

func (s *VideoSource) Duration() float64 {
	return s.duration
}

func (s *VideoSource) Close() error {
	return nil
}

// Release returns a video frame's pixels to the frame pool. The caller
// must not touch the buffer afterwards.
func Release(buf *PixelBuffer) {
	if buf != nil {
		system.PutFrame(buf.Pix)
	}
}
