package source

import (
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// ImageSource decodes a still image into exactly one buffer at native
// resolution. Decoding happens eagerly so a corrupt file fails at open time.
type ImageSource struct {
	buf *PixelBuffer
}

func NewImageSource(path string) (*ImageSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	return &ImageSource{buf: FromImage(img)}, nil
}

func (s *ImageSource) FrameCount() int {
	return 1
}

func (s *ImageSource) Frame(_ context.Context, index int) (*PixelBuffer, error) {
	if index != 0 {
		return nil, fmt.Errorf("%w: image frame index %d out of range", ErrDecode, index)
	}
	return s.buf, nil
}

func (s *ImageSource) Duration() float64 {
	return 0
}

func (s *ImageSource) Close() error {
	return nil
}
