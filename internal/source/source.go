package source

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ErrUnsupportedType marks an asset whose declared media type is neither
// image/* nor video/*. The asset is skipped, the batch continues.
var ErrUnsupportedType = errors.New("unsupported media type")

// ErrDecode marks an asset whose bytes cannot be turned into pixels, or a
// video whose metadata/seek failed. Fatal for the asset: no partial frame sets.
var ErrDecode = errors.New("decode failed")

// Source yields the pixel buffers of one media asset: a single frame for an
// image, N evenly spaced frames in chronological order for a video.
type Source interface {
	FrameCount() int
	// Frame decodes the frame at the given index. Frames are captured at
	// distinct timestamps; a seek failure is fatal for the asset.
	Frame(ctx context.Context, index int) (*PixelBuffer, error)
	// Duration returns the asset duration in seconds, 0 for still images.
	Duration() float64
	Close() error
}

// New opens an asset, gated by its declared MIME category. frameCount only
// applies to video sources.
func New(ctx context.Context, path, mimeType string, frameCount int) (Source, error) {
	switch {
	case strings.HasPrefix(mimeType, "image/"):
		return NewImageSource(path)
	case strings.HasPrefix(mimeType, "video/"):
		return NewVideoSource(ctx, path, frameCount)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedType, mimeType)
	}
}
