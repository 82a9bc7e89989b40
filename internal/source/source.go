package source

import (
	"errors"
	"image"
)

// ErrMissingMedia marks media that cannot be resolved to pixels. The
// compositor treats it as a signal to draw the placeholder visual, never as
// a render failure.
var ErrMissingMedia = errors.New("media is missing or unresolved")

// Source yields decoded frames of one media asset.
type Source interface {
	Dimensions() (width, height int)
	// Duration returns the source length in seconds, or 0 for stills.
	Duration() float64
	// FrameAt decodes the frame at the given source time. Stills return the
	// same image for every time.
	FrameAt(t float64) (image.Image, error)
	Close() error
}
