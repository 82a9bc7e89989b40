package renderer

import (
	"image"

	"github.com/ivlev/clipforge/internal/source"
	"github.com/ivlev/clipforge/internal/timeline"
)

// renderSVG rasterizes inline SVG markup through MuPDF. Bad markup degrades
// to the placeholder visual; a broken clip must not abort the frame.
func renderSVG(props *timeline.SVGProps) image.Image {
	src, err := source.NewFitzMemorySource([]byte(props.Markup))
	if err != nil {
		return renderPlaceholder(int(props.Width), int(props.Height))
	}
	defer src.Close()

	img, err := src.FrameAt(0)
	if err != nil {
		return renderPlaceholder(int(props.Width), int(props.Height))
	}
	return img
}
