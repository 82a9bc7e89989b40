package renderer

import (
	"image"

	qrcode "github.com/skip2/go-qrcode"

	"github.com/ivlev/clipforge/internal/timeline"
)

// renderSticker draws a sticker clip: either a media library image or a QR
// code generated from the sticker's payload.
func (c *Compositor) renderSticker(p *timeline.Project, props *timeline.StickerProps) image.Image {
	switch props.Source {
	case "qr":
		size := props.Size
		if size <= 0 {
			size = 256
		}
		q, err := qrcode.New(props.Content, qrcode.Medium)
		if err != nil {
			return renderPlaceholder(size, size)
		}
		return q.Image(size)
	default:
		item := p.MediaByID(props.MediaID)
		src, err := c.ctx.Sources.Resolve(item)
		if err != nil {
			return renderPlaceholder(0, 0)
		}
		img, err := src.FrameAt(0)
		if err != nil {
			return renderPlaceholder(0, 0)
		}
		return img
	}
}
