package renderer

import (
	"image"
	"strings"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"github.com/ivlev/clipforge/internal/timeline"
)

const textPadding = 8

// renderText lays out and fills a text clip: optional background, optional
// drop shadow, then the glyphs themselves. Multi-line content splits on \n.
func (c *Compositor) renderText(props *timeline.TextProps) *image.RGBA {
	size := props.FontSize
	if size <= 0 {
		size = 48
	}
	face, err := c.ctx.face(props.Bold, size)
	if err != nil {
		return renderPlaceholder(0, 0)
	}
	defer face.Close()

	lines := strings.Split(props.Content, "\n")
	metrics := face.Metrics()
	lineHeight := metrics.Height.Ceil()
	ascent := metrics.Ascent.Ceil()

	maxWidth := 0
	for _, line := range lines {
		if w := font.MeasureString(face, line).Ceil(); w > maxWidth {
			maxWidth = w
		}
	}
	shadow := int(props.ShadowOffset)
	w := maxWidth + 2*textPadding + shadow
	h := lineHeight*len(lines) + 2*textPadding + shadow
	if w <= 0 || h <= 0 {
		return image.NewRGBA(image.Rect(0, 0, 1, 1))
	}
	img := image.NewRGBA(image.Rect(0, 0, w, h))

	if props.Background != "" {
		bg := parseColor(props.Background)
		draw.Draw(img, img.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)
	}

	drawPass := func(dx, dy int, colorHex string) {
		src := image.NewUniform(parseColor(colorHex))
		for i, line := range lines {
			x := textPadding
			switch props.Align {
			case "center":
				x = (w - font.MeasureString(face, line).Ceil()) / 2
			case "right":
				x = w - textPadding - font.MeasureString(face, line).Ceil()
			}
			d := font.Drawer{
				Dst:  img,
				Src:  src,
				Face: face,
				Dot:  fixed.P(x+dx, textPadding+ascent+i*lineHeight+dy),
			}
			d.DrawString(line)
		}
	}

	if props.ShadowColor != "" && shadow > 0 {
		drawPass(shadow, shadow, props.ShadowColor)
	}
	drawPass(0, 0, props.Color)
	return img
}
