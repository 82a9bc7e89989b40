package renderer

import (
	"image"

	"github.com/ivlev/clipforge/internal/timeline"
)

// blendInto composites src onto dst using the clip's blend mode, scaled by
// opacity. The CSS blend-mode set is wider than what the renderer computes
// natively; overlay, soft-light, hard-light and any unknown mode fall back
// to normal blending. The mapping is deliberately approximate.
func blendInto(dst, src *image.RGBA, mode timeline.BlendMode, opacity float64) {
	if opacity <= 0 {
		return
	}
	if opacity > 1 {
		opacity = 1
	}

	var blend func(s, d float64) float64
	switch mode {
	case timeline.BlendMultiply:
		blend = func(s, d float64) float64 { return s * d }
	case timeline.BlendScreen:
		blend = func(s, d float64) float64 { return 1 - (1-s)*(1-d) }
	case timeline.BlendAdd:
		blend = func(s, d float64) float64 {
			v := s + d
			if v > 1 {
				return 1
			}
			return v
		}
	case timeline.BlendDarken:
		blend = func(s, d float64) float64 {
			if s < d {
				return s
			}
			return d
		}
	case timeline.BlendLighten:
		blend = func(s, d float64) float64 {
			if s > d {
				return s
			}
			return d
		}
	default:
		// normal, plus the approximated modes
		blend = nil
	}

	bounds := dst.Bounds().Intersect(src.Bounds())
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		si := src.PixOffset(bounds.Min.X, y)
		di := dst.PixOffset(bounds.Min.X, y)
		for x := bounds.Min.X; x < bounds.Max.X; x, si, di = x+1, si+4, di+4 {
			sa := float64(src.Pix[si+3]) / 255 * opacity
			if sa == 0 {
				continue
			}
			// un-premultiply the source layer
			pa := float64(src.Pix[si+3]) / 255
			for c := 0; c < 3; c++ {
				s := float64(src.Pix[si+c]) / 255
				if pa > 0 {
					s /= pa
				}
				d := float64(dst.Pix[di+c]) / 255
				var out float64
				if blend == nil {
					out = s*sa + d*(1-sa)
				} else {
					b := blend(s, d)
					out = b*sa + d*(1-sa)
				}
				dst.Pix[di+c] = uint8(out*255 + 0.5)
			}
			da := float64(dst.Pix[di+3]) / 255
			dst.Pix[di+3] = uint8((sa+da*(1-sa))*255 + 0.5)
		}
	}
}
