package renderer

import (
	"image"
	"math"

	"golang.org/x/image/draw"
	"golang.org/x/image/math/f64"
	"golang.org/x/image/vector"

	"github.com/ivlev/clipforge/internal/timeline"
)

// applyCrop cuts the normalized clip-local crop rectangle out of the content.
func applyCrop(content image.Image, crop *timeline.Crop) image.Image {
	if crop == nil || crop.W <= 0 || crop.H <= 0 {
		return content
	}
	b := content.Bounds()
	w, h := float64(b.Dx()), float64(b.Dy())
	r := image.Rect(
		b.Min.X+int(crop.X*w),
		b.Min.Y+int(crop.Y*h),
		b.Min.X+int((crop.X+crop.W)*w),
		b.Min.Y+int((crop.Y+crop.H)*h),
	).Intersect(b)
	if r.Empty() {
		return content
	}
	out := image.NewRGBA(image.Rect(0, 0, r.Dx(), r.Dy()))
	draw.Draw(out, out.Bounds(), content, r.Min, draw.Src)
	return out
}

// applyBorderRadius masks the content corners with a rounded rectangle.
func applyBorderRadius(content image.Image, radius float64) image.Image {
	if radius <= 0 {
		return content
	}
	b := content.Bounds()
	w, h := b.Dx(), b.Dy()
	maxR := math.Min(float64(w), float64(h)) / 2
	if radius > maxR {
		radius = maxR
	}

	mask := image.NewAlpha(image.Rect(0, 0, w, h))
	ras := vector.NewRasterizer(w, h)
	roundedRectPath(ras, float32(w), float32(h), float32(radius))
	ras.Draw(mask, mask.Bounds(), image.Opaque, image.Point{})

	out := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.DrawMask(out, out.Bounds(), content, b.Min, mask, image.Point{}, draw.Over)
	return out
}

func roundedRectPath(ras *vector.Rasterizer, w, h, r float32) {
	// Quarter circles approximated with quadratic segments.
	ras.MoveTo(r, 0)
	ras.LineTo(w-r, 0)
	ras.QuadTo(w, 0, w, r)
	ras.LineTo(w, h-r)
	ras.QuadTo(w, h, w-r, h)
	ras.LineTo(r, h)
	ras.QuadTo(0, h, 0, h-r)
	ras.LineTo(0, r)
	ras.QuadTo(0, 0, r, 0)
	ras.ClosePath()
}

// drawTransformed places content into the canvas-sized layer with the
// effective transform applied: anchor, scale, rotation, position. The 3D
// rotation is approximated by cosine foreshortening folded into the 2D
// scale; perspective beyond that is not reproduced.
func drawTransformed(layer *image.RGBA, content image.Image, eff timeline.Transform, canvasW, canvasH int) {
	b := content.Bounds()
	cw, ch := float64(b.Dx()), float64(b.Dy())
	if cw == 0 || ch == 0 {
		return
	}

	sx, sy := eff.Scale.X, eff.Scale.Y
	rot := eff.Rotation
	if eff.Rotate3D != nil {
		sy *= math.Abs(math.Cos(eff.Rotate3D.X * math.Pi / 180))
		sx *= math.Abs(math.Cos(eff.Rotate3D.Y * math.Pi / 180))
		rot += eff.Rotate3D.Z
	}
	if fit := fitScale(eff.FitMode, cw, ch, float64(canvasW), float64(canvasH)); fit != 0 {
		sx *= fit
		sy *= fit
	}

	theta := rot * math.Pi / 180
	cos, sin := math.Cos(theta), math.Sin(theta)

	m00 := sx * cos
	m01 := -sy * sin
	m10 := sx * sin
	m11 := sy * cos

	// anchor point in content pixels
	ax := eff.Anchor.X * cw
	ay := eff.Anchor.Y * ch
	// anchor lands at canvas center plus the position offset
	tx := float64(canvasW)/2 + eff.Position.X
	ty := float64(canvasH)/2 + eff.Position.Y

	m := f64.Aff3{
		m00, m01, tx - (m00*ax + m01*ay),
		m10, m11, ty - (m10*ax + m11*ay),
	}
	draw.BiLinear.Transform(layer, m, content, b, draw.Over, nil)
}

// fitScale returns the uniform pre-scale implied by an image fit mode, or 0
// for none.
func fitScale(mode string, cw, ch, canvasW, canvasH float64) float64 {
	switch mode {
	case "contain":
		return math.Min(canvasW/cw, canvasH/ch)
	case "cover":
		return math.Max(canvasW/cw, canvasH/ch)
	case "fill":
		// non-uniform fill is approximated by the containing scale
		return math.Min(canvasW/cw, canvasH/ch)
	}
	return 0
}
