package renderer

import (
	"image"
	"image/color"
	"math"

	"golang.org/x/image/vector"

	"github.com/ivlev/clipforge/internal/timeline"
)

const defaultShapeSize = 200

// renderShape rasterizes a parametric shape with x/image/vector. Stroked
// shapes draw the stroke color at full size with the fill inset toward the
// centroid, which is exact for the convex shapes in the set.
func renderShape(props *timeline.ShapeProps) *image.RGBA {
	w := int(props.Width)
	h := int(props.Height)
	if w <= 0 {
		w = defaultShapeSize
	}
	if h <= 0 {
		h = defaultShapeSize
	}
	img := image.NewRGBA(image.Rect(0, 0, w, h))

	fill := parseColor(props.Fill)
	if props.Stroke != "" && props.StrokeWidth > 0 {
		stroke := parseColor(props.Stroke)
		fillShape(img, props, float64(w), float64(h), 0, stroke)
		fillShape(img, props, float64(w), float64(h), props.StrokeWidth, fill)
	} else {
		fillShape(img, props, float64(w), float64(h), 0, fill)
	}
	return img
}

func fillShape(img *image.RGBA, props *timeline.ShapeProps, w, h, inset float64, col color.RGBA) {
	pts := shapePoints(props, w, h, inset)
	if len(pts) < 3 {
		return
	}
	ras := vector.NewRasterizer(int(w), int(h))
	ras.MoveTo(float32(pts[0][0]), float32(pts[0][1]))
	for _, p := range pts[1:] {
		ras.LineTo(float32(p[0]), float32(p[1]))
	}
	ras.ClosePath()
	ras.Draw(img, img.Bounds(), image.NewUniform(col), image.Point{})
}

// shapePoints returns the shape outline, shrunk toward its center by inset.
func shapePoints(props *timeline.ShapeProps, w, h, inset float64) [][2]float64 {
	cx, cy := w/2, h/2
	var pts [][2]float64

	switch props.Shape {
	case timeline.ShapeRectangle:
		pts = [][2]float64{{0, 0}, {w, 0}, {w, h}, {0, h}}
	case timeline.ShapeCircle:
		// circle as a high-count polygon, good enough at raster scale
		const n = 64
		r := math.Min(w, h) / 2
		for i := 0; i < n; i++ {
			a := 2 * math.Pi * float64(i) / n
			pts = append(pts, [2]float64{cx + r*math.Cos(a), cy + r*math.Sin(a)})
		}
	case timeline.ShapeTriangle:
		pts = [][2]float64{{cx, 0}, {w, h}, {0, h}}
	case timeline.ShapeStar:
		points := 5
		inner := props.InnerRadius
		if inner <= 0 || inner >= 1 {
			inner = 0.45
		}
		outerR := math.Min(w, h) / 2
		innerR := outerR * inner
		for i := 0; i < points*2; i++ {
			r := outerR
			if i%2 == 1 {
				r = innerR
			}
			a := math.Pi*float64(i)/float64(points) - math.Pi/2
			pts = append(pts, [2]float64{cx + r*math.Cos(a), cy + r*math.Sin(a)})
		}
	case timeline.ShapePolygon:
		n := props.Sides
		if n < 3 {
			n = 6
		}
		r := math.Min(w, h) / 2
		for i := 0; i < n; i++ {
			a := 2*math.Pi*float64(i)/float64(n) - math.Pi/2
			pts = append(pts, [2]float64{cx + r*math.Cos(a), cy + r*math.Sin(a)})
		}
	case timeline.ShapeLine:
		th := props.StrokeWidth
		if th <= 0 {
			th = 4
		}
		pts = [][2]float64{{0, cy - th/2}, {w, cy - th/2}, {w, cy + th/2}, {0, cy + th/2}}
	default:
		pts = [][2]float64{{0, 0}, {w, 0}, {w, h}, {0, h}}
	}

	if inset > 0 {
		for i, p := range pts {
			dx, dy := p[0]-cx, p[1]-cy
			dist := math.Hypot(dx, dy)
			if dist > inset {
				f := (dist - inset) / dist
				pts[i] = [2]float64{cx + dx*f, cy + dy*f}
			}
		}
	}
	return pts
}
