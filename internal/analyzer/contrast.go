package analyzer

import (
	"image"
	"image/color"
	"math"

	"golang.org/x/image/draw"
)

// ContrastDetector finds regions by edge density: Sobel gradients are
// thresholded into an edge mask, dilated so nearby strokes merge, and the
// connected components become regions.
type ContrastDetector struct {
	MinRegionArea int     // minimum area in pixels of the analyzed image
	EdgeThreshold float64 // gradient magnitude threshold

	// Frames wider than AnalysisWidth are downsampled before analysis;
	// region rects are mapped back to source coordinates.
	AnalysisWidth int
}

func NewContrastDetector() *ContrastDetector {
	return &ContrastDetector{
		MinRegionArea: 500,
		EdgeThreshold: 30.0,
		AnalysisWidth: 960,
	}
}

func (d *ContrastDetector) Detect(img image.Image) ([]Region, error) {
	scale := 1.0
	if w := img.Bounds().Dx(); d.AnalysisWidth > 0 && w > d.AnalysisWidth {
		scale = float64(d.AnalysisWidth) / float64(w)
		h := int(float64(img.Bounds().Dy()) * scale)
		small := image.NewRGBA(image.Rect(0, 0, d.AnalysisWidth, h))
		draw.ApproxBiLinear.Scale(small, small.Bounds(), img, img.Bounds(), draw.Src, nil)
		img = small
	}

	gray := toGrayscale(img)
	edges := edgeMask(gray, d.EdgeThreshold)
	dilated := dilate(edges, 5, 2)
	components := connectedComponents(dilated)

	var regions []Region
	for _, rect := range components {
		if rect.Dx()*rect.Dy() < d.MinRegionArea {
			continue
		}
		if scale != 1.0 {
			rect = image.Rect(
				int(float64(rect.Min.X)/scale),
				int(float64(rect.Min.Y)/scale),
				int(float64(rect.Max.X)/scale),
				int(float64(rect.Max.Y)/scale),
			)
		}
		regions = append(regions, Region{Rect: rect, Confidence: 0.7})
	}
	return regions, nil
}

func toGrayscale(img image.Image) *image.Gray {
	bounds := img.Bounds()
	gray := image.NewGray(bounds)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			gray.Set(x, y, color.GrayModel.Convert(img.At(x, y)))
		}
	}
	return gray
}

// edgeMask thresholds Sobel gradient magnitude into a binary mask.
func edgeMask(gray *image.Gray, threshold float64) *image.Gray {
	bounds := gray.Bounds()
	edges := image.NewGray(bounds)

	gx := [3][3]float64{{-1, 0, 1}, {-2, 0, 2}, {-1, 0, 1}}
	gy := [3][3]float64{{-1, -2, -1}, {0, 0, 0}, {1, 2, 1}}

	for y := bounds.Min.Y + 1; y < bounds.Max.Y-1; y++ {
		for x := bounds.Min.X + 1; x < bounds.Max.X-1; x++ {
			var sumX, sumY float64
			for ky := -1; ky <= 1; ky++ {
				for kx := -1; kx <= 1; kx++ {
					pixel := float64(gray.GrayAt(x+kx, y+ky).Y)
					sumX += pixel * gx[ky+1][kx+1]
					sumY += pixel * gy[ky+1][kx+1]
				}
			}
			if math.Sqrt(sumX*sumX+sumY*sumY) > threshold {
				edges.SetGray(x, y, color.Gray{Y: 255})
			}
		}
	}
	return edges
}

// dilate grows the mask so edges of the same visual element connect into
// one component.
func dilate(img *image.Gray, kernelSize, iterations int) *image.Gray {
	bounds := img.Bounds()
	result := image.NewGray(bounds)
	copy(result.Pix, img.Pix)

	half := kernelSize / 2
	for iter := 0; iter < iterations; iter++ {
		temp := image.NewGray(bounds)
		for y := bounds.Min.Y + half; y < bounds.Max.Y-half; y++ {
			for x := bounds.Min.X + half; x < bounds.Max.X-half; x++ {
				maxVal := uint8(0)
				for ky := -half; ky <= half; ky++ {
					for kx := -half; kx <= half; kx++ {
						if v := result.GrayAt(x+kx, y+ky).Y; v > maxVal {
							maxVal = v
						}
					}
				}
				temp.SetGray(x, y, color.Gray{Y: maxVal})
			}
		}
		result = temp
	}
	return result
}

// connectedComponents returns the bounding boxes of white regions.
func connectedComponents(img *image.Gray) []image.Rectangle {
	bounds := img.Bounds()
	visited := make([]bool, bounds.Dx()*bounds.Dy())
	idx := func(x, y int) int {
		return (y-bounds.Min.Y)*bounds.Dx() + (x - bounds.Min.X)
	}

	var components []image.Rectangle
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			if img.GrayAt(x, y).Y > 128 && !visited[idx(x, y)] {
				components = append(components, floodFill(img, visited, idx, x, y))
			}
		}
	}
	return components
}

func floodFill(img *image.Gray, visited []bool, idx func(x, y int) int, startX, startY int) image.Rectangle {
	bounds := img.Bounds()
	minX, minY := startX, startY
	maxX, maxY := startX, startY

	stack := []image.Point{{X: startX, Y: startY}}
	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if p.X < bounds.Min.X || p.X >= bounds.Max.X || p.Y < bounds.Min.Y || p.Y >= bounds.Max.Y {
			continue
		}
		if visited[idx(p.X, p.Y)] || img.GrayAt(p.X, p.Y).Y <= 128 {
			continue
		}
		visited[idx(p.X, p.Y)] = true

		if p.X < minX {
			minX = p.X
		}
		if p.X > maxX {
			maxX = p.X
		}
		if p.Y < minY {
			minY = p.Y
		}
		if p.Y > maxY {
			maxY = p.Y
		}

		stack = append(stack,
			image.Point{X: p.X + 1, Y: p.Y},
			image.Point{X: p.X - 1, Y: p.Y},
			image.Point{X: p.X, Y: p.Y + 1},
			image.Point{X: p.X, Y: p.Y - 1},
		)
	}
	return image.Rect(minX, minY, maxX+1, maxY+1)
}
