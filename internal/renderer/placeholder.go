package renderer

import (
	"image"
	"image/color"
)

const placeholderSize = 320

// renderPlaceholder draws the fixed stand-in visual for missing media:
// a dark checkerboard with a diagonal cross. Deterministic, so frames with
// missing assets still render identically between runs.
func renderPlaceholder(width, height int) *image.RGBA {
	if width <= 0 {
		width = placeholderSize
	}
	if height <= 0 {
		height = placeholderSize * 9 / 16
	}
	dark := color.RGBA{R: 40, G: 40, B: 48, A: 255}
	light := color.RGBA{R: 64, G: 64, B: 76, A: 255}
	cross := color.RGBA{R: 160, G: 60, B: 60, A: 255}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	const cell = 16
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			c := dark
			if (x/cell+y/cell)%2 == 0 {
				c = light
			}
			img.SetRGBA(x, y, c)
		}
	}
	// diagonal cross
	for x := 0; x < width; x++ {
		y := x * height / width
		for d := -1; d <= 1; d++ {
			yy := y + d
			if yy >= 0 && yy < height {
				img.SetRGBA(x, yy, cross)
				img.SetRGBA(x, height-1-yy, cross)
			}
		}
	}
	return img
}
