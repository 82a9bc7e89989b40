package source

import (
	"image"
	"image/color"
	"image/draw"
)

// SolidSource fills every frame with one color. Used by tests and as a
// deterministic stand-in asset.
type SolidSource struct {
	img *image.RGBA
}

func NewSolidSource(c color.RGBA, width, height int) *SolidSource {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: c}, image.Point{}, draw.Src)
	return &SolidSource{img: img}
}

func (s *SolidSource) Dimensions() (int, int) {
	b := s.img.Bounds()
	return b.Dx(), b.Dy()
}

func (s *SolidSource) Duration() float64 { return 0 }

func (s *SolidSource) FrameAt(_ float64) (image.Image, error) {
	return s.img, nil
}

func (s *SolidSource) Close() error { return nil }
