package source

import (
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
)

// ImageSource serves a still image decoded once at open time.
type ImageSource struct {
	img image.Image
}

func NewImageSource(path string) (*ImageSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, err
	}
	return &ImageSource{img: img}, nil
}

// NewImageSourceFrom wraps an already decoded image.
func NewImageSourceFrom(img image.Image) *ImageSource {
	return &ImageSource{img: img}
}

func (s *ImageSource) Dimensions() (int, int) {
	b := s.img.Bounds()
	return b.Dx(), b.Dy()
}

func (s *ImageSource) Duration() float64 { return 0 }

func (s *ImageSource) FrameAt(_ float64) (image.Image, error) {
	return s.img, nil
}

func (s *ImageSource) Close() error { return nil }
